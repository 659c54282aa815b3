package outline

import (
	"fmt"
	"strings"

	"github.com/forPelevin/beatcut/internal/types"
)

const sectionSummaryMaxLen = 120

// aggregateSections walks beats in order, resolves a rhetorical type per beat
// (classifier first, positional fallback for SectionOther), and merges
// consecutive same-type beats into sections. Sections come out contiguous:
// concatenating their beat lists reproduces the input exactly.
func aggregateSections(beats []types.Beat) []types.Section {
	if len(beats) == 0 {
		return nil
	}

	var sections []types.Section
	var runBeats []types.Beat
	runType := types.SectionOther

	for i, beat := range beats {
		detected := Classify(beat.OriginalText)
		if detected == types.SectionOther {
			detected = fallbackBeatType(i, len(beats))
		}

		if len(runBeats) > 0 && detected != runType {
			sections = append(sections, sectionFromRun(runBeats, runType, len(sections)))
			runBeats = nil
		}
		runType = detected
		runBeats = append(runBeats, beat)
	}
	if len(runBeats) > 0 {
		sections = append(sections, sectionFromRun(runBeats, runType, len(sections)))
	}
	return sections
}

// sectionFromRun builds a Section from a run of same-type beats. Variables
// are carried over from the constituent beats, not re-extracted.
func sectionFromRun(beats []types.Beat, sectionType types.SectionType, index int) types.Section {
	texts := make([]string, 0, len(beats))
	templates := make([]string, 0, len(beats))
	var vars []types.Variable
	for _, b := range beats {
		texts = append(texts, b.OriginalText)
		templates = append(templates, b.Template)
		vars = append(vars, b.Variables...)
	}
	text := strings.Join(texts, " ")

	name := sectionDisplayNames[sectionType]
	if name == "" {
		name = fmt.Sprintf("セクション %d", index+1)
	}

	return types.Section{
		Name:         name,
		Type:         sectionType,
		Start:        beats[0].Start,
		End:          beats[len(beats)-1].End,
		Summary:      truncate(text, sectionSummaryMaxLen),
		Template:     strings.Join(templates, " "),
		Beats:        beats,
		Variables:    vars,
		OriginalText: text,
	}
}
