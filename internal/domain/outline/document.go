package outline

import (
	"github.com/forPelevin/beatcut/internal/domain/timecode"
	"github.com/forPelevin/beatcut/internal/types"
)

// Document is the JSON-serializable form of an outline. Field names and
// nesting are read by downstream tooling and must stay stable.
type Document struct {
	VideoID      string            `json:"video_id"`
	Metadata     map[string]any    `json:"metadata"`
	Beats        []BeatDocument    `json:"beats"`
	Sections     []SectionDocument `json:"sections"`
	AllVariables []types.Variable  `json:"all_variables"`
}

type BeatDocument struct {
	ID            int              `json:"id"`
	Start         float64          `json:"start"`
	End           float64          `json:"end"`
	TimecodeStart string           `json:"timecode_start"`
	TimecodeEnd   string           `json:"timecode_end"`
	Duration      float64          `json:"duration"`
	Summary       string           `json:"summary"`
	Template      string           `json:"template"`
	OriginalText  string           `json:"original_text"`
	Variables     []types.Variable `json:"variables"`
}

type SectionDocument struct {
	Name          string            `json:"name"`
	Type          types.SectionType `json:"type"`
	Start         float64           `json:"start"`
	End           float64           `json:"end"`
	TimecodeStart string            `json:"timecode_start"`
	TimecodeEnd   string            `json:"timecode_end"`
	Duration      float64           `json:"duration"`
	Summary       string            `json:"summary"`
	Template      string            `json:"template"`
	BeatIDs       []int             `json:"beat_ids"`
	Variables     []types.Variable  `json:"variables"`
	OriginalText  string            `json:"original_text"`
}

// BuildDocument flattens an outline into its stable document form, attaching
// formatted timecodes next to the raw second values.
func BuildDocument(o types.Outline) Document {
	doc := Document{
		VideoID:      o.VideoID,
		Metadata:     o.Metadata,
		Beats:        make([]BeatDocument, 0, len(o.AllBeats)),
		Sections:     make([]SectionDocument, 0, len(o.Sections)),
		AllVariables: variablesOrEmpty(o.AllVariables),
	}
	for _, b := range o.AllBeats {
		doc.Beats = append(doc.Beats, BeatDocument{
			ID:            b.ID,
			Start:         b.Start,
			End:           b.End,
			TimecodeStart: timecode.Format(b.Start),
			TimecodeEnd:   timecode.Format(b.End),
			Duration:      b.Duration(),
			Summary:       b.Summary,
			Template:      b.Template,
			OriginalText:  b.OriginalText,
			Variables:     variablesOrEmpty(b.Variables),
		})
	}
	for _, s := range o.Sections {
		beatIDs := make([]int, 0, len(s.Beats))
		for _, b := range s.Beats {
			beatIDs = append(beatIDs, b.ID)
		}
		doc.Sections = append(doc.Sections, SectionDocument{
			Name:          s.Name,
			Type:          s.Type,
			Start:         s.Start,
			End:           s.End,
			TimecodeStart: timecode.Format(s.Start),
			TimecodeEnd:   timecode.Format(s.End),
			Duration:      s.Duration(),
			Summary:       s.Summary,
			Template:      s.Template,
			BeatIDs:       beatIDs,
			Variables:     variablesOrEmpty(s.Variables),
			OriginalText:  s.OriginalText,
		})
	}
	return doc
}

// variablesOrEmpty keeps JSON output as [] instead of null for empty lists.
func variablesOrEmpty(vars []types.Variable) []types.Variable {
	if vars == nil {
		return []types.Variable{}
	}
	return vars
}
