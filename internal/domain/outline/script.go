package outline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/forPelevin/beatcut/internal/types"
)

// The whole-paragraph abstraction is the coarser sibling of beat generation:
// same classifier and extractor tables, but the unit is a paragraph of the
// full transcript text instead of a timed beat.

// ScriptSection is one paragraph of the transcript with its assigned
// rhetorical type and abstracted template.
type ScriptSection struct {
	Type              types.SectionType
	Title             string
	Content           string
	AbstractedContent string
	Variables         []types.Variable
	Order             int
	Notes             string
}

// AbstractedScript is the result of abstracting a full transcript text.
type AbstractedScript struct {
	OriginalTranscript string
	Sections           []ScriptSection
	Variables          []types.Variable
	Metadata           map[string]any
}

// AbstractText abstracts a plain transcript into a reusable script template.
// Like Generate, it scopes all mutable state to the call.
func AbstractText(transcript string) AbstractedScript {
	r := newRun()

	paragraphs := splitParagraphs(transcript)
	sections := make([]ScriptSection, 0, len(paragraphs))
	for i, para := range paragraphs {
		detected := Classify(para)
		if detected == types.SectionOther {
			detected = fallbackParagraphType(i, len(paragraphs))
		}
		abstracted, vars := r.extract(para, i)
		sections = append(sections, ScriptSection{
			Type:              detected,
			Title:             scriptSectionTitle(detected, i),
			Content:           para,
			AbstractedContent: abstracted,
			Variables:         vars,
			Order:             i + 1,
			Notes:             scriptSectionNotes[detected],
		})
	}

	// Rough reading speed for Japanese narration.
	const charsPerMinute = 300
	metadata := map[string]any{
		"original_length":    len([]rune(transcript)),
		"section_count":      len(sections),
		"variable_count":     len(r.variables),
		"estimated_duration": fmt.Sprintf("%d minutes", len([]rune(transcript))/charsPerMinute),
	}

	return AbstractedScript{
		OriginalTranscript: transcript,
		Sections:           sections,
		Variables:          r.variables,
		Metadata:           metadata,
	}
}

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// splitParagraphs splits on blank lines; dense text without paragraph breaks
// falls back to sentence splitting grouped into chunks of four.
func splitParagraphs(transcript string) []string {
	paragraphs := paragraphBreak.Split(transcript, -1)
	if countNonEmpty(paragraphs) < 3 {
		sentences := splitSentences(transcript)
		paragraphs = nil
		var chunk []string
		for _, sent := range sentences {
			chunk = append(chunk, sent)
			if len(chunk) >= 4 {
				paragraphs = append(paragraphs, strings.Join(chunk, ""))
				chunk = nil
			}
		}
		if len(chunk) > 0 {
			paragraphs = append(paragraphs, strings.Join(chunk, ""))
		}
	}

	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitSentences cuts after sentence-terminal punctuation, keeping the mark
// with its sentence and dropping the whitespace that follows it.
func splitSentences(text string) []string {
	var out []string
	var cur strings.Builder
	terminal := false
	for _, r := range text {
		if terminal && (r == ' ' || r == '\n' || r == '\t') {
			continue
		}
		if terminal {
			out = append(out, cur.String())
			cur.Reset()
			terminal = false
		}
		cur.WriteRune(r)
		switch r {
		case '。', '.', '!', '?', '！', '？':
			terminal = true
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func countNonEmpty(parts []string) int {
	n := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

func scriptSectionTitle(sectionType types.SectionType, index int) string {
	titles := map[types.SectionType]string{
		types.SectionHook:       "Opening Hook",
		types.SectionProblem:    "Problem Statement",
		types.SectionClaim:      "Main Claim",
		types.SectionReason:     "Supporting Reason",
		types.SectionSteps:      "Steps",
		types.SectionProof:      "Proof",
		types.SectionExample:    "Example/Story",
		types.SectionSummary:    "Summary",
		types.SectionCTA:        "Call to Action",
		types.SectionTransition: "Transition",
	}
	if title, ok := titles[sectionType]; ok {
		return title
	}
	return fmt.Sprintf("Section %d", index+1)
}

var scriptSectionNotes = map[types.SectionType]string{
	types.SectionHook:       "Grab attention in first 3 seconds. Use curiosity, shock, or direct address.",
	types.SectionProblem:    "Identify the pain point your audience relates to.",
	types.SectionClaim:      "Present your unique solution or insight.",
	types.SectionReason:     "Explain why your claim is valid with logic or data.",
	types.SectionSteps:      "Lay out the procedure in numbered order.",
	types.SectionProof:      "Back the claim with data, results, or track record.",
	types.SectionExample:    "Use concrete examples, stories, or case studies.",
	types.SectionSummary:    "Reinforce key takeaways concisely.",
	types.SectionCTA:        "Clear action: subscribe, comment, or click link.",
	types.SectionTransition: "Smooth connection between sections.",
}
