package outline

import (
	"fmt"
	"strings"

	"github.com/forPelevin/beatcut/internal/types"
)

// ScriptDocument is the JSON-serializable form of an abstracted script.
type ScriptDocument struct {
	Metadata          map[string]any          `json:"metadata"`
	Sections          []ScriptSectionDocument `json:"sections"`
	AllVariables      []ScriptVariable        `json:"all_variables"`
	ReplacementPoints []ReplacementPoint      `json:"replacement_points"`
}

type ScriptSectionDocument struct {
	Order             int               `json:"order"`
	Type              types.SectionType `json:"type"`
	Title             string            `json:"title"`
	OriginalContent   string            `json:"original_content"`
	AbstractedContent string            `json:"abstracted_content"`
	Variables         []ScriptVariable  `json:"variables"`
	Notes             string            `json:"notes"`
}

type ScriptVariable struct {
	Name          string `json:"name"`
	OriginalValue string `json:"original_value"`
	Description   string `json:"description"`
	Category      string `json:"category"`
}

type ReplacementPoint struct {
	Variable    string `json:"variable"`
	Original    string `json:"original"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// BuildScriptDocument flattens an abstracted script into its document form.
func BuildScriptDocument(s AbstractedScript) ScriptDocument {
	doc := ScriptDocument{
		Metadata:          s.Metadata,
		Sections:          make([]ScriptSectionDocument, 0, len(s.Sections)),
		AllVariables:      make([]ScriptVariable, 0, len(s.Variables)),
		ReplacementPoints: make([]ReplacementPoint, 0, len(s.Variables)),
	}
	for _, sec := range s.Sections {
		doc.Sections = append(doc.Sections, ScriptSectionDocument{
			Order:             sec.Order,
			Type:              sec.Type,
			Title:             sec.Title,
			OriginalContent:   sec.Content,
			AbstractedContent: sec.AbstractedContent,
			Variables:         scriptVariables(sec.Variables),
			Notes:             sec.Notes,
		})
	}
	for _, v := range s.Variables {
		sv := scriptVariable(v)
		doc.AllVariables = append(doc.AllVariables, sv)
		doc.ReplacementPoints = append(doc.ReplacementPoints, ReplacementPoint{
			Variable:    sv.Name,
			Original:    sv.OriginalValue,
			Category:    sv.Category,
			Description: sv.Description,
		})
	}
	return doc
}

func scriptVariable(v types.Variable) ScriptVariable {
	return ScriptVariable{
		Name:          v.Name,
		OriginalValue: v.OriginalValue,
		Description:   fmt.Sprintf("Replace with your %s", v.Category),
		Category:      v.Category,
	}
}

func scriptVariables(vars []types.Variable) []ScriptVariable {
	out := make([]ScriptVariable, 0, len(vars))
	for _, v := range vars {
		out = append(out, scriptVariable(v))
	}
	return out
}

// RenderScriptReport renders the abstracted script as Markdown.
func RenderScriptReport(s AbstractedScript) string {
	var b strings.Builder

	b.WriteString("# Abstracted Script Template\n\n")

	if len(s.Metadata) > 0 {
		b.WriteString("## Metadata\n\n")
		for _, key := range sortedKeys(s.Metadata) {
			fmt.Fprintf(&b, "- **%s**: %v\n", key, s.Metadata[key])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Script Structure\n\n")
	for _, sec := range s.Sections {
		fmt.Fprintf(&b, "### %d. %s (%s)\n\n", sec.Order, sec.Title, strings.ToUpper(string(sec.Type)))
		b.WriteString("**Abstracted Template:**\n\n")
		fmt.Fprintf(&b, "> %s\n\n", sec.AbstractedContent)

		if len(sec.Variables) > 0 {
			b.WriteString("**Variables in this section:**\n\n")
			for _, v := range sec.Variables {
				sv := scriptVariable(v)
				fmt.Fprintf(&b, "- `%s`: %s (original: %q)\n", sv.Name, sv.Description, sv.OriginalValue)
			}
			b.WriteString("\n")
		}
		if sec.Notes != "" {
			fmt.Fprintf(&b, "*Notes: %s*\n\n", sec.Notes)
		}
	}

	b.WriteString("## Variable Replacement Points\n\n")
	b.WriteString("| Variable | Category | Original Value | Description |\n")
	b.WriteString("|----------|----------|----------------|-------------|\n")
	for _, v := range s.Variables {
		sv := scriptVariable(v)
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", sv.Name, sv.Category, truncate(sv.OriginalValue, 30), sv.Description)
	}
	b.WriteString("\n")

	b.WriteString("## Original Transcript (Reference)\n\n")
	b.WriteString("```\n")
	const maxTranscript = 2000
	runes := []rune(s.OriginalTranscript)
	if len(runes) > maxTranscript {
		b.WriteString(string(runes[:maxTranscript]) + "...\n")
		fmt.Fprintf(&b, "[Truncated - full transcript is %d characters]\n", len(runes))
	} else {
		b.WriteString(s.OriginalTranscript + "\n")
	}
	b.WriteString("```\n")

	return b.String()
}
