package outline

import (
	"fmt"
	"strings"

	"github.com/forPelevin/beatcut/internal/types"
)

// run holds the mutable state of one generation call: the placeholder
// uniqueness counters and the accumulated flat variable list. A fresh run is
// created per Generate/AbstractText call so concurrent generations over
// different transcripts never share counters.
type run struct {
	counters  map[string]int
	variables []types.Variable
}

func newRun() *run {
	return &run{counters: make(map[string]int)}
}

// nextName returns the unique variable name for a placeholder template. The
// first use of a template keeps the bare template; later uses get a numeric
// suffix starting at _2. Counting is global to the run, not per text span.
func (r *run) nextName(template string) string {
	r.counters[template]++
	if n := r.counters[template]; n > 1 {
		return fmt.Sprintf("%s_%d", template, n)
	}
	return template
}

// extract applies the variable rules to text and returns the abstracted text
// plus the variables recorded for this span. Matches are located against the
// original text, then substituted into the working copy one literal
// occurrence at a time. A literal that appears twice but matched once stays
// unabstracted in its second position; that mirrors the established template
// output and is left as-is.
func (r *run) extract(text string, sectionIndex int) (string, []types.Variable) {
	abstracted := text
	var vars []types.Variable
	for _, rule := range variableRules {
		for _, match := range rule.re.FindAllString(text, -1) {
			v := types.Variable{
				Name:          r.nextName(rule.template),
				OriginalValue: match,
				Category:      rule.category,
				SectionIndex:  sectionIndex,
			}
			vars = append(vars, v)
			r.variables = append(r.variables, v)
			abstracted = strings.Replace(abstracted, match, v.Name, 1)
		}
	}
	return abstracted, vars
}

// truncate shortens text to at most max runes, cutting back to the last word
// boundary when one exists and appending an ellipsis.
func truncate(text string, max int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
