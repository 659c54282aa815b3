package outline

import "github.com/forPelevin/beatcut/internal/types"

// Classify assigns a rhetorical type to a text span by walking the section
// rules in priority order. It is a pure function: identical input always
// yields identical output. Returns SectionOther when nothing matches.
func Classify(text string) types.SectionType {
	for _, rule := range sectionRules {
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				return rule.Type
			}
		}
	}
	return types.SectionOther
}

// fallbackBeatType resolves SectionOther by position within the beat
// sequence: the opening beat is the hook, the last two are the call to
// action, and the middle is banded into the usual rhetorical progression.
// Bands are monotonic and exhaustive over [0,1].
func fallbackBeatType(index, total int) types.SectionType {
	if index == 0 {
		return types.SectionHook
	}
	if index >= total-2 {
		return types.SectionCTA
	}
	pos := float64(index) / float64(total)
	switch {
	case pos < 0.2:
		return types.SectionProblem
	case pos < 0.35:
		return types.SectionClaim
	case pos < 0.6:
		return types.SectionSteps
	case pos < 0.8:
		return types.SectionProof
	default:
		return types.SectionSummary
	}
}

// fallbackParagraphType is the coarser positional mapping used by the
// whole-paragraph abstraction, which has no steps/proof bands.
func fallbackParagraphType(index, total int) types.SectionType {
	switch {
	case index == 0:
		return types.SectionHook
	case index == total-1:
		return types.SectionCTA
	case index == total-2:
		return types.SectionSummary
	}
	pos := float64(index) / float64(total)
	switch {
	case pos < 0.3:
		return types.SectionProblem
	case pos < 0.5:
		return types.SectionClaim
	case pos < 0.7:
		return types.SectionReason
	default:
		return types.SectionExample
	}
}
