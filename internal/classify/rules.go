package classify

import (
	"strings"

	"github.com/ninjapark/rollsync/internal/model"
	"github.com/ninjapark/rollsync/internal/normalize"
)

// Rule is one entry of the priority chain. The first matching rule decides.
type Rule struct {
	Name     string
	Match    func(model.StudentRecord) bool
	Decision model.HighlightDecision
}

// Rules returns the priority chain: ignore, red, orange, yellow.
func Rules(policy YellowPolicy) []Rule {
	return []Rule{
		{
			Name:     "ignore",
			Match:    CommentSaysIgnore,
			Decision: model.HighlightDecision{Category: model.CategoryNone, Skip: true},
		},
		{
			Name:     "red",
			Match:    SkilledOutOfProgram,
			Decision: model.HighlightDecision{Category: model.CategoryRed, Bold: true},
		},
		{
			Name:     "orange",
			Match:    Ungrouped,
			Decision: model.HighlightDecision{Category: model.CategoryOrange},
		},
		{
			Name:     "yellow",
			Match:    policy.Yellow,
			Decision: model.HighlightDecision{Category: model.CategoryYellow},
		},
	}
}

// CommentSaysIgnore matches rows the staff asked to leave alone.
func CommentSaysIgnore(r model.StudentRecord) bool {
	return strings.Contains(strings.ToLower(r.Comment), "ignore")
}

// SkilledOutOfProgram matches s3+ students outside an advanced class.
func SkilledOutOfProgram(r model.StudentRecord) bool {
	return !r.Advanced && normalize.SkillRank(r.SkillLevel) >= 3
}

// Ungrouped matches students without a group keyword.
func Ungrouped(r model.StudentRecord) bool {
	return normalize.GroupRank(r.Keyword) == 99
}

// Decide evaluates rules top-down for a single record.
func Decide(r model.StudentRecord, rules []Rule) model.HighlightDecision {
	for _, rule := range rules {
		if rule.Match(r) {
			return rule.Decision
		}
	}
	return model.NoHighlight
}

// BaseDecisions runs the rule chain over every record independently.
func BaseDecisions(records []model.StudentRecord, rules []Rule) []model.HighlightDecision {
	out := make([]model.HighlightDecision, len(records))
	for i, r := range records {
		out[i] = Decide(r, rules)
	}
	return out
}
