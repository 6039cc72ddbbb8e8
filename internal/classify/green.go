package classify

import (
	"github.com/ninjapark/rollsync/internal/model"
	"github.com/ninjapark/rollsync/internal/normalize"
)

// greenGroups are the cohorts that get a "move up" marker.
var greenGroups = map[model.GroupTag]bool{
	model.Group1: true,
	model.Group2: true,
}

// ApplyGreen marks at most one row Green per Group 1 and Group 2 cohort.
// records must be in canonical order and decisions must be parallel to it.
// Each cohort is scanned from its last row to its first; skipped rows and rows
// that already have a category are passed over and the first uncategorized row
// becomes Green. The input slice is not modified.
func ApplyGreen(records []model.StudentRecord, decisions []model.HighlightDecision) []model.HighlightDecision {
	out := append([]model.HighlightDecision(nil), decisions...)

	var keys []model.CohortKey
	members := make(map[model.CohortKey][]int)
	for i, r := range records {
		key := r.Cohort()
		key.Keyword = normalize.Group(string(key.Keyword))
		if !greenGroups[key.Keyword] {
			continue
		}
		if _, ok := members[key]; !ok {
			keys = append(keys, key)
		}
		members[key] = append(members[key], i)
	}

	for _, key := range keys {
		idx := members[key]
		for j := len(idx) - 1; j >= 0; j-- {
			d := out[idx[j]]
			if d.Skip || d.Category != model.CategoryNone {
				continue
			}
			out[idx[j]] = model.HighlightDecision{Category: model.CategoryGreen}
			break
		}
	}
	return out
}
