// Package classify assigns a highlight category to every reconciled student.
//
// Classification runs in two passes over the canonical waiting-list order:
// BaseDecisions evaluates the rule chain row by row, then ApplyGreen walks
// each Group 1 and Group 2 cohort from the back and marks the last free row.
package classify

import (
	"sort"

	"github.com/ninjapark/rollsync/internal/model"
	"github.com/ninjapark/rollsync/internal/normalize"
)

// SortCanonical returns a copy of records in dashboard order: day, time slot,
// then within the slot group, skill, attendance and age ascending. Remaining
// ties fall back to reconciliation order, so the result does not depend on
// the order of the input.
func SortCanonical(records []model.StudentRecord) []model.StudentRecord {
	out := append([]model.StudentRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i], out[j])
	})
	return out
}

// Less reports whether a sorts before b in canonical order.
func Less(a, b model.StudentRecord) bool {
	ka, kb := sortKey(a), sortKey(b)
	for i := range ka {
		if ka[i] != kb[i] {
			return ka[i] < kb[i]
		}
	}
	return false
}

func sortKey(r model.StudentRecord) [7]int {
	return [7]int{
		r.ScheduleDay.Index(),
		r.ScheduleSortTime,
		normalize.GroupRank(r.Keyword),
		normalize.SkillRank(r.SkillLevel),
		normalize.AttendanceRank(r.Attendance),
		normalize.AgeRank(r.Age),
		r.Order,
	}
}
