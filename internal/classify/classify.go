package classify

import "github.com/ninjapark/rollsync/internal/model"

// Classify sorts records canonically and runs both classification passes.
func Classify(records []model.StudentRecord, policy YellowPolicy) []model.ClassifiedRecord {
	sorted := SortCanonical(records)
	decisions := ApplyGreen(sorted, BaseDecisions(sorted, Rules(policy)))

	out := make([]model.ClassifiedRecord, len(sorted))
	for i, r := range sorted {
		out[i] = model.ClassifiedRecord{StudentRecord: r, Highlight: decisions[i]}
	}
	return out
}
