// Package export turns pipeline output into files for operators: the flat
// CSV table, the colour-coded xlsx dashboard, and the published copy of it.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ninjapark/rollsync/internal/model"
)

// CSVHeader is the column contract of the flat export.
var CSVHeader = []string{"Student Name", "Age", "Attendance", "Keyword", "Skill Level", "Class Name", "Comment"}

// FlatRow returns a record's values in CSVHeader order.
func FlatRow(r model.StudentRecord) []string {
	return []string{
		r.Name,
		r.Age,
		r.Attendance,
		string(r.Keyword),
		string(r.SkillLevel),
		r.ClassName,
		r.Comment,
	}
}

// WriteCSV writes the header and one row per record.
func WriteCSV(w io.Writer, records []model.StudentRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(FlatRow(r)); err != nil {
			return fmt.Errorf("write csv row %q: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
