package extract

import (
	"io"
	"strings"

	"github.com/ninjapark/rollsync/internal/model"
	"github.com/ninjapark/rollsync/internal/normalize"
)

// WarnRosterNoStudents is reported when the roster yields no rows.
const WarnRosterNoStudents = "roster: no student rows found"

// Age is matched last: "age" is a substring of unrelated headers.
var rosterLabels = []Label{
	{Key: "name", Synonyms: []string{"student name"}, Default: 1},
	{Key: "attendance", Synonyms: []string{"attendance"}, Default: 2},
	{Key: "keyword", Synonyms: []string{"keyword"}, Default: 4},
	{Key: "comment", Synonyms: []string{"comment"}, Default: 5},
	{Key: "age", Synonyms: []string{"age"}, Default: 3},
}

// RosterResult is the output of ExtractRoster.
type RosterResult struct {
	Entries  []model.RawRosterEntry
	Warnings []string
}

// ExtractRoster reads the master student list document.
func ExtractRoster(r io.Reader) (RosterResult, error) {
	tables, err := ParseTables(r)
	if err != nil {
		return RosterResult{}, err
	}
	return RosterFromTables(tables), nil
}

// RosterFromTables runs the roster rules over already parsed tables. Every
// table whose header names a student name column is read; when none does, the
// largest table is read with default column positions.
func RosterFromTables(tables []Table) RosterResult {
	var entries []model.RawRosterEntry
	matched := false
	for _, t := range tables {
		cols := LocateColumns(t.HeaderRow(), rosterLabels)
		if !cols.Found("name") {
			continue
		}
		matched = true
		entries = append(entries, rosterEntries(t.Rows[1:], cols)...)
	}

	if !matched {
		if t, ok := largestTable(tables); ok {
			cols := LocateColumns(t.HeaderRow(), rosterLabels)
			entries = rosterEntries(t.Rows[1:], cols)
		}
	}

	entries = dedupeRoster(entries)
	res := RosterResult{Entries: entries}
	if len(entries) == 0 {
		res.Warnings = append(res.Warnings, WarnRosterNoStudents)
	}
	return res
}

func rosterEntries(rows [][]string, cols ColumnMap) []model.RawRosterEntry {
	var out []model.RawRosterEntry
	for _, row := range rows {
		raw := strings.TrimSpace(cellAt(row, cols.Index("name")))
		if len([]rune(raw)) <= 1 {
			continue
		}
		out = append(out, model.RawRosterEntry{
			Name:       normalize.Name(raw),
			Age:        cellAt(row, cols.Index("age")),
			Attendance: cellAt(row, cols.Index("attendance")),
			Comment:    cellAt(row, cols.Index("comment")),
			Keyword:    normalize.Group(cellAt(row, cols.Index("keyword"))),
		})
	}
	return out
}

func largestTable(tables []Table) (Table, bool) {
	best, ok := Table{}, false
	for _, t := range tables {
		if len(t.Rows) > len(best.Rows) {
			best, ok = t, true
		}
	}
	return best, ok
}

func dedupeRoster(entries []model.RawRosterEntry) []model.RawRosterEntry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if e.Name == "" || seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		out = append(out, e)
	}
	return out
}
