package extract

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ninjapark/rollsync/internal/model"
	"github.com/ninjapark/rollsync/internal/normalize"
)

// DefaultHeaderMarker identifies class header tables that carry no "|".
const DefaultHeaderMarker = "Ninja"

// Warnings reported when a document yields nothing.
const (
	WarnRollNoTables   = "roll sheet: no tables found"
	WarnRollNoStudents = "roll sheet: no student rows found"
)

const studentWord = "Student"

var rollLabels = []Label{
	{Key: "name", Synonyms: []string{"student"}, Default: 1},
	{Key: "details", Synonyms: []string{"details"}, Default: 3},
}

// Section is a class header paired with the student table that follows it.
type Section struct {
	ClassName string
	// Header is nil for headerless student tables.
	Header []string
	Rows   [][]string
}

// RollSheetResult is the output of ExtractRollSheet.
type RollSheetResult struct {
	Entries  []model.RawRollEntry
	Warnings []string
}

// ExtractRollSheet reads a roll sheet document. marker is the text that
// identifies class header tables besides "|"; empty uses DefaultHeaderMarker.
func ExtractRollSheet(r io.Reader, marker string) (RollSheetResult, error) {
	tables, err := ParseTables(r)
	if err != nil {
		return RollSheetResult{}, err
	}
	return RollSheetFromTables(tables, marker), nil
}

// RollSheetFromTables runs the roll sheet rules over already parsed tables.
func RollSheetFromTables(tables []Table, marker string) RollSheetResult {
	if len(tables) == 0 {
		return RollSheetResult{Warnings: []string{WarnRollNoTables}}
	}

	var entries []model.RawRollEntry
	for _, s := range Sections(tables, marker) {
		entries = append(entries, sectionEntries(s)...)
	}
	entries = dedupeRoll(entries)

	res := RollSheetResult{Entries: entries}
	if len(entries) == 0 {
		res.Warnings = append(res.Warnings, WarnRollNoStudents)
	}
	return res
}

// sectionState is the accumulator threaded through Sections.
type sectionState struct {
	className string
	// pending is true while the latest header has not yet been matched to a table.
	pending  bool
	sections []Section
}

// Sections walks tables in order, pairing each student table with the most
// recent class header. A header that is directly followed by another header
// has no roster and produces no section. A table with no "Student" header is
// accepted as a headerless roster only when it immediately follows a header.
func Sections(tables []Table, marker string) []Section {
	if marker == "" {
		marker = DefaultHeaderMarker
	}

	state := sectionState{className: model.ClassUnknown}
	for _, t := range tables {
		state = foldSection(state, t, marker)
	}
	return state.sections
}

func foldSection(state sectionState, t Table, marker string) sectionState {
	if len(t.Rows) == 0 {
		return state
	}

	if isClassHeader(t, marker) {
		state.className = t.FirstCell()
		state.pending = true
		return state
	}

	switch {
	case hasStudentHeader(t.HeaderRow()):
		state.sections = append(state.sections, Section{
			ClassName: state.className,
			Header:    t.HeaderRow(),
			Rows:      t.Rows[1:],
		})
	case state.pending:
		state.sections = append(state.sections, Section{
			ClassName: state.className,
			Rows:      t.Rows,
		})
	default:
		return state
	}
	state.pending = false
	return state
}

func isClassHeader(t Table, marker string) bool {
	first := t.FirstCell()
	if first == "" || strings.Contains(first, studentWord) {
		return false
	}
	return strings.Contains(first, "|") || strings.Contains(first, marker)
}

func hasStudentHeader(row []string) bool {
	for _, cell := range row {
		if strings.Contains(cell, studentWord) {
			return true
		}
	}
	return false
}

func sectionEntries(s Section) []model.RawRollEntry {
	cols := LocateColumns(s.Header, rollLabels)
	nameIdx, detailIdx := cols.Index("name"), cols.Index("details")

	var out []model.RawRollEntry
	for _, row := range s.Rows {
		raw := strings.TrimSpace(cellAt(row, nameIdx))
		if !isStudentName(raw) {
			continue
		}
		out = append(out, model.RawRollEntry{
			Name:       normalize.Name(raw),
			SkillLevel: normalize.SkillLevel(cellAt(row, detailIdx)),
			ClassName:  s.ClassName,
		})
	}
	return out
}

// isStudentName filters out blank cells and repeated header artifacts.
func isStudentName(raw string) bool {
	return utf8.RuneCountInString(raw) > 1 && !strings.Contains(raw, studentWord)
}

// dedupeRoll keeps the first entry for each name, so a student cross-listed in
// several classes stays in the first class listed.
func dedupeRoll(entries []model.RawRollEntry) []model.RawRollEntry {
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
