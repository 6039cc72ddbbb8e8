package extract

import "strings"

// Label describes a column to find in a header row.
type Label struct {
	Key      string
	Synonyms []string
	Default  int
}

// ColumnMap is the result of LocateColumns.
type ColumnMap struct {
	index map[string]int
	found map[string]bool
}

// Index returns the column index for key, or -1 when key was never requested.
func (m ColumnMap) Index(key string) int {
	if i, ok := m.index[key]; ok {
		return i
	}
	return -1
}

// Found reports whether key was located by header text rather than defaulted.
func (m ColumnMap) Found(key string) bool {
	return m.found[key]
}

// LocateColumns matches header cells against label synonyms, case-insensitively
// by substring. Cells are scanned left to right and each cell is claimed by the
// first still-unlocated label it matches, so labels earlier in the list take
// precedence over later ones for ambiguous cells. Unmatched labels keep their
// default index.
func LocateColumns(header []string, labels []Label) ColumnMap {
	m := ColumnMap{
		index: make(map[string]int, len(labels)),
		found: make(map[string]bool, len(labels)),
	}
	for _, l := range labels {
		m.index[l.Key] = l.Default
	}

	for i, cell := range header {
		text := strings.ToLower(cell)
		for _, l := range labels {
			if m.found[l.Key] {
				continue
			}
			if containsAny(text, l.Synonyms) {
				m.index[l.Key] = i
				m.found[l.Key] = true
				break
			}
		}
	}
	return m
}

func containsAny(text string, synonyms []string) bool {
	for _, s := range synonyms {
		if s != "" && strings.Contains(text, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
