// Package normalize turns free-text fragments from the scheduling exports into
// canonical scalars. Every function is total: unmatched input yields a default.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ninjapark/rollsync/internal/model"
)

var (
	skillPattern   = regexp.MustCompile(`(?i)\bs(10|[0-9])\b`)
	groupPattern   = regexp.MustCompile(`(?i)\bgroup\s*([1-3])\b`)
	integerPattern = regexp.MustCompile(`\d+`)
)

// Name collapses whitespace runs (including non-breaking spaces), trims the
// ends and title-cases the result: a letter is upper-cased when it follows a
// non-letter and lower-cased otherwise.
func Name(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if collapsed == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(collapsed))
	prevLetter := false
	for _, r := range collapsed {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// SkillLevel returns the first s0..s10 token in text, or s0.
func SkillLevel(text string) model.SkillTag {
	m := skillPattern.FindStringSubmatch(text)
	if m == nil {
		return model.SkillDefault
	}
	return model.SkillTag("s" + m[1])
}

// Group returns "Group N" for the first group 1-3 mention in text, or "".
func Group(text string) model.GroupTag {
	m := groupPattern.FindStringSubmatch(text)
	if m == nil {
		return model.GroupNone
	}
	return model.GroupTag("Group " + m[1])
}

// SkillRank maps s0..s10 to 0..10. Anything else ranks 0.
func SkillRank(tag model.SkillTag) int {
	s := strings.ToLower(strings.TrimSpace(string(tag)))
	if !strings.HasPrefix(s, "s") {
		return 0
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n > 10 {
		return 0
	}
	return n
}

// GroupRank maps Group 1..3 to 1..3. Empty or unknown groups rank 99 so they
// sort after every assigned group.
func GroupRank(tag model.GroupTag) int {
	switch Group(string(tag)) {
	case model.Group1:
		return 1
	case model.Group2:
		return 2
	case model.Group3:
		return 3
	default:
		return 99
	}
}

// AttendanceRank parses an attendance count. Non-numeric text ranks -1.
func AttendanceRank(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return -1
	}
	return n
}

// AgeRank returns the first integer embedded in text, or 99.
func AgeRank(text string) int {
	m := integerPattern.FindString(text)
	if m == "" {
		return 99
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 99
	}
	return n
}
