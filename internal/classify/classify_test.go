package classify

import (
	"testing"

	"github.com/ninjapark/rollsync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func student(name string, day model.Day, sortTime int, group model.GroupTag, skill model.SkillTag) model.StudentRecord {
	return model.StudentRecord{
		Name:             name,
		Keyword:          group,
		SkillLevel:       skill,
		ScheduleDay:      day,
		ScheduleSortTime: sortTime,
		Attendance:       "5",
		Age:              "8",
	}
}

func categories(cr []model.ClassifiedRecord) map[string]model.Category {
	out := make(map[string]model.Category, len(cr))
	for _, r := range cr {
		out[r.Name] = r.Highlight.Category
	}
	return out
}

func TestSortCanonical(t *testing.T) {
	records := []model.StudentRecord{
		student("lost", model.DayLost, 9999, model.Group1, "s0"),
		student("tue", model.DayTue, 1600, model.Group1, "s0"),
		student("mon-late", model.DayMon, 1700, model.Group1, "s0"),
		student("mon-g2", model.DayMon, 1540, model.Group2, "s0"),
		student("mon-none", model.DayMon, 1540, model.GroupNone, "s0"),
		student("mon-g1-s2", model.DayMon, 1540, model.Group1, "s2"),
		student("mon-g1-s1", model.DayMon, 1540, model.Group1, "s1"),
	}
	records[5].Attendance = "x"

	sorted := SortCanonical(records)
	var names []string
	for _, r := range sorted {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"mon-g1-s1", "mon-g1-s2", "mon-g2", "mon-none", "mon-late", "tue", "lost"}, names)

	assert.Equal(t, sorted, SortCanonical(sorted))
	assert.Equal(t, "lost", records[0].Name, "input must not be reordered")
}

func TestSortCanonicalTieBreaks(t *testing.T) {
	a := student("a", model.DayMon, 1540, model.Group1, "s1")
	b := student("b", model.DayMon, 1540, model.Group1, "s1")
	c := student("c", model.DayMon, 1540, model.Group1, "s1")
	a.Attendance, b.Attendance, c.Attendance = "3", "n/a", "3"
	a.Age, c.Age = "9", "6"

	sorted := SortCanonical([]model.StudentRecord{a, b, c})
	assert.Equal(t, "b", sorted[0].Name)
	assert.Equal(t, "c", sorted[1].Name)
	assert.Equal(t, "a", sorted[2].Name)
}

func TestSortCanonicalFullTieUsesOrder(t *testing.T) {
	first := student("first", model.DayMon, 1540, model.Group1, "s1")
	second := student("second", model.DayMon, 1540, model.Group1, "s1")
	first.Order, second.Order = 3, 7

	for _, in := range [][]model.StudentRecord{{first, second}, {second, first}} {
		sorted := SortCanonical(in)
		assert.Equal(t, "first", sorted[0].Name)
		assert.Equal(t, "second", sorted[1].Name)
	}
}

func TestRulePriority(t *testing.T) {
	rules := Rules(NewDayBucketPolicy())

	ignored := student("x", model.DayMon, 1540, model.GroupNone, "s9")
	ignored.Comment = "Please IGNORE"
	assert.Equal(t, model.HighlightDecision{Category: model.CategoryNone, Skip: true}, Decide(ignored, rules))

	red := student("x", model.DayMon, 1540, model.GroupNone, "s3")
	assert.Equal(t, model.HighlightDecision{Category: model.CategoryRed, Bold: true}, Decide(red, rules))

	advanced := red
	advanced.Advanced = true
	assert.Equal(t, model.CategoryOrange, Decide(advanced, rules).Category)

	yellow := student("x", model.DayMon, 1540, model.Group2, "s0")
	assert.Equal(t, model.CategoryYellow, Decide(yellow, rules).Category)

	plain := student("x", model.DayMon, 1540, model.Group2, "s1")
	assert.Equal(t, model.NoHighlight, Decide(plain, rules))
}

func TestMatrices(t *testing.T) {
	tests := []struct {
		group model.GroupTag
		skill int
		a, b  bool
	}{
		{model.Group1, 1, false, false},
		{model.Group1, 2, true, false},
		{model.Group1, 5, true, true},
		{model.Group2, 0, true, false},
		{model.Group2, 3, false, true},
		{model.Group2, 7, false, true},
		{model.Group3, 1, true, true},
		{model.Group3, 5, false, true},
		{model.Group3, 6, false, false},
		{model.GroupNone, 0, false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.a, MatrixA(tt.group, tt.skill), "A %s s%d", tt.group, tt.skill)
		assert.Equal(t, tt.b, MatrixB(tt.group, tt.skill), "B %s s%d", tt.group, tt.skill)
	}
}

func TestYellowPolicies(t *testing.T) {
	wed := student("x", model.DayWed, 1600, model.Group1, "s2")
	mon := student("x", model.DayMon, 1600, model.Group1, "s2")

	day := NewDayBucketPolicy()
	assert.False(t, day.Yellow(wed))
	assert.True(t, day.Yellow(mon))

	adv := AdvancedPolicy{}
	assert.True(t, adv.Yellow(wed))
	wed.Advanced = true
	assert.False(t, adv.Yellow(wed))

	custom := NewDayBucketPolicy(model.DayMon)
	assert.False(t, custom.Yellow(mon))

	p, err := PolicyByName("advanced", nil)
	require.NoError(t, err)
	assert.Equal(t, model.YellowPolicyAdvanced, p.Name())
	_, err = PolicyByName("weekly", nil)
	assert.Error(t, err)
}

func TestGreenMovesUpOneFreeRow(t *testing.T) {
	// Group 1 on Monday: both s2 students qualify for Yellow, the s1 student does not.
	records := []model.StudentRecord{
		student("free", model.DayMon, 1540, model.Group1, "s1"),
		student("yellow", model.DayMon, 1540, model.Group1, "s2"),
		student("yellow2", model.DayMon, 1540, model.Group1, "s2"),
	}
	got := categories(Classify(records, NewDayBucketPolicy()))
	assert.Equal(t, model.CategoryGreen, got["free"])
	assert.Equal(t, model.CategoryYellow, got["yellow"])
	assert.Equal(t, model.CategoryYellow, got["yellow2"])
}

func TestGreenNeedsAFreeRow(t *testing.T) {
	records := []model.StudentRecord{
		student("a", model.DayMon, 1540, model.Group1, "s2"),
		student("b", model.DayMon, 1540, model.Group1, "s3"),
		student("c", model.DayMon, 1540, model.Group1, "s2"),
	}
	for _, r := range Classify(records, NewDayBucketPolicy()) {
		assert.NotEqual(t, model.CategoryGreen, r.Highlight.Category, r.Name)
	}
}

func TestGreenPicksLastFreeRowPerCohort(t *testing.T) {
	records := []model.StudentRecord{
		student("g1-first", model.DayMon, 1540, model.Group1, "s0"),
		student("g1-last", model.DayMon, 1540, model.Group1, "s1"),
		student("g2-first", model.DayMon, 1540, model.Group2, "s1"),
		student("g2-last", model.DayMon, 1540, model.Group2, "s2"),
		student("g3", model.DayMon, 1540, model.Group3, "s2"),
		student("other-slot", model.DayMon, 1700, model.Group1, "s0"),
	}
	records[3].Comment = "ignore for now"

	got := categories(Classify(records, NewDayBucketPolicy()))
	assert.Equal(t, model.CategoryNone, got["g1-first"])
	assert.Equal(t, model.CategoryGreen, got["g1-last"])
	assert.Equal(t, model.CategoryGreen, got["g2-first"], "ignored row is passed over")
	assert.Equal(t, model.CategoryNone, got["g2-last"])
	assert.Equal(t, model.CategoryNone, got["g3"], "group 3 never turns green")
	assert.Equal(t, model.CategoryGreen, got["other-slot"])
}

func TestIgnoreCommentNeverHighlighted(t *testing.T) {
	for _, skill := range []model.SkillTag{"s0", "s2", "s5", "s10"} {
		for _, group := range []model.GroupTag{model.Group1, model.Group2, model.Group3, model.GroupNone} {
			r := student("x", model.DayWed, 1800, group, skill)
			r.Comment = "Ignore"
			out := Classify([]model.StudentRecord{r}, NewDayBucketPolicy())
			require.Len(t, out, 1)
			assert.Equal(t, model.CategoryNone, out[0].Highlight.Category)
			assert.True(t, out[0].Highlight.Skip)
		}
	}
}

func TestApplyGreenLeavesInputAlone(t *testing.T) {
	records := []model.StudentRecord{student("a", model.DayMon, 1540, model.Group1, "s0")}
	base := []model.HighlightDecision{model.NoHighlight}
	out := ApplyGreen(records, base)
	assert.Equal(t, model.CategoryGreen, out[0].Category)
	assert.Equal(t, model.NoHighlight, base[0])
}

func TestMalformedTagsDegrade(t *testing.T) {
	r := student("x", model.DayMon, 1540, "VIP", "level nine")
	out := Classify([]model.StudentRecord{r}, NewDayBucketPolicy())
	require.Len(t, out, 1)
	assert.Equal(t, model.CategoryOrange, out[0].Highlight.Category)
}
