package classify

import (
	"fmt"

	"github.com/ninjapark/rollsync/internal/model"
	"github.com/ninjapark/rollsync/internal/normalize"
)

// Matrix decides Yellow from a student's group and skill rank.
type Matrix func(group model.GroupTag, skill int) bool

// MatrixA is the standard calendar matrix.
func MatrixA(group model.GroupTag, skill int) bool {
	switch group {
	case model.Group1:
		return skill >= 2
	case model.Group2:
		return skill == 0
	case model.Group3:
		return skill <= 1
	}
	return false
}

// MatrixB is the matrix for the second day bucket or advanced classes.
func MatrixB(group model.GroupTag, skill int) bool {
	switch group {
	case model.Group1:
		return skill >= 5
	case model.Group2:
		return skill == 3 || skill >= 7
	case model.Group3:
		return skill <= 5
	}
	return false
}

// YellowPolicy chooses which matrix applies to a record.
type YellowPolicy interface {
	Name() string
	Yellow(r model.StudentRecord) bool
}

// DefaultBucketB holds the days that use MatrixB under DayBucketPolicy.
var DefaultBucketB = []model.Day{model.DayWed, model.DayThu}

// DayBucketPolicy applies MatrixB on the BucketB days and MatrixA elsewhere.
type DayBucketPolicy struct {
	BucketB map[model.Day]bool
}

// NewDayBucketPolicy builds a DayBucketPolicy. With no days it uses DefaultBucketB.
func NewDayBucketPolicy(bucketB ...model.Day) DayBucketPolicy {
	if len(bucketB) == 0 {
		bucketB = DefaultBucketB
	}
	p := DayBucketPolicy{BucketB: make(map[model.Day]bool, len(bucketB))}
	for _, d := range bucketB {
		p.BucketB[d] = true
	}
	return p
}

func (p DayBucketPolicy) Name() string { return model.YellowPolicyDay }

func (p DayBucketPolicy) Yellow(r model.StudentRecord) bool {
	m := Matrix(MatrixA)
	if p.BucketB[r.ScheduleDay] {
		m = MatrixB
	}
	return m(normalize.Group(string(r.Keyword)), normalize.SkillRank(r.SkillLevel))
}

// AdvancedPolicy applies MatrixB to advanced classes and MatrixA otherwise.
type AdvancedPolicy struct{}

func (AdvancedPolicy) Name() string { return model.YellowPolicyAdvanced }

func (AdvancedPolicy) Yellow(r model.StudentRecord) bool {
	m := Matrix(MatrixA)
	if r.Advanced {
		m = MatrixB
	}
	return m(normalize.Group(string(r.Keyword)), normalize.SkillRank(r.SkillLevel))
}

// PolicyByName resolves a policy name from config or a run form.
// bucketB only applies to the day policy.
func PolicyByName(name string, bucketB []model.Day) (YellowPolicy, error) {
	switch name {
	case "", model.YellowPolicyDay:
		return NewDayBucketPolicy(bucketB...), nil
	case model.YellowPolicyAdvanced:
		return AdvancedPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown yellow policy %q", name)
	}
}
