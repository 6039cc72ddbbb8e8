package normalize

import (
	"testing"

	"github.com/ninjapark/rollsync/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  john   O'neil  ", "John O'Neil"},
		{"JOHN SMITH", "John Smith"},
		{"mary-kate  olsen", "Mary-Kate Olsen"},
		{"\t\n", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Name(tt.in), "Name(%q)", tt.in)
	}
}

func TestNameIdempotent(t *testing.T) {
	inputs := []string{
		"  john   O'neil  ",
		"ÉLODIE  du pont",
		"a.b.c",
		"x2y z",
		"  ",
		"McDONALD jr.",
	}
	for _, in := range inputs {
		once := Name(in)
		assert.Equal(t, once, Name(once), "Name not idempotent for %q", in)
	}
}

func TestSkillLevel(t *testing.T) {
	assert.Equal(t, model.SkillTag("s7"), SkillLevel("completed s7 level"))
	assert.Equal(t, model.SkillTag("s0"), SkillLevel("no level info"))
	assert.Equal(t, model.SkillTag("s10"), SkillLevel("Passed S10!"))
	assert.Equal(t, model.SkillTag("s3"), SkillLevel("s3, then s5"))
	assert.Equal(t, model.SkillTag("s0"), SkillLevel("class s11"))
	assert.Equal(t, model.SkillTag("s0"), SkillLevel("ss4x"))
}

func TestGroup(t *testing.T) {
	assert.Equal(t, model.Group2, Group("Group 2, needs focus"))
	assert.Equal(t, model.GroupNone, Group("VIP"))
	assert.Equal(t, model.Group1, Group("vip; GROUP1"))
	assert.Equal(t, model.Group3, Group("group   3"))
	assert.Equal(t, model.GroupNone, Group("Group 4"))
}

func TestRanks(t *testing.T) {
	assert.Equal(t, 0, SkillRank("s0"))
	assert.Equal(t, 10, SkillRank("s10"))
	assert.Equal(t, 0, SkillRank("garbage"))

	assert.Equal(t, 1, GroupRank(model.Group1))
	assert.Equal(t, 3, GroupRank(model.Group3))
	assert.Equal(t, 99, GroupRank(model.GroupNone))
	assert.Equal(t, 99, GroupRank("VIP"))

	assert.Equal(t, 12, AttendanceRank(" 12 "))
	assert.Equal(t, -1, AttendanceRank("n/a"))
	assert.Equal(t, -1, AttendanceRank(""))

	assert.Equal(t, 7, AgeRank("7"))
	assert.Equal(t, 9, AgeRank("Age 9 yrs"))
	assert.Equal(t, 99, AgeRank("unknown"))
}

func TestScheduleInfo(t *testing.T) {
	tests := []struct {
		in   string
		want Schedule
	}{
		{"FS Ninjas | Mon: 3:40 - 4:40", Schedule{model.DayMon, 1540, "3:40"}},
		{"Not Found", LostSchedule},
		{"", LostSchedule},
		{"Advanced Ninjas | THU: 10:15", Schedule{model.DayThu, 1015, "10:15"}},
		{"Ninja Zone | Wed: 7:00 - 8:00", Schedule{model.DayWed, 1900, "7:00"}},
		{"Ninja Zone | Fri", Schedule{model.DayFri, 9999, ""}},
		{"Open gym 6:30", Schedule{model.DayLost, 1830, "6:30"}},
		{"Unknown Class", LostSchedule},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScheduleInfo(tt.in), "ScheduleInfo(%q)", tt.in)
	}
}
