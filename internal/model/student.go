package model

import "strings"

// GroupTag is the coarse placement keyword assigned to a student.
type GroupTag string

const (
	GroupNone GroupTag = ""
	Group1    GroupTag = "Group 1"
	Group2    GroupTag = "Group 2"
	Group3    GroupTag = "Group 3"
)

// SkillTag is an ordinal proficiency tag, s0 through s10.
type SkillTag string

// SkillDefault is used when no skill level can be found.
const SkillDefault SkillTag = "s0"

// Day is the schedule day bucket a record is placed in.
type Day string

const (
	DayMon  Day = "Mon"
	DayTue  Day = "Tue"
	DayWed  Day = "Wed"
	DayThu  Day = "Thu"
	DayFri  Day = "Fri"
	DayLost Day = "Lost"
)

// Days lists every day bucket in dashboard order.
var Days = []Day{DayMon, DayTue, DayWed, DayThu, DayFri, DayLost}

// Index returns the position of d in Days. Unknown values sort with Lost.
func (d Day) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return len(Days) - 1
}

// ParseDay maps a case-insensitive three letter day name to a Day.
func ParseDay(s string) (Day, bool) {
	for _, day := range Days {
		if strings.EqualFold(s, string(day)) {
			return day, true
		}
	}
	return "", false
}

// Sentinels used when a class or its time cannot be determined.
const (
	SortTimeUnknown = 9999
	ClassNotFound   = "Not Found"
	ClassUnknown    = "Unknown Class"
)

// RawRollEntry is one student row taken from a roll sheet section.
type RawRollEntry struct {
	Name       string   `json:"name"`
	SkillLevel SkillTag `json:"skill_level"`
	ClassName  string   `json:"class_name"`
}

// RawRosterEntry is one student row taken from the master roster.
type RawRosterEntry struct {
	Name       string   `json:"name"`
	Age        string   `json:"age"`
	Attendance string   `json:"attendance"`
	Comment    string   `json:"comment"`
	Keyword    GroupTag `json:"keyword"`
}

// StudentRecord is the reconciled, canonical row for one student.
type StudentRecord struct {
	Name             string   `json:"name"`
	Age              string   `json:"age"`
	Attendance       string   `json:"attendance"`
	Comment          string   `json:"comment"`
	Keyword          GroupTag `json:"keyword"`
	SkillLevel       SkillTag `json:"skill_level"`
	ClassName        string   `json:"class_name"`
	ScheduleDay      Day      `json:"schedule_day"`
	ScheduleSortTime int      `json:"schedule_sort_time"`
	ScheduleTime     string   `json:"schedule_time"`
	// Advanced is true when the unabbreviated class name carries the advanced marker.
	Advanced bool `json:"advanced"`
	// Order is the record's position in reconciled output and breaks sort ties.
	Order int `json:"order"`
}

// CohortKey identifies the students sharing a day, time slot and group.
type CohortKey struct {
	Day      Day
	SortTime int
	Keyword  GroupTag
}

// Cohort returns the cohort the record belongs to.
func (r StudentRecord) Cohort() CohortKey {
	return CohortKey{Day: r.ScheduleDay, SortTime: r.ScheduleSortTime, Keyword: r.Keyword}
}

// SameSlot reports whether two records share a day and time slot.
func (r StudentRecord) SameSlot(o StudentRecord) bool {
	return r.ScheduleDay == o.ScheduleDay && r.ScheduleSortTime == o.ScheduleSortTime
}
