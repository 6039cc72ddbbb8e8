package normalize

import (
	"regexp"
	"strconv"

	"github.com/ninjapark/rollsync/internal/model"
)

var (
	dayPattern  = regexp.MustCompile(`(?i)mon|tue|wed|thu|fri`)
	timePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// Schedule is the day and time slot derived from a class name.
type Schedule struct {
	Day         model.Day
	SortTime    int
	DisplayTime string
}

// LostSchedule is returned when a class name carries no usable schedule.
var LostSchedule = Schedule{Day: model.DayLost, SortTime: model.SortTimeUnknown}

// ScheduleInfo extracts the schedule day and start time from a class label
// such as "FS Ninjas | Mon: 3:40 - 4:40". Hours before 8 are afternoon
// classes and are shifted by twelve.
func ScheduleInfo(className string) Schedule {
	if className == "" || className == model.ClassNotFound {
		return LostSchedule
	}

	s := Schedule{Day: model.DayLost, SortTime: model.SortTimeUnknown}
	if m := dayPattern.FindString(className); m != "" {
		if day, ok := model.ParseDay(m); ok {
			s.Day = day
		}
	}

	m := timePattern.FindStringSubmatch(className)
	if m == nil {
		return s
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 8 {
		hour += 12
	}
	s.SortTime = hour*100 + minute
	s.DisplayTime = m[0]
	return s
}
