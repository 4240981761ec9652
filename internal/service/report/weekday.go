package report

import (
	"fmt"
	"time"
)

// WeekdayFunc maps a calendar day to the dia_semana numbering of schedule entries.
type WeekdayFunc func(t time.Time) int

// ScheduleWeekday numbers days the way schedule entries are stored:
// 1=Monday .. 7=Sunday.
func ScheduleWeekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}

// LegacyScheduleWeekday is the numbering the desktop client used
// (Sunday=1 .. Saturday=7). It disagrees with stored schedules by one day
// and only exists for installations whose data was entered against it.
func LegacyScheduleWeekday(t time.Time) int {
	return int(t.Weekday()) + 1
}

// WeekdayConvention resolves REPORT_WEEKDAY_CONVENTION.
func WeekdayConvention(name string) (WeekdayFunc, error) {
	switch name {
	case "", "iso":
		return ScheduleWeekday, nil
	case "legacy":
		return LegacyScheduleWeekday, nil
	default:
		return nil, fmt.Errorf("unknown weekday convention %q, want iso or legacy", name)
	}
}

var weekdayNames = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
}

// WeekdayName is the lowercase Spanish day name shown on reports.
func WeekdayName(t time.Time) string {
	return weekdayNames[t.Weekday()]
}
