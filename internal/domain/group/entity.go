package group

import "time"

type Group struct {
	ID          int64
	Name        string
	IsScheduled bool
	Schedule    []ScheduleEntry
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ScheduleEntry is one weekday of a group's expected work hours.
// DayOfWeek runs 1=Monday..7=Sunday; times are "HH:MM".
type ScheduleEntry struct {
	ID        int64
	GroupID   int64
	DayOfWeek int
	StartTime string
	EndTime   string
}

// HasDay reports whether any entry covers the given weekday.
func (g Group) HasDay(weekday int) bool {
	for _, entry := range g.Schedule {
		if entry.DayOfWeek == weekday {
			return true
		}
	}
	return false
}
