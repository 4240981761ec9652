package report

import (
	"sort"

	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/domain/group"
)

// ScheduleIndex answers "does group G work on weekday W". Only groups
// flagged as scheduled and owning at least one entry are kept; the rest
// take no part in the report, statistics included.
type ScheduleIndex struct {
	groups []group.Group
	days   map[int64]map[int]bool
}

func NewScheduleIndex(groups []group.Group) ScheduleIndex {
	idx := ScheduleIndex{
		groups: []group.Group{},
		days:   make(map[int64]map[int]bool),
	}

	for _, g := range groups {
		if !g.IsScheduled || len(g.Schedule) == 0 {
			continue
		}

		entries := make([]group.ScheduleEntry, len(g.Schedule))
		copy(entries, g.Schedule)
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].DayOfWeek != entries[j].DayOfWeek {
				return entries[i].DayOfWeek < entries[j].DayOfWeek
			}
			return entries[i].ID < entries[j].ID
		})
		g.Schedule = entries

		weekdays := make(map[int]bool, len(entries))
		for _, entry := range entries {
			weekdays[entry.DayOfWeek] = true
		}
		idx.days[g.ID] = weekdays
		idx.groups = append(idx.groups, g)
	}

	sort.SliceStable(idx.groups, func(i, j int) bool {
		return idx.groups[i].ID < idx.groups[j].ID
	})
	return idx
}

// Expects reports whether any entry of the group falls on weekday.
func (idx ScheduleIndex) Expects(groupID int64, weekday int) bool {
	return idx.days[groupID][weekday]
}

// Covers reports whether the group was retained at all.
func (idx ScheduleIndex) Covers(groupID int64) bool {
	_, ok := idx.days[groupID]
	return ok
}

// Groups returns the retained groups ordered by ID.
func (idx ScheduleIndex) Groups() []group.Group {
	return idx.groups
}

// CountCovered counts the active employees whose group was retained.
func (idx ScheduleIndex) CountCovered(employees []employee.Employee) int {
	n := 0
	for _, e := range employees {
		if e.Active && idx.Covers(e.GroupID) {
			n++
		}
	}
	return n
}
