package report

import (
	"time"

	"github.com/johangly/gpu/internal/domain/group"
	"github.com/johangly/gpu/internal/domain/report"
)

// Assemble bundles the reconciled days, their statistics and the schedule
// metadata of the groups that took part.
func Assemble(start, end time.Time, days []report.Day, stats report.Statistics, index ScheduleIndex) report.AttendanceReport {
	groups := make([]report.GroupSchedule, 0, len(index.Groups()))
	for _, g := range index.Groups() {
		groups = append(groups, report.GroupSchedule{
			ID:       g.ID,
			Name:     g.Name,
			Schedule: group.NewScheduleResponse(g.Schedule),
		})
	}

	if days == nil {
		days = []report.Day{}
	}

	return report.AttendanceReport{
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		Statistics: stats,
		Groups:     groups,
	}
}
