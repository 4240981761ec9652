package report

import (
	"sort"
	"time"

	"github.com/johangly/gpu/internal/domain/attendance"
	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/domain/report"
)

// Reconciler classifies each scheduled employee on each day of a range.
type Reconciler struct {
	Location *time.Location
	Weekday  WeekdayFunc
}

func NewReconciler(loc *time.Location, weekday WeekdayFunc) Reconciler {
	if loc == nil {
		loc = time.UTC
	}
	if weekday == nil {
		weekday = ScheduleWeekday
	}
	return Reconciler{Location: loc, Weekday: weekday}
}

// punches holds the earliest entrada and earliest salida of one employee on one day.
type punches struct {
	in  *time.Time
	out *time.Time
}

// Reconcile returns a copy of days with Attendances filled in. Inputs are
// not modified. Within a day employees are ordered by surname, name, then ID.
func (r Reconciler) Reconcile(days []report.Day, index ScheduleIndex, employees []employee.Employee, events []attendance.Event) []report.Day {
	roster := activeRoster(employees)
	byDay := r.bucketEvents(events)

	result := make([]report.Day, len(days))
	for i, day := range days {
		weekday := r.Weekday(day.Date)
		key := day.Date.In(r.Location).Format(dateLayout)

		statuses := []report.AttendanceStatus{}
		for _, emp := range roster {
			if !index.Expects(emp.GroupID, weekday) {
				continue
			}
			statuses = append(statuses, classify(emp, byDay[emp.ID][key]))
		}

		day.Attendances = statuses
		result[i] = day
	}
	return result
}

func (r Reconciler) bucketEvents(events []attendance.Event) map[int64]map[string]punches {
	byDay := make(map[int64]map[string]punches)

	for _, ev := range events {
		ts := ev.Timestamp.In(r.Location)
		key := ts.Format(dateLayout)

		days, ok := byDay[ev.EmployeeID]
		if !ok {
			days = make(map[string]punches)
			byDay[ev.EmployeeID] = days
		}
		p := days[key]

		switch ev.Action {
		case attendance.ActionEntrada:
			if p.in == nil || ts.Before(*p.in) {
				p.in = &ts
			}
		case attendance.ActionSalida:
			if p.out == nil || ts.Before(*p.out) {
				p.out = &ts
			}
		default:
			continue
		}
		days[key] = p
	}
	return byDay
}

func classify(emp employee.Employee, p punches) report.AttendanceStatus {
	status := report.AttendanceStatus{
		EmployeeID: emp.ID,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		GroupName:  emp.GroupName,
		ClockIn:    p.in,
		ClockOut:   p.out,
		Attended:   true,
	}

	switch {
	case p.in != nil && p.out != nil:
		status.State = report.StateComplete
	case p.in != nil:
		status.State = report.StateNoClockOut
	case p.out != nil:
		status.State = report.StateNoClockIn
	default:
		status.State = report.StateAbsent
		status.Attended = false
	}
	return status
}

func activeRoster(employees []employee.Employee) []employee.Employee {
	roster := make([]employee.Employee, 0, len(employees))
	for _, e := range employees {
		if e.Active {
			roster = append(roster, e)
		}
	}
	sort.SliceStable(roster, func(i, j int) bool {
		a, b := roster[i], roster[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID < b.ID
	})
	return roster
}
