package postgresql

import (
	"context"
	"time"

	"github.com/johangly/gpu/internal/domain/attendance"
	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/domain/group"
	"github.com/johangly/gpu/internal/domain/report"
)

// ReportRepository feeds the attendance reconciliation from the three
// entity repositories, one statement per entity type.
type ReportRepository struct {
	employees  employee.EmployeeRepository
	groups     group.GroupRepository
	attendance attendance.AttendanceRepository
}

func NewReportRepository(employees employee.EmployeeRepository, groups group.GroupRepository, events attendance.AttendanceRepository) report.DataSource {
	return &ReportRepository{
		employees:  employees,
		groups:     groups,
		attendance: events,
	}
}

// GetActiveEmployeesWithGroup implements report.DataSource.
func (r *ReportRepository) GetActiveEmployeesWithGroup(ctx context.Context) ([]employee.Employee, error) {
	return r.employees.ListActiveWithGroup(ctx)
}

// GetGroupsWithSchedules implements report.DataSource.
func (r *ReportRepository) GetGroupsWithSchedules(ctx context.Context) ([]group.Group, error) {
	return r.groups.List(ctx)
}

// GetAttendanceEvents implements report.DataSource.
func (r *ReportRepository) GetAttendanceEvents(ctx context.Context, start, end time.Time) ([]attendance.Event, error) {
	return r.attendance.ListBetween(ctx, start, end)
}
