package report

import (
	"context"
	"time"

	"github.com/johangly/gpu/internal/domain/attendance"
	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/domain/group"
)

// DataSource supplies the snapshots the reconciliation runs on.
// Each method is a single read so one run never mixes two states of a table.
type DataSource interface {
	// GetActiveEmployeesWithGroup returns active employees with GroupName resolved
	GetActiveEmployeesWithGroup(ctx context.Context) ([]employee.Employee, error)

	// GetGroupsWithSchedules returns every group with its schedule entries
	GetGroupsWithSchedules(ctx context.Context) ([]group.Group, error)

	// GetAttendanceEvents returns events with start <= timestamp <= end, oldest first
	GetAttendanceEvents(ctx context.Context, start, end time.Time) ([]attendance.Event, error)
}
