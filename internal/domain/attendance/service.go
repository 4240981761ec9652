package attendance

import (
	"context"
)

// AttendanceService defines business logic for clock in/out
type AttendanceService interface {
	// MarkAttendance records an entrada or salida, enforcing that they alternate
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (EventResponse, error)

	// GetLastActivity returns the employee's latest punch
	GetLastActivity(ctx context.Context, employeeID int64) (EventResponse, error)

	// GetRecentActivities returns the employee's latest punches, newest first
	GetRecentActivities(ctx context.Context, employeeID int64, limit int) ([]EventResponse, error)

	// ListActivities is the admin activity log
	ListActivities(ctx context.Context, filter ActivityFilter) (ListActivityResponse, error)
}
