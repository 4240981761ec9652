package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for clock events.
type AttendanceRepository interface {
	// Create stores a new event and returns it with its ID
	Create(ctx context.Context, event Event) (Event, error)

	// GetLast returns the most recent event of the employee, or ErrNoActivity
	GetLast(ctx context.Context, employeeID int64) (Event, error)

	// ListRecent returns the employee's newest events first
	ListRecent(ctx context.Context, employeeID int64, limit int) ([]Event, error)

	// List retrieves events joined with their employee, newest first
	List(ctx context.Context, filter ActivityFilter) ([]Activity, int64, error)

	// ListBetween returns every event in [from, to] ordered by timestamp then ID
	ListBetween(ctx context.Context, from, to time.Time) ([]Event, error)
}
