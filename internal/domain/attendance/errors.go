package attendance

import "errors"

// Attendance domain errors
var (
	// Clock in/out errors
	ErrAlreadyClockedIn = errors.New("you have already clocked in, clock out first")
	ErrNotClockedIn     = errors.New("you have not clocked in yet")
	ErrInactiveEmployee = errors.New("inactive employees cannot clock in or out")

	// General errors
	ErrNoActivity = errors.New("no attendance activity recorded")
)
