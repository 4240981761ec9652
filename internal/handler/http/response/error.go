package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/johangly/gpu/internal/domain/attendance"
	"github.com/johangly/gpu/internal/domain/auth"
	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/domain/group"
	"github.com/johangly/gpu/internal/domain/report"
	"github.com/johangly/gpu/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrCedulaExists):
		Conflict(w, "Cedula already registered")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, employee.ErrEmployeeHasAttendance):
		Conflict(w, "Employee has attendance records and cannot be deleted")
	case errors.Is(err, employee.ErrCannotDeleteSelf):
		Forbidden(w, "You cannot delete your own account")

	// Group domain errors
	case errors.Is(err, group.ErrGroupNotFound):
		NotFound(w, "Group not found")
	case errors.Is(err, group.ErrGroupNameExists):
		Conflict(w, "Group name already exists")
	case errors.Is(err, group.ErrGroupHasEmployees):
		Conflict(w, "Group still has employees assigned")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrInactiveEmployee):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrNoActivity):
		NotFound(w, "No attendance activity recorded")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrArchiveNotFound):
		NotFound(w, "No archived report for that date")
	case errors.Is(err, report.ErrDataSourceFailure):
		slog.Error("report data source failed", "error", err)
		InternalServerError(w, "Attendance data could not be loaded")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
