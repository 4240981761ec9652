package attendance

import (
	"time"

	"github.com/johangly/gpu/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkAttendanceRequest struct {
	EmployeeID int64  `json:"-"`
	Action     Action `json:"tipo_accion"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id_personal",
			Message: "id_personal is required",
		})
	}
	if !r.Action.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "tipo_accion",
			Message: "tipo_accion must be entrada or salida",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ActivityFilter is used by the admin activity log. Dates are "YYYY-MM-DD".
type ActivityFilter struct {
	EmployeeID *int64
	GroupID    *int64
	Action     *Action
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int

	// resolved by Validate in the configured location
	From *time.Time
	To   *time.Time
}

func (f *ActivityFilter) Validate(loc *time.Location) error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 500 {
		f.Limit = 50
	}

	if f.Action != nil && !f.Action.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "tipo_accion",
			Message: "tipo_accion must be entrada or salida",
		})
	}

	if f.StartDate != nil {
		if d, ok := validator.IsValidDate(*f.StartDate); ok {
			from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
			f.From = &from
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if d, ok := validator.IsValidDate(*f.EndDate); ok {
			// exclusive upper bound: start of the following day
			to := time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc)
			f.To = &to
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"id_personal"`
	Action     Action    `json:"tipo_accion"`
	Timestamp  time.Time `json:"fecha_hora"`
}

func NewEventResponse(e Event, loc *time.Location) EventResponse {
	return EventResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Action:     e.Action,
		Timestamp:  e.Timestamp.In(loc),
	}
}

type ActivityResponse struct {
	EventResponse
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Cedula    string `json:"cedula"`
	GroupName string `json:"grupo"`
}

func NewActivityResponse(a Activity, loc *time.Location) ActivityResponse {
	return ActivityResponse{
		EventResponse: NewEventResponse(a.Event, loc),
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Cedula:        a.Cedula,
		GroupName:     a.GroupName,
	}
}

type ListActivityResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Activities []ActivityResponse `json:"activities"`
}
