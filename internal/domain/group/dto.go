package group

import (
	"fmt"
	"time"

	"github.com/johangly/gpu/internal/pkg/validator"
)

// ========================================
// GROUP DTOs
// ========================================

type ScheduleEntryRequest struct {
	DayOfWeek int    `json:"dia_semana"`
	StartTime string `json:"hora_inicio"`
	EndTime   string `json:"hora_fin"`
}

type CreateGroupRequest struct {
	Name        string                 `json:"nombre_grupo"`
	IsScheduled bool                   `json:"programado"`
	Schedule    []ScheduleEntryRequest `json:"horarios"`
}

func (r *CreateGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateName(r.Name)...)
	errs = append(errs, validateSchedule(r.Schedule, r.IsScheduled)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateGroupRequest struct {
	ID          int64                  `json:"-"`
	Name        string                 `json:"nombre_grupo"`
	IsScheduled bool                   `json:"programado"`
	Schedule    []ScheduleEntryRequest `json:"horarios"`
}

func (r *UpdateGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id_grupo",
			Message: "id_grupo is required",
		})
	}
	errs = append(errs, validateName(r.Name)...)
	errs = append(errs, validateSchedule(r.Schedule, r.IsScheduled)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateName(name string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "nombre_grupo",
			Message: "nombre_grupo is required",
		})
	} else if len(name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "nombre_grupo",
			Message: "nombre_grupo must not exceed 100 characters",
		})
	}
	return errs
}

func validateSchedule(entries []ScheduleEntryRequest, scheduled bool) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if scheduled && len(entries) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "horarios",
			Message: "a scheduled group needs at least one day",
		})
	}

	seen := make(map[int]bool, len(entries))
	for i, entry := range entries {
		field := fmt.Sprintf("horarios[%d]", i)

		if entry.DayOfWeek < 1 || entry.DayOfWeek > 7 {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".dia_semana",
				Message: "dia_semana must be between 1 (Monday) and 7 (Sunday)",
			})
		} else if seen[entry.DayOfWeek] {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".dia_semana",
				Message: "dia_semana is repeated",
			})
		}
		seen[entry.DayOfWeek] = true

		startOK := validator.IsValidClockTime(entry.StartTime)
		endOK := validator.IsValidClockTime(entry.EndTime)
		if !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".hora_inicio",
				Message: "hora_inicio must use the HH:MM format",
			})
		}
		if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".hora_fin",
				Message: "hora_fin must use the HH:MM format",
			})
		}
		// zero-padded HH:MM compares correctly as a string
		if startOK && endOK && entry.StartTime >= entry.EndTime {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".hora_fin",
				Message: "hora_fin must be after hora_inicio",
			})
		}
	}

	return errs
}

// ToEntries converts request rows into schedule entries for groupID.
func ToEntries(groupID int64, rows []ScheduleEntryRequest) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, ScheduleEntry{
			GroupID:   groupID,
			DayOfWeek: row.DayOfWeek,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		})
	}
	return entries
}

type ScheduleEntryResponse struct {
	ID        int64  `json:"id_horario"`
	DayOfWeek int    `json:"dia_semana"`
	StartTime string `json:"hora_inicio"`
	EndTime   string `json:"hora_fin"`
}

type GroupResponse struct {
	ID            int64                   `json:"id_grupo"`
	Name          string                  `json:"nombre_grupo"`
	IsScheduled   bool                    `json:"programado"`
	Schedule      []ScheduleEntryResponse `json:"horario"`
	EmployeeCount *int64                  `json:"total_personal,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// NewScheduleResponse maps entries to their wire shape, never returning nil.
func NewScheduleResponse(entries []ScheduleEntry) []ScheduleEntryResponse {
	out := make([]ScheduleEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, ScheduleEntryResponse{
			ID:        entry.ID,
			DayOfWeek: entry.DayOfWeek,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
		})
	}
	return out
}

func NewGroupResponse(g Group) GroupResponse {
	return GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		IsScheduled: g.IsScheduled,
		Schedule:    NewScheduleResponse(g.Schedule),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
