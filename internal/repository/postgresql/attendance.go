package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/johangly/gpu/internal/domain/attendance"
	"github.com/johangly/gpu/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO asistencia (id_personal, tipo_accion, fecha_hora)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := q.QueryRow(ctx, query, event.EmployeeID, event.Action, event.Timestamp).Scan(&event.ID); err != nil {
		return attendance.Event{}, fmt.Errorf("failed to create attendance for employee %d: %w", event.EmployeeID, err)
	}
	return event, nil
}

// GetLast implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetLast(ctx context.Context, employeeID int64) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, id_personal, tipo_accion, fecha_hora
		FROM asistencia
		WHERE id_personal = $1
		ORDER BY fecha_hora DESC, id DESC
		LIMIT 1
	`

	var e attendance.Event
	err := q.QueryRow(ctx, query, employeeID).Scan(&e.ID, &e.EmployeeID, &e.Action, &e.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrNoActivity
		}
		return attendance.Event{}, fmt.Errorf("failed to get last attendance of employee %d: %w", employeeID, err)
	}
	return e, nil
}

// ListRecent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListRecent(ctx context.Context, employeeID int64, limit int) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, id_personal, tipo_accion, fecha_hora
		FROM asistencia
		WHERE id_personal = $1
		ORDER BY fecha_hora DESC, id DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent attendance of employee %d: %w", employeeID, err)
	}
	defer rows.Close()

	events := []attendance.Event{}
	for rows.Next() {
		var e attendance.Event
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Action, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ActivityFilter) ([]attendance.Activity, int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
		argIndex   = 1
	)

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.id_personal = $%d", argIndex))
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.GroupID != nil {
		conditions = append(conditions, fmt.Sprintf("p.id_grupo = $%d", argIndex))
		args = append(args, *filter.GroupID)
		argIndex++
	}
	if filter.Action != nil {
		conditions = append(conditions, fmt.Sprintf("a.tipo_accion = $%d", argIndex))
		args = append(args, *filter.Action)
		argIndex++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("a.fecha_hora >= $%d", argIndex))
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("a.fecha_hora < $%d", argIndex))
		args = append(args, *filter.To)
		argIndex++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	from := `
		FROM asistencia a
		JOIN personal p ON p.id = a.id_personal
		JOIN grupos_personal g ON g.id_grupo = p.id_grupo
		` + where

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+from, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.id_personal, a.tipo_accion, a.fecha_hora, p.nombre, p.apellido, p.cedula, g.nombre_grupo
		%s
		ORDER BY a.fecha_hora DESC, a.id DESC
		LIMIT $%d OFFSET $%d
	`, from, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	activities := []attendance.Activity{}
	for rows.Next() {
		var a attendance.Activity
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Action, &a.Timestamp,
			&a.FirstName, &a.LastName, &a.Cedula, &a.GroupName); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate activities: %w", err)
	}

	return activities, total, nil
}

// ListBetween implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, id_personal, tipo_accion, fecha_hora
		FROM asistencia
		WHERE fecha_hora BETWEEN $1 AND $2
		ORDER BY fecha_hora, id
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance between %s and %s: %w",
			from.Format(time.RFC3339), to.Format(time.RFC3339), err)
	}
	defer rows.Close()

	events := []attendance.Event{}
	for rows.Next() {
		var e attendance.Event
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Action, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}
	return events, nil
}
