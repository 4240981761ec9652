package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/johangly/gpu/internal/domain/group"
	"github.com/johangly/gpu/internal/pkg/database"
)

type groupRepositoryImpl struct {
	db *database.DB
}

func NewGroupRepository(db *database.DB) group.GroupRepository {
	return &groupRepositoryImpl{db: db}
}

// Create implements group.GroupRepository.
func (r *groupRepositoryImpl) Create(ctx context.Context, g group.Group) (group.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO grupos_personal (nombre_grupo, programado)
		VALUES ($1, $2)
		RETURNING id_grupo, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, g.Name, g.IsScheduled).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "grupos_personal_nombre_key") {
			return group.Group{}, group.ErrGroupNameExists
		}
		return group.Group{}, fmt.Errorf("failed to create group %q: %w", g.Name, err)
	}
	return g, nil
}

// Update implements group.GroupRepository.
func (r *groupRepositoryImpl) Update(ctx context.Context, g group.Group) (group.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE grupos_personal
		SET nombre_grupo = $1, programado = $2, updated_at = NOW()
		WHERE id_grupo = $3
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, g.Name, g.IsScheduled, g.ID).Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return group.Group{}, group.ErrGroupNotFound
		}
		if isUniqueViolation(err, "grupos_personal_nombre_key") {
			return group.Group{}, group.ErrGroupNameExists
		}
		return group.Group{}, fmt.Errorf("failed to update group with id %d: %w", g.ID, err)
	}
	return g, nil
}

// Delete implements group.GroupRepository.
func (r *groupRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM grupos_personal WHERE id_grupo = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return group.ErrGroupHasEmployees
		}
		return fmt.Errorf("failed to delete group with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return group.ErrGroupNotFound
	}
	return nil
}

// GetByID implements group.GroupRepository.
func (r *groupRepositoryImpl) GetByID(ctx context.Context, id int64) (group.Group, error) {
	groups, err := r.list(ctx, "WHERE g.id_grupo = $1", id)
	if err != nil {
		return group.Group{}, err
	}
	if len(groups) == 0 {
		return group.Group{}, group.ErrGroupNotFound
	}
	return groups[0], nil
}

// GetByName implements group.GroupRepository.
func (r *groupRepositoryImpl) GetByName(ctx context.Context, name string) (group.Group, error) {
	groups, err := r.list(ctx, "WHERE g.nombre_grupo = $1", name)
	if err != nil {
		return group.Group{}, err
	}
	if len(groups) == 0 {
		return group.Group{}, group.ErrGroupNotFound
	}
	return groups[0], nil
}

// List implements group.GroupRepository.
func (r *groupRepositoryImpl) List(ctx context.Context) ([]group.Group, error) {
	return r.list(ctx, "")
}

// list reads groups and their entries in one statement so a concurrent
// schedule replacement is seen either fully or not at all.
func (r *groupRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]group.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT g.id_grupo, g.nombre_grupo, g.programado, g.created_at, g.updated_at,
			h.id_horario, h.dia_semana, to_char(h.hora_inicio, 'HH24:MI'), to_char(h.hora_fin, 'HH24:MI')
		FROM grupos_personal g
		LEFT JOIN horarios_grupos h ON h.id_grupo = g.id_grupo
		` + where + `
		ORDER BY g.id_grupo, h.dia_semana, h.id_horario
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := []group.Group{}
	for rows.Next() {
		var (
			g         group.Group
			entryID   *int64
			dayOfWeek *int
			start     *string
			end       *string
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.IsScheduled, &g.CreatedAt, &g.UpdatedAt,
			&entryID, &dayOfWeek, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}

		if n := len(groups); n == 0 || groups[n-1].ID != g.ID {
			g.Schedule = []group.ScheduleEntry{}
			groups = append(groups, g)
		}
		if entryID != nil {
			last := &groups[len(groups)-1]
			last.Schedule = append(last.Schedule, group.ScheduleEntry{
				ID:        *entryID,
				GroupID:   g.ID,
				DayOfWeek: *dayOfWeek,
				StartTime: *start,
				EndTime:   *end,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// ReplaceSchedule implements group.GroupRepository. Callers run it inside
// a transaction together with the group update.
func (r *groupRepositoryImpl) ReplaceSchedule(ctx context.Context, groupID int64, entries []group.ScheduleEntry) ([]group.ScheduleEntry, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM horarios_grupos WHERE id_grupo = $1`, groupID); err != nil {
		return nil, fmt.Errorf("failed to clear schedule of group %d: %w", groupID, err)
	}

	query := `
		INSERT INTO horarios_grupos (id_grupo, dia_semana, hora_inicio, hora_fin)
		VALUES ($1, $2, $3::time, $4::time)
		RETURNING id_horario
	`

	saved := make([]group.ScheduleEntry, 0, len(entries))
	for _, entry := range entries {
		entry.GroupID = groupID
		if err := q.QueryRow(ctx, query, groupID, entry.DayOfWeek, entry.StartTime, entry.EndTime).Scan(&entry.ID); err != nil {
			if isUniqueViolation(err, "horarios_grupos_dia_key") {
				return nil, fmt.Errorf("weekday %d repeated for group %d: %w", entry.DayOfWeek, groupID, err)
			}
			return nil, fmt.Errorf("failed to insert schedule entry for group %d: %w", groupID, err)
		}
		saved = append(saved, entry)
	}
	return saved, nil
}

// CountEmployees implements group.GroupRepository.
func (r *groupRepositoryImpl) CountEmployees(ctx context.Context, groupID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM personal WHERE id_grupo = $1`, groupID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees of group %d: %w", groupID, err)
	}
	return count, nil
}
