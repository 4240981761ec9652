package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	p.id, p.cedula, p.nombre, p.apellido, p.id_grupo, g.nombre_grupo,
	p.usuario, p.clave, p.rol, p.activo, p.created_at, p.updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Cedula, &e.FirstName, &e.LastName, &e.GroupID, &e.GroupName,
		&e.Username, &e.PasswordHash, &e.Role, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func translateEmployeeError(err error) error {
	switch {
	case isUniqueViolation(err, "personal_cedula_key"):
		return employee.ErrCedulaExists
	case isUniqueViolation(err, "personal_usuario_key"):
		return employee.ErrUsernameExists
	}
	return nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO personal (cedula, nombre, apellido, id_grupo, usuario, clave, rol, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.Cedula, e.FirstName, e.LastName, e.GroupID, e.Username, e.PasswordHash, e.Role, e.Active,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if domainErr := translateEmployeeError(err); domainErr != nil {
			return employee.Employee{}, domainErr
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee %s: %w", e.Cedula, err)
	}
	return e, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE personal
		SET cedula = $1, nombre = $2, apellido = $3, id_grupo = $4, usuario = $5,
			clave = $6, rol = $7, activo = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		e.Cedula, e.FirstName, e.LastName, e.GroupID, e.Username, e.PasswordHash, e.Role, e.Active, e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if domainErr := translateEmployeeError(err); domainErr != nil {
			return employee.Employee{}, domainErr
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %d: %w", e.ID, err)
	}
	return e, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM personal WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return employee.ErrEmployeeHasAttendance
		}
		return fmt.Errorf("failed to delete employee with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) getOne(ctx context.Context, where string, arg interface{}) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM personal p
		JOIN grupos_personal g ON g.id_grupo = p.id_grupo
		` + where

	e, err := scanEmployee(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	return r.getOne(ctx, "WHERE p.id = $1", id)
}

// GetByIDForUpdate implements employee.EmployeeRepository. Outside a
// transaction the lock is released as soon as the statement returns.
func (r *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (employee.Employee, error) {
	return r.getOne(ctx, "WHERE p.id = $1 FOR UPDATE OF p", id)
}

// GetByUsername implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	return r.getOne(ctx, "WHERE p.usuario = $1", username)
}

// GetByCedula implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCedula(ctx context.Context, cedula string) (employee.Employee, error) {
	return r.getOne(ctx, "WHERE p.cedula = $1", cedula)
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var (
		conditions []string
		args       []interface{}
		argIndex   = 1
	)

	if !filter.IncludeInactive {
		conditions = append(conditions, "p.activo = TRUE")
	}
	if filter.GroupID != nil {
		conditions = append(conditions, fmt.Sprintf("p.id_grupo = $%d", argIndex))
		args = append(args, *filter.GroupID)
		argIndex++
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(p.nombre ILIKE $%d OR p.apellido ILIKE $%d OR p.cedula ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+search+"%")
		argIndex++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	return r.list(ctx, where, args...)
}

// ListActiveWithGroup implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActiveWithGroup(ctx context.Context) ([]employee.Employee, error) {
	return r.list(ctx, "WHERE p.activo = TRUE")
}

func (r *employeeRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM personal p
		JOIN grupos_personal g ON g.id_grupo = p.id_grupo
		` + where + `
		ORDER BY p.apellido, p.nombre, p.id
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// CountAttendance implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountAttendance(ctx context.Context, employeeID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM asistencia WHERE id_personal = $1`, employeeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendance of employee %d: %w", employeeID, err)
	}
	return count, nil
}
