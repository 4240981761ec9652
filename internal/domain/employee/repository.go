package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id int64) error

	// GetByID and GetByUsername resolve GroupName.
	GetByID(ctx context.Context, id int64) (Employee, error)
	// GetByIDForUpdate is GetByID holding a row lock until the surrounding
	// transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (Employee, error)
	GetByUsername(ctx context.Context, username string) (Employee, error)
	GetByCedula(ctx context.Context, cedula string) (Employee, error)

	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)

	// ListActiveWithGroup returns active employees with GroupName resolved.
	ListActiveWithGroup(ctx context.Context) ([]Employee, error)

	CountAttendance(ctx context.Context, employeeID int64) (int64, error)
}
