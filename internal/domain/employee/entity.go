package employee

import "time"

type Employee struct {
	ID           int64
	Cedula       string
	FirstName    string
	LastName     string
	GroupID      int64
	GroupName    string
	Username     *string
	PasswordHash *string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "empleado"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// FullName is "Nombre Apellido" as printed on reports.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
