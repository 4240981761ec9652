package employee

import (
	"time"

	"github.com/johangly/gpu/internal/pkg/validator"
)

type EmployeeFilter struct {
	GroupID         *int64
	Search          string
	IncludeInactive bool
}

type CreateEmployeeRequest struct {
	Cedula    string  `json:"cedula"`
	FirstName string  `json:"nombre"`
	LastName  string  `json:"apellido"`
	GroupID   int64   `json:"id_grupo"`
	Username  *string `json:"usuario"`
	Password  *string `json:"clave"`
	Role      Role    `json:"rol"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateCedula(r.Cedula)...)
	errs = append(errs, validateName("nombre", r.FirstName)...)
	errs = append(errs, validateName("apellido", r.LastName)...)

	if r.GroupID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id_grupo",
			Message: "id_grupo is required",
		})
	}

	if r.Role == "" {
		r.Role = RoleEmployee
	}
	if !r.Role.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "rol",
			Message: "rol must be admin or empleado",
		})
	}

	// A login is optional, but usuario and clave go together.
	if r.Username != nil || r.Password != nil {
		if r.Username == nil || r.Password == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "usuario",
				Message: "usuario and clave must be provided together",
			})
		} else {
			errs = append(errs, validateCredentials(*r.Username, *r.Password)...)
		}
	}
	if r.Role == RoleAdmin && r.Username == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "usuario",
			Message: "an admin needs usuario and clave",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID        int64   `json:"-"`
	Cedula    *string `json:"cedula,omitempty"`
	FirstName *string `json:"nombre,omitempty"`
	LastName  *string `json:"apellido,omitempty"`
	GroupID   *int64  `json:"id_grupo,omitempty"`
	Username  *string `json:"usuario,omitempty"`
	Password  *string `json:"clave,omitempty"`
	Role      *Role   `json:"rol,omitempty"`
	Active    *bool   `json:"activo,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Cedula != nil {
		errs = append(errs, validateCedula(*r.Cedula)...)
	}
	if r.FirstName != nil {
		errs = append(errs, validateName("nombre", *r.FirstName)...)
	}
	if r.LastName != nil {
		errs = append(errs, validateName("apellido", *r.LastName)...)
	}
	if r.GroupID != nil && *r.GroupID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id_grupo",
			Message: "id_grupo must be a valid group",
		})
	}
	if r.Username != nil && !validator.IsValidUsername(*r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "usuario",
			Message: "usuario must be 3-50 letters, numbers, dots, underscores or hyphens",
		})
	}
	if r.Password != nil && len(*r.Password) < 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "clave",
			Message: "clave must be at least 6 characters long",
		})
	}
	if r.Role != nil && !r.Role.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "rol",
			Message: "rol must be admin or empleado",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateCedula(cedula string) validator.ValidationErrors {
	if validator.IsEmpty(cedula) {
		return validator.ValidationErrors{{Field: "cedula", Message: "cedula is required"}}
	}
	if !validator.IsValidCedula(cedula) {
		return validator.ValidationErrors{{Field: "cedula", Message: "cedula must be V or E followed by 7 to 9 digits"}}
	}
	return nil
}

func validateName(field, value string) validator.ValidationErrors {
	if validator.IsEmpty(value) {
		return validator.ValidationErrors{{Field: field, Message: field + " is required"}}
	}
	if len(value) > 100 {
		return validator.ValidationErrors{{Field: field, Message: field + " must not exceed 100 characters"}}
	}
	return nil
}

func validateCredentials(username, password string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.IsValidUsername(username) {
		errs = append(errs, validator.ValidationError{
			Field:   "usuario",
			Message: "usuario must be 3-50 letters, numbers, dots, underscores or hyphens",
		})
	}
	if len(password) < 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "clave",
			Message: "clave must be at least 6 characters long",
		})
	}
	return errs
}

type EmployeeResponse struct {
	ID        int64     `json:"id"`
	Cedula    string    `json:"cedula"`
	FirstName string    `json:"nombre"`
	LastName  string    `json:"apellido"`
	GroupID   int64     `json:"id_grupo"`
	GroupName string    `json:"grupo"`
	Username  *string   `json:"usuario"`
	Role      Role      `json:"rol"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Cedula:    e.Cedula,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		GroupID:   e.GroupID,
		GroupName: e.GroupName,
		Username:  e.Username,
		Role:      e.Role,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
