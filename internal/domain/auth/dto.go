package auth

import "github.com/johangly/gpu/internal/pkg/validator"

type LoginRequest struct {
	Username string `json:"usuario"`
	Password string `json:"clave"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "usuario",
			Message: "usuario is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "clave",
			Message: "clave is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserProfile struct {
	ID        int64  `json:"id"`
	Cedula    string `json:"cedula"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Username  string `json:"usuario"`
	GroupID   int64  `json:"id_grupo"`
	GroupName string `json:"grupo"`
	Role      string `json:"rol"`
}

type TokenResponse struct {
	AccessToken          string      `json:"access_token"`
	AccessTokenExpiresIn int64       `json:"access_token_expires_in"`
	User                 UserProfile `json:"user"`
}
