package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrCedulaExists          = errors.New("cedula already registered")
	ErrUsernameExists        = errors.New("username already taken")
	ErrEmployeeHasAttendance = errors.New("employee has attendance history, deactivate it instead")
	ErrCannotDeleteSelf      = errors.New("cannot delete your own employee record")
)
