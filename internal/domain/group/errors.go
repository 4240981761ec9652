package group

import "errors"

var (
	ErrGroupNotFound     = errors.New("group not found")
	ErrGroupNameExists   = errors.New("group name already exists")
	ErrGroupHasEmployees = errors.New("group still has employees assigned")
)
