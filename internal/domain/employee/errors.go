package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrMissingPayProfile = errors.New("employee has no pay profile configured")
)
