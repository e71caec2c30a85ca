package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrUsernameExists   = errors.New("username already registered")
	ErrEmailExists      = errors.New("email already registered")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrCannotDeleteSelf = errors.New("cannot delete your own employee record")
)
