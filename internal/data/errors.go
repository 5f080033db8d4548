package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrUserNotFound is returned when no principal matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameExists is returned when an insert collides on the username unique constraint.
	ErrUsernameExists = errors.New("username already exists")
	// ErrEmailExists is returned when an insert collides on the email unique constraint.
	ErrEmailExists = errors.New("email already exists")
	// ErrRoleNotFound is returned when a role name has no reference-data row.
	ErrRoleNotFound = errors.New("role not found")
)
