package errors

import "errors"

var (
	ErrNotFound = errors.New("user not found")

	ErrDuplicateEmail = errors.New("email already registered")

	ErrInvalidID = errors.New("invalid user ID format")
)
