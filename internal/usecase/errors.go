package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrStateConflict         = errors.New("operation not allowed in the current state")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
