package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("resource already exists")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrPersistenceFailure aborts an import run; the failing payload's transaction is rolled back.
	ErrPersistenceFailure = errors.New("persistence failure")
)
