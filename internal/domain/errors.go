package domain

import "errors"

var (
	// ErrValidation marks input that fails domain validation rules.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks an operation rejected because of current entity state.
	ErrConflict = errors.New("conflict")
	// ErrNotConfigured marks a feature whose static configuration is absent.
	// It is distinct from a provider-side rejection.
	ErrNotConfigured = errors.New("not configured")
)
