package services

import (
	"errors"

	"gerai/internal/repositories"
)

// Failure taxonomy shared by the handlers: every service error maps to one
// of these via errors.Is, and anything else is treated as internal.
var (
	// ErrNotFound re-exports the repository sentinel so handlers only
	// depend on the service layer.
	ErrNotFound = repositories.ErrNotFound

	// ErrUnauthorized signals that the acting identity lacks the role
	// required for a mutating operation.
	ErrUnauthorized = errors.New("user not authorized")

	// ErrInvalidInput signals a payload that failed field-level validation.
	ErrInvalidInput = errors.New("invalid data inputs passed")
)
