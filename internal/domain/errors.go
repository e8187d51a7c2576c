package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrNotFound          = errors.New("not_found")
)

// PersistenceError is a recoverable store failure. The change it describes has
// already been applied to the in-memory snapshot, so callers treat it as a warning.
type PersistenceError struct {
	Op  string `json:"op"`
	Err error  `json:"-"`
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
