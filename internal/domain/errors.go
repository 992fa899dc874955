package domain

import "errors"

// Error kinds for expected, recoverable outcomes. Use cases wrap these with
// fmt.Errorf("%w: ...") so handlers can map them to HTTP status codes with
// errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidState     = errors.New("invalid state")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrConflict         = errors.New("conflict")
	ErrValidation       = errors.New("validation failed")
)
