package core

import "errors"

// The four failure kinds of the reservation lifecycle.
// They are wrapped with a detail message, test for them with errors.Is.
var (
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
)

// ErrMalformedEvent is returned when a persisted event cannot be applied to a reservation.
var ErrMalformedEvent = errors.New("malformed reservation event")
