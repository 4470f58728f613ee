package directory

import "errors"

var (
	// ErrStaffNotFound is returned when no directory record exists for an email.
	// This is an expected state (e.g. an account provisioned before its staff
	// row lands), distinct from a transient directory failure.
	ErrStaffNotFound = errors.New("staff record not found")

	// ErrUnavailable is returned when the directory read failed or timed out.
	// Callers may retry; resolution treats it as fatal for the request.
	ErrUnavailable = errors.New("staff directory unavailable")
)
