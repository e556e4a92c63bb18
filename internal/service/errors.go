package service

import "errors"

// Failure categories surfaced at the service boundary. Raw storage and codec
// errors are wrapped into one of these before leaving the package.
var (
	// ErrTransient marks storage failures worth retrying; the whole
	// invocation is retried, never partially applied.
	ErrTransient = errors.New("transient storage failure")

	// ErrValidation marks input rejected at the boundary.
	ErrValidation = errors.New("validation failed")

	// ErrResourceUnavailable marks an unreadable or unwritable external
	// resource, such as a backup file. Not retried.
	ErrResourceUnavailable = errors.New("resource unavailable")
)
