package domain

import "errors"

var (
	// ErrValidation marks malformed input: a bad record field, an import row
	// that fails a rule, or an unknown module code.
	ErrValidation = errors.New("validation failed")

	// ErrCourseNotFound is returned when no planned course matches an ID.
	ErrCourseNotFound = errors.New("course not found")

	// ErrNotFound marks a lookup that produced nothing (no catalog match, no
	// requirement tree for a curriculum version).
	ErrNotFound = errors.New("not found")

	// ErrDependency wraps failures of the remote course catalog.
	ErrDependency = errors.New("catalog dependency failed")

	// ErrPersistence wraps store write failures.
	ErrPersistence = errors.New("persisting course failed")
)
