package binding

import "errors"

// Package errors.
var (
	// ErrDuplicateCondition is returned when registering a condition name
	// that already exists.
	ErrDuplicateCondition = errors.New("condition already registered")

	// ErrEmptyName is returned when a context or condition name is empty.
	ErrEmptyName = errors.New("empty name")

	// ErrNilCondition is returned when registering a nil condition func.
	ErrNilCondition = errors.New("nil condition func")

	// ErrUnknownFormat is returned when a profile path has an extension
	// other than .json, .yaml or .yml.
	ErrUnknownFormat = errors.New("unknown profile format")

	// ErrBindingNotFound is returned when a profile patch targets a
	// binding that does not exist in the document.
	ErrBindingNotFound = errors.New("binding not found in profile")
)
