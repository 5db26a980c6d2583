package input

import (
	"errors"
	"fmt"
)

// Package errors. Only setup-time registration returns errors; the
// dispatch hot path logs and fails soft instead.
var (
	// ErrClosed is returned when operating on a closed manager.
	ErrClosed = errors.New("input manager closed")

	// ErrDuplicateSource is returned when registering a source name twice.
	ErrDuplicateSource = errors.New("source already registered")

	// ErrDuplicateContext is returned when registering a context name
	// twice.
	ErrDuplicateContext = errors.New("context already registered")

	// ErrDuplicateLayer is returned when registering a layer name twice.
	ErrDuplicateLayer = errors.New("layer already registered")

	// ErrNilSource is returned when registering a nil source.
	ErrNilSource = errors.New("nil source")

	// ErrNilContext is returned when registering a nil context.
	ErrNilContext = errors.New("nil context")
)

// ConfigError records a reference to an unknown context or layer name at
// runtime. It is logged and reported through a boolean return, never
// thrown across the dispatch boundary.
type ConfigError struct {
	// Kind names the referenced entity kind ("context", "layer").
	Kind string

	// Name is the unknown name.
	Name string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

// SourceUnavailableError records a source whose underlying hardware API is
// absent. The source disables itself and the manager continues with the
// remaining sources.
type SourceUnavailableError struct {
	// Source is the adapter name.
	Source string

	// Reason describes what is missing.
	Reason string
}

// Error implements the error interface.
func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %q unavailable: %s", e.Source, e.Reason)
}
