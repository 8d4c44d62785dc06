package geotools

import (
	"fmt"
	"strings"
)

// InvalidOptionError is returned when a generation or parsing option is
// malformed, e.g. a negative vertex count or an inverted bounding box.
type InvalidOptionError struct {
	Option string
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("geotools: invalid option %s: %s", e.Option, e.Reason)
}

// ValidationError carries every message produced while checking a GeoJSON
// object. Callers should inspect Messages rather than just the error text.
type ValidationError struct {
	Kind     string
	Messages []string
}

// NewValidationError returns nil when messages is empty.
func NewValidationError(kind string, messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Kind: kind, Messages: messages}
}

func (e *ValidationError) Error() string {
	if e.Kind == "" {
		return "geotools: invalid geojson: " + strings.Join(e.Messages, "; ")
	}
	return fmt.Sprintf("geotools: invalid %s: %s", e.Kind, strings.Join(e.Messages, "; "))
}

// IOError wraps a failure to open, read or parse a file.
type IOError struct {
	Path     string
	Messages []string
	Err      error
}

// NewIOError builds an IOError for path from err.
func NewIOError(path string, err error, messages ...string) *IOError {
	if err != nil {
		messages = append(messages, err.Error())
	}
	return &IOError{Path: path, Messages: messages, Err: err}
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return "geotools: io: " + strings.Join(e.Messages, "; ")
	}
	return fmt.Sprintf("geotools: %s: %s", e.Path, strings.Join(e.Messages, "; "))
}

func (e *IOError) Unwrap() error {
	return e.Err
}
