package apperr

import (
	"errors"
	"fmt"
)

// ErrNoLocales means the locale registry is empty; no editing session can
// open and no fallback resolution is possible.
var ErrNoLocales = &ConfigurationError{Reason: "no locales configured"}

type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	return "configuration error: " + e.Reason
}

// ValidationError identifies the locale (and field, when known) that blocked
// a save. Nothing is persisted when one is returned.
type ValidationError struct {
	Locale string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for locale %q, field %q: %s", e.Locale, e.Field, e.Reason)
	}
	return fmt.Sprintf("validation failed for locale %q: %s", e.Locale, e.Reason)
}

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
	}
	return "persistence failed during " + e.Op
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
