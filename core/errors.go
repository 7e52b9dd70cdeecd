package core

import "github.com/pkg/errors"

// FieldError reports a problem with one field of a submitted form, keyed the
// way the API serializes it.
type FieldError struct {
	Field string
	Error string
}

// ValidationError collects form failures raised outside the struct validator,
// such as the signup and proposal handlers' own checks.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

// NewShutdownError flags an unrecoverable condition, like a poisoned
// datastore handle, so the server stops taking traffic.
func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown checks whether the error, or its cause, calls for a graceful stop.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
