package domain

import "fmt"

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input: malformed dates, out-of-range
// fields, or missing required birth data.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// CalendarError indicates the calendar library failed or a bounded search
// over it ran out of steps.
type CalendarError struct {
	Message string
	Err     error
}

func (e *CalendarError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CalendarError) Unwrap() error { return e.Err }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrCalendar creates a CalendarError wrapping cause (which may be nil).
func ErrCalendar(cause error, format string, args ...interface{}) *CalendarError {
	return &CalendarError{Message: fmt.Sprintf(format, args...), Err: cause}
}
