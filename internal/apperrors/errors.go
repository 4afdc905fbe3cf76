// Package apperrors classifies the failures sfollow can hit into query, I/O,
// and usage errors so callers can decide what is fatal.
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification via errors.Is().
var (
	ErrQuery = errors.New("query error")
	ErrIO    = errors.New("io error")
	ErrUsage = errors.New("usage error")
)

// Error provides a classified error with context.
type Error struct {
	Sentinel error  // Wrapped sentinel for errors.Is() classification
	Message  string // Human-readable message
	Op       string // Operation that failed (e.g., "squeue")
	Path     string // File involved in an I/O failure
	Cause    error  // Underlying error
}

// Error returns the human-readable error message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes both the sentinel and the cause, so errors.Is matches the
// classification as well as conditions such as context.Canceled.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Sentinel}
	}
	return []error{e.Sentinel, e.Cause}
}

// Query reports a failed external status or detail command.
func Query(op string, cause error) error {
	return &Error{
		Sentinel: ErrQuery,
		Message:  fmt.Sprintf("%s: %v", op, cause),
		Op:       op,
		Cause:    cause,
	}
}

// QueryParse reports output from an external command that could not be parsed.
func QueryParse(op, detail string) error {
	return &Error{
		Sentinel: ErrQuery,
		Message:  fmt.Sprintf("%s: unexpected output: %s", op, detail),
		Op:       op,
	}
}

// IO reports a log file that could not be opened or read.
func IO(path string, cause error) error {
	return &Error{
		Sentinel: ErrIO,
		Message:  fmt.Sprintf("read %s: %v", path, cause),
		Path:     path,
		Cause:    cause,
	}
}

// Usage reports that there is nothing sensible to follow.
func Usage(message string) error {
	return &Error{
		Sentinel: ErrUsage,
		Message:  message,
	}
}

// IsQuery reports whether err is a query error.
func IsQuery(err error) bool { return errors.Is(err, ErrQuery) }

// IsIO reports whether err is a log file I/O error.
func IsIO(err error) bool { return errors.Is(err, ErrIO) }

// IsUsage reports whether err is a usage error.
func IsUsage(err error) bool { return errors.Is(err, ErrUsage) }
