package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the invoice resource does not exist or
	// the source answered with a non-success status.
	ErrNotFound = errors.New("invoice not found")

	// ErrDecode is returned when the resource is not a valid invoice document.
	ErrDecode = errors.New("invalid invoice document")

	// ErrNetwork is returned when the source could not be reached.
	ErrNetwork = errors.New("invoice source unreachable")
)

// LoadError wraps a loader failure with the operation and invoice id.
type LoadError struct {
	// Op is the operation that failed, e.g. "fetch" or "decode".
	Op string

	// ID is the invoice identifier being loaded.
	ID string

	// Err is one of the sentinel errors above.
	Err error

	// Details carries the underlying cause for logs. It is never shown to
	// visitors.
	Details string
}

func (e *LoadError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("loader: %s %q: %v: %s", e.Op, e.ID, e.Err, e.Details)
	}
	return fmt.Sprintf("loader: %s %q: %v", e.Op, e.ID, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newLoadError(op, id string, sentinel error, cause error) *LoadError {
	le := &LoadError{Op: op, ID: id, Err: sentinel}
	if cause != nil {
		le.Details = cause.Error()
	}
	return le
}
