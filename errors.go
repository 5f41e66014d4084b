package linediff

import (
	"github.com/pkg/errors"
)

// Sentinel errors returned by constructors that validate externally
// supplied data.
var (
	// ErrInvalidRange is returned when a half-open range is constructed
	// with start > end.
	ErrInvalidRange = errors.New("linediff: invalid range")

	// ErrInvalidEdit is returned when an edit's replacements are not
	// sorted, overlap, or touch without having been joined.
	ErrInvalidEdit = errors.New("linediff: invalid edit")
)

// BugError signals an internal invariant violation: the library produced
// or was handed data that its own contracts forbid. It is raised via
// panic because a violated invariant means no output can be trusted.
// Callers and tests can distinguish it from ordinary panics by type.
type BugError struct {
	err error
}

// Error returns the underlying message.
func (e *BugError) Error() string {
	return e.err.Error()
}

// Unwrap returns the wrapped error, which carries a stack trace.
func (e *BugError) Unwrap() error {
	return e.err
}

// bugf panics with a BugError. The wrapped error records the call stack
// so a report points at the violated invariant.
func bugf(format string, args ...interface{}) {
	panic(&BugError{err: errors.Errorf("linediff: "+format, args...)})
}

// assertf panics with a BugError when cond is false.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		bugf(format, args...)
	}
}
