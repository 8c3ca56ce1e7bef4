package registry

import "errors"

// ErrNotFound is returned by Edit and Delete when no record carries the
// requested roll number. The canonical list is left untouched.
var ErrNotFound = errors.New("no student with that roll number")

// DurabilityError reports a mutation that was applied in memory but could
// not be written to storage. There is no retry queue: the caller decides
// whether to surface a warning, and the next successful mutation will
// write the full list anyway.
type DurabilityError struct {
	Cause error
}

func (e *DurabilityError) Error() string {
	return "student list not persisted: " + e.Cause.Error()
}

func (e *DurabilityError) Unwrap() error { return e.Cause }
