// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// Consistent response shapes also make life easier for API consumers —
// they always know what error responses look like.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/validation"
)

// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a student, a list, ...).
// Error responses always look like:
//
//	{ "status": "error", "error": "field name is required" }
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error"`  // human-readable error detail
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// json.NewEncoder(w) streams directly into w, avoiding an
	// intermediate buffer. Encode() appends a trailing newline — handy
	// for CLI testing.
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
// Use this for unexpected errors (storage failures, decode errors, etc.)
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts an admission failure into a Response with a
// message phrased for the form, mirroring the dialogs the dashboard
// shows ("Please fill all required fields", and so on).
func ValidationError(verr *validation.Error) Response {
	var msg string

	switch {
	case errors.Is(verr, validation.ErrMissingField):
		msg = fmt.Sprintf("field %s is required", verr.Field)
	case errors.Is(verr, validation.ErrInvalidEmail):
		msg = fmt.Sprintf("field %s must be a valid email address", verr.Field)
	case errors.Is(verr, validation.ErrDuplicateRollNumber):
		msg = "roll number already exists"
	default:
		msg = fmt.Sprintf("field %s is invalid", verr.Field)
	}

	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// StudentResult is the payload for add/edit responses. Durability is
// empty on the happy path and "not persisted" when the record exists in
// memory but the storage write failed.
type StudentResult struct {
	Student    types.Student `json:"student"`
	Durability string        `json:"durability,omitempty"`
}
