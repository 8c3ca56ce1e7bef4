// Package validation is the admission gate for new student records.
//
// The checks run in a fixed order and the first failure wins:
//
//  1. required fields (name, email, roll number, enrolled course)
//  2. email shape
//  3. roll number uniqueness
//
// The order matters for the user experience — "field X is required" must
// beat "email is malformed" when both are true — so the engine checks one
// field at a time with validator.Var rather than tagging a struct and
// letting go-playground/validator pick its own iteration order.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-registry/internal/types"
)

// The reasons an admission check can fail. Callers match these with
// errors.Is; the wrapping *Error adds the offending field.
var (
	ErrMissingField        = errors.New("required field is missing")
	ErrInvalidEmail        = errors.New("email address is malformed")
	ErrDuplicateRollNumber = errors.New("roll number already exists")
)

// Error is a single admission failure: which field, and why.
type Error struct {
	Field  string
	Reason error
}

func (e *Error) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

func (e *Error) Unwrap() error { return e.Reason }

// simpleEmailPattern is intentionally loose: anything of the shape
// local@domain.tld with no whitespace. Stricter RFC validation rejects
// addresses real users type, so the registry has always accepted this.
var simpleEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Engine runs the admission checks. It wraps a validator.Validate with a
// custom simple_email rule; construct it once and reuse it, the validator
// caches rule metadata internally.
type Engine struct {
	validate *validator.Validate
}

// New returns a ready Engine.
func New() *Engine {
	v := validator.New()

	// RegisterValidation only fails for an empty tag name, so a failure
	// here is a programming error — treat it like validator's own
	// must-register helpers and panic at construction time.
	err := v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return simpleEmailPattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validation: register simple_email: %v", err))
	}

	return &Engine{validate: v}
}

// ValidateNew checks a candidate record against the admission rules and
// the existing canonical list. It returns nil when the candidate may be
// added, or a *Error describing the first failed check.
//
// Note the edit path deliberately does NOT go through this gate: the
// original registry only validates on add, and the edit form pins the
// roll number and the course selection, so edits are accepted as-is.
func (e *Engine) ValidateNew(candidate types.NewStudent, existing []types.Student) error {
	// Check 1: completeness, in form order.
	required := []struct {
		field string
		value string
	}{
		{"name", strings.TrimSpace(candidate.Name)},
		{"email", strings.TrimSpace(candidate.Email)},
		{"rollNo", strings.TrimSpace(candidate.RollNo)},
		{"enrolledCourse", candidate.EnrolledCourse},
	}
	for _, f := range required {
		if err := e.validate.Var(f.value, "required"); err != nil {
			return &Error{Field: f.field, Reason: ErrMissingField}
		}
	}

	// A course outside the catalogue can only come from a hand-crafted
	// request; treat it the same as an unset course.
	if !types.ValidCourse(candidate.EnrolledCourse) {
		return &Error{Field: "enrolledCourse", Reason: ErrMissingField}
	}

	// Check 2: email shape, on the value exactly as entered.
	if err := e.validate.Var(candidate.Email, "simple_email"); err != nil {
		return &Error{Field: "email", Reason: ErrInvalidEmail}
	}

	// Check 3: roll number uniqueness. Exact, case-sensitive match —
	// "s101" and "S101" are different keys even though the dashboard
	// renders both upper-cased.
	for _, s := range existing {
		if s.RollNo == candidate.RollNo {
			return &Error{Field: "rollNo", Reason: ErrDuplicateRollNumber}
		}
	}

	return nil
}
