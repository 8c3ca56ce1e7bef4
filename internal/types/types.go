// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the registry, the view pipeline, storage, and the handlers can all
// import types without depending on each other.
package types

import "strings"

// Student represents one record in the registry.
//
// The json:"..." tags are load-bearing: they define the exact shape of the
// persisted "studentsData" entry, so renaming a tag silently orphans every
// previously saved list. The in-memory form and the persisted form are the
// same shape on purpose — there is no schema versioning.
type Student struct {
	// RollNo is the unique identifier. It is immutable after creation;
	// storage preserves the value exactly as entered.
	RollNo string `json:"rollNo"`

	Name           string `json:"name"`
	Email          string `json:"email"`
	EnrolledCourse string `json:"enrolledCourse"`

	// ProfileImage is either a remote URL or an embedded data URI.
	// The dashboard falls back to a placeholder when it is empty, so an
	// empty value is legal stored state.
	ProfileImage string `json:"profileImage"`
}

// DisplayRollNo returns the roll number upper-cased for presentation.
// This is display convention only — comparisons and storage always use
// the stored value.
func (s Student) DisplayRollNo() string {
	return strings.ToUpper(s.RollNo)
}

// NewStudent carries the raw fields collected by the "Add Student" form,
// before validation. A successful add is the only way a Student enters
// the canonical list.
type NewStudent struct {
	RollNo         string `json:"rollNo"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	EnrolledCourse string `json:"enrolledCourse"`
}

// StudentPatch carries the editable fields for an edit. There is no
// RollNo field: the key cannot be changed through the edit path at all.
type StudentPatch struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	EnrolledCourse string `json:"enrolledCourse"`

	// ProfileImage is the value to keep when no new photo is attached
	// (usually the record's current image, echoed back by the form).
	ProfileImage string `json:"profileImage"`
}

// The fixed course catalogue offered by the enrolment form.
const (
	CourseReactInDepth  = "React In Depth"
	CourseJavaScriptPro = "JavaScript Pro"
	CourseHTMLBasics    = "HTML Basics"
	CourseCSSMastery    = "CSS Mastery"
)

// Courses returns the course catalogue in display order.
func Courses() []string {
	return []string{
		CourseReactInDepth,
		CourseJavaScriptPro,
		CourseHTMLBasics,
		CourseCSSMastery,
	}
}

// ValidCourse reports whether name is one of the offered courses.
func ValidCourse(name string) bool {
	switch name {
	case CourseReactInDepth, CourseJavaScriptPro, CourseHTMLBasics, CourseCSSMastery:
		return true
	}
	return false
}
