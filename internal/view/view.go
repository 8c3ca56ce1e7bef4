// Package view derives the displayed student list from the canonical one.
//
// The derivation is a two-stage pipeline, recomputed in full every time:
//
//	canonical snapshot → filter (active query) → sort (active criterion)
//
// There is no incremental maintenance. The pipeline holds only the active
// query and criterion — never record data — and it never mutates its
// input: the filter builds a fresh working set and the sort reorders that
// working set in place.
package view

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aanand-mishra/student-registry/internal/types"
)

// Criterion selects the sort applied to the displayed list. It is a
// closed enumeration: an out-of-range value cannot be constructed through
// ParseCriterion, so "silently no sort" is unrepresentable.
type Criterion int

const (
	// None leaves the working set in canonical order.
	None Criterion = iota

	// ByName orders by student name, ascending, locale-aware.
	ByName

	// BySerial orders by roll number, ascending lexicographic. The
	// dashboard labels this "Serial no"; it has never been a date sort.
	BySerial

	// ByCourse orders by enrolled course, ascending, locale-aware.
	ByCourse
)

// ParseCriterion maps the wire value from the sort selector to a
// Criterion. The empty string (selector untouched) means None.
func ParseCriterion(s string) (Criterion, error) {
	switch s {
	case "", "none":
		return None, nil
	case "name":
		return ByName, nil
	case "serial":
		return BySerial, nil
	case "course":
		return ByCourse, nil
	}
	return None, fmt.Errorf("unknown sort criterion %q", s)
}

func (c Criterion) String() string {
	switch c {
	case ByName:
		return "name"
	case BySerial:
		return "serial"
	case ByCourse:
		return "course"
	}
	return "none"
}

// Pipeline holds the active query and sort criterion and applies them to
// canonical snapshots. The zero query matches everything.
type Pipeline struct {
	coll      *collate.Collator
	query     string
	criterion Criterion
}

// NewPipeline returns a Pipeline with no active query and no sort.
func NewPipeline() *Pipeline {
	return &Pipeline{coll: collate.New(language.English)}
}

// SetQuery replaces the active search query. The previous query's effect
// is discarded entirely on the next Apply — searches replace, they do not
// narrow.
func (p *Pipeline) SetQuery(q string) { p.query = q }

// Query returns the active search query.
func (p *Pipeline) Query() string { return p.query }

// SetCriterion replaces the active sort criterion.
func (p *Pipeline) SetCriterion(c Criterion) { p.criterion = c }

// Criterion returns the active sort criterion.
func (p *Pipeline) Criterion() Criterion { return p.criterion }

// Apply runs both stages over a snapshot of the canonical list and
// returns the displayed list. The input slice is never modified.
func (p *Pipeline) Apply(students []types.Student) []types.Student {
	working := p.filter(students)
	p.order(working)
	return working
}

// filter retains every record where the case-folded query is a substring
// of name, email, or enrolled course. An empty query is the identity.
// Always returns a fresh slice, so the sort stage owns its memory.
func (p *Pipeline) filter(students []types.Student) []types.Student {
	working := make([]types.Student, 0, len(students))

	q := strings.ToLower(p.query)
	if q == "" {
		return append(working, students...)
	}

	for _, s := range students {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Email), q) ||
			strings.Contains(strings.ToLower(s.EnrolledCourse), q) {
			working = append(working, s)
		}
	}
	return working
}

// order sorts the working set in place. Stability is part of the
// contract: records that compare equal keep their relative input order.
func (p *Pipeline) order(working []types.Student) {
	switch p.criterion {
	case ByName:
		sort.SliceStable(working, func(i, j int) bool {
			return p.coll.CompareString(working[i].Name, working[j].Name) < 0
		})
	case BySerial:
		sort.SliceStable(working, func(i, j int) bool {
			return working[i].RollNo < working[j].RollNo
		})
	case ByCourse:
		sort.SliceStable(working, func(i, j int) bool {
			return p.coll.CompareString(working[i].EnrolledCourse, working[j].EnrolledCourse) < 0
		})
	}
}
