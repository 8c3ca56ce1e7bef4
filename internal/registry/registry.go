// Package registry owns the canonical student list and is the only place
// it is ever mutated.
//
// Every operation follows the same shape:
//
//	validate → resolve the profile image → mutate → persist
//
// A failed step aborts the whole operation with the canonical list
// untouched — there is no partial mutation. The one exception is a
// persistence write failure after a successful mutation: the new state is
// kept in memory and the caller is told durability was not achieved
// (*DurabilityError), because dropping the user's change would be worse.
//
// The registry assumes ordered dispatch: callers (the dashboard facade)
// serialize mutations, so there is no locking here.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aanand-mishra/student-registry/internal/imaging"
	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/validation"
)

// Options carries the injectable pieces of a Registry that are data, not
// collaborators.
type Options struct {
	// Seed is the list used when nothing usable has been persisted yet.
	// Nil means DefaultSeed().
	Seed []types.Student

	// DefaultImage is the profile image value used when an add carries
	// no photo attachment. Typically a placeholder avatar URL; it is
	// stored as-is and never fetched by the registry.
	DefaultImage string
}

// Registry is the record store. Construct with New, then call Initialize
// once before any other operation.
type Registry struct {
	gateway  storage.Gateway
	validate *validation.Engine
	log      *slog.Logger

	seed         []types.Student
	defaultImage string

	students []types.Student
}

// New wires a Registry. The gateway is the only hard dependency; the
// validation engine is owned here because admission rules are part of the
// store's contract, not something callers may vary.
func New(gw storage.Gateway, log *slog.Logger, opts Options) *Registry {
	seed := opts.Seed
	if seed == nil {
		seed = DefaultSeed()
	}

	return &Registry{
		gateway:      gw,
		validate:     validation.New(),
		log:          log,
		seed:         seed,
		defaultImage: opts.DefaultImage,
	}
}

// Initialize loads the canonical list from storage. On a first run (or a
// corrupt entry) it seeds the built-in defaults and persists them
// immediately; on a real read failure it degrades to the seed without
// persisting, so a temporarily broken disk cannot stop startup.
//
// The returned error is nil or a *DurabilityError — the registry is
// usable in memory either way.
func (r *Registry) Initialize(ctx context.Context) ([]types.Student, error) {
	list, err := r.gateway.Load(ctx)

	switch {
	case err == nil:
		r.students = list
		r.log.Info("student list loaded", slog.Int("count", len(list)))

	case errors.Is(err, storage.ErrNoData):
		r.students = r.copySeed()
		r.log.Info("no persisted list, seeding defaults",
			slog.Int("count", len(r.students)))
		if saveErr := r.gateway.Save(ctx, r.students); saveErr != nil {
			r.log.Error("seed list not persisted",
				slog.String("error", saveErr.Error()))
			return r.Snapshot(), &DurabilityError{Cause: saveErr}
		}

	default:
		r.students = r.copySeed()
		r.log.Error("storage read failed, running on seed defaults",
			slog.String("error", err.Error()))
	}

	return r.Snapshot(), nil
}

// Add admits a new student. The candidate runs through the full admission
// gate; a photo attachment, if present, is encoded to a data URI before
// anything is appended, so an encoding failure leaves no trace.
//
// Returns the created record. A *DurabilityError still carries the
// created record — it exists in memory, it just isn't on disk yet.
func (r *Registry) Add(ctx context.Context, candidate types.NewStudent, photo io.Reader) (types.Student, error) {
	if err := r.validate.ValidateNew(candidate, r.students); err != nil {
		return types.Student{}, err
	}

	image, err := r.resolveImage(ctx, photo, r.defaultImage)
	if err != nil {
		return types.Student{}, err
	}

	student := types.Student{
		RollNo:         candidate.RollNo,
		Name:           candidate.Name,
		Email:          candidate.Email,
		EnrolledCourse: candidate.EnrolledCourse,
		ProfileImage:   image,
	}

	r.students = append(r.students, student)
	r.log.Info("student added", slog.String("rollNo", student.RollNo))

	return student, r.persist(ctx)
}

// Edit replaces every editable field of the record keyed by rollNo with
// the patch values. The roll number itself is immutable — StudentPatch
// cannot even express a key change. A new photo attachment is re-encoded
// and wins over patch.ProfileImage.
//
// Edits are not re-validated against the admission rules; the edit form
// pins the roll number and the course selection, and the registry keeps
// the original's accept-as-is behaviour for the remaining fields.
func (r *Registry) Edit(ctx context.Context, rollNo string, patch types.StudentPatch, photo io.Reader) (types.Student, error) {
	idx := r.indexOf(rollNo)
	if idx < 0 {
		return types.Student{}, fmt.Errorf("edit %q: %w", rollNo, ErrNotFound)
	}

	image, err := r.resolveImage(ctx, photo, patch.ProfileImage)
	if err != nil {
		return types.Student{}, err
	}

	r.students[idx].Name = patch.Name
	r.students[idx].Email = patch.Email
	r.students[idx].EnrolledCourse = patch.EnrolledCourse
	r.students[idx].ProfileImage = image

	updated := r.students[idx]
	r.log.Info("student updated", slog.String("rollNo", updated.RollNo))

	return updated, r.persist(ctx)
}

// Delete permanently removes the record keyed by rollNo. There is no
// tombstone; the resulting list may legitimately be empty.
func (r *Registry) Delete(ctx context.Context, rollNo string) error {
	idx := r.indexOf(rollNo)
	if idx < 0 {
		return fmt.Errorf("delete %q: %w", rollNo, ErrNotFound)
	}

	r.students = append(r.students[:idx], r.students[idx+1:]...)
	r.log.Info("student deleted", slog.String("rollNo", rollNo))

	return r.persist(ctx)
}

// Snapshot returns a defensive copy of the canonical list. The view
// pipeline derives from snapshots and never sees the owned slice.
func (r *Registry) Snapshot() []types.Student {
	out := make([]types.Student, len(r.students))
	copy(out, r.students)
	return out
}

// resolveImage picks the profile image for a mutation: the encoded
// attachment when one is present, otherwise fallback. Waiting on the
// pending encode is the only suspension point in the pipeline.
func (r *Registry) resolveImage(ctx context.Context, photo io.Reader, fallback string) (string, error) {
	if photo == nil {
		return fallback, nil
	}

	uri, err := imaging.EncodeAsync(photo).Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("encode profile image: %w", err)
	}
	return uri, nil
}

// persist writes the full canonical list — exactly one write per
// successful mutation.
func (r *Registry) persist(ctx context.Context) error {
	if err := r.gateway.Save(ctx, r.students); err != nil {
		r.log.Error("student list not persisted",
			slog.String("error", err.Error()))
		return &DurabilityError{Cause: err}
	}
	return nil
}

func (r *Registry) indexOf(rollNo string) int {
	for i, s := range r.students {
		if s.RollNo == rollNo {
			return i
		}
	}
	return -1
}

func (r *Registry) copySeed() []types.Student {
	out := make([]types.Student, len(r.seed))
	copy(out, r.seed)
	return out
}
