// Package dashboard is the event-facing facade over the registry and the
// view pipeline. It consumes the operations the UI produces — add, edit,
// delete, search, sort — and maintains the displayed list they all feed.
//
// The one rule this package exists to enforce: the displayed list is the
// last-executed search filtered through the currently selected sort, and
// it is recomputed after EVERY canonical mutation, not only on explicit
// search/sort actions. A record added while a query is active is filtered
// and sorted immediately — it never appears unfiltered.
//
// The registry itself assumes ordered dispatch, so the facade serializes
// all events behind one mutex. That is the whole concurrency story:
// single-user registry, one event at a time.
package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/student-registry/internal/registry"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/view"
)

// Dashboard owns the derived displayed list. Construct with New, then
// Start once.
type Dashboard struct {
	mu        sync.Mutex
	store     *registry.Registry
	pipeline  *view.Pipeline
	displayed []types.Student
	log       *slog.Logger
}

// New wires a Dashboard over an un-initialized registry.
func New(store *registry.Registry, log *slog.Logger) *Dashboard {
	return &Dashboard{
		store:    store,
		pipeline: view.NewPipeline(),
		log:      log,
	}
}

// Start initializes the registry (loading or seeding the canonical list)
// and computes the first displayed list. A *registry.DurabilityError is
// passed through; the dashboard is usable regardless.
func (d *Dashboard) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.store.Initialize(ctx)
	d.recompute()
	return err
}

// AddStudent handles an add request. The returned error is a validation
// error, an encoding error, or a durability warning; on a durability
// warning the record was still added and is part of the displayed list.
func (d *Dashboard) AddStudent(ctx context.Context, candidate types.NewStudent, photo io.Reader) (types.Student, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	student, err := d.store.Add(ctx, candidate, photo)
	if err != nil && !isDurability(err) {
		return types.Student{}, err
	}

	d.recompute()
	return student, err
}

// EditStudent handles an edit request for the record keyed by rollNo.
func (d *Dashboard) EditStudent(ctx context.Context, rollNo string, patch types.StudentPatch, photo io.Reader) (types.Student, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	student, err := d.store.Edit(ctx, rollNo, patch, photo)
	if err != nil && !isDurability(err) {
		return types.Student{}, err
	}

	d.recompute()
	return student, err
}

// DeleteStudent handles a delete request for the record keyed by rollNo.
func (d *Dashboard) DeleteStudent(ctx context.Context, rollNo string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.store.Delete(ctx, rollNo)
	if err != nil && !isDurability(err) {
		return err
	}

	d.recompute()
	return err
}

// Search replaces the active query and recomputes. Executing a new search
// discards the previous one entirely.
func (d *Dashboard) Search(query string) []types.Student {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pipeline.SetQuery(query)
	d.recompute()
	return d.copyDisplayed()
}

// SortBy replaces the active sort criterion and recomputes.
func (d *Dashboard) SortBy(c view.Criterion) []types.Student {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pipeline.SetCriterion(c)
	d.recompute()
	return d.copyDisplayed()
}

// Displayed returns the current displayed list.
func (d *Dashboard) Displayed() []types.Student {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.copyDisplayed()
}

// recompute rebuilds the displayed list from a fresh canonical snapshot.
// Callers hold d.mu.
func (d *Dashboard) recompute() {
	d.displayed = d.pipeline.Apply(d.store.Snapshot())
}

func (d *Dashboard) copyDisplayed() []types.Student {
	out := make([]types.Student, len(d.displayed))
	copy(out, d.displayed)
	return out
}

// isDurability reports whether err is only a durability warning — the
// mutation itself succeeded in memory, so the displayed list must still
// be recomputed and the record returned.
func isDurability(err error) bool {
	var de *registry.DurabilityError
	return errors.As(err, &de)
}
