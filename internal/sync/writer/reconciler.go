package writer

import (
	"context"
	"fmt"
	"time"

	"github.com/enrolsync/arlo-catalog-sync/internal/arlo"
	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	"github.com/enrolsync/arlo-catalog-sync/internal/trace"
)

// itemDepth is the progress depth of per-record lines
const itemDepth = 1

// Reconciler applies remote resources to a RecordStore
type Reconciler struct {
	store    RecordStore
	progress trace.Progress
	now      func() time.Time
}

// ReconcilerOption configures a Reconciler
type ReconcilerOption func(*Reconciler)

// WithProgress sets the sink for Created/Updated lines
func WithProgress(p trace.Progress) ReconcilerOption {
	return func(r *Reconciler) {
		if p != nil {
			r.progress = p
		}
	}
}

// WithClock overrides the clock used to stamp Modified
func WithClock(now func() time.Time) ReconcilerOption {
	return func(r *Reconciler) {
		if now != nil {
			r.now = now
		}
	}
}

// NewReconciler creates a Reconciler writing to store
func NewReconciler(store RecordStore, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		store:    store,
		progress: trace.Null,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReconcileEvent upserts the local copy of ev
func (r *Reconciler) ReconcileEvent(ctx context.Context, platform string, ev *arlo.Event) (Outcome, error) {
	if ev == nil {
		return "", fmt.Errorf("event is required")
	}
	rec := catalog.NewEventRecord(platform, ev, r.now().UTC())
	outcome, err := r.store.UpsertEvent(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("failed to store event %s: %w", rec.Key, err)
	}
	r.report(outcome, rec.Code)
	return outcome, nil
}

// ReconcileTemplate upserts the local copy of tpl
func (r *Reconciler) ReconcileTemplate(ctx context.Context, platform string, tpl *arlo.EventTemplate) (Outcome, error) {
	if tpl == nil {
		return "", fmt.Errorf("event template is required")
	}
	rec := catalog.NewTemplateRecord(platform, tpl, r.now().UTC())
	outcome, err := r.store.UpsertTemplate(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("failed to store template %s: %w", rec.Key, err)
	}
	r.report(outcome, rec.Name)
	return outcome, nil
}

// ReconcileOnlineActivity upserts the local copy of oa
func (r *Reconciler) ReconcileOnlineActivity(
	ctx context.Context,
	platform string,
	oa *arlo.OnlineActivity,
) (Outcome, error) {
	if oa == nil {
		return "", fmt.Errorf("online activity is required")
	}
	rec := catalog.NewOnlineActivityRecord(platform, oa, r.now().UTC())
	outcome, err := r.store.UpsertOnlineActivity(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("failed to store online activity %s: %w", rec.Key, err)
	}
	r.report(outcome, rec.Name)
	return outcome, nil
}

func (r *Reconciler) report(outcome Outcome, label string) {
	switch outcome {
	case OutcomeCreated:
		r.progress.Output("Created: "+label, itemDepth)
	case OutcomeUpdated:
		r.progress.Output("Updated: "+label, itemDepth)
	case OutcomeStale:
		r.progress.Output("Kept newer copy: "+label, itemDepth)
	}
}
