package sync

import (
	"context"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/enrolsync/arlo-catalog-sync/internal/arlo"
	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
	"github.com/enrolsync/arlo-catalog-sync/internal/otel"
	"github.com/enrolsync/arlo-catalog-sync/internal/sources"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/state"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/writer"
	"github.com/enrolsync/arlo-catalog-sync/internal/telemetry"
	"github.com/enrolsync/arlo-catalog-sync/internal/trace"
)

// Trace lines written for every collection run
const (
	MsgCannotExecute = "Cannot execute request due to timing or API status"
	MsgNoResources   = "No new or updated resources found."
)

// Result summarises one collection run
type Result struct {
	Platform   string                 `json:"platform"`
	Collection catalog.CollectionType `json:"collection"`
	Pages      int                    `json:"pages"`
	Created    int                    `json:"created"`
	Updated    int                    `json:"updated"`
	// Stale counts items older than the stored record, left unwritten
	Stale int `json:"stale"`
	// Skipped is set when the gate refused the first request
	Skipped   bool          `json:"skipped"`
	Watermark string        `json:"watermark,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Manager runs the page loop for one tenant collection
//
//go:generate mockgen -destination=mocks/mock_manager.go -package=mocks github.com/enrolsync/arlo-catalog-sync/internal/sync Manager
type Manager interface {
	// UpdateCollection pulls every page newer than the collection watermark.
	// A gate refusal returns a Result with Skipped set and a nil error.
	UpdateCollection(
		ctx context.Context,
		fetcher sources.Fetcher,
		collectionType catalog.CollectionType,
		manualOverride bool,
	) (*Result, error)

	UpdateEvents(ctx context.Context, fetcher sources.Fetcher, manualOverride bool) (*Result, error)
	UpdateTemplates(ctx context.Context, fetcher sources.Fetcher, manualOverride bool) (*Result, error)
	UpdateOnlineActivities(ctx context.Context, fetcher sources.Fetcher, manualOverride bool) (*Result, error)
}

// Option configures the default Manager
type Option func(*defaultManager)

// WithProgress sends trace lines to p instead of the per-platform logger sink
func WithProgress(p trace.Progress) Option {
	return func(m *defaultManager) {
		m.progress = p
	}
}

// WithTracer records a span per run and per page
func WithTracer(tracer oteltrace.Tracer) Option {
	return func(m *defaultManager) {
		m.tracer = tracer
	}
}

// WithMetrics records run metrics
func WithMetrics(metrics *telemetry.SyncMetrics) Option {
	return func(m *defaultManager) {
		m.metrics = metrics
	}
}

// WithClock overrides the clock used for record timestamps and run durations
func WithClock(now func() time.Time) Option {
	return func(m *defaultManager) {
		if now != nil {
			m.now = now
		}
	}
}

type defaultManager struct {
	stateService state.SyncStateService
	store        writer.RecordStore
	progress     trace.Progress
	tracer       oteltrace.Tracer
	metrics      *telemetry.SyncMetrics
	now          func() time.Time
}

// NewManager creates a Manager that keeps checkpoints in stateService and records in store
func NewManager(stateService state.SyncStateService, store writer.RecordStore, opts ...Option) Manager {
	m := &defaultManager{
		stateService: stateService,
		store:        store,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *defaultManager) UpdateEvents(ctx context.Context, fetcher sources.Fetcher, manualOverride bool) (*Result, error) {
	return m.UpdateCollection(ctx, fetcher, catalog.Events, manualOverride)
}

func (m *defaultManager) UpdateTemplates(
	ctx context.Context,
	fetcher sources.Fetcher,
	manualOverride bool,
) (*Result, error) {
	return m.UpdateCollection(ctx, fetcher, catalog.EventTemplates, manualOverride)
}

func (m *defaultManager) UpdateOnlineActivities(
	ctx context.Context,
	fetcher sources.Fetcher,
	manualOverride bool,
) (*Result, error) {
	return m.UpdateCollection(ctx, fetcher, catalog.OnlineActivities, manualOverride)
}

func (m *defaultManager) progressFor(platform string) trace.Progress {
	if m.progress != nil {
		return m.progress
	}
	return trace.NewLogger(platform)
}

func (m *defaultManager) UpdateCollection(
	ctx context.Context,
	fetcher sources.Fetcher,
	collectionType catalog.CollectionType,
	manualOverride bool,
) (result *Result, err error) {
	desc, err := descriptorFor(collectionType)
	if err != nil {
		return nil, err
	}

	platform := fetcher.Platform()
	progress := m.progressFor(platform)
	reconciler := writer.NewReconciler(m.store, writer.WithProgress(progress), writer.WithClock(m.now))

	ctx, span := otel.StartSpan(ctx, m.tracer, "sync.UpdateCollection",
		otel.CollectionAttributes(platform, string(collectionType)),
		oteltrace.WithAttributes(otel.AttrManualOverride.Bool(manualOverride)),
	)
	defer span.End()

	start := m.now()
	result = &Result{Platform: platform, Collection: collectionType}
	progress.Output("Updating "+collectionType.Label(), 0)
	defer func() {
		result.Duration = m.now().Sub(start)
		progress.Output(fmt.Sprintf("Execution took %.3f seconds", result.Duration.Seconds()), 0)
		m.metrics.RecordSyncDuration(ctx, platform, string(collectionType), result.Duration, err == nil)
		m.metrics.RecordRecords(ctx, platform, string(collectionType), string(writer.OutcomeCreated), int64(result.Created))
		m.metrics.RecordRecords(ctx, platform, string(collectionType), string(writer.OutcomeUpdated), int64(result.Updated))
		m.metrics.RecordRecords(ctx, platform, string(collectionType), string(writer.OutcomeStale), int64(result.Stale))
		otel.RecordError(span, err)
	}()

	fail := func(phase Phase, cause error) (*Result, error) {
		return result, &Error{Platform: platform, Collection: collectionType, Phase: phase, Err: cause}
	}

	for {
		if err := ctx.Err(); err != nil {
			return fail(PhaseFetch, err)
		}

		checkpoint, err := m.stateService.GetOrCreate(ctx, platform, collectionType)
		if err != nil {
			return fail(PhaseCheckpoint, err)
		}
		result.Watermark = checkpoint.LatestSourceModified

		// Gate refusals leave the checkpoint untouched
		if !fetcher.Executable(ctx, checkpoint, manualOverride) {
			progress.Output(MsgCannotExecute, 0)
			if result.Pages == 0 {
				result.Skipped = true
				m.metrics.RecordSkip(ctx, platform, string(collectionType))
			}
			return result, nil
		}

		hasNext, phase, err := m.processPage(ctx, fetcher, desc, reconciler, checkpoint, result, progress)
		if err != nil {
			return fail(phase, err)
		}
		if !hasNext {
			return result, nil
		}
	}
}

// processPage fetches, applies and commits the page after checkpoint's watermark.
// It reports whether another page should be requested.
func (m *defaultManager) processPage(
	ctx context.Context,
	fetcher sources.Fetcher,
	desc descriptor,
	reconciler *writer.Reconciler,
	checkpoint *state.Checkpoint,
	result *Result,
	progress trace.Progress,
) (hasNext bool, phase Phase, err error) {
	platform := checkpoint.Platform
	collection := string(checkpoint.Type)

	ctx, span := otel.StartSpan(ctx, m.tracer, "sync.page",
		otel.CollectionAttributes(platform, collection),
		oteltrace.WithAttributes(
			otel.AttrPageNumber.Int(result.Pages+1),
			otel.AttrWatermark.String(checkpoint.LatestSourceModified),
		),
	)
	defer func() {
		otel.RecordError(span, err)
		span.End()
	}()

	resp, err := fetcher.FetchPage(ctx, checkpoint, desc.resourcePath, desc.expansions)
	if err != nil {
		return false, PhaseFetch, err
	}
	result.Pages++
	m.metrics.RecordPage(ctx, platform, collection)

	page, err := desc.decode(resp, platform, reconciler)
	if err != nil {
		return false, PhaseDecode, err
	}
	span.SetAttributes(otel.AttrResultCount.Int(len(page.items)))

	if len(page.items) == 0 {
		if _, err := m.stateService.Commit(ctx, checkpoint, false); err != nil {
			return false, PhaseCommit, err
		}
		progress.Output(MsgNoResources, 0)
		return false, "", nil
	}

	startWatermark := checkpoint.LatestSourceModified
	for _, item := range page.items {
		outcome, err := item.reconcile(ctx)
		if err != nil {
			return false, PhaseReconcile, err
		}
		switch outcome {
		case writer.OutcomeCreated:
			result.Created++
		case writer.OutcomeStale:
			result.Stale++
		default:
			result.Updated++
		}
		checkpoint.LatestSourceModified = arlo.LaterTimestamp(checkpoint.LatestSourceModified, item.modified)
	}

	hasNext = page.hasNext
	if hasNext && arlo.CompareTimestamps(checkpoint.LatestSourceModified, startWatermark) <= 0 {
		// Requesting again would return the same page
		logger.Warnw("Page reports more results but did not advance the watermark, treating collection as drained",
			"platform", platform,
			"collection", collection,
			"watermark", checkpoint.LatestSourceModified,
		)
		hasNext = false
	}
	span.SetAttributes(otel.AttrHasNext.Bool(hasNext))

	committed, err := m.stateService.Commit(ctx, checkpoint, hasNext)
	if err != nil {
		return false, PhaseCommit, err
	}
	result.Watermark = committed.LatestSourceModified
	return hasNext, "", nil
}
