package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	"github.com/enrolsync/arlo-catalog-sync/internal/config"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
	"github.com/enrolsync/arlo-catalog-sync/internal/sources"
	pkgsync "github.com/enrolsync/arlo-catalog-sync/internal/sync"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/state"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/writer"
	"github.com/enrolsync/arlo-catalog-sync/internal/telemetry"
)

var (
	// ErrSyncInProgress is returned when a run is requested while another holds the driver
	ErrSyncInProgress = errors.New("a sync run is already in progress")

	// ErrTenantNotConfigured is returned for a platform missing from the configuration
	ErrTenantNotConfigured = errors.New("tenant is not configured")
)

// TenantReport collects the results of one tenant pass
type TenantReport struct {
	Platform string            `json:"platform"`
	Results  []*pkgsync.Result `json:"results"`
	Errors   []string          `json:"errors,omitempty"`
}

// Report collects the tenant reports of a full pass
type Report struct {
	Tenants  []*TenantReport `json:"tenants"`
	Duration time.Duration   `json:"duration"`
}

// Driver runs sync passes over the configured tenants. At most one pass runs at a time.
//
//go:generate mockgen -destination=mocks/mock_driver.go -package=mocks github.com/enrolsync/arlo-catalog-sync/internal/sync/coordinator Driver
type Driver interface {
	// Initialize registers the configured tenants with the state service
	Initialize(ctx context.Context) error
	// ProcessAll runs every collection of every enabled tenant, those pulled longest ago first
	ProcessAll(ctx context.Context) (*Report, error)
	// ProcessTenant runs every collection of one tenant
	ProcessTenant(ctx context.Context, platform string, manualOverride bool) (*TenantReport, error)
	// ProcessCollection runs a single collection of one tenant
	ProcessCollection(
		ctx context.Context,
		platform string,
		collectionType catalog.CollectionType,
		manualOverride bool,
	) (*pkgsync.Result, error)
}

// RunLocker excludes runs in other processes sharing the same storage
type RunLocker interface {
	TryLock() (bool, error)
	Unlock() error
}

// DriverOption configures a driver
type DriverOption func(*defaultDriver)

// WithRunLock makes every run also hold l
func WithRunLock(l RunLocker) DriverOption {
	return func(d *defaultDriver) {
		d.runLock = l
	}
}

// WithCatalogMetrics reports record counts from store after each tenant pass
func WithCatalogMetrics(metrics *telemetry.CatalogMetrics, store writer.RecordStore) DriverOption {
	return func(d *defaultDriver) {
		d.catalogMetrics = metrics
		d.store = store
	}
}

type defaultDriver struct {
	cfg          *config.Config
	stateService state.SyncStateService
	fetchers     sources.FetcherFactory
	manager      pkgsync.Manager

	catalogMetrics *telemetry.CatalogMetrics
	store          writer.RecordStore

	mu      sync.Mutex
	runLock RunLocker
}

var _ Driver = (*defaultDriver)(nil)

// NewDriver creates a driver for the tenants in cfg
func NewDriver(
	cfg *config.Config,
	stateService state.SyncStateService,
	fetchers sources.FetcherFactory,
	manager pkgsync.Manager,
	opts ...DriverOption,
) Driver {
	d := &defaultDriver{
		cfg:          cfg,
		stateService: stateService,
		fetchers:     fetchers,
		manager:      manager,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *defaultDriver) Initialize(ctx context.Context) error {
	if err := d.stateService.Initialize(ctx, d.cfg.Tenants); err != nil {
		return fmt.Errorf("failed to initialize tenants: %w", err)
	}
	return nil
}

// acquire takes the in-process lock and then the run lock. The returned release undoes both.
func (d *defaultDriver) acquire() (func(), error) {
	if !d.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	if d.runLock == nil {
		return d.mu.Unlock, nil
	}

	locked, err := d.runLock.TryLock()
	if err != nil {
		d.mu.Unlock()
		return nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !locked {
		d.mu.Unlock()
		return nil, ErrSyncInProgress
	}
	return func() {
		if err := d.runLock.Unlock(); err != nil {
			logger.Errorw("Failed to release run lock", "error", err)
		}
		d.mu.Unlock()
	}, nil
}

func (d *defaultDriver) ProcessAll(ctx context.Context) (*Report, error) {
	release, err := d.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()
	tenants, err := d.stateService.ListEnabledTenants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	logger.Infow("Starting sync pass", "tenant_count", len(tenants))

	report := &Report{}
	var errs []error
	for _, tenant := range tenants {
		if ctxErr := ctx.Err(); ctxErr != nil {
			errs = append(errs, ctxErr)
			break
		}

		tr, err := d.processTenant(ctx, tenant.Platform, false)
		if tr != nil {
			report.Tenants = append(report.Tenants, tr)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	report.Duration = time.Since(start)

	logger.Infow("Sync pass finished",
		"tenant_count", len(report.Tenants),
		"failures", len(errs),
		"duration", report.Duration)

	return report, errors.Join(errs...)
}

func (d *defaultDriver) ProcessTenant(ctx context.Context, platform string, manualOverride bool) (*TenantReport, error) {
	release, err := d.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	return d.processTenant(ctx, platform, manualOverride)
}

func (d *defaultDriver) ProcessCollection(
	ctx context.Context,
	platform string,
	collectionType catalog.CollectionType,
	manualOverride bool,
) (*pkgsync.Result, error) {
	release, err := d.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	fetcher, err := d.fetcherFor(platform)
	if err != nil {
		return nil, err
	}
	result, err := d.runCollection(ctx, fetcher, collectionType, manualOverride)
	d.recordCounts(ctx, platform)
	return result, err
}

// processTenant runs the collections in order. A failing collection is recorded
// on its checkpoint and does not stop the remaining ones.
func (d *defaultDriver) processTenant(ctx context.Context, platform string, manualOverride bool) (*TenantReport, error) {
	fetcher, err := d.fetcherFor(platform)
	if err != nil {
		logger.Errorw("Skipping tenant", "platform", platform, "error", err)
		return nil, err
	}

	tr := &TenantReport{Platform: platform}
	var errs []error
	for _, collectionType := range catalog.AllCollections {
		if ctxErr := ctx.Err(); ctxErr != nil {
			errs = append(errs, ctxErr)
			break
		}

		result, err := d.runCollection(ctx, fetcher, collectionType, manualOverride)
		if result != nil {
			tr.Results = append(tr.Results, result)
		}
		if err != nil {
			errs = append(errs, err)
			tr.Errors = append(tr.Errors, err.Error())
		}
	}

	d.recordCounts(ctx, platform)
	return tr, errors.Join(errs...)
}

func (d *defaultDriver) runCollection(
	ctx context.Context,
	fetcher sources.Fetcher,
	collectionType catalog.CollectionType,
	manualOverride bool,
) (*pkgsync.Result, error) {
	platform := fetcher.Platform()

	result, err := d.manager.UpdateCollection(ctx, fetcher, collectionType, manualOverride)
	if err != nil {
		logger.Errorw("Collection sync failed",
			"platform", platform,
			"collection", collectionType,
			"error", err)
		if recErr := d.stateService.RecordFailure(ctx, platform, collectionType, err); recErr != nil {
			logger.Errorw("Error recording sync failure",
				"platform", platform,
				"collection", collectionType,
				"error", recErr)
		}
		return result, err
	}

	if result != nil && !result.Skipped {
		if recErr := d.stateService.RecordSuccess(ctx, platform, collectionType); recErr != nil {
			logger.Errorw("Error recording sync success",
				"platform", platform,
				"collection", collectionType,
				"error", recErr)
		}
		logger.Infow("Collection sync completed",
			"platform", platform,
			"collection", collectionType,
			"pages", result.Pages,
			"created", result.Created,
			"updated", result.Updated,
			"stale", result.Stale)
	}
	return result, nil
}

func (d *defaultDriver) fetcherFor(platform string) (sources.Fetcher, error) {
	tenantCfg, ok := d.cfg.FindTenant(platform)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTenantNotConfigured, platform)
	}
	fetcher, err := d.fetchers.CreateFetcher(tenantCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetcher for %s: %w", platform, err)
	}
	return fetcher, nil
}

func (d *defaultDriver) recordCounts(ctx context.Context, platform string) {
	if d.catalogMetrics == nil || d.store == nil {
		return
	}
	for _, collectionType := range catalog.AllCollections {
		count, err := d.store.Count(ctx, platform, collectionType)
		if err != nil {
			logger.Warnw("Failed to count records", "platform", platform, "collection", collectionType, "error", err)
			continue
		}
		d.catalogMetrics.RecordRecordsTotal(ctx, platform, string(collectionType), count)
	}
}
