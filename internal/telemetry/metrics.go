package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// CatalogMetricsMeterName is the name used for the catalog metrics meter
	CatalogMetricsMeterName = "github.com/enrolsync/arlo-catalog-sync/catalog"

	// SyncMetricsMeterName is the name used for the sync metrics meter
	SyncMetricsMeterName = "github.com/enrolsync/arlo-catalog-sync/sync"
)

// CatalogMetrics holds the OpenTelemetry instruments for the local catalog
type CatalogMetrics struct {
	recordsTotal metric.Int64Gauge
}

// NewCatalogMetrics creates a new CatalogMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewCatalogMetrics(provider metric.MeterProvider) (*CatalogMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(CatalogMetricsMeterName)

	recordsTotal, err := meter.Int64Gauge(
		"arlo_sync_catalog_records_total",
		metric.WithDescription("Number of catalog records stored per tenant and collection"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	return &CatalogMetrics{
		recordsTotal: recordsTotal,
	}, nil
}

// RecordRecordsTotal records the current number of records in a collection
func (m *CatalogMetrics) RecordRecordsTotal(ctx context.Context, platform, collection string, count int64) {
	if m == nil || m.recordsTotal == nil {
		return
	}

	m.recordsTotal.Record(ctx, count, metric.WithAttributes(
		attribute.String("platform", platform),
		attribute.String("collection", collection),
	))
}

// SyncMetrics holds the OpenTelemetry instruments for sync operation metrics
type SyncMetrics struct {
	syncDuration    metric.Float64Histogram
	pagesFetched    metric.Int64Counter
	recordsWritten  metric.Int64Counter
	collectionSkips metric.Int64Counter
}

// NewSyncMetrics creates a new SyncMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	syncDuration, err := meter.Float64Histogram(
		"arlo_sync_collection_duration_seconds",
		metric.WithDescription("Duration of collection sync runs in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return nil, err
	}

	pagesFetched, err := meter.Int64Counter(
		"arlo_sync_pages_fetched_total",
		metric.WithDescription("Number of collection pages fetched from the Arlo API"),
		metric.WithUnit("{page}"),
	)
	if err != nil {
		return nil, err
	}

	recordsWritten, err := meter.Int64Counter(
		"arlo_sync_records_written_total",
		metric.WithDescription("Number of catalog records created or updated"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	collectionSkips, err := meter.Int64Counter(
		"arlo_sync_collection_skips_total",
		metric.WithDescription("Number of collection runs skipped by the executable gate"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		syncDuration:    syncDuration,
		pagesFetched:    pagesFetched,
		recordsWritten:  recordsWritten,
		collectionSkips: collectionSkips,
	}, nil
}

func collectionAttrs(platform, collection string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("platform", platform),
		attribute.String("collection", collection),
	}
}

// RecordSyncDuration records the duration of a collection run
func (m *SyncMetrics) RecordSyncDuration(
	ctx context.Context,
	platform, collection string,
	duration time.Duration,
	success bool,
) {
	if m == nil || m.syncDuration == nil {
		return
	}

	attrs := append(collectionAttrs(platform, collection), attribute.Bool("success", success))
	m.syncDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordPage counts one fetched page
func (m *SyncMetrics) RecordPage(ctx context.Context, platform, collection string) {
	if m == nil || m.pagesFetched == nil {
		return
	}
	m.pagesFetched.Add(ctx, 1, metric.WithAttributes(collectionAttrs(platform, collection)...))
}

// RecordRecords counts records written with the given outcome (created or updated)
func (m *SyncMetrics) RecordRecords(ctx context.Context, platform, collection, outcome string, n int64) {
	if m == nil || m.recordsWritten == nil || n == 0 {
		return
	}
	attrs := append(collectionAttrs(platform, collection), attribute.String("outcome", outcome))
	m.recordsWritten.Add(ctx, n, metric.WithAttributes(attrs...))
}

// RecordSkip counts a run the gate refused
func (m *SyncMetrics) RecordSkip(ctx context.Context, platform, collection string) {
	if m == nil || m.collectionSkips == nil {
		return
	}
	m.collectionSkips.Add(ctx, 1, metric.WithAttributes(collectionAttrs(platform, collection)...))
}
