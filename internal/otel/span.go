// Package otel provides OpenTelemetry instrumentation utilities for the sync service.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys shared by the sync manager and the storage spans
const (
	AttrPlatform       = attribute.Key("arlo.platform")
	AttrCollection     = attribute.Key("arlo.collection")
	AttrManualOverride = attribute.Key("sync.manual")
	AttrPageNumber     = attribute.Key("sync.page")
	AttrHasNext        = attribute.Key("sync.has_next")
	AttrWatermark      = attribute.Key("sync.watermark")
	AttrResultCount    = attribute.Key("result.count")
)

// StartSpan starts a span on tracer. A nil tracer (tracing disabled) yields the span
// already in ctx, which is a no-op when there is none.
func StartSpan(
	ctx context.Context,
	tracer trace.Tracer,
	name string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// CollectionAttributes tags a span with the tenant platform and collection it works on
func CollectionAttributes(platform, collection string) trace.SpanStartOption {
	return trace.WithAttributes(
		AttrPlatform.String(platform),
		AttrCollection.String(collection),
	)
}

// RecordError adds err as an exception event and marks the span failed.
// The status description stays generic; the error text only goes into the event.
func RecordError(span trace.Span, err error) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	}
}
