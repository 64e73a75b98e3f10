package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordingTracer(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter, tp
}

func attrs(span tracetest.SpanStub) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(span.Attributes))
	for _, kv := range span.Attributes {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestStartSpan_TracingDisabled(t *testing.T) {
	t.Parallel()

	ctx, span := StartSpan(context.Background(), nil, "sync.collection",
		CollectionAttributes("demo.arlo.co", "events"))
	require.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsValid())
	assert.False(t, span.IsRecording())
	span.End()
}

func TestStartSpan_KeepsParentWhenDisabled(t *testing.T) {
	t.Parallel()

	_, tp := recordingTracer(t)
	parentCtx, parent := tp.Tracer("sync").Start(context.Background(), "sync.tenant")
	defer parent.End()

	_, span := StartSpan(parentCtx, nil, "sync.page")
	assert.Equal(t, parent.SpanContext(), span.SpanContext())
}

func TestStartSpan_CollectionSpan(t *testing.T) {
	t.Parallel()

	exporter, tp := recordingTracer(t)
	tracer := tp.Tracer("sync")

	ctx, collection := StartSpan(context.Background(), tracer, "sync.collection",
		CollectionAttributes("demo.arlo.co", "onlineactivities"))
	_, page := StartSpan(ctx, tracer, "sync.page")
	page.SetAttributes(AttrPageNumber.Int(2), AttrHasNext.Bool(false), AttrResultCount.Int(7))
	page.End()
	collection.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	pageSpan, collectionSpan := spans[0], spans[1]
	assert.Equal(t, "sync.page", pageSpan.Name)
	assert.Equal(t, collectionSpan.SpanContext.SpanID(), pageSpan.Parent.SpanID())

	got := attrs(collectionSpan)
	assert.Equal(t, "demo.arlo.co", got[AttrPlatform].AsString())
	assert.Equal(t, "onlineactivities", got[AttrCollection].AsString())

	got = attrs(pageSpan)
	assert.Equal(t, int64(2), got[AttrPageNumber].AsInt64())
	assert.False(t, got[AttrHasNext].AsBool())
	assert.Equal(t, int64(7), got[AttrResultCount].AsInt64())
}

func TestRecordError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantCode   codes.Code
		wantEvents int
	}{
		{name: "nil error leaves the span alone", err: nil, wantCode: codes.Unset},
		{
			name:       "failure is recorded without leaking detail",
			err:        errors.New("pq: password authentication failed for user sync"),
			wantCode:   codes.Error,
			wantEvents: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			exporter, tp := recordingTracer(t)
			_, span := tp.Tracer("sync").Start(context.Background(), "state.commit_page")
			RecordError(span, tt.err)
			span.End()

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantCode, spans[0].Status.Code)
			require.Len(t, spans[0].Events, tt.wantEvents)
			if tt.err != nil {
				assert.Equal(t, "operation failed", spans[0].Status.Description)
				assert.Equal(t, "exception", spans[0].Events[0].Name)
			}
		})
	}

	assert.NotPanics(t, func() { RecordError(nil, errors.New("boom")) })
}
