package writer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enrolsync/arlo-catalog-sync/internal/arlo"
	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	"github.com/enrolsync/arlo-catalog-sync/internal/trace"
)

const testPlatform = "demo.arlo.co"

var fixedNow = time.Date(2017, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestReconcileEvent_CreateThenUpdate(t *testing.T) {
	t.Parallel()

	rec := &trace.Recorder{}
	store := NewFileRecordStore(t.TempDir())
	r := NewReconciler(store, WithProgress(rec), WithClock(fixedClock))
	ctx := context.Background()

	ev := &arlo.Event{
		EventID:              1,
		UniqueIdentifier:     "guid-1",
		Code:                 "EV-1",
		Status:               "Active",
		LastModifiedDateTime: "2017-01-02T00:00:00Z",
		Template:             &arlo.TemplateRef{ID: 7, GUID: "tpl-7"},
	}

	outcome, err := r.ReconcileEvent(ctx, testPlatform, ev)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	key := catalog.Key{Platform: testPlatform, SourceID: 1, SourceGUID: "guid-1"}
	first, err := store.GetEvent(ctx, key)
	require.NoError(t, err)

	ev.Code = "EV-1b"
	ev.Template = nil
	outcome, err = r.ReconcileEvent(ctx, testPlatform, ev)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)

	second, err := store.GetEvent(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "EV-1b", second.Code)
	assert.Nil(t, second.Template)
	assert.True(t, fixedNow.Equal(second.Modified))

	count, err := store.Count(ctx, testPlatform, catalog.Events)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, []string{"Created: EV-1", "Updated: EV-1b"}, rec.Lines())
}

func TestReconcile_LabelsByKind(t *testing.T) {
	t.Parallel()

	rec := &trace.Recorder{}
	r := NewReconciler(NewFileRecordStore(t.TempDir()), WithProgress(rec))
	ctx := context.Background()

	_, err := r.ReconcileTemplate(ctx, testPlatform, &arlo.EventTemplate{
		TemplateID: 7, UniqueIdentifier: "tpl-7", Name: "First Aid", Code: "FA",
	})
	require.NoError(t, err)
	_, err = r.ReconcileOnlineActivity(ctx, testPlatform, &arlo.OnlineActivity{
		OnlineActivityID: 3, UniqueIdentifier: "oa-3", Name: "Fire Safety", Code: "FS",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Created: First Aid", "Created: Fire Safety"}, rec.Lines())
}

func TestReconcile_SameIDDifferentGUIDIsDistinct(t *testing.T) {
	t.Parallel()

	store := NewFileRecordStore(t.TempDir())
	r := NewReconciler(store)
	ctx := context.Background()

	for _, guid := range []string{"a", "b"} {
		outcome, err := r.ReconcileTemplate(ctx, testPlatform, &arlo.EventTemplate{TemplateID: 1, UniqueIdentifier: guid})
		require.NoError(t, err)
		assert.Equal(t, OutcomeCreated, outcome)
	}
	outcome, err := r.ReconcileTemplate(ctx, "other.arlo.co", &arlo.EventTemplate{TemplateID: 1, UniqueIdentifier: "a"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	count, err := store.Count(ctx, testPlatform, catalog.EventTemplates)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestReconcile_NilResource(t *testing.T) {
	t.Parallel()

	r := NewReconciler(NewFileRecordStore(t.TempDir()))
	ctx := context.Background()

	_, err := r.ReconcileEvent(ctx, testPlatform, nil)
	assert.Error(t, err)
	_, err = r.ReconcileTemplate(ctx, testPlatform, nil)
	assert.Error(t, err)
	_, err = r.ReconcileOnlineActivity(ctx, testPlatform, nil)
	assert.Error(t, err)
}

func TestReconcile_OlderSnapshotKeepsNewerCopy(t *testing.T) {
	t.Parallel()

	rec := &trace.Recorder{}
	store := NewFileRecordStore(t.TempDir())
	r := NewReconciler(store, WithProgress(rec))
	ctx := context.Background()

	tpl := &arlo.EventTemplate{
		TemplateID: 9, UniqueIdentifier: "tpl-9", Name: "New name", Code: "NEW",
		LastModifiedDateTime: "2017-02-01T00:00:00Z",
	}
	outcome, err := r.ReconcileTemplate(ctx, testPlatform, tpl)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	stale := &arlo.EventTemplate{
		TemplateID: 9, UniqueIdentifier: "tpl-9", Name: "Old name", Code: "OLD",
		LastModifiedDateTime: "2017-01-01T00:00:00Z",
	}
	outcome, err = r.ReconcileTemplate(ctx, testPlatform, stale)
	require.NoError(t, err)
	assert.Equal(t, OutcomeStale, outcome)

	got, err := store.GetTemplate(ctx, catalog.Key{Platform: testPlatform, SourceID: 9, SourceGUID: "tpl-9"})
	require.NoError(t, err)
	assert.Equal(t, "New name", got.Name)
	assert.Equal(t, "2017-02-01T00:00:00Z", got.Source.Modified)

	assert.Equal(t, []string{"Created: New name", "Kept newer copy: Old name"}, rec.Lines())
}
