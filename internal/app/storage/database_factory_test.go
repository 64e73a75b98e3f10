package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enrolsync/arlo-catalog-sync/database"
	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	"github.com/enrolsync/arlo-catalog-sync/internal/config"
)

func TestNewDatabaseFactory_NilConfig(t *testing.T) {
	t.Parallel()

	_, err := NewDatabaseFactory(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config cannot be nil")
}

func TestDatabaseFactory_WithPool(t *testing.T) {
	t.Parallel()

	pool, cleanup := database.SetupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	cfg := &config.Config{Tenants: []config.TenantConfig{{Platform: "demo.arlo.co", Username: "sync"}}}

	f, err := NewDatabaseFactory(ctx, cfg, WithPool(pool))
	require.NoError(t, err)
	assert.Same(t, pool, f.Pool())

	stateSvc, err := f.CreateStateService(ctx)
	require.NoError(t, err)
	require.NoError(t, stateSvc.Initialize(ctx, cfg.Tenants))
	tenants, err := stateSvc.ListEnabledTenants(ctx)
	require.NoError(t, err)
	require.Len(t, tenants, 1)

	store, err := f.CreateRecordStore(ctx)
	require.NoError(t, err)
	count, err := store.Count(ctx, "demo.arlo.co", catalog.OnlineActivities)
	require.NoError(t, err)
	assert.Zero(t, count)

	apiStatus, err := f.CreateAPIStatus(ctx)
	require.NoError(t, err)
	require.NoError(t, apiStatus.Set(ctx, 200))
	code, err := apiStatus.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 200, code)

	// an injected pool outlives the factory
	f.Cleanup()
	require.NoError(t, pool.Ping(ctx))
}
