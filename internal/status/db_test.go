package status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enrolsync/arlo-catalog-sync/database"
)

func TestDBStatus(t *testing.T) {
	t.Parallel()

	pool, cleanup := database.SetupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	s := NewDBStatus(pool)

	code, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, Unknown, code)

	require.NoError(t, s.Set(ctx, 200))
	require.NoError(t, s.Set(ctx, 401))

	code, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 401, code)
	assert.True(t, IsBlocked(code))
}
