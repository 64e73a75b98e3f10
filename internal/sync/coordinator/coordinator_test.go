package coordinator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/enrolsync/arlo-catalog-sync/internal/sync/coordinator"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/coordinator/mocks"
)

func TestCoordinator_New(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		wantErr string
	}{
		{name: "empty spec uses default", spec: ""},
		{name: "six field spec", spec: "0 */5 * * * *"},
		{name: "five field spec", spec: "*/5 * * * *"},
		{name: "descriptor", spec: "@every 10m"},
		{name: "invalid spec", spec: "every now and then", wantErr: "invalid schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			c, err := coordinator.New(mocks.NewMockDriver(ctrl), tt.spec)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestCoordinator_Stop_BeforeStart(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	c, err := coordinator.New(mocks.NewMockDriver(ctrl), "@every 1h")
	require.NoError(t, err)

	assert.NoError(t, c.Stop())

	// no driver calls are expected once stopped
	assert.NoError(t, c.Start(context.Background()))
}

func TestCoordinator_StopWhileStarting(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	driver := mocks.NewMockDriver(ctrl)
	driver.EXPECT().Initialize(gomock.Any()).Return(nil).AnyTimes()
	driver.EXPECT().ProcessAll(gomock.Any()).Return(&coordinator.Report{}, nil).AnyTimes()

	c, err := coordinator.New(driver, "@every 1h")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- c.Start(context.Background()) }()
	require.NoError(t, c.Stop())

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("start did not return after stop")
	}
}

func TestCoordinator_Start_RunsInitialPass(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	driver := mocks.NewMockDriver(ctrl)

	passed := make(chan struct{})
	gomock.InOrder(
		driver.EXPECT().Initialize(gomock.Any()).Return(nil),
		driver.EXPECT().ProcessAll(gomock.Any()).DoAndReturn(func(context.Context) (*coordinator.Report, error) {
			close(passed)
			return &coordinator.Report{}, nil
		}),
	)

	c, err := coordinator.New(driver, "@every 1h")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- c.Start(context.Background()) }()

	select {
	case <-passed:
	case <-time.After(5 * time.Second):
		t.Fatal("initial pass did not run")
	}

	require.NoError(t, c.Stop())
	require.NoError(t, <-errCh)
}

func TestCoordinator_Start_FollowsSchedule(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	driver := mocks.NewMockDriver(ctrl)

	passes := make(chan struct{}, 10)
	driver.EXPECT().Initialize(gomock.Any()).Return(nil)
	driver.EXPECT().ProcessAll(gomock.Any()).DoAndReturn(func(context.Context) (*coordinator.Report, error) {
		passes <- struct{}{}
		return nil, errors.New("tenant a.arlo.co failed")
	}).MinTimes(2)

	c, err := coordinator.New(driver, "@every 1s")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Start(ctx) }()

	for i := 0; i < 2; i++ {
		select {
		case <-passes:
		case <-time.After(5 * time.Second):
			t.Fatalf("pass %d did not run", i+1)
		}
	}

	cancel()
	require.NoError(t, <-errCh)
}

func TestCoordinator_Start_InitializeError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	driver := mocks.NewMockDriver(ctrl)
	driver.EXPECT().Initialize(gomock.Any()).Return(errors.New("failed to initialize tenants: disk full"))

	c, err := coordinator.New(driver, "@every 1h")
	require.NoError(t, err)

	err = c.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	// Stop after a failed start returns immediately
	assert.NoError(t, c.Stop())
}

func TestCoordinator_SkipsPassWhenBusy(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	driver := mocks.NewMockDriver(ctrl)

	passed := make(chan struct{})
	driver.EXPECT().Initialize(gomock.Any()).Return(nil)
	driver.EXPECT().ProcessAll(gomock.Any()).DoAndReturn(func(context.Context) (*coordinator.Report, error) {
		close(passed)
		return nil, coordinator.ErrSyncInProgress
	})

	c, err := coordinator.New(driver, "@every 1h")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Start(ctx) }()

	<-passed
	cancel()
	require.NoError(t, <-errCh)
}
