package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enrolsync/arlo-catalog-sync/internal/trace"
)

// stubCoordinator records lifecycle calls and blocks in Start until stopped
type stubCoordinator struct {
	mu       stdsync.Mutex
	started  chan struct{}
	stopped  chan struct{}
	stops    int
	startErr error
}

func newStubCoordinator() *stubCoordinator {
	return &stubCoordinator{started: make(chan struct{}), stopped: make(chan struct{})}
}

func (s *stubCoordinator) Start(ctx context.Context) error {
	close(s.started)
	if s.startErr != nil {
		return s.startErr
	}
	select {
	case <-ctx.Done():
	case <-s.stopped:
	}
	return nil
}

func (s *stubCoordinator) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	if s.stops == 1 {
		close(s.stopped)
	}
	return nil
}

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func waitForServer(t *testing.T, url string) *http.Response {
	t.Helper()
	var resp *http.Response
	require.Eventually(t, func() bool {
		r, err := http.Get(url) //nolint:gosec,noctx
		if err != nil {
			return false
		}
		resp = r
		return true
	}, 5*time.Second, 20*time.Millisecond)
	return resp
}

func TestNewSyncApp_RequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := NewSyncApp(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config cannot be nil")
}

func TestNewSyncApp_InvalidSchedule(t *testing.T) {
	t.Parallel()

	cfg := createTestConfig(t, "http://localhost/")
	cfg.Sync.Schedule = "every now and then"

	_, err := NewSyncApp(context.Background(), WithConfig(cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create coordinator")
}

func TestSyncApp_StartStop(t *testing.T) {
	t.Parallel()

	cfg := createTestConfig(t, "http://localhost/")
	coord := newStubCoordinator()
	addr := freeAddress(t)

	app, err := NewSyncApp(context.Background(),
		WithConfig(cfg),
		WithAddress(addr),
		WithCoordinator(coord),
		WithProgress(trace.Null),
	)
	require.NoError(t, err)
	assert.Same(t, cfg, app.GetConfig())
	assert.Equal(t, addr, app.GetHTTPServer().Addr)
	require.NotNil(t, app.GetComponents().Driver)

	startErr := make(chan error, 1)
	go func() { startErr <- app.Start() }()

	resp := waitForServer(t, fmt.Sprintf("http://%s/health", addr))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	select {
	case <-coord.started:
	case <-time.After(5 * time.Second):
		t.Fatal("coordinator was not started")
	}

	require.NoError(t, app.Stop(5*time.Second))
	require.NoError(t, app.Stop(5*time.Second))
	assert.Equal(t, 1, coord.stops)

	select {
	case err := <-startErr:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestSyncApp_CoordinatorFailureKeepsServing(t *testing.T) {
	t.Parallel()

	coord := newStubCoordinator()
	coord.startErr = errors.New("state store unavailable")
	addr := freeAddress(t)

	app, err := NewSyncApp(context.Background(),
		WithConfig(createTestConfig(t, "http://localhost/")),
		WithAddress(addr),
		WithCoordinator(coord),
	)
	require.NoError(t, err)

	go func() { _ = app.Start() }()
	defer func() { _ = app.Stop(5 * time.Second) }()

	resp := waitForServer(t, fmt.Sprintf("http://%s/health", addr))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSyncApp_ManualSyncThroughAPI(t *testing.T) {
	t.Parallel()

	srv := fakeArloServer(t)
	addr := freeAddress(t)

	app, err := NewSyncApp(context.Background(),
		WithConfig(createTestConfig(t, srv.URL+"/")),
		WithAddress(addr),
		WithCoordinator(newStubCoordinator()),
		WithClock(fixedClock),
		WithProgress(trace.Null),
	)
	require.NoError(t, err)
	require.NoError(t, app.GetComponents().Driver.Initialize(context.Background()))

	go func() { _ = app.Start() }()
	defer func() { _ = app.Stop(5 * time.Second) }()

	base := fmt.Sprintf("http://%s", addr)
	waitForServer(t, base+"/health").Body.Close()

	resp, err := http.Post(base+"/v1/tenants/"+testPlatform+"/sync?collection=events&manual=true", "application/json", nil) //nolint:noctx
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Platform string `json:"platform"`
		Pages    int    `json:"pages"`
		Created  int    `json:"created"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, testPlatform, result.Platform)
	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, 1, result.Created)

	cpResp, err := http.Get(base + "/v1/tenants/" + testPlatform + "/checkpoints") //nolint:noctx
	require.NoError(t, err)
	defer cpResp.Body.Close()
	require.Equal(t, http.StatusOK, cpResp.StatusCode)

	var checkpoints []map[string]any
	require.NoError(t, json.NewDecoder(cpResp.Body).Decode(&checkpoints))
	require.Len(t, checkpoints, 1)
	assert.Equal(t, "events", checkpoints[0]["collection"])
	assert.Equal(t, "2017-01-02T00:00:00Z", checkpoints[0]["latest_source_modified"])
}
