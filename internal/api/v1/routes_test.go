package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/enrolsync/arlo-catalog-sync/internal/api/common"
	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	statusmocks "github.com/enrolsync/arlo-catalog-sync/internal/status/mocks"
	pkgsync "github.com/enrolsync/arlo-catalog-sync/internal/sync"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/coordinator"
	coordmocks "github.com/enrolsync/arlo-catalog-sync/internal/sync/coordinator/mocks"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/state"
	statemocks "github.com/enrolsync/arlo-catalog-sync/internal/sync/state/mocks"
)

const testPlatform = "demo.arlo.co"

type routeMocks struct {
	driver    *coordmocks.MockDriver
	state     *statemocks.MockSyncStateService
	apiStatus *statusmocks.MockAPIStatus
}

func newRouter(t *testing.T) (http.Handler, *routeMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &routeMocks{
		driver:    coordmocks.NewMockDriver(ctrl),
		state:     statemocks.NewMockSyncStateService(ctrl),
		apiStatus: statusmocks.NewMockAPIStatus(ctrl),
	}
	return Router(Dependencies{Driver: m.driver, State: m.state, APIStatus: m.apiStatus}), m
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body common.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Error
}

func TestListTenants(t *testing.T) {
	t.Parallel()

	h, m := newRouter(t)
	next := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	m.state.EXPECT().ListEnabledTenants(gomock.Any()).Return([]state.Tenant{
		{Platform: "new.arlo.co", Enabled: true},
		{Platform: testPlatform, Enabled: true, NextPullTime: next},
	}, nil)

	rr := serve(h, http.MethodGet, "/tenants", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var got []TenantResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "new.arlo.co", got[0].Platform)
	assert.Nil(t, got[0].NextPullTime)
	require.NotNil(t, got[1].NextPullTime)
	assert.True(t, next.Equal(*got[1].NextPullTime))
}

func TestListTenants_Error(t *testing.T) {
	t.Parallel()

	h, m := newRouter(t)
	m.state.EXPECT().ListEnabledTenants(gomock.Any()).Return(nil, errors.New("connection refused"))

	rr := serve(h, http.MethodGet, "/tenants", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "failed to list tenants", decodeError(t, rr))
}

func TestListCheckpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		setup      func(*routeMocks)
		wantStatus int
		wantLen    int
	}{
		{
			name: "returns checkpoints",
			path: "/tenants/demo.arlo.co/checkpoints",
			setup: func(m *routeMocks) {
				m.state.EXPECT().ListCheckpoints(gomock.Any(), testPlatform).Return([]*state.Checkpoint{
					{Type: catalog.Events, Platform: testPlatform, LatestSourceModified: "2017-01-02T00:00:00Z"},
					{Type: catalog.EventTemplates, Platform: testPlatform, LastError: "503", ErrorCount: 2},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantLen:    2,
		},
		{
			name: "unknown tenant",
			path: "/tenants/other.arlo.co/checkpoints",
			setup: func(m *routeMocks) {
				m.state.EXPECT().ListCheckpoints(gomock.Any(), "other.arlo.co").
					Return(nil, fmt.Errorf("%w: other.arlo.co", state.ErrTenantNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid platform",
			path:       "/tenants/bad_platform/checkpoints",
			setup:      func(*routeMocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "store failure",
			path: "/tenants/demo.arlo.co/checkpoints",
			setup: func(m *routeMocks) {
				m.state.EXPECT().ListCheckpoints(gomock.Any(), testPlatform).Return(nil, errors.New("timeout"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, m := newRouter(t)
			tt.setup(m)

			rr := serve(h, http.MethodGet, tt.path, "")
			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got []CheckpointResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, catalog.Events, got[0].Collection)
			assert.Nil(t, got[0].LastPullTime)
			assert.Equal(t, 2, got[1].ErrorCount)
		})
	}
}

func TestSyncTenant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		target     string
		setup      func(*routeMocks)
		wantStatus int
		wantError  string
	}{
		{
			name:   "whole tenant",
			target: "/tenants/demo.arlo.co/sync",
			setup: func(m *routeMocks) {
				m.driver.EXPECT().ProcessTenant(gomock.Any(), testPlatform, false).
					Return(&coordinator.TenantReport{Platform: testPlatform}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "manual single collection",
			target: "/tenants/demo.arlo.co/sync?collection=onlineactivities&manual=true",
			setup: func(m *routeMocks) {
				m.driver.EXPECT().ProcessCollection(gomock.Any(), testPlatform, catalog.OnlineActivities, true).
					Return(&pkgsync.Result{Platform: testPlatform, Collection: catalog.OnlineActivities, Pages: 2}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown collection",
			target:     "/tenants/demo.arlo.co/sync?collection=registrations",
			setup:      func(*routeMocks) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "unknown collection type",
		},
		{
			name:       "bad manual flag",
			target:     "/tenants/demo.arlo.co/sync?manual=maybe",
			setup:      func(*routeMocks) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "manual must be a boolean",
		},
		{
			name:   "run in progress",
			target: "/tenants/demo.arlo.co/sync",
			setup: func(m *routeMocks) {
				m.driver.EXPECT().ProcessTenant(gomock.Any(), testPlatform, false).
					Return(nil, coordinator.ErrSyncInProgress)
			},
			wantStatus: http.StatusConflict,
			wantError:  "already in progress",
		},
		{
			name:   "tenant not configured",
			target: "/tenants/demo.arlo.co/sync?collection=events",
			setup: func(m *routeMocks) {
				m.driver.EXPECT().ProcessCollection(gomock.Any(), testPlatform, catalog.Events, false).
					Return(nil, fmt.Errorf("%w: %s", coordinator.ErrTenantNotConfigured, testPlatform))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "partial failure reports what ran",
			target: "/tenants/demo.arlo.co/sync",
			setup: func(m *routeMocks) {
				m.driver.EXPECT().ProcessTenant(gomock.Any(), testPlatform, false).
					Return(&coordinator.TenantReport{Platform: testPlatform, Errors: []string{"boom"}}, errors.New("boom"))
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, m := newRouter(t)
			tt.setup(m)

			rr := serve(h, http.MethodPost, tt.target, "")
			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Contains(t, decodeError(t, rr), tt.wantError)
			}
		})
	}
}

func TestAPIStatus(t *testing.T) {
	t.Parallel()

	t.Run("get reports blocked codes", func(t *testing.T) {
		t.Parallel()

		h, m := newRouter(t)
		m.apiStatus.EXPECT().Get(gomock.Any()).Return(http.StatusUnauthorized, nil)

		rr := serve(h, http.MethodGet, "/api-status", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var got APIStatusResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, APIStatusResponse{Status: http.StatusUnauthorized, Blocked: true}, got)
	})

	t.Run("put sets the flag", func(t *testing.T) {
		t.Parallel()

		h, m := newRouter(t)
		m.apiStatus.EXPECT().Set(gomock.Any(), http.StatusOK).Return(nil)

		rr := serve(h, http.MethodPut, "/api-status", `{"status": 200}`)
		require.Equal(t, http.StatusOK, rr.Code)

		var got APIStatusResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.False(t, got.Blocked)
	})

	t.Run("put rejects a non integer", func(t *testing.T) {
		t.Parallel()

		h, _ := newRouter(t)
		for _, body := range []string{`{"status": "ok"}`, `{}`, `not json`, `{"status": 1.5}`} {
			rr := serve(h, http.MethodPut, "/api-status", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		}
	})

	t.Run("put rejects out of range codes", func(t *testing.T) {
		t.Parallel()

		h, _ := newRouter(t)
		rr := serve(h, http.MethodPut, "/api-status", `{"status": 700}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("store errors", func(t *testing.T) {
		t.Parallel()

		h, m := newRouter(t)
		m.apiStatus.EXPECT().Get(gomock.Any()).Return(0, errors.New("read-only filesystem"))
		m.apiStatus.EXPECT().Set(gomock.Any(), 403).Return(errors.New("read-only filesystem"))

		assert.Equal(t, http.StatusInternalServerError, serve(h, http.MethodGet, "/api-status", "").Code)
		assert.Equal(t, http.StatusInternalServerError, serve(h, http.MethodPut, "/api-status", `{"status": 403}`).Code)
	})
}
