package common

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlatformParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantValue  string
		wantErrMsg string
	}{
		{name: "plain host", path: "/t/demo.arlo.co", wantValue: "demo.arlo.co"},
		{name: "host with port", path: "/t/localhost:8443", wantValue: "localhost:8443"},
		{name: "upper case is folded", path: "/t/Demo.Arlo.CO", wantValue: "demo.arlo.co"},
		{name: "encoded dash", path: "/t/my%2Dtenant.arlo.co", wantValue: "my-tenant.arlo.co"},
		{name: "encoded slash", path: "/t/demo%2Farlo", wantErrMsg: "invalid character '/'"},
		{name: "encoded space", path: "/t/demo%20arlo", wantErrMsg: "invalid character ' '"},
		{name: "underscore", path: "/t/demo_arlo", wantErrMsg: "invalid character '_'"},
		{name: "bad encoding", path: "/t/demo%zz", wantErrMsg: "invalid URL encoding in platform"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotValue string
			var gotErr error
			r := chi.NewRouter()
			r.Get("/t/{platform}", func(_ http.ResponseWriter, req *http.Request) {
				gotValue, gotErr = GetPlatformParam(req, "platform")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.URL = &url.URL{Path: tt.path, RawPath: tt.path}
			r.ServeHTTP(httptest.NewRecorder(), req)

			if tt.wantErrMsg != "" {
				require.Error(t, gotErr)
				assert.Contains(t, gotErr.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tt.wantValue, gotValue)
		})
	}
}

func TestGetPlatformParam_Empty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/t/", nil)
	_, err := GetPlatformParam(req, "platform")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform cannot be empty")
}

func TestWriteErrorResponse(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteErrorResponse(rr, "tenant not found", http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "tenant not found", body.Error)
}
