// Package v1 provides the admin API handlers for tenants, checkpoints, manual syncs and the API status flag.
package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/enrolsync/arlo-catalog-sync/internal/api/common"
	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
	"github.com/enrolsync/arlo-catalog-sync/internal/status"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/coordinator"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/state"
)

// Dependencies are the services the admin API works on
type Dependencies struct {
	Driver    coordinator.Driver
	State     state.SyncStateService
	APIStatus status.APIStatus
}

// TenantResponse is one registered tenant
type TenantResponse struct {
	Platform     string     `json:"platform"`
	Enabled      bool       `json:"enabled"`
	NextPullTime *time.Time `json:"next_pull_time,omitempty"`
}

// CheckpointResponse is the sync position of one collection
type CheckpointResponse struct {
	Collection           catalog.CollectionType `json:"collection"`
	LatestSourceModified string                 `json:"latest_source_modified,omitempty"`
	NextPullTime         *time.Time             `json:"next_pull_time,omitempty"`
	EndPullTime          *time.Time             `json:"end_pull_time,omitempty"`
	LastPullTime         *time.Time             `json:"last_pull_time,omitempty"`
	LastError            string                 `json:"last_error,omitempty"`
	ErrorCount           int                    `json:"error_count"`
}

// APIStatusRequest sets the API status flag
type APIStatusRequest struct {
	Status *int `json:"status"`
}

// APIStatusResponse reports the API status flag
type APIStatusResponse struct {
	Status  int  `json:"status"`
	Blocked bool `json:"blocked"`
}

// Routes holds the handlers of the v1 admin API
type Routes struct {
	deps Dependencies
}

// NewRoutes creates a new Routes instance
func NewRoutes(deps Dependencies) *Routes {
	return &Routes{deps: deps}
}

// Router creates the v1 admin router
func Router(deps Dependencies) http.Handler {
	routes := NewRoutes(deps)

	r := chi.NewRouter()

	r.Get("/tenants", routes.listTenants)
	r.Get("/tenants/{platform}/checkpoints", routes.listCheckpoints)
	r.Post("/tenants/{platform}/sync", routes.syncTenant)

	r.Get("/api-status", routes.getAPIStatus)
	r.Put("/api-status", routes.putAPIStatus)

	return r
}

func (rt *Routes) listTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := rt.deps.State.ListEnabledTenants(r.Context())
	if err != nil {
		logger.Errorw("Failed to list tenants", "error", err)
		common.WriteErrorResponse(w, "failed to list tenants", http.StatusInternalServerError)
		return
	}

	resp := make([]TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		resp = append(resp, TenantResponse{
			Platform:     t.Platform,
			Enabled:      t.Enabled,
			NextPullTime: timePtr(t.NextPullTime),
		})
	}
	common.WriteJSONResponse(w, resp, http.StatusOK)
}

func (rt *Routes) listCheckpoints(w http.ResponseWriter, r *http.Request) {
	platform, err := common.GetPlatformParam(r, "platform")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	checkpoints, err := rt.deps.State.ListCheckpoints(r.Context(), platform)
	if err != nil {
		if errors.Is(err, state.ErrTenantNotFound) {
			common.WriteErrorResponse(w, err.Error(), http.StatusNotFound)
			return
		}
		logger.Errorw("Failed to list checkpoints", "platform", platform, "error", err)
		common.WriteErrorResponse(w, "failed to list checkpoints", http.StatusInternalServerError)
		return
	}

	resp := make([]CheckpointResponse, 0, len(checkpoints))
	for _, cp := range checkpoints {
		resp = append(resp, CheckpointResponse{
			Collection:           cp.Type,
			LatestSourceModified: cp.LatestSourceModified,
			NextPullTime:         timePtr(cp.NextPullTime),
			EndPullTime:          timePtr(cp.EndPullTime),
			LastPullTime:         timePtr(cp.LastPullTime),
			LastError:            cp.LastError,
			ErrorCount:           cp.ErrorCount,
		})
	}
	common.WriteJSONResponse(w, resp, http.StatusOK)
}

// syncTenant runs a sync of one tenant, or one of its collections, in the request.
// A run that fails part way answers 502 with whatever was committed reported.
func (rt *Routes) syncTenant(w http.ResponseWriter, r *http.Request) {
	platform, err := common.GetPlatformParam(r, "platform")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	manual := false
	if v := r.URL.Query().Get("manual"); v != "" {
		manual, err = strconv.ParseBool(v)
		if err != nil {
			common.WriteErrorResponse(w, "manual must be a boolean", http.StatusBadRequest)
			return
		}
	}

	if c := r.URL.Query().Get("collection"); c != "" {
		collectionType, err := catalog.ParseCollectionType(c)
		if err != nil {
			common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := rt.deps.Driver.ProcessCollection(r.Context(), platform, collectionType, manual)
		if err != nil {
			writeSyncError(w, err)
			return
		}
		common.WriteJSONResponse(w, result, http.StatusOK)
		return
	}

	report, err := rt.deps.Driver.ProcessTenant(r.Context(), platform, manual)
	if err != nil {
		if report == nil {
			writeSyncError(w, err)
			return
		}
		common.WriteJSONResponse(w, report, http.StatusBadGateway)
		return
	}
	common.WriteJSONResponse(w, report, http.StatusOK)
}

func writeSyncError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, coordinator.ErrSyncInProgress):
		common.WriteErrorResponse(w, err.Error(), http.StatusConflict)
	case errors.Is(err, coordinator.ErrTenantNotConfigured):
		common.WriteErrorResponse(w, err.Error(), http.StatusNotFound)
	default:
		common.WriteErrorResponse(w, err.Error(), http.StatusBadGateway)
	}
}

func (rt *Routes) getAPIStatus(w http.ResponseWriter, r *http.Request) {
	code, err := rt.deps.APIStatus.Get(r.Context())
	if err != nil {
		logger.Errorw("Failed to read API status", "error", err)
		common.WriteErrorResponse(w, "failed to read API status", http.StatusInternalServerError)
		return
	}
	common.WriteJSONResponse(w, APIStatusResponse{Status: code, Blocked: status.IsBlocked(code)}, http.StatusOK)
}

func (rt *Routes) putAPIStatus(w http.ResponseWriter, r *http.Request) {
	var req APIStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == nil {
		common.WriteErrorResponse(w, "body must be {\"status\": <integer>}", http.StatusBadRequest)
		return
	}
	if *req.Status < 0 || *req.Status > 599 {
		common.WriteErrorResponse(w, "status must be between 0 and 599", http.StatusBadRequest)
		return
	}

	if err := rt.deps.APIStatus.Set(r.Context(), *req.Status); err != nil {
		logger.Errorw("Failed to set API status", "error", err)
		common.WriteErrorResponse(w, "failed to set API status", http.StatusInternalServerError)
		return
	}
	logger.Infow("API status set", "status", *req.Status)
	common.WriteJSONResponse(w, APIStatusResponse{Status: *req.Status, Blocked: status.IsBlocked(*req.Status)}, http.StatusOK)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
