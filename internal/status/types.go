// Package status tracks the process-wide Arlo API status flag consulted before each sync round.
package status

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Unknown is the status before any request has been observed
const Unknown = 0

// APIStatus holds the last HTTP status observed from (or set for) the remote API.
//
//go:generate mockgen -destination=mocks/mock_api_status.go -package=mocks github.com/enrolsync/arlo-catalog-sync/internal/status APIStatus
type APIStatus interface {
	// Get returns the current status code, or Unknown when none was recorded
	Get(ctx context.Context) (int, error)
	// Set records a new status code
	Set(ctx context.Context, code int) error
}

// Snapshot is the persisted form of the status flag
type Snapshot struct {
	Status    int       `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsBlocked reports whether code means requests should not be attempted.
// Credentials rejected by the API (401) or an account without API access (403)
// will not recover without operator action.
func IsBlocked(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// memoryStatus is an in-process APIStatus
type memoryStatus struct {
	mu   sync.RWMutex
	code int
}

// NewMemoryStatus creates an APIStatus that lives only for the life of the process
func NewMemoryStatus() APIStatus {
	return &memoryStatus{}
}

func (m *memoryStatus) Get(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.code, nil
}

func (m *memoryStatus) Set(_ context.Context, code int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.code = code
	return nil
}
