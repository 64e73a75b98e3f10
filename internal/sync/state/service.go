// Package state contains the sync checkpoints and tenant registrations the service persists.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/enrolsync/arlo-catalog-sync/internal/arlo"
	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	"github.com/enrolsync/arlo-catalog-sync/internal/config"
)

var (
	// ErrCheckpointNotFound is returned when a checkpoint is updated before it was created
	ErrCheckpointNotFound = errors.New("checkpoint not found")

	// ErrTenantNotFound is returned when a platform has never been registered
	ErrTenantNotFound = errors.New("tenant not found")
)

// Checkpoint is the persisted sync position of one collection of one tenant
type Checkpoint struct {
	Type     catalog.CollectionType `json:"type"`
	Platform string                 `json:"platform"`

	// LatestSourceModified is the remote modification timestamp of the newest
	// record applied so far. Empty means nothing has been pulled.
	LatestSourceModified string `json:"latestSourceModified,omitempty"`

	// NextPullTime is set when a page sequence drains; the zero value means never
	NextPullTime time.Time `json:"nextPullTime"`
	EndPullTime  time.Time `json:"endPullTime"`
	LastPullTime time.Time `json:"lastPullTime"`

	LastError  string `json:"lastError,omitempty"`
	ErrorCount int    `json:"errorCount"`
}

// Clone returns a copy of the checkpoint
func (c *Checkpoint) Clone() *Checkpoint {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Tenant is a platform registered for synchronization
type Tenant struct {
	Platform string `json:"platform"`
	Enabled  bool   `json:"enabled"`

	// NextPullTime is the earliest next pull time over the tenant's checkpoints,
	// zero when any collection has never drained
	NextPullTime time.Time `json:"nextPullTime"`
}

// SyncStateService persists checkpoints and tenants.
//
//go:generate mockgen -destination=mocks/mock_sync_state_service.go -package=mocks github.com/enrolsync/arlo-catalog-sync/internal/sync/state SyncStateService
type SyncStateService interface {
	// Initialize registers the configured tenants. Tenants missing from the list
	// are disabled, never deleted, so their checkpoints survive.
	Initialize(ctx context.Context, tenants []config.TenantConfig) error
	// ListEnabledTenants returns enabled tenants, those pulled longest ago first.
	ListEnabledTenants(ctx context.Context) ([]Tenant, error)
	// GetOrCreate returns the checkpoint for platform and collectionType,
	// creating an empty one if none exists.
	GetOrCreate(ctx context.Context, platform string, collectionType catalog.CollectionType) (*Checkpoint, error)
	// Commit persists the watermark of checkpoint and stamps LastPullTime with now.
	// When hasMorePages is false NextPullTime and EndPullTime are stamped too.
	Commit(ctx context.Context, checkpoint *Checkpoint, hasMorePages bool) (*Checkpoint, error)
	// RecordFailure increments the error count and stores the error message.
	RecordFailure(ctx context.Context, platform string, collectionType catalog.CollectionType, cause error) error
	// RecordSuccess clears the last error and resets the error count.
	RecordSuccess(ctx context.Context, platform string, collectionType catalog.CollectionType) error
	// ListCheckpoints returns every checkpoint of platform.
	ListCheckpoints(ctx context.Context, platform string) ([]*Checkpoint, error)
}

// Option configures a state service
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used to stamp pull times
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// applyCommit stamps the pull times on stored from checkpoint. The watermark never moves backwards.
func applyCommit(stored, checkpoint *Checkpoint, hasMorePages bool, now time.Time) {
	stored.LatestSourceModified = arlo.LaterTimestamp(stored.LatestSourceModified, checkpoint.LatestSourceModified)
	if now.After(stored.LastPullTime) {
		stored.LastPullTime = now
	}
	if !hasMorePages {
		stored.NextPullTime = now
		stored.EndPullTime = now
	}
}

func errorMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
