// Package writer reconciles decoded Arlo resources into local catalog records
package writer

import (
	"context"
	"errors"

	"github.com/enrolsync/arlo-catalog-sync/internal/arlo"
	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
)

// ErrRecordNotFound is returned when no record exists for a key
var ErrRecordNotFound = errors.New("record not found")

// Outcome tells what an upsert did to the stored record
type Outcome string

const (
	// OutcomeCreated means no record existed for the key
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means the existing record was overwritten
	OutcomeUpdated Outcome = "updated"
	// OutcomeStale means the stored record carries a later remote modification
	// time than the incoming snapshot, so nothing was written
	OutcomeStale Outcome = "stale"
)

// RecordStore persists catalog records keyed by (platform, source id, source guid).
// Every Upsert inserts when the key is absent and updates in place when the
// incoming Source.Modified is not older than the stored one. The record ID is
// set to the stored row's ID in all three outcomes.
//
//go:generate mockgen -destination=mocks/mock_record_store.go -package=mocks github.com/enrolsync/arlo-catalog-sync/internal/sync/writer RecordStore
type RecordStore interface {
	UpsertEvent(ctx context.Context, rec *catalog.EventRecord) (Outcome, error)
	UpsertTemplate(ctx context.Context, rec *catalog.TemplateRecord) (Outcome, error)
	UpsertOnlineActivity(ctx context.Context, rec *catalog.OnlineActivityRecord) (Outcome, error)

	GetEvent(ctx context.Context, key catalog.Key) (*catalog.EventRecord, error)
	GetTemplate(ctx context.Context, key catalog.Key) (*catalog.TemplateRecord, error)
	GetOnlineActivity(ctx context.Context, key catalog.Key) (*catalog.OnlineActivityRecord, error)

	// Count returns the number of records of collectionType stored for platform
	Count(ctx context.Context, platform string, collectionType catalog.CollectionType) (int64, error)
}

// isStale reports whether a snapshot modified at incoming must not replace one modified at stored
func isStale(incoming, stored string) bool {
	return arlo.CompareTimestamps(incoming, stored) < 0
}
