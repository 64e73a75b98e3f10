// Package storage creates the storage-dependent components of the sync service as a family,
// so the checkpoint store, the record store and the API status flag always share a backend.
package storage

import (
	"context"
	"fmt"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
	"github.com/enrolsync/arlo-catalog-sync/internal/status"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/coordinator"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/state"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/writer"
)

//go:generate mockgen -destination=mocks/mock_factory.go -package=mocks github.com/enrolsync/arlo-catalog-sync/internal/app/storage Factory

// Factory creates storage-dependent components.
type Factory interface {
	// CreateStateService creates the checkpoint and tenant store.
	CreateStateService(ctx context.Context) (state.SyncStateService, error)

	// CreateRecordStore creates the catalog record store.
	CreateRecordStore(ctx context.Context) (writer.RecordStore, error)

	// CreateAPIStatus creates the API status flag.
	CreateAPIStatus(ctx context.Context) (status.APIStatus, error)

	// Cleanup releases any resources held by this factory.
	// For database factories, this closes the connection pool.
	Cleanup()
}

// RunLockProvider is implemented by factories whose storage needs runs in different
// processes excluded from each other.
type RunLockProvider interface {
	RunLock() coordinator.RunLocker
}

// NewStorageFactory creates a storage factory based on the configured storage type.
func NewStorageFactory(ctx context.Context, cfg *config.Config) (Factory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	switch cfg.GetStorageType() {
	case config.StorageTypeDatabase:
		return NewDatabaseFactory(ctx, cfg)
	case config.StorageTypeFile:
		return NewFileFactory(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.GetStorageType())
	}
}
