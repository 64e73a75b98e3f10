package app

import (
	"github.com/enrolsync/arlo-catalog-sync/internal/app/storage"
	"github.com/enrolsync/arlo-catalog-sync/internal/status"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/coordinator"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/state"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/writer"
)

// Components groups the sync components shared by the server and the one-off CLI runs
type Components struct {
	// Driver runs sync passes
	Driver coordinator.Driver

	// StateService holds checkpoints and tenants
	StateService state.SyncStateService

	// RecordStore holds the synced catalog records
	RecordStore writer.RecordStore

	// APIStatus is the process-wide remote API status flag
	APIStatus status.APIStatus

	// StorageFactory owns the storage resources
	StorageFactory storage.Factory
}

// Close releases the storage resources
func (c *Components) Close() {
	if c.StorageFactory != nil {
		c.StorageFactory.Cleanup()
	}
}
