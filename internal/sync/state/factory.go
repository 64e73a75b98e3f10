package state

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
)

// NewStateService creates a SyncStateService based on the configured storage type.
//
// For file-based storage, it returns a service that keeps checkpoints in a JSON file
// under the configured data directory.
//
// For database storage, it returns a service that stores checkpoints directly in
// PostgreSQL. The pool parameter must not be nil when database storage is configured.
func NewStateService(cfg *config.Config, pool *pgxpool.Pool, opts ...Option) (SyncStateService, error) {
	switch cfg.GetStorageType() {
	case config.StorageTypeDatabase:
		if pool == nil {
			return nil, fmt.Errorf("database pool is required when storage type is database")
		}
		return NewDBStateService(pool, opts...), nil
	case config.StorageTypeFile:
		return NewFileStateService(cfg.GetFileStorageBaseDir(), opts...), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.GetStorageType())
	}
}
