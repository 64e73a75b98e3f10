package writer

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
)

// NewRecordStore creates the RecordStore matching the configured storage type
func NewRecordStore(cfg *config.Config, pool *pgxpool.Pool) (RecordStore, error) {
	switch cfg.GetStorageType() {
	case config.StorageTypeFile:
		return NewFileRecordStore(cfg.GetFileStorageBaseDir()), nil
	case config.StorageTypeDatabase:
		if pool == nil {
			return nil, fmt.Errorf("database pool is required for database storage")
		}
		return NewDBRecordStore(pool), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.GetStorageType())
	}
}
