package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
	"github.com/enrolsync/arlo-catalog-sync/internal/db"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
	"github.com/enrolsync/arlo-catalog-sync/internal/status"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/state"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/writer"
)

// DatabaseFactory creates components backed by PostgreSQL.
type DatabaseFactory struct {
	config *config.Config
	pool   *pgxpool.Pool
	opts   []state.Option

	// ownsPool is false when the pool was injected and must outlive the factory
	ownsPool bool
}

var _ Factory = (*DatabaseFactory)(nil)

// DatabaseFactoryOption is a functional option for configuring the DatabaseFactory
type DatabaseFactoryOption func(*DatabaseFactory)

// WithPool uses an existing pool instead of connecting from the configuration.
// The factory does not close an injected pool.
func WithPool(pool *pgxpool.Pool) DatabaseFactoryOption {
	return func(f *DatabaseFactory) {
		f.pool = pool
	}
}

// WithStateOptions passes options to the state service
func WithStateOptions(opts ...state.Option) DatabaseFactoryOption {
	return func(f *DatabaseFactory) {
		f.opts = append(f.opts, opts...)
	}
}

// NewDatabaseFactory creates a new database-backed storage factory.
func NewDatabaseFactory(ctx context.Context, cfg *config.Config, opts ...DatabaseFactoryOption) (*DatabaseFactory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	factory := &DatabaseFactory{config: cfg}
	for _, opt := range opts {
		opt(factory)
	}

	if factory.pool == nil {
		if cfg.Database == nil {
			return nil, fmt.Errorf("database configuration is required for database storage type")
		}

		logger.Info("Creating database-backed storage factory")
		pool, err := db.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		factory.pool = pool
		factory.ownsPool = true
	}

	return factory, nil
}

// Pool returns the connection pool shared by the created components
func (d *DatabaseFactory) Pool() *pgxpool.Pool {
	return d.pool
}

// CreateStateService creates a database-backed checkpoint store.
func (d *DatabaseFactory) CreateStateService(_ context.Context) (state.SyncStateService, error) {
	logger.Debug("Creating database-backed state service")
	return state.NewStateService(d.dbConfig(), d.pool, d.opts...)
}

// CreateRecordStore creates a database-backed record store.
func (d *DatabaseFactory) CreateRecordStore(_ context.Context) (writer.RecordStore, error) {
	logger.Debug("Creating database-backed record store")
	return writer.NewRecordStore(d.dbConfig(), d.pool)
}

// CreateAPIStatus creates an API status flag stored in the database.
func (d *DatabaseFactory) CreateAPIStatus(_ context.Context) (status.APIStatus, error) {
	return status.NewDBStatus(d.pool), nil
}

// Cleanup closes the connection pool when the factory opened it.
func (d *DatabaseFactory) Cleanup() {
	if d.pool != nil && d.ownsPool {
		logger.Info("Closing database connection pool")
		d.pool.Close()
	}
}

// dbConfig forces the database storage type for an injected pool
func (d *DatabaseFactory) dbConfig() *config.Config {
	if d.config.GetStorageType() == config.StorageTypeDatabase {
		return d.config
	}
	cfg := *d.config
	cfg.Storage = &config.StorageConfig{Type: config.StorageTypeDatabase}
	return &cfg
}
