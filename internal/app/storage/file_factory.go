package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
	"github.com/enrolsync/arlo-catalog-sync/internal/status"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/coordinator"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/state"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/writer"
)

// runLockFile is the data directory file a run holds an exclusive lock on
const runLockFile = "sync.lock"

// FileFactory creates components persisted as JSON files under the data directory.
type FileFactory struct {
	config  *config.Config
	baseDir string
	opts    []state.Option
}

var (
	_ Factory         = (*FileFactory)(nil)
	_ RunLockProvider = (*FileFactory)(nil)
)

// NewFileFactory creates a new file-based storage factory, creating the data directory if needed.
func NewFileFactory(cfg *config.Config, opts ...state.Option) (*FileFactory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	baseDir := cfg.GetFileStorageBaseDir()
	if err := os.MkdirAll(baseDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", baseDir, err)
	}

	logger.Infow("Creating file-based storage factory", "base_dir", baseDir)

	return &FileFactory{
		config:  cfg,
		baseDir: baseDir,
		opts:    opts,
	}, nil
}

// CreateStateService creates a file-based checkpoint store.
func (f *FileFactory) CreateStateService(_ context.Context) (state.SyncStateService, error) {
	logger.Debug("Creating file-based state service")
	return state.NewStateService(f.config, nil, f.opts...)
}

// CreateRecordStore creates a file-based record store.
func (f *FileFactory) CreateRecordStore(_ context.Context) (writer.RecordStore, error) {
	logger.Debug("Creating file-based record store")
	return writer.NewRecordStore(f.config, nil)
}

// CreateAPIStatus creates an API status flag kept in the data directory.
func (f *FileFactory) CreateAPIStatus(_ context.Context) (status.APIStatus, error) {
	return status.NewFileStatus(f.baseDir), nil
}

// RunLock returns a file lock in the data directory, so a one-off sync and a running
// server never rewrite the same JSON files at once.
func (f *FileFactory) RunLock() coordinator.RunLocker {
	return flock.New(filepath.Join(f.baseDir, runLockFile))
}

// Cleanup is a no-op for file storage.
func (*FileFactory) Cleanup() {}
