package status

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	// StatusFileName is the name of the status file
	StatusFileName = "api_status.json"
)

// fileStatus implements APIStatus on top of a JSON file so the flag survives restarts
type fileStatus struct {
	mu       sync.Mutex
	filePath string
	now      func() time.Time
}

// NewFileStatus creates a file-backed APIStatus stored under basePath
func NewFileStatus(basePath string) APIStatus {
	return &fileStatus{
		filePath: filepath.Join(basePath, StatusFileName),
		now:      time.Now,
	}
}

func (f *fileStatus) Get(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap, err := f.load()
	if err != nil {
		return Unknown, err
	}
	return snap.Status, nil
}

func (f *fileStatus) Set(_ context.Context, code int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.filePath), 0750); err != nil {
		return fmt.Errorf("failed to create status directory: %w", err)
	}

	data, err := json.MarshalIndent(Snapshot{Status: code, UpdatedAt: f.now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal api status: %w", err)
	}

	// Write to temporary file first for atomic operation
	tempPath := f.filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary status file: %w", err)
	}

	if err := os.Rename(tempPath, f.filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename status file: %w", err)
	}

	return nil
}

// load returns an empty snapshot when the file does not exist yet
func (f *fileStatus) load() (*Snapshot, error) {
	// #nosec G304 -- filePath is built from the configured data directory
	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Snapshot{}, nil
		}
		return nil, fmt.Errorf("failed to read status file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status file: %w", err)
	}
	return &snap, nil
}
