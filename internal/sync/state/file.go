package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	"github.com/enrolsync/arlo-catalog-sync/internal/config"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
)

// StateFileName is the file the file-based state service persists to
const StateFileName = "sync_state.json"

type fileTenant struct {
	Enabled bool `json:"enabled"`
}

// fileDocument is the on-disk layout
type fileDocument struct {
	Tenants     map[string]*fileTenant                            `json:"tenants"`
	Checkpoints map[string]map[catalog.CollectionType]*Checkpoint `json:"checkpoints"`
}

// fileStateService re-reads the document on every call. Another process (a one-off
// sync next to the server) may have written it in between.
type fileStateService struct {
	filePath string
	now      func() time.Time

	mu sync.Mutex
}

// NewFileStateService creates a state service that keeps all state in a JSON file under baseDir
func NewFileStateService(baseDir string, opts ...Option) SyncStateService {
	o := newOptions(opts)
	return &fileStateService{
		filePath: filepath.Join(baseDir, StateFileName),
		now:      o.now,
	}
}

func (f *fileStateService) Initialize(_ context.Context, tenants []config.TenantConfig) error {
	doc, release, err := f.lockDocument()
	if err != nil {
		return err
	}
	defer release()

	configured := make(map[string]bool, len(tenants))
	for _, t := range tenants {
		configured[t.Platform] = true
		doc.Tenants[t.Platform] = &fileTenant{Enabled: t.IsEnabled()}
	}
	for platform, t := range doc.Tenants {
		if !configured[platform] && t.Enabled {
			logger.Infof("Tenant '%s' is no longer configured, disabling", platform)
			t.Enabled = false
		}
	}

	return f.save(doc)
}

func (f *fileStateService) ListEnabledTenants(_ context.Context) ([]Tenant, error) {
	doc, release, err := f.lockDocument()
	if err != nil {
		return nil, err
	}
	defer release()

	result := make([]Tenant, 0, len(doc.Tenants))
	for platform, t := range doc.Tenants {
		if !t.Enabled {
			continue
		}
		result = append(result, Tenant{
			Platform:     platform,
			Enabled:      true,
			NextPullTime: earliestNextPull(doc.Checkpoints[platform]),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.NextPullTime.Equal(b.NextPullTime) {
			return a.NextPullTime.Before(b.NextPullTime)
		}
		return a.Platform < b.Platform
	})
	return result, nil
}

// earliestNextPull is zero when there are no checkpoints or any has never drained
func earliestNextPull(checkpoints map[catalog.CollectionType]*Checkpoint) time.Time {
	var earliest time.Time
	if len(checkpoints) == 0 {
		return earliest
	}
	for _, cp := range checkpoints {
		if cp.NextPullTime.IsZero() {
			return time.Time{}
		}
		if earliest.IsZero() || cp.NextPullTime.Before(earliest) {
			earliest = cp.NextPullTime
		}
	}
	return earliest
}

func (f *fileStateService) GetOrCreate(
	_ context.Context,
	platform string,
	collectionType catalog.CollectionType,
) (*Checkpoint, error) {
	doc, release, err := f.lockDocument()
	if err != nil {
		return nil, err
	}
	defer release()

	if cp, ok := doc.Checkpoints[platform][collectionType]; ok {
		return cp.Clone(), nil
	}

	if _, ok := doc.Tenants[platform]; !ok {
		doc.Tenants[platform] = &fileTenant{Enabled: true}
	}
	if doc.Checkpoints[platform] == nil {
		doc.Checkpoints[platform] = make(map[catalog.CollectionType]*Checkpoint)
	}
	cp := &Checkpoint{Type: collectionType, Platform: platform}
	doc.Checkpoints[platform][collectionType] = cp

	if err := f.save(doc); err != nil {
		return nil, err
	}
	return cp.Clone(), nil
}

func (f *fileStateService) Commit(_ context.Context, checkpoint *Checkpoint, hasMorePages bool) (*Checkpoint, error) {
	if checkpoint == nil {
		return nil, fmt.Errorf("checkpoint cannot be nil")
	}

	return f.update(checkpoint.Platform, checkpoint.Type, func(stored *Checkpoint) {
		applyCommit(stored, checkpoint, hasMorePages, f.now())
	})
}

func (f *fileStateService) RecordFailure(
	_ context.Context,
	platform string,
	collectionType catalog.CollectionType,
	cause error,
) error {
	_, err := f.update(platform, collectionType, func(stored *Checkpoint) {
		stored.ErrorCount++
		stored.LastError = errorMessage(cause)
	})
	return err
}

func (f *fileStateService) RecordSuccess(_ context.Context, platform string, collectionType catalog.CollectionType) error {
	_, err := f.update(platform, collectionType, func(stored *Checkpoint) {
		stored.ErrorCount = 0
		stored.LastError = ""
	})
	return err
}

func (f *fileStateService) ListCheckpoints(_ context.Context, platform string) ([]*Checkpoint, error) {
	doc, release, err := f.lockDocument()
	if err != nil {
		return nil, err
	}
	defer release()

	if _, ok := doc.Tenants[platform]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, platform)
	}

	result := make([]*Checkpoint, 0, len(doc.Checkpoints[platform]))
	for _, cp := range doc.Checkpoints[platform] {
		result = append(result, cp.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result, nil
}

func (f *fileStateService) update(
	platform string,
	collectionType catalog.CollectionType,
	fn func(stored *Checkpoint),
) (*Checkpoint, error) {
	doc, release, err := f.lockDocument()
	if err != nil {
		return nil, err
	}
	defer release()

	stored, ok := doc.Checkpoints[platform][collectionType]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrCheckpointNotFound, platform, collectionType)
	}

	fn(stored)
	if err := f.save(doc); err != nil {
		return nil, err
	}
	return stored.Clone(), nil
}

// lockDocument takes the state file lock and reads the current document.
// The caller must invoke release when done with it.
func (f *fileStateService) lockDocument() (doc *fileDocument, release func(), err error) {
	f.mu.Lock()
	if err := os.MkdirAll(filepath.Dir(f.filePath), 0750); err != nil {
		f.mu.Unlock()
		return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	lock := flock.New(f.filePath + ".lock")
	if err := lock.Lock(); err != nil {
		f.mu.Unlock()
		return nil, nil, fmt.Errorf("failed to lock sync state: %w", err)
	}
	release = func() {
		if err := lock.Unlock(); err != nil {
			logger.Warnf("Failed to unlock sync state: %v", err)
		}
		f.mu.Unlock()
	}

	doc, err = f.load()
	if err != nil {
		release()
		return nil, nil, err
	}
	return doc, release, nil
}

func (f *fileStateService) load() (*fileDocument, error) {
	doc := &fileDocument{}
	// #nosec G304 -- filePath is built from the configured data directory
	data, err := os.ReadFile(f.filePath)
	switch {
	case os.IsNotExist(err):
		logger.Debugf("No sync state found at %s, starting empty", f.filePath)
	case err != nil:
		return nil, fmt.Errorf("failed to read sync state: %w", err)
	default:
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sync state: %w", err)
		}
	}

	if doc.Tenants == nil {
		doc.Tenants = make(map[string]*fileTenant)
	}
	if doc.Checkpoints == nil {
		doc.Checkpoints = make(map[string]map[catalog.CollectionType]*Checkpoint)
	}

	return doc, nil
}

func (f *fileStateService) save(doc *fileDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sync state: %w", err)
	}

	// Write to temporary file first for atomic operation
	tempPath := f.filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary state file: %w", err)
	}
	if err := os.Rename(tempPath, f.filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename state file: %w", err)
	}
	return nil
}
