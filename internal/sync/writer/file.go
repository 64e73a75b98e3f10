package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
)

// RecordsDirName is the directory under the data dir holding one file per platform
const RecordsDirName = "records"

// platformRecords is the on-disk layout of a platform file, keyed by Key.String()
type platformRecords struct {
	Events           map[string]*catalog.EventRecord          `json:"events"`
	Templates        map[string]*catalog.TemplateRecord       `json:"templates"`
	OnlineActivities map[string]*catalog.OnlineActivityRecord `json:"onlineActivities"`
}

// fileRecordStore reads the platform file on every call and holds a file lock
// across each read-modify-write, so separate processes sharing the data
// directory never overwrite each other's records.
type fileRecordStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileRecordStore creates a RecordStore keeping a JSON file per platform under baseDir
func NewFileRecordStore(baseDir string) RecordStore {
	return &fileRecordStore{dir: filepath.Join(baseDir, RecordsDirName)}
}

func (f *fileRecordStore) UpsertEvent(_ context.Context, rec *catalog.EventRecord) (Outcome, error) {
	if rec == nil {
		return "", fmt.Errorf("event record cannot be nil")
	}
	return upsertFile(f, rec.Key, &rec.ID, rec,
		func(p *platformRecords) map[string]*catalog.EventRecord { return p.Events },
		func(r *catalog.EventRecord) (uuid.UUID, string) { return r.ID, r.Source.Modified },
	)
}

func (f *fileRecordStore) UpsertTemplate(_ context.Context, rec *catalog.TemplateRecord) (Outcome, error) {
	if rec == nil {
		return "", fmt.Errorf("template record cannot be nil")
	}
	return upsertFile(f, rec.Key, &rec.ID, rec,
		func(p *platformRecords) map[string]*catalog.TemplateRecord { return p.Templates },
		func(r *catalog.TemplateRecord) (uuid.UUID, string) { return r.ID, r.Source.Modified },
	)
}

func (f *fileRecordStore) UpsertOnlineActivity(_ context.Context, rec *catalog.OnlineActivityRecord) (Outcome, error) {
	if rec == nil {
		return "", fmt.Errorf("online activity record cannot be nil")
	}
	return upsertFile(f, rec.Key, &rec.ID, rec,
		func(p *platformRecords) map[string]*catalog.OnlineActivityRecord { return p.OnlineActivities },
		func(r *catalog.OnlineActivityRecord) (uuid.UUID, string) { return r.ID, r.Source.Modified },
	)
}

// upsertFile stores rec under key. An existing record keeps its ID; a new one gets a fresh ID.
// A stored record with a later remote modification time is left as it is.
func upsertFile[T any](
	f *fileRecordStore,
	key catalog.Key,
	id *uuid.UUID,
	rec *T,
	collection func(*platformRecords) map[string]*T,
	identity func(*T) (uuid.UUID, string),
) (Outcome, error) {
	records, release, err := f.lockPlatform(key.Platform)
	if err != nil {
		return "", err
	}
	defer release()

	k := key.String()
	target := collection(records)
	outcome := OutcomeCreated
	if previous, exists := target[k]; exists {
		previousID, previousModified := identity(previous)
		*id = previousID
		_, incomingModified := identity(rec)
		if isStale(incomingModified, previousModified) {
			return OutcomeStale, nil
		}
		outcome = OutcomeUpdated
	} else {
		*id = uuid.New()
	}

	stored := *rec
	target[k] = &stored
	if err := f.save(key.Platform, records); err != nil {
		return "", err
	}
	return outcome, nil
}

func (f *fileRecordStore) GetEvent(_ context.Context, key catalog.Key) (*catalog.EventRecord, error) {
	return getFile(f, key, func(p *platformRecords) map[string]*catalog.EventRecord { return p.Events })
}

func (f *fileRecordStore) GetTemplate(_ context.Context, key catalog.Key) (*catalog.TemplateRecord, error) {
	return getFile(f, key, func(p *platformRecords) map[string]*catalog.TemplateRecord { return p.Templates })
}

func (f *fileRecordStore) GetOnlineActivity(_ context.Context, key catalog.Key) (*catalog.OnlineActivityRecord, error) {
	return getFile(f, key, func(p *platformRecords) map[string]*catalog.OnlineActivityRecord {
		return p.OnlineActivities
	})
}

func getFile[T any](f *fileRecordStore, key catalog.Key, collection func(*platformRecords) map[string]*T) (*T, error) {
	records, release, err := f.lockPlatform(key.Platform)
	if err != nil {
		return nil, err
	}
	defer release()

	rec, ok := collection(records)[key.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, key)
	}
	result := *rec
	return &result, nil
}

func (f *fileRecordStore) Count(_ context.Context, platform string, collectionType catalog.CollectionType) (int64, error) {
	records, release, err := f.lockPlatform(platform)
	if err != nil {
		return 0, err
	}
	defer release()

	switch collectionType {
	case catalog.Events:
		return int64(len(records.Events)), nil
	case catalog.EventTemplates:
		return int64(len(records.Templates)), nil
	case catalog.OnlineActivities:
		return int64(len(records.OnlineActivities)), nil
	default:
		return 0, fmt.Errorf("unknown collection type %q", collectionType)
	}
}

func (f *fileRecordStore) filePath(platform string) string {
	return filepath.Join(f.dir, sanitizePlatform(platform)+".json")
}

// sanitizePlatform keeps platform hostnames safe for use as file names
func sanitizePlatform(platform string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, platform)
}

// lockPlatform takes the lock on the platform file and reads its current content.
// The caller must invoke release when done with it.
func (f *fileRecordStore) lockPlatform(platform string) (records *platformRecords, release func(), err error) {
	f.mu.Lock()
	if err := os.MkdirAll(f.dir, 0750); err != nil {
		f.mu.Unlock()
		return nil, nil, fmt.Errorf("failed to create records directory: %w", err)
	}

	lock := flock.New(f.filePath(platform) + ".lock")
	if err := lock.Lock(); err != nil {
		f.mu.Unlock()
		return nil, nil, fmt.Errorf("failed to lock records for %s: %w", platform, err)
	}
	release = func() {
		if err := lock.Unlock(); err != nil {
			logger.Warnf("Failed to unlock records for %s: %v", platform, err)
		}
		f.mu.Unlock()
	}

	records, err = f.load(platform)
	if err != nil {
		release()
		return nil, nil, err
	}
	return records, release, nil
}

func (f *fileRecordStore) load(platform string) (*platformRecords, error) {
	path := f.filePath(platform)
	records := &platformRecords{}
	// #nosec G304 -- path is built from the configured data directory and a sanitized platform
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		logger.Debugf("No records found for %s at %s, starting empty", platform, path)
	case err != nil:
		return nil, fmt.Errorf("failed to read records for %s: %w", platform, err)
	default:
		if err := json.Unmarshal(data, records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal records for %s: %w", platform, err)
		}
	}

	if records.Events == nil {
		records.Events = make(map[string]*catalog.EventRecord)
	}
	if records.Templates == nil {
		records.Templates = make(map[string]*catalog.TemplateRecord)
	}
	if records.OnlineActivities == nil {
		records.OnlineActivities = make(map[string]*catalog.OnlineActivityRecord)
	}

	return records, nil
}

func (f *fileRecordStore) save(platform string, records *platformRecords) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records for %s: %w", platform, err)
	}

	path := f.filePath(platform)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary records file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename records file: %w", err)
	}
	return nil
}
