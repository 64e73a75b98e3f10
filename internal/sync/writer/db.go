package writer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	"github.com/enrolsync/arlo-catalog-sync/internal/db/sqlc"
)

type dbRecordStore struct {
	pool *pgxpool.Pool
}

// NewDBRecordStore creates a RecordStore backed by the catalog tables
func NewDBRecordStore(pool *pgxpool.Pool) RecordStore {
	return &dbRecordStore{pool: pool}
}

func (d *dbRecordStore) UpsertEvent(ctx context.Context, rec *catalog.EventRecord) (Outcome, error) {
	if rec == nil {
		return "", fmt.Errorf("event record cannot be nil")
	}
	tplID, tplGUID := templateColumns(rec.Template)
	row, err := sqlc.New(d.pool).UpsertEvent(ctx, sqlc.UpsertEventParams{
		ID:                 uuid.New(),
		Platform:           rec.Platform,
		SourceID:           rec.SourceID,
		SourceGuid:         rec.SourceGUID,
		Code:               rec.Code,
		StartDateTime:      rec.StartDateTime,
		FinishDateTime:     rec.FinishDateTime,
		SourceStatus:       rec.Source.Status,
		SourceCreated:      rec.Source.Created,
		SourceModified:     rec.Source.Modified,
		SourceTemplateID:   tplID,
		SourceTemplateGuid: tplGUID,
		Modified:           rec.Modified,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return d.keepStored(&rec.ID, func() (uuid.UUID, error) {
			stored, err := d.GetEvent(ctx, rec.Key)
			if err != nil {
				return uuid.Nil, err
			}
			return stored.ID, nil
		})
	}
	if err != nil {
		return "", err
	}
	rec.ID = row.ID
	return outcomeOf(row.Created), nil
}

func (d *dbRecordStore) UpsertTemplate(ctx context.Context, rec *catalog.TemplateRecord) (Outcome, error) {
	if rec == nil {
		return "", fmt.Errorf("template record cannot be nil")
	}
	row, err := sqlc.New(d.pool).UpsertTemplate(ctx, sqlc.UpsertTemplateParams{
		ID:             uuid.New(),
		Platform:       rec.Platform,
		SourceID:       rec.SourceID,
		SourceGuid:     rec.SourceGUID,
		Name:           rec.Name,
		Code:           rec.Code,
		SourceStatus:   rec.Source.Status,
		SourceCreated:  rec.Source.Created,
		SourceModified: rec.Source.Modified,
		Modified:       rec.Modified,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return d.keepStored(&rec.ID, func() (uuid.UUID, error) {
			stored, err := d.GetTemplate(ctx, rec.Key)
			if err != nil {
				return uuid.Nil, err
			}
			return stored.ID, nil
		})
	}
	if err != nil {
		return "", err
	}
	rec.ID = row.ID
	return outcomeOf(row.Created), nil
}

func (d *dbRecordStore) UpsertOnlineActivity(ctx context.Context, rec *catalog.OnlineActivityRecord) (Outcome, error) {
	if rec == nil {
		return "", fmt.Errorf("online activity record cannot be nil")
	}
	tplID, tplGUID := templateColumns(rec.Template)
	row, err := sqlc.New(d.pool).UpsertOnlineActivity(ctx, sqlc.UpsertOnlineActivityParams{
		ID:                 uuid.New(),
		Platform:           rec.Platform,
		SourceID:           rec.SourceID,
		SourceGuid:         rec.SourceGUID,
		Name:               rec.Name,
		Code:               rec.Code,
		ContentUri:         rec.ContentURI,
		SourceStatus:       rec.Source.Status,
		SourceCreated:      rec.Source.Created,
		SourceModified:     rec.Source.Modified,
		SourceTemplateID:   tplID,
		SourceTemplateGuid: tplGUID,
		Modified:           rec.Modified,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return d.keepStored(&rec.ID, func() (uuid.UUID, error) {
			stored, err := d.GetOnlineActivity(ctx, rec.Key)
			if err != nil {
				return uuid.Nil, err
			}
			return stored.ID, nil
		})
	}
	if err != nil {
		return "", err
	}
	rec.ID = row.ID
	return outcomeOf(row.Created), nil
}

func (d *dbRecordStore) GetEvent(ctx context.Context, key catalog.Key) (*catalog.EventRecord, error) {
	row, err := sqlc.New(d.pool).GetEvent(ctx, sqlc.GetEventParams{
		Platform:   key.Platform,
		SourceID:   key.SourceID,
		SourceGuid: key.SourceGUID,
	})
	if err != nil {
		return nil, notFound(key, err)
	}
	return &catalog.EventRecord{
		ID:             row.ID,
		Key:            key,
		Code:           row.Code,
		StartDateTime:  row.StartDateTime,
		FinishDateTime: row.FinishDateTime,
		Source:         catalog.Source{Status: row.SourceStatus, Created: row.SourceCreated, Modified: row.SourceModified},
		Template:       templateRef(row.SourceTemplateID, row.SourceTemplateGuid),
		Modified:       row.Modified,
	}, nil
}

func (d *dbRecordStore) GetTemplate(ctx context.Context, key catalog.Key) (*catalog.TemplateRecord, error) {
	row, err := sqlc.New(d.pool).GetTemplate(ctx, sqlc.GetTemplateParams{
		Platform:   key.Platform,
		SourceID:   key.SourceID,
		SourceGuid: key.SourceGUID,
	})
	if err != nil {
		return nil, notFound(key, err)
	}
	return &catalog.TemplateRecord{
		ID:       row.ID,
		Key:      key,
		Name:     row.Name,
		Code:     row.Code,
		Source:   catalog.Source{Status: row.SourceStatus, Created: row.SourceCreated, Modified: row.SourceModified},
		Modified: row.Modified,
	}, nil
}

func (d *dbRecordStore) GetOnlineActivity(ctx context.Context, key catalog.Key) (*catalog.OnlineActivityRecord, error) {
	row, err := sqlc.New(d.pool).GetOnlineActivity(ctx, sqlc.GetOnlineActivityParams{
		Platform:   key.Platform,
		SourceID:   key.SourceID,
		SourceGuid: key.SourceGUID,
	})
	if err != nil {
		return nil, notFound(key, err)
	}
	return &catalog.OnlineActivityRecord{
		ID:         row.ID,
		Key:        key,
		Name:       row.Name,
		Code:       row.Code,
		ContentURI: row.ContentUri,
		Source:     catalog.Source{Status: row.SourceStatus, Created: row.SourceCreated, Modified: row.SourceModified},
		Template:   templateRef(row.SourceTemplateID, row.SourceTemplateGuid),
		Modified:   row.Modified,
	}, nil
}

func (d *dbRecordStore) Count(ctx context.Context, platform string, collectionType catalog.CollectionType) (int64, error) {
	queries := sqlc.New(d.pool)
	switch collectionType {
	case catalog.Events:
		return queries.CountEvents(ctx, platform)
	case catalog.EventTemplates:
		return queries.CountTemplates(ctx, platform)
	case catalog.OnlineActivities:
		return queries.CountOnlineActivities(ctx, platform)
	default:
		return 0, fmt.Errorf("unknown collection type %q", collectionType)
	}
}

// keepStored handles an upsert that returned no row: the conflict update was
// refused because the stored record is newer.
func (*dbRecordStore) keepStored(id *uuid.UUID, lookup func() (uuid.UUID, error)) (Outcome, error) {
	storedID, err := lookup()
	if err != nil {
		return "", fmt.Errorf("failed to read newer stored record: %w", err)
	}
	*id = storedID
	return OutcomeStale, nil
}

func outcomeOf(created bool) Outcome {
	if created {
		return OutcomeCreated
	}
	return OutcomeUpdated
}

func notFound(key catalog.Key, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, key)
	}
	return err
}

func templateColumns(ref *catalog.TemplateRef) (*int64, *string) {
	if ref == nil {
		return nil, nil
	}
	id, guid := ref.SourceID, ref.SourceGUID
	return &id, &guid
}

func templateRef(id *int64, guid *string) *catalog.TemplateRef {
	if id == nil || guid == nil {
		return nil
	}
	return &catalog.TemplateRef{SourceID: *id, SourceGUID: *guid}
}
