package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	"github.com/enrolsync/arlo-catalog-sync/internal/config"
	"github.com/enrolsync/arlo-catalog-sync/internal/db/sqlc"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
)

type dbStateService struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewDBStateService creates a new database-backed state service
func NewDBStateService(pool *pgxpool.Pool, opts ...Option) SyncStateService {
	o := newOptions(opts)
	return &dbStateService{
		pool: pool,
		now:  o.now,
	}
}

func (d *dbStateService) Initialize(ctx context.Context, tenants []config.TenantConfig) error {
	return d.inTx(ctx, func(queries *sqlc.Queries) error {
		now := d.now().UTC()
		platforms := make([]string, len(tenants))
		for i, t := range tenants {
			platforms[i] = t.Platform
			err := queries.UpsertTenant(ctx, sqlc.UpsertTenantParams{
				Platform: t.Platform,
				Enabled:  t.IsEnabled(),
				Now:      now,
			})
			if err != nil {
				return fmt.Errorf("failed to register tenant %s: %w", t.Platform, err)
			}
		}

		return queries.DisableTenantsNotInList(ctx, sqlc.DisableTenantsNotInListParams{
			Now:       now,
			Platforms: platforms,
		})
	})
}

func (d *dbStateService) ListEnabledTenants(ctx context.Context) ([]Tenant, error) {
	rows, err := sqlc.New(d.pool).ListEnabledTenants(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Tenant, 0, len(rows))
	for _, row := range rows {
		result = append(result, Tenant{
			Platform:     row.Platform,
			Enabled:      row.Enabled,
			NextPullTime: fromNullTime(row.NextPullTime),
		})
	}
	return result, nil
}

func (d *dbStateService) GetOrCreate(
	ctx context.Context,
	platform string,
	collectionType catalog.CollectionType,
) (*Checkpoint, error) {
	var result *Checkpoint
	err := d.inTx(ctx, func(queries *sqlc.Queries) error {
		if err := queries.EnsureTenant(ctx, sqlc.EnsureTenantParams{Platform: platform, Now: d.now().UTC()}); err != nil {
			return err
		}
		err := queries.EnsureCheckpoint(ctx, sqlc.EnsureCheckpointParams{
			ID:             uuid.New(),
			Platform:       platform,
			CollectionType: string(collectionType),
		})
		if err != nil {
			return err
		}

		row, err := queries.GetCheckpoint(ctx, sqlc.GetCheckpointParams{
			Platform:       platform,
			CollectionType: string(collectionType),
		})
		if err != nil {
			return err
		}
		result = dbCheckpointToCheckpoint(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (d *dbStateService) Commit(ctx context.Context, checkpoint *Checkpoint, hasMorePages bool) (*Checkpoint, error) {
	if checkpoint == nil {
		return nil, fmt.Errorf("checkpoint cannot be nil")
	}

	return d.update(ctx, checkpoint.Platform, checkpoint.Type, func(stored *Checkpoint) {
		applyCommit(stored, checkpoint, hasMorePages, d.now().UTC())
	})
}

func (d *dbStateService) RecordFailure(
	ctx context.Context,
	platform string,
	collectionType catalog.CollectionType,
	cause error,
) error {
	msg := errorMessage(cause)
	affected, err := sqlc.New(d.pool).RecordCheckpointFailure(ctx, sqlc.RecordCheckpointFailureParams{
		LastError:      &msg,
		Platform:       platform,
		CollectionType: string(collectionType),
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrCheckpointNotFound, platform, collectionType)
	}
	return nil
}

func (d *dbStateService) RecordSuccess(ctx context.Context, platform string, collectionType catalog.CollectionType) error {
	affected, err := sqlc.New(d.pool).RecordCheckpointSuccess(ctx, sqlc.RecordCheckpointSuccessParams{
		Platform:       platform,
		CollectionType: string(collectionType),
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrCheckpointNotFound, platform, collectionType)
	}
	return nil
}

func (d *dbStateService) ListCheckpoints(ctx context.Context, platform string) ([]*Checkpoint, error) {
	queries := sqlc.New(d.pool)

	if _, err := queries.GetTenant(ctx, platform); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, platform)
		}
		return nil, err
	}

	rows, err := queries.ListCheckpoints(ctx, platform)
	if err != nil {
		return nil, err
	}

	result := make([]*Checkpoint, 0, len(rows))
	for _, row := range rows {
		result = append(result, dbCheckpointToCheckpoint(row))
	}
	return result, nil
}

// update applies fn to the stored checkpoint under a row lock
func (d *dbStateService) update(
	ctx context.Context,
	platform string,
	collectionType catalog.CollectionType,
	fn func(stored *Checkpoint),
) (*Checkpoint, error) {
	var result *Checkpoint
	err := d.inTx(ctx, func(queries *sqlc.Queries) error {
		row, err := queries.GetCheckpointForUpdate(ctx, sqlc.GetCheckpointForUpdateParams{
			Platform:       platform,
			CollectionType: string(collectionType),
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: %s/%s", ErrCheckpointNotFound, platform, collectionType)
			}
			return err
		}

		stored := dbCheckpointToCheckpoint(row)
		fn(stored)

		_, err = queries.UpdateCheckpoint(ctx, sqlc.UpdateCheckpointParams{
			LatestSourceModified: toNullString(stored.LatestSourceModified),
			NextPullTime:         toNullTime(stored.NextPullTime),
			EndPullTime:          toNullTime(stored.EndPullTime),
			LastPullTime:         toNullTime(stored.LastPullTime),
			LastError:            toNullString(stored.LastError),
			ErrorCount:           int32(stored.ErrorCount),
			Platform:             platform,
			CollectionType:       string(collectionType),
		})
		if err != nil {
			return err
		}
		result = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (d *dbStateService) inTx(ctx context.Context, fn func(queries *sqlc.Queries) error) error {
	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warnf("Failed to roll back state transaction: %v", err)
		}
	}()

	if err := fn(sqlc.New(d.pool).WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func dbCheckpointToCheckpoint(row sqlc.CollectionCheckpoint) *Checkpoint {
	cp := &Checkpoint{
		Type:         catalog.CollectionType(row.CollectionType),
		Platform:     row.Platform,
		NextPullTime: fromNullTime(row.NextPullTime),
		EndPullTime:  fromNullTime(row.EndPullTime),
		LastPullTime: fromNullTime(row.LastPullTime),
		ErrorCount:   int(row.ErrorCount),
	}
	if row.LatestSourceModified != nil {
		cp.LatestSourceModified = *row.LatestSourceModified
	}
	if row.LastError != nil {
		cp.LastError = *row.LastError
	}
	return cp
}

func toNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toNullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func fromNullTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
