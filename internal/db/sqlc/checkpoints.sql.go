package sqlc

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const ensureCheckpoint = `-- name: EnsureCheckpoint :exec
INSERT INTO collection_checkpoint (id, platform, collection_type)
VALUES ($1, $2, $3)
ON CONFLICT (platform, collection_type) DO NOTHING
`

type EnsureCheckpointParams struct {
	ID             uuid.UUID `json:"id"`
	Platform       string    `json:"platform"`
	CollectionType string    `json:"collection_type"`
}

func (q *Queries) EnsureCheckpoint(ctx context.Context, arg EnsureCheckpointParams) error {
	_, err := q.db.Exec(ctx, ensureCheckpoint, arg.ID, arg.Platform, arg.CollectionType)
	return err
}

const getCheckpoint = `-- name: GetCheckpoint :one
SELECT id, platform, collection_type, latest_source_modified, next_pull_time,
       end_pull_time, last_pull_time, last_error, error_count
FROM collection_checkpoint
WHERE platform = $1 AND collection_type = $2
`

type GetCheckpointParams struct {
	Platform       string `json:"platform"`
	CollectionType string `json:"collection_type"`
}

func (q *Queries) GetCheckpoint(ctx context.Context, arg GetCheckpointParams) (CollectionCheckpoint, error) {
	row := q.db.QueryRow(ctx, getCheckpoint, arg.Platform, arg.CollectionType)
	var i CollectionCheckpoint
	err := row.Scan(
		&i.ID,
		&i.Platform,
		&i.CollectionType,
		&i.LatestSourceModified,
		&i.NextPullTime,
		&i.EndPullTime,
		&i.LastPullTime,
		&i.LastError,
		&i.ErrorCount,
	)
	return i, err
}

const getCheckpointForUpdate = `-- name: GetCheckpointForUpdate :one
SELECT id, platform, collection_type, latest_source_modified, next_pull_time,
       end_pull_time, last_pull_time, last_error, error_count
FROM collection_checkpoint
WHERE platform = $1 AND collection_type = $2
FOR UPDATE
`

type GetCheckpointForUpdateParams struct {
	Platform       string `json:"platform"`
	CollectionType string `json:"collection_type"`
}

func (q *Queries) GetCheckpointForUpdate(ctx context.Context, arg GetCheckpointForUpdateParams) (CollectionCheckpoint, error) {
	row := q.db.QueryRow(ctx, getCheckpointForUpdate, arg.Platform, arg.CollectionType)
	var i CollectionCheckpoint
	err := row.Scan(
		&i.ID,
		&i.Platform,
		&i.CollectionType,
		&i.LatestSourceModified,
		&i.NextPullTime,
		&i.EndPullTime,
		&i.LastPullTime,
		&i.LastError,
		&i.ErrorCount,
	)
	return i, err
}

const listCheckpoints = `-- name: ListCheckpoints :many
SELECT id, platform, collection_type, latest_source_modified, next_pull_time,
       end_pull_time, last_pull_time, last_error, error_count
FROM collection_checkpoint
WHERE platform = $1
ORDER BY collection_type
`

func (q *Queries) ListCheckpoints(ctx context.Context, platform string) ([]CollectionCheckpoint, error) {
	rows, err := q.db.Query(ctx, listCheckpoints, platform)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CollectionCheckpoint
	for rows.Next() {
		var i CollectionCheckpoint
		if err := rows.Scan(
			&i.ID,
			&i.Platform,
			&i.CollectionType,
			&i.LatestSourceModified,
			&i.NextPullTime,
			&i.EndPullTime,
			&i.LastPullTime,
			&i.LastError,
			&i.ErrorCount,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const recordCheckpointFailure = `-- name: RecordCheckpointFailure :execrows
UPDATE collection_checkpoint SET
    last_error = $1,
    error_count = error_count + 1
WHERE platform = $2 AND collection_type = $3
`

type RecordCheckpointFailureParams struct {
	LastError      *string `json:"last_error"`
	Platform       string  `json:"platform"`
	CollectionType string  `json:"collection_type"`
}

func (q *Queries) RecordCheckpointFailure(ctx context.Context, arg RecordCheckpointFailureParams) (int64, error) {
	result, err := q.db.Exec(ctx, recordCheckpointFailure, arg.LastError, arg.Platform, arg.CollectionType)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const recordCheckpointSuccess = `-- name: RecordCheckpointSuccess :execrows
UPDATE collection_checkpoint SET
    last_error = NULL,
    error_count = 0
WHERE platform = $1 AND collection_type = $2
`

type RecordCheckpointSuccessParams struct {
	Platform       string `json:"platform"`
	CollectionType string `json:"collection_type"`
}

func (q *Queries) RecordCheckpointSuccess(ctx context.Context, arg RecordCheckpointSuccessParams) (int64, error) {
	result, err := q.db.Exec(ctx, recordCheckpointSuccess, arg.Platform, arg.CollectionType)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateCheckpoint = `-- name: UpdateCheckpoint :execrows
UPDATE collection_checkpoint SET
    latest_source_modified = $1,
    next_pull_time = $2,
    end_pull_time = $3,
    last_pull_time = $4,
    last_error = $5,
    error_count = $6
WHERE platform = $7 AND collection_type = $8
`

type UpdateCheckpointParams struct {
	LatestSourceModified *string    `json:"latest_source_modified"`
	NextPullTime         *time.Time `json:"next_pull_time"`
	EndPullTime          *time.Time `json:"end_pull_time"`
	LastPullTime         *time.Time `json:"last_pull_time"`
	LastError            *string    `json:"last_error"`
	ErrorCount           int32      `json:"error_count"`
	Platform             string     `json:"platform"`
	CollectionType       string     `json:"collection_type"`
}

func (q *Queries) UpdateCheckpoint(ctx context.Context, arg UpdateCheckpointParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateCheckpoint,
		arg.LatestSourceModified,
		arg.NextPullTime,
		arg.EndPullTime,
		arg.LastPullTime,
		arg.LastError,
		arg.ErrorCount,
		arg.Platform,
		arg.CollectionType,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
