package sqlc

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const countEvents = `-- name: CountEvents :one
SELECT COUNT(*) FROM catalog_event WHERE platform = $1
`

func (q *Queries) CountEvents(ctx context.Context, platform string) (int64, error) {
	row := q.db.QueryRow(ctx, countEvents, platform)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countOnlineActivities = `-- name: CountOnlineActivities :one
SELECT COUNT(*) FROM catalog_online_activity WHERE platform = $1
`

func (q *Queries) CountOnlineActivities(ctx context.Context, platform string) (int64, error) {
	row := q.db.QueryRow(ctx, countOnlineActivities, platform)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countTemplates = `-- name: CountTemplates :one
SELECT COUNT(*) FROM catalog_template WHERE platform = $1
`

func (q *Queries) CountTemplates(ctx context.Context, platform string) (int64, error) {
	row := q.db.QueryRow(ctx, countTemplates, platform)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getEvent = `-- name: GetEvent :one
SELECT id, platform, source_id, source_guid, code, start_date_time, finish_date_time,
       source_status, source_created, source_modified, source_template_id, source_template_guid, modified
FROM catalog_event
WHERE platform = $1 AND source_id = $2 AND source_guid = $3
`

type GetEventParams struct {
	Platform   string `json:"platform"`
	SourceID   int64  `json:"source_id"`
	SourceGuid string `json:"source_guid"`
}

func (q *Queries) GetEvent(ctx context.Context, arg GetEventParams) (CatalogEvent, error) {
	row := q.db.QueryRow(ctx, getEvent, arg.Platform, arg.SourceID, arg.SourceGuid)
	var i CatalogEvent
	err := row.Scan(
		&i.ID,
		&i.Platform,
		&i.SourceID,
		&i.SourceGuid,
		&i.Code,
		&i.StartDateTime,
		&i.FinishDateTime,
		&i.SourceStatus,
		&i.SourceCreated,
		&i.SourceModified,
		&i.SourceTemplateID,
		&i.SourceTemplateGuid,
		&i.Modified,
	)
	return i, err
}

const getOnlineActivity = `-- name: GetOnlineActivity :one
SELECT id, platform, source_id, source_guid, name, code, content_uri, source_status, source_created,
       source_modified, source_template_id, source_template_guid, modified
FROM catalog_online_activity
WHERE platform = $1 AND source_id = $2 AND source_guid = $3
`

type GetOnlineActivityParams struct {
	Platform   string `json:"platform"`
	SourceID   int64  `json:"source_id"`
	SourceGuid string `json:"source_guid"`
}

func (q *Queries) GetOnlineActivity(ctx context.Context, arg GetOnlineActivityParams) (CatalogOnlineActivity, error) {
	row := q.db.QueryRow(ctx, getOnlineActivity, arg.Platform, arg.SourceID, arg.SourceGuid)
	var i CatalogOnlineActivity
	err := row.Scan(
		&i.ID,
		&i.Platform,
		&i.SourceID,
		&i.SourceGuid,
		&i.Name,
		&i.Code,
		&i.ContentUri,
		&i.SourceStatus,
		&i.SourceCreated,
		&i.SourceModified,
		&i.SourceTemplateID,
		&i.SourceTemplateGuid,
		&i.Modified,
	)
	return i, err
}

const getTemplate = `-- name: GetTemplate :one
SELECT id, platform, source_id, source_guid, name, code, source_status, source_created, source_modified, modified
FROM catalog_template
WHERE platform = $1 AND source_id = $2 AND source_guid = $3
`

type GetTemplateParams struct {
	Platform   string `json:"platform"`
	SourceID   int64  `json:"source_id"`
	SourceGuid string `json:"source_guid"`
}

func (q *Queries) GetTemplate(ctx context.Context, arg GetTemplateParams) (CatalogTemplate, error) {
	row := q.db.QueryRow(ctx, getTemplate, arg.Platform, arg.SourceID, arg.SourceGuid)
	var i CatalogTemplate
	err := row.Scan(
		&i.ID,
		&i.Platform,
		&i.SourceID,
		&i.SourceGuid,
		&i.Name,
		&i.Code,
		&i.SourceStatus,
		&i.SourceCreated,
		&i.SourceModified,
		&i.Modified,
	)
	return i, err
}

const upsertEvent = `-- name: UpsertEvent :one
INSERT INTO catalog_event (
    id, platform, source_id, source_guid, code, start_date_time, finish_date_time,
    source_status, source_created, source_modified, source_template_id, source_template_guid, modified
) VALUES (
    $1, $2, $3, $4, $5,
    $6, $7, $8, $9,
    $10, $11, $12, $13
)
ON CONFLICT (platform, source_id, source_guid) DO UPDATE SET
    code = EXCLUDED.code,
    start_date_time = EXCLUDED.start_date_time,
    finish_date_time = EXCLUDED.finish_date_time,
    source_status = EXCLUDED.source_status,
    source_created = EXCLUDED.source_created,
    source_modified = EXCLUDED.source_modified,
    source_template_id = EXCLUDED.source_template_id,
    source_template_guid = EXCLUDED.source_template_guid,
    modified = EXCLUDED.modified
WHERE source_modified_not_older(EXCLUDED.source_modified, catalog_event.source_modified)
RETURNING id, (xmax = 0) AS created
`

type UpsertEventParams struct {
	ID                 uuid.UUID `json:"id"`
	Platform           string    `json:"platform"`
	SourceID           int64     `json:"source_id"`
	SourceGuid         string    `json:"source_guid"`
	Code               string    `json:"code"`
	StartDateTime      string    `json:"start_date_time"`
	FinishDateTime     string    `json:"finish_date_time"`
	SourceStatus       string    `json:"source_status"`
	SourceCreated      string    `json:"source_created"`
	SourceModified     string    `json:"source_modified"`
	SourceTemplateID   *int64    `json:"source_template_id"`
	SourceTemplateGuid *string   `json:"source_template_guid"`
	Modified           time.Time `json:"modified"`
}

type UpsertEventRow struct {
	ID      uuid.UUID `json:"id"`
	Created bool      `json:"created"`
}

func (q *Queries) UpsertEvent(ctx context.Context, arg UpsertEventParams) (UpsertEventRow, error) {
	row := q.db.QueryRow(ctx, upsertEvent,
		arg.ID,
		arg.Platform,
		arg.SourceID,
		arg.SourceGuid,
		arg.Code,
		arg.StartDateTime,
		arg.FinishDateTime,
		arg.SourceStatus,
		arg.SourceCreated,
		arg.SourceModified,
		arg.SourceTemplateID,
		arg.SourceTemplateGuid,
		arg.Modified,
	)
	var i UpsertEventRow
	err := row.Scan(&i.ID, &i.Created)
	return i, err
}

const upsertOnlineActivity = `-- name: UpsertOnlineActivity :one
INSERT INTO catalog_online_activity (
    id, platform, source_id, source_guid, name, code, content_uri, source_status, source_created,
    source_modified, source_template_id, source_template_guid, modified
) VALUES (
    $1, $2, $3, $4, $5, $6,
    $7, $8, $9, $10,
    $11, $12, $13
)
ON CONFLICT (platform, source_id, source_guid) DO UPDATE SET
    name = EXCLUDED.name,
    code = EXCLUDED.code,
    content_uri = EXCLUDED.content_uri,
    source_status = EXCLUDED.source_status,
    source_created = EXCLUDED.source_created,
    source_modified = EXCLUDED.source_modified,
    source_template_id = EXCLUDED.source_template_id,
    source_template_guid = EXCLUDED.source_template_guid,
    modified = EXCLUDED.modified
WHERE source_modified_not_older(EXCLUDED.source_modified, catalog_online_activity.source_modified)
RETURNING id, (xmax = 0) AS created
`

type UpsertOnlineActivityParams struct {
	ID                 uuid.UUID `json:"id"`
	Platform           string    `json:"platform"`
	SourceID           int64     `json:"source_id"`
	SourceGuid         string    `json:"source_guid"`
	Name               string    `json:"name"`
	Code               string    `json:"code"`
	ContentUri         string    `json:"content_uri"`
	SourceStatus       string    `json:"source_status"`
	SourceCreated      string    `json:"source_created"`
	SourceModified     string    `json:"source_modified"`
	SourceTemplateID   *int64    `json:"source_template_id"`
	SourceTemplateGuid *string   `json:"source_template_guid"`
	Modified           time.Time `json:"modified"`
}

type UpsertOnlineActivityRow struct {
	ID      uuid.UUID `json:"id"`
	Created bool      `json:"created"`
}

func (q *Queries) UpsertOnlineActivity(ctx context.Context, arg UpsertOnlineActivityParams) (UpsertOnlineActivityRow, error) {
	row := q.db.QueryRow(ctx, upsertOnlineActivity,
		arg.ID,
		arg.Platform,
		arg.SourceID,
		arg.SourceGuid,
		arg.Name,
		arg.Code,
		arg.ContentUri,
		arg.SourceStatus,
		arg.SourceCreated,
		arg.SourceModified,
		arg.SourceTemplateID,
		arg.SourceTemplateGuid,
		arg.Modified,
	)
	var i UpsertOnlineActivityRow
	err := row.Scan(&i.ID, &i.Created)
	return i, err
}

const upsertTemplate = `-- name: UpsertTemplate :one
INSERT INTO catalog_template (
    id, platform, source_id, source_guid, name, code, source_status, source_created, source_modified, modified
) VALUES (
    $1, $2, $3, $4, $5, $6,
    $7, $8, $9, $10
)
ON CONFLICT (platform, source_id, source_guid) DO UPDATE SET
    name = EXCLUDED.name,
    code = EXCLUDED.code,
    source_status = EXCLUDED.source_status,
    source_created = EXCLUDED.source_created,
    source_modified = EXCLUDED.source_modified,
    modified = EXCLUDED.modified
WHERE source_modified_not_older(EXCLUDED.source_modified, catalog_template.source_modified)
RETURNING id, (xmax = 0) AS created
`

type UpsertTemplateParams struct {
	ID             uuid.UUID `json:"id"`
	Platform       string    `json:"platform"`
	SourceID       int64     `json:"source_id"`
	SourceGuid     string    `json:"source_guid"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	SourceStatus   string    `json:"source_status"`
	SourceCreated  string    `json:"source_created"`
	SourceModified string    `json:"source_modified"`
	Modified       time.Time `json:"modified"`
}

type UpsertTemplateRow struct {
	ID      uuid.UUID `json:"id"`
	Created bool      `json:"created"`
}

func (q *Queries) UpsertTemplate(ctx context.Context, arg UpsertTemplateParams) (UpsertTemplateRow, error) {
	row := q.db.QueryRow(ctx, upsertTemplate,
		arg.ID,
		arg.Platform,
		arg.SourceID,
		arg.SourceGuid,
		arg.Name,
		arg.Code,
		arg.SourceStatus,
		arg.SourceCreated,
		arg.SourceModified,
		arg.Modified,
	)
	var i UpsertTemplateRow
	err := row.Scan(&i.ID, &i.Created)
	return i, err
}
