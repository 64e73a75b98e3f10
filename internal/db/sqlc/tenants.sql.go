package sqlc

import (
	"context"
	"time"
)

const disableTenantsNotInList = `-- name: DisableTenantsNotInList :exec
UPDATE tenant
SET enabled = FALSE, updated_at = $1
WHERE enabled AND NOT (platform = ANY($2::text[]))
`

type DisableTenantsNotInListParams struct {
	Now       time.Time `json:"now"`
	Platforms []string  `json:"platforms"`
}

func (q *Queries) DisableTenantsNotInList(ctx context.Context, arg DisableTenantsNotInListParams) error {
	_, err := q.db.Exec(ctx, disableTenantsNotInList, arg.Now, arg.Platforms)
	return err
}

const ensureTenant = `-- name: EnsureTenant :exec
INSERT INTO tenant (platform, enabled, created_at, updated_at)
VALUES ($1, TRUE, $2, $2)
ON CONFLICT (platform) DO NOTHING
`

type EnsureTenantParams struct {
	Platform string    `json:"platform"`
	Now      time.Time `json:"now"`
}

func (q *Queries) EnsureTenant(ctx context.Context, arg EnsureTenantParams) error {
	_, err := q.db.Exec(ctx, ensureTenant, arg.Platform, arg.Now)
	return err
}

const getTenant = `-- name: GetTenant :one
SELECT platform, enabled, created_at, updated_at
FROM tenant
WHERE platform = $1
`

func (q *Queries) GetTenant(ctx context.Context, platform string) (Tenant, error) {
	row := q.db.QueryRow(ctx, getTenant, platform)
	var i Tenant
	err := row.Scan(
		&i.Platform,
		&i.Enabled,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listEnabledTenants = `-- name: ListEnabledTenants :many
SELECT t.platform, t.enabled,
       (CASE WHEN bool_or(c.next_pull_time IS NULL) THEN NULL ELSE MIN(c.next_pull_time) END)::timestamptz AS next_pull_time
FROM tenant t
LEFT JOIN collection_checkpoint c ON c.platform = t.platform
WHERE t.enabled
GROUP BY t.platform, t.enabled
ORDER BY next_pull_time ASC NULLS FIRST, t.platform ASC
`

type ListEnabledTenantsRow struct {
	Platform     string     `json:"platform"`
	Enabled      bool       `json:"enabled"`
	NextPullTime *time.Time `json:"next_pull_time"`
}

func (q *Queries) ListEnabledTenants(ctx context.Context) ([]ListEnabledTenantsRow, error) {
	rows, err := q.db.Query(ctx, listEnabledTenants)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListEnabledTenantsRow
	for rows.Next() {
		var i ListEnabledTenantsRow
		if err := rows.Scan(&i.Platform, &i.Enabled, &i.NextPullTime); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertTenant = `-- name: UpsertTenant :exec
INSERT INTO tenant (platform, enabled, created_at, updated_at)
VALUES ($1, $2, $3, $3)
ON CONFLICT (platform) DO UPDATE SET
    enabled = EXCLUDED.enabled,
    updated_at = EXCLUDED.updated_at
`

type UpsertTenantParams struct {
	Platform string    `json:"platform"`
	Enabled  bool      `json:"enabled"`
	Now      time.Time `json:"now"`
}

func (q *Queries) UpsertTenant(ctx context.Context, arg UpsertTenantParams) error {
	_, err := q.db.Exec(ctx, upsertTenant, arg.Platform, arg.Enabled, arg.Now)
	return err
}
