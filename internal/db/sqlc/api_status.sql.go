package sqlc

import (
	"context"
	"time"
)

const getAPIStatus = `-- name: GetAPIStatus :one
SELECT status, updated_at FROM api_status WHERE id = 1
`

type GetAPIStatusRow struct {
	Status    int32     `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Queries) GetAPIStatus(ctx context.Context) (GetAPIStatusRow, error) {
	row := q.db.QueryRow(ctx, getAPIStatus)
	var i GetAPIStatusRow
	err := row.Scan(&i.Status, &i.UpdatedAt)
	return i, err
}

const setAPIStatus = `-- name: SetAPIStatus :exec
INSERT INTO api_status (id, status, updated_at)
VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE SET
    status = EXCLUDED.status,
    updated_at = EXCLUDED.updated_at
`

type SetAPIStatusParams struct {
	Status    int32     `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Queries) SetAPIStatus(ctx context.Context, arg SetAPIStatusParams) error {
	_, err := q.db.Exec(ctx, setAPIStatus, arg.Status, arg.UpdatedAt)
	return err
}
