package status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enrolsync/arlo-catalog-sync/internal/db/sqlc"
)

// dbStatus implements APIStatus as a single row in the api_status table
type dbStatus struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewDBStatus creates an APIStatus shared by every process using the database
func NewDBStatus(pool *pgxpool.Pool) APIStatus {
	return &dbStatus{pool: pool, now: time.Now}
}

func (d *dbStatus) Get(ctx context.Context) (int, error) {
	row, err := sqlc.New(d.pool).GetAPIStatus(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Unknown, nil
		}
		return Unknown, fmt.Errorf("failed to read api status: %w", err)
	}
	return int(row.Status), nil
}

func (d *dbStatus) Set(ctx context.Context, code int) error {
	err := sqlc.New(d.pool).SetAPIStatus(ctx, sqlc.SetAPIStatusParams{
		Status:    int32(code),
		UpdatedAt: d.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to update api status: %w", err)
	}
	return nil
}
