package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/asset-sync/pkg/util"
)

// execBatch runs queued statements inside one transaction. Any row-level
// error rolls back the whole batch for the entity; the caller re-runs the
// idempotent stage instead of living with a half-written table.
func execBatch(ctx context.Context, pool *pgxpool.Pool, entity string, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return util.NewPersistenceError(entity, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return util.NewPersistenceError(entity, err)
		}
	}
	if err := br.Close(); err != nil {
		return util.NewPersistenceError(entity, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return util.NewPersistenceError(entity, err)
	}
	return nil
}

// listIDs loads the full id set of one table into memory for foreign-key
// validation.
func listIDs(ctx context.Context, pool *pgxpool.Pool, query string) (map[string]bool, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
