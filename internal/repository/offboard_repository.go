package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// OffboardRepository handles persistence for employee offboardings.
type OffboardRepository interface {
	UpsertBatch(ctx context.Context, offboards []domain.Offboard) error
}

type offboardRepository struct {
	pool *pgxpool.Pool
}

// NewOffboardRepository instantiates the repository.
func NewOffboardRepository(pool *pgxpool.Pool) OffboardRepository {
	return &offboardRepository{pool: pool}
}

const upsertOffboardQuery = `
        INSERT INTO offboards (
            id, "employeeId", "offboardDate", reason, status,
            "returnedAssets", notes, "processedBy", "createdAt", "updatedAt"
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        ON CONFLICT (id) DO UPDATE SET
            "employeeId" = EXCLUDED."employeeId",
            "offboardDate" = EXCLUDED."offboardDate",
            reason = EXCLUDED.reason,
            status = EXCLUDED.status,
            "returnedAssets" = EXCLUDED."returnedAssets",
            notes = EXCLUDED.notes,
            "processedBy" = EXCLUDED."processedBy",
            "updatedAt" = EXCLUDED."updatedAt"`

func (r *offboardRepository) UpsertBatch(ctx context.Context, offboards []domain.Offboard) error {
	batch := &pgx.Batch{}
	for _, o := range offboards {
		batch.Queue(upsertOffboardQuery,
			o.ID,
			o.EmployeeID,
			o.OffboardDate,
			o.Reason,
			o.Status,
			o.ReturnedAssets,
			o.Notes,
			o.ProcessedBy,
			o.CreatedAt,
			o.UpdatedAt,
		)
	}
	return execBatch(ctx, r.pool, "offboards", batch)
}
