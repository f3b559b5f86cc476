package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// OfficeRepository handles persistence for business offices.
type OfficeRepository interface {
	UpsertBatch(ctx context.Context, offices []domain.Office) error
	ListIDs(ctx context.Context) (map[string]bool, error)
}

type officeRepository struct {
	pool *pgxpool.Pool
}

// NewOfficeRepository instantiates the repository.
func NewOfficeRepository(pool *pgxpool.Pool) OfficeRepository {
	return &officeRepository{pool: pool}
}

const upsertOfficeQuery = `
        INSERT INTO offices (
            id, name, code, "addressId", phone, email,
            capacity, status, "createdAt", "updatedAt"
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            code = EXCLUDED.code,
            "addressId" = EXCLUDED."addressId",
            phone = EXCLUDED.phone,
            email = EXCLUDED.email,
            capacity = EXCLUDED.capacity,
            status = EXCLUDED.status,
            "updatedAt" = EXCLUDED."updatedAt"`

func (r *officeRepository) UpsertBatch(ctx context.Context, offices []domain.Office) error {
	batch := &pgx.Batch{}
	for _, o := range offices {
		batch.Queue(upsertOfficeQuery,
			o.ID,
			o.Name,
			o.Code,
			o.AddressID,
			o.Phone,
			o.Email,
			o.Capacity,
			o.Status,
			o.CreatedAt,
			o.UpdatedAt,
		)
	}
	return execBatch(ctx, r.pool, "offices", batch)
}

func (r *officeRepository) ListIDs(ctx context.Context) (map[string]bool, error) {
	return listIDs(ctx, r.pool, `SELECT id FROM offices`)
}
