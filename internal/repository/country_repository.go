package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// CountryRepository handles persistence for reference countries.
type CountryRepository interface {
	UpsertBatch(ctx context.Context, countries []domain.Country) error
}

type countryRepository struct {
	pool *pgxpool.Pool
}

// NewCountryRepository instantiates the repository.
func NewCountryRepository(pool *pgxpool.Pool) CountryRepository {
	return &countryRepository{pool: pool}
}

// The conflict target is code, not id: two upstream ids carrying the same
// country code collapse to one row.
const upsertCountryQuery = `
        INSERT INTO countries (
            id, name, code, "requiresTin", "invoiceCurrency",
            "isOffboardable", "createdAt", "updatedAt"
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        ON CONFLICT (code) DO UPDATE SET
            name = EXCLUDED.name,
            "requiresTin" = EXCLUDED."requiresTin",
            "invoiceCurrency" = EXCLUDED."invoiceCurrency",
            "isOffboardable" = EXCLUDED."isOffboardable",
            "updatedAt" = EXCLUDED."updatedAt"`

func (r *countryRepository) UpsertBatch(ctx context.Context, countries []domain.Country) error {
	batch := &pgx.Batch{}
	for _, c := range countries {
		batch.Queue(upsertCountryQuery,
			c.ID,
			c.Name,
			c.Code,
			c.RequiresTin,
			c.InvoiceCurrency,
			c.IsOffboardable,
			c.CreatedAt,
			c.UpdatedAt,
		)
	}
	return execBatch(ctx, r.pool, "countries", batch)
}
