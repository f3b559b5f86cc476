package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// AddressRepository handles persistence for scrubbed addresses.
type AddressRepository interface {
	UpsertBatch(ctx context.Context, addresses []domain.Address) error
	ListIDs(ctx context.Context) (map[string]bool, error)
	ListAll(ctx context.Context) ([]domain.Address, error)
}

type addressRepository struct {
	pool *pgxpool.Pool
}

// NewAddressRepository instantiates the repository.
func NewAddressRepository(pool *pgxpool.Pool) AddressRepository {
	return &addressRepository{pool: pool}
}

// Addresses are immutable in identity but mutable in content: the upsert
// overwrites non-key fields and never deletes.
const upsertAddressQuery = `
        INSERT INTO addresses (
            id, city, region, country, "postalCode",
            latitude, longitude, "createdAt", "updatedAt"
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (id) DO UPDATE SET
            city = EXCLUDED.city,
            region = EXCLUDED.region,
            country = EXCLUDED.country,
            "postalCode" = EXCLUDED."postalCode",
            latitude = EXCLUDED.latitude,
            longitude = EXCLUDED.longitude,
            "updatedAt" = EXCLUDED."updatedAt"`

func (r *addressRepository) UpsertBatch(ctx context.Context, addresses []domain.Address) error {
	batch := &pgx.Batch{}
	for _, a := range addresses {
		batch.Queue(upsertAddressQuery,
			a.ID,
			a.City,
			a.Region,
			a.Country,
			a.PostalCode,
			a.Latitude,
			a.Longitude,
			a.CreatedAt,
			a.UpdatedAt,
		)
	}
	return execBatch(ctx, r.pool, "addresses", batch)
}

func (r *addressRepository) ListIDs(ctx context.Context) (map[string]bool, error) {
	return listIDs(ctx, r.pool, `SELECT id FROM addresses`)
}

// ListAll loads existing rows so the deduplicator can seed its natural-key
// registry across runs.
func (r *addressRepository) ListAll(ctx context.Context) ([]domain.Address, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, city, region, country, "postalCode" FROM addresses`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.City, &a.Region, &a.Country, &a.PostalCode); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
