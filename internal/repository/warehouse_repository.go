package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// WarehouseRepository handles persistence for fulfillment warehouses.
type WarehouseRepository interface {
	UpsertBatch(ctx context.Context, warehouses []domain.Warehouse) error
	ListIDs(ctx context.Context) (map[string]bool, error)
	ListCodes(ctx context.Context) ([]domain.Warehouse, error)
	SetAddressID(ctx context.Context, warehouseID, addressID string) error
}

type warehouseRepository struct {
	pool *pgxpool.Pool
}

// NewWarehouseRepository instantiates the repository.
func NewWarehouseRepository(pool *pgxpool.Pool) WarehouseRepository {
	return &warehouseRepository{pool: pool}
}

const upsertWarehouseQuery = `
        INSERT INTO warehouses (
            id, name, code, "addressId", capacity, status,
            type, "createdAt", "updatedAt"
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            code = EXCLUDED.code,
            "addressId" = EXCLUDED."addressId",
            capacity = EXCLUDED.capacity,
            status = EXCLUDED.status,
            type = EXCLUDED.type,
            "updatedAt" = EXCLUDED."updatedAt"`

func (r *warehouseRepository) UpsertBatch(ctx context.Context, warehouses []domain.Warehouse) error {
	batch := &pgx.Batch{}
	for _, w := range warehouses {
		batch.Queue(upsertWarehouseQuery,
			w.ID,
			w.Name,
			w.Code,
			w.AddressID,
			w.Capacity,
			w.Status,
			w.Type,
			w.CreatedAt,
			w.UpdatedAt,
		)
	}
	return execBatch(ctx, r.pool, "warehouses", batch)
}

func (r *warehouseRepository) ListIDs(ctx context.Context) (map[string]bool, error) {
	return listIDs(ctx, r.pool, `SELECT id FROM warehouses`)
}

// ListCodes returns id and code for every warehouse, for gazetteer-based
// address linking.
func (r *warehouseRepository) ListCodes(ctx context.Context) ([]domain.Warehouse, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, code FROM warehouses`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Warehouse
	for rows.Next() {
		var w domain.Warehouse
		if err := rows.Scan(&w.ID, &w.Code); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

func (r *warehouseRepository) SetAddressID(ctx context.Context, warehouseID, addressID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE warehouses SET "addressId"=$1, "updatedAt"=NOW() WHERE id=$2`,
		addressID, warehouseID)
	return err
}
