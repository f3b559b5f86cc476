package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// AssetRepository handles persistence for tracked assets.
type AssetRepository interface {
	UpsertBatch(ctx context.Context, assets []domain.Asset) error
	ListIDs(ctx context.Context) (map[string]bool, error)
}

type assetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository instantiates the repository.
func NewAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &assetRepository{pool: pool}
}

const upsertAssetQuery = `
        INSERT INTO assets (
            id, "assetTag", name, category, status, "serialNumber",
            "productId", "assignedToId", location, "purchaseDate",
            "purchasePrice", currency, "warrantyExpires", notes,
            "officeId", "warehouseId", "createdAt", "updatedAt"
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
        ON CONFLICT (id) DO UPDATE SET
            "assetTag" = EXCLUDED."assetTag",
            name = EXCLUDED.name,
            category = EXCLUDED.category,
            status = EXCLUDED.status,
            "serialNumber" = EXCLUDED."serialNumber",
            "productId" = EXCLUDED."productId",
            "assignedToId" = EXCLUDED."assignedToId",
            location = EXCLUDED.location,
            "purchaseDate" = EXCLUDED."purchaseDate",
            "purchasePrice" = EXCLUDED."purchasePrice",
            currency = EXCLUDED.currency,
            "warrantyExpires" = EXCLUDED."warrantyExpires",
            notes = EXCLUDED.notes,
            "officeId" = EXCLUDED."officeId",
            "warehouseId" = EXCLUDED."warehouseId",
            "updatedAt" = EXCLUDED."updatedAt"`

func (r *assetRepository) UpsertBatch(ctx context.Context, assets []domain.Asset) error {
	batch := &pgx.Batch{}
	for _, a := range assets {
		batch.Queue(upsertAssetQuery,
			a.ID,
			a.AssetTag,
			a.Name,
			a.Category,
			a.Status,
			a.SerialNumber,
			a.ProductID,
			a.AssignedToID,
			a.Location,
			a.PurchaseDate,
			a.PurchasePrice,
			a.Currency,
			a.WarrantyExpires,
			a.Notes,
			a.OfficeID,
			a.WarehouseID,
			a.CreatedAt,
			a.UpdatedAt,
		)
	}
	return execBatch(ctx, r.pool, "assets", batch)
}

func (r *assetRepository) ListIDs(ctx context.Context) (map[string]bool, error) {
	return listIDs(ctx, r.pool, `SELECT id FROM assets`)
}
