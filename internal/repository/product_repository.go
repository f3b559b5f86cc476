package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// ProductRepository handles persistence for catalog products.
type ProductRepository interface {
	UpsertBatch(ctx context.Context, products []domain.Product) error
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates the repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const upsertProductQuery = `
        INSERT INTO products (
            id, name, sku, category, description, manufacturer,
            model, price, currency, status, "stockQuantity",
            "createdAt", "updatedAt"
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            sku = EXCLUDED.sku,
            category = EXCLUDED.category,
            description = EXCLUDED.description,
            manufacturer = EXCLUDED.manufacturer,
            model = EXCLUDED.model,
            price = EXCLUDED.price,
            currency = EXCLUDED.currency,
            status = EXCLUDED.status,
            "stockQuantity" = EXCLUDED."stockQuantity",
            "updatedAt" = EXCLUDED."updatedAt"`

func (r *productRepository) UpsertBatch(ctx context.Context, products []domain.Product) error {
	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(upsertProductQuery,
			p.ID,
			p.Name,
			p.SKU,
			p.Category,
			p.Description,
			p.Manufacturer,
			p.Model,
			p.Price,
			p.Currency,
			p.Status,
			p.StockQuantity,
			p.CreatedAt,
			p.UpdatedAt,
		)
	}
	return execBatch(ctx, r.pool, "products", batch)
}
