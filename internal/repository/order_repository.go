package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// OrderRepository handles persistence for procurement orders.
type OrderRepository interface {
	UpsertBatch(ctx context.Context, orders []domain.Order) error
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates the repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const upsertOrderQuery = `
        INSERT INTO orders (
            id, "orderNumber", status, "orderDate", "deliveryDate",
            "totalAmount", currency, "customerId", "employeeId",
            "warehouseId", notes, "poNumber", "totalProducts",
            receiver, "receiverType", "expressDelivery", "shippingInfo",
            "createdAt", "updatedAt"
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
        ON CONFLICT (id) DO UPDATE SET
            "orderNumber" = EXCLUDED."orderNumber",
            status = EXCLUDED.status,
            "orderDate" = EXCLUDED."orderDate",
            "deliveryDate" = EXCLUDED."deliveryDate",
            "totalAmount" = EXCLUDED."totalAmount",
            currency = EXCLUDED.currency,
            "customerId" = EXCLUDED."customerId",
            "employeeId" = EXCLUDED."employeeId",
            "warehouseId" = EXCLUDED."warehouseId",
            notes = EXCLUDED.notes,
            "poNumber" = EXCLUDED."poNumber",
            "totalProducts" = EXCLUDED."totalProducts",
            receiver = EXCLUDED.receiver,
            "receiverType" = EXCLUDED."receiverType",
            "expressDelivery" = EXCLUDED."expressDelivery",
            "shippingInfo" = EXCLUDED."shippingInfo",
            "updatedAt" = EXCLUDED."updatedAt"`

func (r *orderRepository) UpsertBatch(ctx context.Context, orders []domain.Order) error {
	batch := &pgx.Batch{}
	for _, o := range orders {
		batch.Queue(upsertOrderQuery,
			o.ID,
			o.OrderNumber,
			o.Status,
			o.OrderDate,
			o.DeliveryDate,
			o.TotalAmount,
			o.Currency,
			o.CustomerID,
			o.EmployeeID,
			o.WarehouseID,
			o.Notes,
			o.PONumber,
			o.TotalProducts,
			o.Receiver,
			o.ReceiverType,
			o.ExpressDelivery,
			o.ShippingInfo,
			o.CreatedAt,
			o.UpdatedAt,
		)
	}
	return execBatch(ctx, r.pool, "orders", batch)
}
