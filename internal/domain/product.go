package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product models a catalog item row. SKU is unique; collisions within a
// batch are resolved by suffixing the product id.
type Product struct {
	ID            string
	Name          string
	SKU           *string
	Category      *string
	Description   *string
	Manufacturer  *string
	Model         *string
	Price         *decimal.Decimal
	Currency      *string
	Status        string
	StockQuantity *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
