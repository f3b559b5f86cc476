package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset models a tracked hardware asset row. At most one of AssignedToID,
// OfficeID and WarehouseID is set: an asset is at an employee, an office, or
// a warehouse, never more than one.
type Asset struct {
	ID              string
	AssetTag        string
	Name            string
	Category        *string
	Status          *string
	SerialNumber    *string
	ProductID       *string
	AssignedToID    *string
	Location        *string
	PurchaseDate    *time.Time
	PurchasePrice   *decimal.Decimal
	Currency        *string
	WarrantyExpires *time.Time
	Notes           *string
	OfficeID        *string
	WarehouseID     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
