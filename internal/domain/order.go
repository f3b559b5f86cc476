package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order models a procurement order row. ShippingInfo is an opaque JSON blob
// carried through without interpretation.
type Order struct {
	ID              string
	OrderNumber     string
	Status          string
	OrderDate       time.Time
	DeliveryDate    *time.Time
	TotalAmount     *decimal.Decimal
	Currency        *string
	CustomerID      *string
	EmployeeID      *string
	WarehouseID     *string
	Notes           *string
	PONumber        *string
	TotalProducts   *int
	Receiver        *string
	ReceiverType    *string
	ExpressDelivery bool
	ShippingInfo    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
