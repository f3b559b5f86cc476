package domain

import "time"

// Warehouse models a fulfillment location row.
type Warehouse struct {
	ID        string
	Name      string
	Code      *string
	AddressID *string
	Capacity  *int
	Status    string
	Type      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
