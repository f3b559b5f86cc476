package domain

import "time"

// Country models a reference country row. Uniqueness is enforced on Code,
// not ID: two upstream ids carrying the same code collapse to one row.
type Country struct {
	ID              string
	Name            string
	Code            string
	RequiresTin     bool
	InvoiceCurrency *string
	IsOffboardable  bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
