package domain

import "time"

// Office models a business office row. Contact fields pass through the PII
// filter even though offices are business locations.
type Office struct {
	ID        string
	Name      string
	Code      *string
	AddressID *string
	Phone     *string
	Email     *string
	Capacity  *int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
