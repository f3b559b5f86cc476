package domain

import "time"

// Address models a scrubbed location row. Street-level fields are never
// stored; only city, region, country and postal code survive the transform.
type Address struct {
	ID         string
	City       *string
	Region     *string
	Country    *string
	PostalCode *string
	Latitude   *float64
	Longitude  *float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
