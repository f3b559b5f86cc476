package transform

import (
	"github.com/spec-kit/asset-sync/internal/domain"
)

// Address maps a raw address payload to its canonical row. Street-level
// fields (address_line_1, address_line_2) are intentionally never read:
// only city, region, country, postal code and coordinates survive.
// Returns false when the payload carries no usable identity.
func Address(raw map[string]any) (domain.Address, bool) {
	r := NewRecord(raw)

	id := r.ID("id")
	if id == "" {
		return domain.Address{}, false
	}

	return domain.Address{
		ID:         id,
		City:       r.StringPtr("city"),
		Region:     r.StringPtr("region", "state"),
		Country:    r.ObjectName("country"),
		PostalCode: r.StringPtr("postal_code", "postcode"),
		Latitude:   r.FloatPtr("latitude"),
		Longitude:  r.FloatPtr("longitude"),
		CreatedAt:  r.TimeOrNow("created_at", "createdAt"),
		UpdatedAt:  r.TimeOrNow("updated_at", "updatedAt"),
	}, true
}
