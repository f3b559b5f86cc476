package transform

import (
	"time"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// CountryFromAddress extracts the nested country object from an address
// payload. There is no countries collection endpoint upstream; countries are
// harvested from addresses and deduplicated by code downstream. Returns
// false when the payload has no complete country object.
func CountryFromAddress(raw map[string]any) (domain.Country, bool) {
	r := NewRecord(raw)

	country, ok := r.Object("country")
	if !ok {
		return domain.Country{}, false
	}

	id := country.ID("id")
	name := country.String("name")
	code := country.String("code")
	if id == "" || name == "" || code == "" {
		return domain.Country{}, false
	}

	offboardable := true
	if _, present := country.raw["is_offboardable"]; present {
		offboardable = country.Bool("is_offboardable")
	}

	now := time.Now()
	return domain.Country{
		ID:              id,
		Name:            name,
		Code:            code,
		RequiresTin:     country.Bool("requires_tin"),
		InvoiceCurrency: country.StringPtr("invoice_currency"),
		IsOffboardable:  offboardable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, true
}
