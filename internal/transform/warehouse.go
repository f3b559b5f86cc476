package transform

import (
	"github.com/spec-kit/asset-sync/internal/domain"
)

// Warehouse maps a raw warehouse record to its canonical row. Warehouses are
// business locations, so no PII scrubbing applies.
func Warehouse(raw map[string]any) domain.Warehouse {
	r := NewRecord(raw)
	id := r.ID("id")

	name := r.String("name")
	if name == "" {
		name = "Warehouse " + id
	}

	status := r.String("status")
	if status == "" {
		status = "active"
	}

	return domain.Warehouse{
		ID:        id,
		Name:      name,
		Code:      r.StringPtr("code", "warehouse_code"),
		AddressID: locationAddressID(r),
		Capacity:  r.IntPtr("capacity", "max_capacity"),
		Status:    status,
		Type:      r.StringPtr("type", "warehouse_provider"),
		CreatedAt: r.TimeOrNow("created_at", "createdAt"),
		UpdatedAt: r.TimeOrNow("updated_at", "updatedAt"),
	}
}

// locationAddressID prefers the nested address object's id over flat ids.
func locationAddressID(r Record) *string {
	if id := r.ObjectID("address"); id != nil {
		return id
	}
	return r.IDPtr("address_id", "addressId")
}
