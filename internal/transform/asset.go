package transform

import (
	"strings"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// Asset maps a raw asset record to its canonical row. When a separately
// fetched detail payload is available it takes precedence over the listing
// record, since only the detail carries the full location block.
func Asset(raw, detail map[string]any) domain.Asset {
	r := NewRecord(raw)
	if len(detail) > 0 {
		r = NewRecord(detail)
	}

	id := r.ID("id")

	assetTag := r.String("asset_tag", "assetTag", "tag")
	if assetTag == "" {
		assetTag = "ASSET-" + id
	}

	name := r.String("name", "product_name")
	if name == "" {
		name = "Unknown"
	}

	productID := r.ObjectID("product")
	if productID == nil {
		productID = r.IDPtr("product_id")
	}

	currency := r.StringPtr("currency", "invoice_currency")

	assignedTo, officeID, warehouseID, location := routeLocation(r)

	return domain.Asset{
		ID:              id,
		AssetTag:        assetTag,
		Name:            name,
		Category:        r.ObjectName("category"),
		Status:          r.StringPtr("status"),
		SerialNumber:    r.StringPtr("serial_number", "serialNumber"),
		ProductID:       productID,
		AssignedToID:    assignedTo,
		Location:        location,
		PurchaseDate:    r.TimePtr("purchase_date", "purchaseDate"),
		PurchasePrice:   r.DecimalPtr("purchase_price", "price"),
		Currency:        currency,
		WarrantyExpires: r.TimePtr("warranty_expires", "warrantyExpires"),
		Notes:           ScrubTextPtr(r.StringPtr("notes", "description")),
		OfficeID:        officeID,
		WarehouseID:     warehouseID,
		CreatedAt:       r.TimeOrNow("created_at", "createdAt"),
		UpdatedAt:       r.TimeOrNow("updated_at", "updatedAt"),
	}
}

// routeLocation reads the tagged location block and routes the referenced id
// into exactly one of assignedTo/office/warehouse. The nested address-like
// detail is scrubbed down to a city/region/country summary string.
func routeLocation(r Record) (assignedTo, officeID, warehouseID, location *string) {
	loc, ok := r.Object("location")
	if !ok {
		return nil, nil, nil, nil
	}

	detail, hasDetail := loc.Object("location_detail")
	if hasDetail {
		switch loc.String("location_type") {
		case "employee":
			assignedTo = detail.IDPtr("id")
		case "office":
			officeID = detail.IDPtr("id")
		case "warehouse":
			warehouseID = detail.IDPtr("id")
		}

		parts := make([]string, 0, 2)
		if city := detail.String("city"); city != "" {
			parts = append(parts, city)
		}
		if region := detail.String("region", "state"); region != "" {
			parts = append(parts, region)
		} else if country := detail.ObjectName("country"); country != nil {
			parts = append(parts, *country)
		}
		if len(parts) > 0 {
			joined := strings.Join(parts, ", ")
			location = &joined
		}
	}
	return assignedTo, officeID, warehouseID, location
}
