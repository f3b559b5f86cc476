package transform

import (
	"strings"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// maxDescriptionLen caps stored product descriptions.
const maxDescriptionLen = 5000

// Product maps a raw product record to its canonical row. Descriptions are
// HTML-stripped and truncated; a missing manufacturer falls back to the
// leading segment of the product name, which usually carries the brand.
func Product(raw map[string]any) domain.Product {
	r := NewRecord(raw)
	id := r.ID("id")

	name := r.String("name")
	if name == "" {
		name = "Product " + id
	}

	var description *string
	if descRaw := r.String("description", "short_description"); descRaw != "" {
		clean := StripHTML(descRaw, maxDescriptionLen)
		if clean != "" {
			description = &clean
		}
	}

	manufacturer := r.StringPtr("manufacturer", "brand")
	if manufacturer == nil {
		if lead, _, _ := strings.Cut(name, ","); strings.TrimSpace(lead) != "" {
			brand := strings.TrimSpace(lead)
			manufacturer = &brand
		}
	}

	status := r.String("status")
	if status == "" {
		status = "active"
	}

	return domain.Product{
		ID:            id,
		Name:          name,
		SKU:           r.StringPtr("sku", "article_code", "ean"),
		Category:      r.ObjectName("category"),
		Description:   description,
		Manufacturer:  manufacturer,
		Model:         r.StringPtr("model"),
		Price:         r.DecimalPtr("price", "buy_price", "rental_price"),
		Currency:      currencyName(r),
		Status:        status,
		StockQuantity: r.IntPtr("stock_quantity", "quantity"),
		CreatedAt:     r.TimeOrNow("created_at", "createdAt"),
		UpdatedAt:     r.TimeOrNow("updated_at", "updatedAt"),
	}
}

// DedupeSKUs makes SKUs unique within one batch by suffixing the product id
// on collision. The first occurrence keeps the plain SKU.
func DedupeSKUs(products []domain.Product) {
	seen := make(map[string]bool, len(products))
	for i := range products {
		if products[i].SKU == nil {
			continue
		}
		sku := *products[i].SKU
		if seen[sku] {
			suffixed := sku + "-" + products[i].ID
			products[i].SKU = &suffixed
			continue
		}
		seen[sku] = true
	}
}
