package transform

import (
	"github.com/spec-kit/asset-sync/internal/domain"
)

// Office maps a raw office record to its canonical row. Offices are business
// locations, but their contact fields still pass the PII filter: the email
// is anonymized and any phone number collapses to a placeholder.
func Office(raw map[string]any) domain.Office {
	r := NewRecord(raw)
	id := r.ID("id")

	name := r.String("name")
	if name == "" {
		name = "Office " + id
	}

	status := r.String("status")
	if status == "" {
		status = "active"
	}

	var email *string
	if rawEmail := r.String("email", "contact_email"); rawEmail != "" {
		anonymized := AnonymizeEmail(rawEmail)
		email = &anonymized
	}

	return domain.Office{
		ID:        id,
		Name:      name,
		Code:      r.StringPtr("code", "office_code"),
		AddressID: locationAddressID(r),
		Phone:     ScrubTextPtr(r.StringPtr("phone", "phone_number")),
		Email:     email,
		Capacity:  r.IntPtr("capacity", "max_capacity"),
		Status:    status,
		CreatedAt: r.TimeOrNow("created_at", "createdAt"),
		UpdatedAt: r.TimeOrNow("updated_at", "updatedAt"),
	}
}
