// Package dedupe collapses repeated externally-referenced sub-entities to
// one canonical row keyed by natural identity: addresses by (city, country),
// countries by code.
package dedupe

import (
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// AddressRegistry maps (city, country) natural keys to canonical address
// ids, so two warehouses in the same city share one address row.
type AddressRegistry struct {
	byKey map[string]string
	byID  map[string]bool
}

// NewAddressRegistry builds a registry, seeded with addresses already known
// (e.g. loaded from the target table).
func NewAddressRegistry(existing []domain.Address) *AddressRegistry {
	reg := &AddressRegistry{
		byKey: make(map[string]string, len(existing)),
		byID:  make(map[string]bool, len(existing)),
	}
	for _, addr := range existing {
		reg.remember(addr)
	}
	return reg
}

func addressKey(city, country string) string {
	return strings.ToLower(strings.TrimSpace(city)) + "|" + strings.ToLower(strings.TrimSpace(country))
}

func (reg *AddressRegistry) remember(addr domain.Address) {
	reg.byID[addr.ID] = true
	if addr.City != nil && addr.Country != nil {
		key := addressKey(*addr.City, *addr.Country)
		if _, known := reg.byKey[key]; !known {
			reg.byKey[key] = addr.ID
		}
	}
}

// Canonical returns the canonical address for the candidate. A known
// natural key reuses the existing id and reports created=false; otherwise
// the candidate's own id (or a freshly minted one when the source supplies
// none) becomes canonical.
func (reg *AddressRegistry) Canonical(addr domain.Address) (domain.Address, bool) {
	if addr.City != nil && addr.Country != nil {
		if id, known := reg.byKey[addressKey(*addr.City, *addr.Country)]; known {
			addr.ID = id
			return addr, false
		}
	}
	if addr.ID == "" {
		addr.ID = uuid.NewString()
	}
	created := !reg.byID[addr.ID]
	reg.remember(addr)
	return addr, created
}

// Known reports whether an address id has been registered.
func (reg *AddressRegistry) Known(id string) bool {
	return reg.byID[id]
}

// CountryRegistry collapses countries by code. Upstream ids differ across
// payloads while codes match; the first id seen per code wins and later
// candidates merge into it.
type CountryRegistry struct {
	byCode map[string]domain.Country
	order  []string
}

// NewCountryRegistry builds an empty registry.
func NewCountryRegistry() *CountryRegistry {
	return &CountryRegistry{byCode: make(map[string]domain.Country)}
}

// Add registers a candidate country. Returns true when the code was new.
func (reg *CountryRegistry) Add(country domain.Country) bool {
	code := strings.ToUpper(strings.TrimSpace(country.Code))
	if code == "" {
		return false
	}
	if _, known := reg.byCode[code]; known {
		return false
	}
	country.Code = code
	reg.byCode[code] = country
	reg.order = append(reg.order, code)
	return true
}

// Countries returns the deduplicated set in first-seen order.
func (reg *CountryRegistry) Countries() []domain.Country {
	out := make([]domain.Country, 0, len(reg.order))
	for _, code := range reg.order {
		out = append(out, reg.byCode[code])
	}
	return out
}
