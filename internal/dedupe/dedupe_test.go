package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/asset-sync/internal/domain"
)

func strptr(s string) *string { return &s }

func TestAddressRegistryReusesNaturalKey(t *testing.T) {
	reg := NewAddressRegistry(nil)

	first, created := reg.Canonical(domain.Address{
		ID:      "a1",
		City:    strptr("Rotterdam"),
		Country: strptr("Netherlands"),
	})
	require.True(t, created)
	assert.Equal(t, "a1", first.ID)

	// Same city and country under a different upstream id collapses to
	// the first row.
	second, created := reg.Canonical(domain.Address{
		ID:      "a2",
		City:    strptr("rotterdam"),
		Country: strptr("NETHERLANDS"),
	})
	assert.False(t, created)
	assert.Equal(t, "a1", second.ID)

	other, created := reg.Canonical(domain.Address{
		ID:      "a3",
		City:    strptr("Utrecht"),
		Country: strptr("Netherlands"),
	})
	assert.True(t, created)
	assert.Equal(t, "a3", other.ID)
}

func TestAddressRegistryMintsID(t *testing.T) {
	reg := NewAddressRegistry(nil)

	minted, created := reg.Canonical(domain.Address{
		City:    strptr("Leipzig"),
		Country: strptr("Germany"),
	})
	require.True(t, created)
	assert.NotEmpty(t, minted.ID)
	assert.True(t, reg.Known(minted.ID))

	again, created := reg.Canonical(domain.Address{
		City:    strptr("Leipzig"),
		Country: strptr("Germany"),
	})
	assert.False(t, created)
	assert.Equal(t, minted.ID, again.ID)
}

func TestAddressRegistrySeededFromExisting(t *testing.T) {
	reg := NewAddressRegistry([]domain.Address{
		{ID: "db1", City: strptr("Sydney"), Country: strptr("Australia")},
	})

	addr, created := reg.Canonical(domain.Address{
		ID:      "fresh",
		City:    strptr("Sydney"),
		Country: strptr("Australia"),
	})
	assert.False(t, created)
	assert.Equal(t, "db1", addr.ID)

	// A re-upsert of a known id is not a creation.
	same, created := reg.Canonical(domain.Address{ID: "db1"})
	assert.False(t, created)
	assert.Equal(t, "db1", same.ID)
}

func TestAddressRegistryWithoutNaturalKey(t *testing.T) {
	reg := NewAddressRegistry(nil)

	// City-only addresses cannot collapse; each id stands alone.
	a, created := reg.Canonical(domain.Address{ID: "x1", City: strptr("Tokyo")})
	assert.True(t, created)
	assert.Equal(t, "x1", a.ID)

	b, created := reg.Canonical(domain.Address{ID: "x2", City: strptr("Tokyo")})
	assert.True(t, created)
	assert.Equal(t, "x2", b.ID)
}

func TestCountryRegistryDeduplicatesByCode(t *testing.T) {
	reg := NewCountryRegistry()

	assert.True(t, reg.Add(domain.Country{ID: "c1", Name: "Netherlands", Code: "NL"}))
	assert.False(t, reg.Add(domain.Country{ID: "c9", Name: "The Netherlands", Code: "nl"}))
	assert.True(t, reg.Add(domain.Country{ID: "c2", Name: "Germany", Code: "DE"}))
	assert.False(t, reg.Add(domain.Country{ID: "c3", Name: "Nowhere", Code: ""}))

	countries := reg.Countries()
	require.Len(t, countries, 2)
	// First-seen order, first id per code wins, codes upper-cased.
	assert.Equal(t, "c1", countries[0].ID)
	assert.Equal(t, "NL", countries[0].Code)
	assert.Equal(t, "Netherlands", countries[0].Name)
	assert.Equal(t, "DE", countries[1].Code)
}
