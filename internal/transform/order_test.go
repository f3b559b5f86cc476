package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderReceiverRouting(t *testing.T) {
	employee := Order(map[string]any{
		"id":            "o1",
		"receiver_type": "employee",
		"receiver_id":   float64(12),
	})
	require.NotNil(t, employee.EmployeeID)
	assert.Equal(t, "12", *employee.EmployeeID)

	// A non-employee receiver never lands in employeeId.
	office := Order(map[string]any{
		"id":            "o2",
		"receiver_type": "office",
		"receiver_id":   float64(12),
	})
	assert.Nil(t, office.EmployeeID)

	flat := Order(map[string]any{
		"id":          "o3",
		"employee_id": "e5",
	})
	require.NotNil(t, flat.EmployeeID)
	assert.Equal(t, "e5", *flat.EmployeeID)
}

func TestOrderNumberFallback(t *testing.T) {
	assert.Equal(t, "ORD-778", Order(map[string]any{
		"id":     "1",
		"number": "ORD-778",
	}).OrderNumber)

	assert.Equal(t, "ORDER-9", Order(map[string]any{
		"id": float64(9),
	}).OrderNumber)
}

func TestOrderShippingInfoIsOpaqueJSON(t *testing.T) {
	order := Order(map[string]any{
		"id": "o1",
		"shipping_info": map[string]any{
			"carrier":  "DHL",
			"tracking": "JVGL123",
		},
	})
	require.NotNil(t, order.ShippingInfo)
	assert.JSONEq(t, `{"carrier":"DHL","tracking":"JVGL123"}`, *order.ShippingInfo)

	assert.Nil(t, Order(map[string]any{"id": "o2"}).ShippingInfo)
}

func TestOrderCurrencyUnwrapping(t *testing.T) {
	nested := Order(map[string]any{
		"id":       "o1",
		"currency": map[string]any{"name": "EUR"},
	})
	require.NotNil(t, nested.Currency)
	assert.Equal(t, "EUR", *nested.Currency)

	plain := Order(map[string]any{"id": "o2", "currency": "USD"})
	require.NotNil(t, plain.Currency)
	assert.Equal(t, "USD", *plain.Currency)
}

func TestOrderWarehouseFromNestedObject(t *testing.T) {
	order := Order(map[string]any{
		"id":        "o1",
		"warehouse": map[string]any{"id": float64(3)},
	})
	require.NotNil(t, order.WarehouseID)
	assert.Equal(t, "3", *order.WarehouseID)
}

func TestOrderStatusDefault(t *testing.T) {
	assert.Equal(t, "unknown", Order(map[string]any{"id": "o1"}).Status)
	assert.Equal(t, "shipped", Order(map[string]any{"id": "o2", "status": "shipped"}).Status)
}
