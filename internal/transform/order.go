package transform

import (
	"encoding/json"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// Order maps a raw order record to its canonical row. The receiver id routes
// into employeeId only when the receiver type says it is an employee; the
// shipping block is carried as an opaque JSON string.
func Order(raw map[string]any) domain.Order {
	r := NewRecord(raw)
	id := r.ID("id")

	orderNumber := r.String("number", "order_number")
	if orderNumber == "" {
		orderNumber = "ORDER-" + id
	}

	status := r.String("status")
	if status == "" {
		status = "unknown"
	}

	orderDate := r.TimeOrNow("created_at", "createdAt")

	customerID := r.ObjectID("actor")
	if customerID == nil {
		customerID = r.IDPtr("customer_id")
	}

	var employeeID *string
	if r.String("receiver_type") == "employee" {
		employeeID = r.IDPtr("receiver_id")
	}
	if employeeID == nil {
		employeeID = r.IDPtr("employee_id")
	}

	warehouseID := r.ObjectID("warehouse")
	if warehouseID == nil {
		warehouseID = r.IDPtr("warehouse_id")
	}

	var shippingInfo *string
	if shipping, ok := r.value("shipping_info", "shippingInfo"); ok {
		if encoded, err := json.Marshal(shipping); err == nil {
			s := string(encoded)
			shippingInfo = &s
		}
	}

	return domain.Order{
		ID:              id,
		OrderNumber:     orderNumber,
		Status:          status,
		OrderDate:       orderDate,
		DeliveryDate:    r.TimePtr("delivery_date", "deliveryDate"),
		TotalAmount:     r.DecimalPtr("total_amount", "buy_subtotal"),
		Currency:        currencyName(r),
		CustomerID:      customerID,
		EmployeeID:      employeeID,
		WarehouseID:     warehouseID,
		Notes:           ScrubTextPtr(r.StringPtr("notes", "description")),
		PONumber:        r.StringPtr("po_number", "poNumber"),
		TotalProducts:   r.IntPtr("total_products", "totalProducts"),
		Receiver:        r.ObjectName("receiver"),
		ReceiverType:    r.StringPtr("receiver_type", "receiverType"),
		ExpressDelivery: r.Bool("express_delivery", "expressDelivery"),
		ShippingInfo:    shippingInfo,
		CreatedAt:       orderDate,
		UpdatedAt:       r.TimeOrNow("updated_at", "updatedAt"),
	}
}

// currencyName unwraps a currency object to its name or code, accepting a
// plain string as well.
func currencyName(r Record) *string {
	if cur, ok := r.Object("currency"); ok {
		return cur.StringPtr("name", "code")
	}
	return r.StringPtr("currency")
}
