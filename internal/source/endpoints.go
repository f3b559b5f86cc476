package source

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection endpoint paths.
const (
	PathEmployees  = "/employees"
	PathWarehouses = "/warehouses"
	PathOffices    = "/offices"
	PathAssets     = "/assets"
	PathOrders     = "/orders"
	PathProducts   = "/products"
	PathOffboards  = "/offboards"
)

// detailEnvelope wraps a single-object response: either {data: {...}} or
// {success: true, data: {...}}.
type detailEnvelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// EmployeeAddress fetches one employee's address. A 404 means the employee
// has no address on file and surfaces as a typed not-found, which FetchMany
// treats as absence rather than failure.
func (c *Client) EmployeeAddress(ctx context.Context, employeeID string) (Record, error) {
	body, err := c.get(ctx, fmt.Sprintf("/employees/%s/addresses", employeeID))
	if err != nil {
		return nil, err
	}

	var env detailEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode address for employee %s: %w", employeeID, err)
	}
	if env.Success != nil && !*env.Success {
		return nil, nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}
	return decodeObject(env.Data)
}

// AssetDetail fetches one asset's full payload, including the richer
// location block absent from the collection listing.
func (c *Client) AssetDetail(ctx context.Context, assetID string) (Record, error) {
	body, err := c.get(ctx, fmt.Sprintf("/assets/%s", assetID))
	if err != nil {
		return nil, err
	}

	var env detailEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", assetID, err)
	}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		return decodeObject(env.Data)
	}
	return decodeObject(body)
}
