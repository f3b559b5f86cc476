package transform

import (
	"github.com/spec-kit/asset-sync/internal/domain"
)

// returnedStatuses are asset states counted as "back in circulation".
var returnedStatuses = map[string]bool{
	"returned":  true,
	"received":  true,
	"available": true,
}

// Offboard maps a raw offboard record to its canonical row. Reason and notes
// are free text and pass the redaction filter. ReturnedAssets derives from
// the per-asset return status: no assets means nothing outstanding.
func Offboard(raw map[string]any) domain.Offboard {
	r := NewRecord(raw)

	status := r.String("status")
	if status == "" {
		status = "pending"
	}

	returned := false
	if count := r.IntPtr("assets_count"); count == nil || *count == 0 {
		returned = true
	}
	if assets := r.List("assets"); len(assets) > 0 {
		allReturned := true
		for _, asset := range assets {
			if !returnedStatuses[asset.String("status")] {
				allReturned = false
				break
			}
		}
		if allReturned {
			returned = true
		}
	}

	reason := r.StringPtr("reason", "type")

	return domain.Offboard{
		ID:             r.ID("id"),
		EmployeeID:     r.IDPtr("employee_id"),
		OffboardDate:   r.TimeOrNow("offboard_date", "scheduled_date", "approved_at"),
		Reason:         ScrubTextPtr(reason),
		Status:         status,
		ReturnedAssets: returned,
		Notes:          ScrubTextPtr(r.StringPtr("notes", "extra_info")),
		ProcessedBy:    r.IDPtr("processed_by", "approved_by"),
		CreatedAt:      r.TimeOrNow("created_at", "createdAt"),
		UpdatedAt:      r.TimeOrNow("updated_at", "updatedAt"),
	}
}
