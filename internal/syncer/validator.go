package syncer

import (
	"github.com/spec-kit/asset-sync/internal/observability"
)

// Validator reconciles foreign keys against the current contents of the
// referenced tables. A dangling reference is replaced with null and counted;
// it never fails the batch. Offboards are the one exception, handled by the
// offboard stage: a dangling employee drops the whole row.
type Validator struct {
	metrics *observability.Metrics
}

// NewValidator creates a validator reporting into the given counters.
func NewValidator(metrics *observability.Metrics) *Validator {
	return &Validator{metrics: metrics}
}

// Nullify clears *ref when it points outside the valid id set. Returns true
// when the reference was dangling.
func (v *Validator) Nullify(entity string, ref **string, valid map[string]bool) bool {
	if ref == nil || *ref == nil {
		return false
	}
	if valid[**ref] {
		return false
	}
	*ref = nil
	v.metrics.RecordInvalidRef(entity)
	return true
}

// Valid reports whether ref is non-nil and present in the valid id set.
func (v *Validator) Valid(ref *string, valid map[string]bool) bool {
	return ref != nil && valid[*ref]
}
