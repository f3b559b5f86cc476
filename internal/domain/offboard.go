package domain

import "time"

// Offboard models an employee offboarding row. EmployeeID must reference an
// existing employee; rows with a dangling reference are dropped before
// persistence rather than nulled.
type Offboard struct {
	ID             string
	EmployeeID     *string
	OffboardDate   time.Time
	Reason         *string
	Status         string
	ReturnedAssets bool
	Notes          *string
	ProcessedBy    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
