package domain

import "time"

// EmployeeStatus enumerates employment states.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Employee models a synced employee row. Names and email arrive already
// redacted from the transformer; raw PII never reaches this struct.
type Employee struct {
	ID                 string
	FirstName          string
	LastName           string
	Email              string
	Department         *string
	Role               *string
	Status             EmployeeStatus
	JobTitle           *string
	ManagerID          *string
	OfficeID           *string
	AddressID          *string
	Team               *string
	ForeignID          *string
	RegistrationStatus *string
	IsDeactivated      bool
	UserID             *string
	StartDate          *time.Time
	EndDate            *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
