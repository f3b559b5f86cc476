package transform

import (
	"github.com/spec-kit/asset-sync/internal/domain"
)

// Employee maps a raw employee record to its canonical row. Names and email
// are irreversibly redacted here; the address link is filled in later by the
// address stage.
func Employee(raw map[string]any) domain.Employee {
	r := NewRecord(raw)

	department := r.ObjectName("department")
	if department == nil {
		department = r.StringPtr("team")
	}

	var role *string
	if orig, ok := r.Object("original_role"); ok {
		role = orig.StringPtr("display_name", "name")
	} else {
		role = r.StringPtr("original_role")
	}

	status := domain.EmployeeActive
	deactivated := r.Bool("isDeactivated", "is_deactivated")
	if deactivated {
		status = domain.EmployeeInactive
	}

	return domain.Employee{
		ID:                 r.ID("id"),
		FirstName:          RedactName(r.String("first_name", "firstName")),
		LastName:           RedactName(r.String("last_name", "lastName")),
		Email:              AnonymizeEmail(r.String("email")),
		Department:         department,
		Role:               role,
		Status:             status,
		JobTitle:           r.StringPtr("job_title", "jobTitle"),
		ManagerID:          r.IDPtr("manager_id", "managerId"),
		OfficeID:           employeeOfficeID(r),
		Team:               r.StringPtr("team"),
		ForeignID:          r.IDPtr("foreign_id", "foreignId"),
		RegistrationStatus: r.StringPtr("registration_status", "registrationStatus"),
		IsDeactivated:      deactivated,
		UserID:             r.IDPtr("user_id", "userId"),
		StartDate:          r.TimePtr("start_date", "startDate", "created_at"),
		EndDate:            r.TimePtr("end_date", "endDate"),
		CreatedAt:          r.TimeOrNow("created_at", "createdAt"),
		UpdatedAt:          r.TimeOrNow("updated_at", "updatedAt"),
	}
}

// employeeOfficeID prefers the nested office object's id over flat spellings.
func employeeOfficeID(r Record) *string {
	if id := r.ObjectID("office"); id != nil {
		return id
	}
	return r.IDPtr("office_id", "officeId")
}
