package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/asset-sync/internal/domain"
)

// EmployeeRepository handles persistence for synced employees.
type EmployeeRepository interface {
	UpsertBatch(ctx context.Context, employees []domain.Employee) error
	ListIDs(ctx context.Context) (map[string]bool, error)
	SetAddressID(ctx context.Context, employeeID, addressID string) error
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

// upsertEmployeeQuery leaves createdAt out of the conflict-update list so it
// survives from the first insert, and never touches addressId: the address
// stage owns that link.
const upsertEmployeeQuery = `
        INSERT INTO employees (
            id, "firstName", "lastName", email, department, role,
            status, "jobTitle", "managerId", "officeId", team,
            "foreignId", "registrationStatus", "isDeactivated", "userId",
            "startDate", "endDate", "createdAt", "updatedAt"
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
        ON CONFLICT (id) DO UPDATE SET
            "firstName" = EXCLUDED."firstName",
            "lastName" = EXCLUDED."lastName",
            email = EXCLUDED.email,
            department = EXCLUDED.department,
            role = EXCLUDED.role,
            status = EXCLUDED.status,
            "jobTitle" = EXCLUDED."jobTitle",
            "managerId" = EXCLUDED."managerId",
            "officeId" = EXCLUDED."officeId",
            team = EXCLUDED.team,
            "foreignId" = EXCLUDED."foreignId",
            "registrationStatus" = EXCLUDED."registrationStatus",
            "isDeactivated" = EXCLUDED."isDeactivated",
            "userId" = EXCLUDED."userId",
            "startDate" = EXCLUDED."startDate",
            "endDate" = EXCLUDED."endDate",
            "updatedAt" = EXCLUDED."updatedAt"`

func (r *employeeRepository) UpsertBatch(ctx context.Context, employees []domain.Employee) error {
	batch := &pgx.Batch{}
	for _, e := range employees {
		batch.Queue(upsertEmployeeQuery,
			e.ID,
			e.FirstName,
			e.LastName,
			e.Email,
			e.Department,
			e.Role,
			string(e.Status),
			e.JobTitle,
			e.ManagerID,
			e.OfficeID,
			e.Team,
			e.ForeignID,
			e.RegistrationStatus,
			e.IsDeactivated,
			e.UserID,
			e.StartDate,
			e.EndDate,
			e.CreatedAt,
			e.UpdatedAt,
		)
	}
	return execBatch(ctx, r.pool, "employees", batch)
}

func (r *employeeRepository) ListIDs(ctx context.Context) (map[string]bool, error) {
	return listIDs(ctx, r.pool, `SELECT id FROM employees`)
}

func (r *employeeRepository) SetAddressID(ctx context.Context, employeeID, addressID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE employees SET "addressId"=$1, "updatedAt"=NOW() WHERE id=$2`,
		addressID, employeeID)
	return err
}
