package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/silang-hris/payroll-backend-go/internal/domain/leave"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/database"
)

type leaveGrantRepository struct {
	db *database.DB
}

func NewLeaveGrantRepository(db *database.DB) leave.GrantRepository {
	return &leaveGrantRepository{db: db}
}

func (r *leaveGrantRepository) ListApprovedByRange(ctx context.Context, companyID string, from, to time.Time, employeeIDs []string) ([]leave.Grant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, leave_type, start_date, end_date, status, created_at, updated_at
		FROM leave_grants
		WHERE company_id = $1 AND status = $2 AND start_date <= $3 AND end_date >= $4
	`
	args := []interface{}{companyID, leave.GrantStatusApproved, to, from}
	if len(employeeIDs) > 0 {
		query += ` AND employee_id = ANY($5)`
		args = append(args, employeeIDs)
	}
	query += ` ORDER BY employee_id, start_date`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave grants: %w", err)
	}
	defer rows.Close()

	var grants []leave.Grant
	for rows.Next() {
		var g leave.Grant
		err := rows.Scan(&g.ID, &g.CompanyID, &g.EmployeeID, &g.LeaveType, &g.StartDate, &g.EndDate, &g.Status, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave grant: %w", err)
		}
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave grants: %w", err)
	}

	return grants, nil
}

func (r *leaveGrantRepository) GetApprovedByEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) (leave.Grant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, leave_type, start_date, end_date, status, created_at, updated_at
		FROM leave_grants
		WHERE employee_id = $1 AND company_id = $2 AND status = $3 AND start_date <= $4 AND end_date >= $4
		LIMIT 1
	`

	var g leave.Grant
	err := q.QueryRow(ctx, query, employeeID, companyID, leave.GrantStatusApproved, date).Scan(
		&g.ID, &g.CompanyID, &g.EmployeeID, &g.LeaveType, &g.StartDate, &g.EndDate, &g.Status, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Grant{}, leave.ErrGrantNotFound
		}
		return leave.Grant{}, fmt.Errorf("failed to get leave grant: %w", err)
	}

	return g, nil
}
