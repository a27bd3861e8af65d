package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/silang-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/database"
)

type payrollRunRepository struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.RunRepository {
	return &payrollRunRepository{db: db}
}

const runColumns = `
	id, company_id, period_start, period_end, status, created_by,
	approved_by, approved_at, released_at, total_gross, total_deductions,
	total_net, employee_count, created_at, updated_at
`

func scanRun(row pgx.Row) (payroll.Run, error) {
	var r payroll.Run
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.PeriodStart, &r.PeriodEnd, &r.Status, &r.CreatedBy,
		&r.ApprovedBy, &r.ApprovedAt, &r.ReleasedAt, &r.TotalGross, &r.TotalDeductions,
		&r.TotalNet, &r.EmployeeCount, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r *payrollRunRepository) Create(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	query := `
		INSERT INTO payroll_runs (
			id, company_id, period_start, period_end, status, created_by,
			total_gross, total_deductions, total_net
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + runColumns

	created, err := scanRun(q.QueryRow(ctx, query,
		run.ID, run.CompanyID, run.PeriodStart, run.PeriodEnd, run.Status, run.CreatedBy,
		run.TotalGross, run.TotalDeductions, run.TotalNet,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_run_period") {
			return payroll.Run{}, payroll.ErrRunAlreadyExists
		}
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return created, nil
}

func (r *payrollRunRepository) GetByID(ctx context.Context, id, companyID string) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE id = $1 AND company_id = $2
	`

	run, err := scanRun(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRunRepository) GetByPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE company_id = $1 AND period_start = $2 AND period_end = $3 AND status != $4
	`

	run, err := scanRun(q.QueryRow(ctx, query, companyID, periodStart, periodEnd, payroll.RunStatusCancelled))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run by period: %w", err)
	}

	return run, nil
}

func (r *payrollRunRepository) List(ctx context.Context, companyID string, filter payroll.RunFilter) ([]payroll.Run, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE company_id = $1`
	args := []interface{}{companyID}
	argPos := 2

	if filter.Status != nil {
		where += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.Year != nil {
		where += fmt.Sprintf(` AND EXTRACT(YEAR FROM period_start) = $%d`, argPos)
		args = append(args, *filter.Year)
		argPos++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_runs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll runs: %w", err)
	}

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs` + where + fmt.Sprintf(`
		ORDER BY period_start DESC
		LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll runs: %w", err)
	}

	return runs, total, nil
}

// UpdateStatusIf implements payroll.RunRepository. The expected-status guard
// in the WHERE clause is the concurrency fence: two callers racing the same
// transition see exactly one RowsAffected() == 1.
func (r *payrollRunRepository) UpdateStatusIf(ctx context.Context, id, companyID string, expected, next payroll.RunStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs SET status = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND status = $4
	`

	commandTag, err := q.Exec(ctx, query, next, id, companyID, expected)
	if err != nil {
		return fmt.Errorf("failed to update payroll run status: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM payroll_runs WHERE id = $1 AND company_id = $2)`, id, companyID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check payroll run: %w", err)
		}
		if !exists {
			return payroll.ErrRunNotFound
		}
		return payroll.ErrRunStatusChanged
	}

	return nil
}

func (r *payrollRunRepository) UpdateTotals(ctx context.Context, id, companyID string, summary payroll.RunSummary) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs SET
			total_gross = $1,
			total_deductions = $2,
			total_net = $3,
			employee_count = $4,
			updated_at = NOW()
		WHERE id = $5 AND company_id = $6
	`

	commandTag, err := q.Exec(ctx, query,
		summary.TotalGross, summary.TotalDeductions, summary.TotalNet, summary.EmployeeCount,
		id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll run totals: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

func (r *payrollRunRepository) SetApproval(ctx context.Context, id, companyID, approvedBy string, approvedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs SET approved_by = $1, approved_at = $2, updated_at = NOW()
		WHERE id = $3 AND company_id = $4
	`

	commandTag, err := q.Exec(ctx, query, approvedBy, approvedAt, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to set payroll run approval: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

func (r *payrollRunRepository) SetReleased(ctx context.Context, id, companyID string, releasedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs SET released_at = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`

	commandTag, err := q.Exec(ctx, query, releasedAt, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to set payroll run release: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepository{db: db}
}

func (r *payslipRepository) DeleteByRunID(ctx context.Context, runID string) error {
	q := GetQuerier(ctx, r.db)

	// Lines cascade on the payslip foreign key.
	if _, err := q.Exec(ctx, `DELETE FROM payslips WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to delete payslips: %w", err)
	}

	return nil
}

func (r *payslipRepository) CreateBatch(ctx context.Context, payslips []payroll.Payslip) error {
	q := GetQuerier(ctx, r.db)

	payslipQuery := `
		INSERT INTO payslips (run_id, employee_id, gross_pay, total_deductions, net_pay)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	lineQuery := `
		INSERT INTO payslip_lines (payslip_id, category, description, amount, sort_order)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, p := range payslips {
		var payslipID string
		err := q.QueryRow(ctx, payslipQuery, p.RunID, p.EmployeeID, p.GrossPay, p.TotalDeductions, p.NetPay).Scan(&payslipID)
		if err != nil {
			return fmt.Errorf("failed to create payslip: %w", err)
		}

		for _, l := range p.Lines {
			if _, err := q.Exec(ctx, lineQuery, payslipID, l.Category, l.Description, l.Amount, l.SortOrder); err != nil {
				return fmt.Errorf("failed to create payslip line: %w", err)
			}
		}
	}

	return nil
}

func (r *payslipRepository) ListByRunID(ctx context.Context, runID, companyID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.run_id, p.employee_id, p.gross_pay, p.total_deductions, p.net_pay, p.created_at,
			e.full_name, e.employee_code
		FROM payslips p
		JOIN payroll_runs pr ON pr.id = p.run_id
		JOIN employees e ON e.id = p.employee_id
		WHERE p.run_id = $1 AND pr.company_id = $2
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, runID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		var p payroll.Payslip
		err := rows.Scan(
			&p.ID, &p.RunID, &p.EmployeeID, &p.GrossPay, &p.TotalDeductions, &p.NetPay, &p.CreatedAt,
			&p.EmployeeName, &p.EmployeeCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payslips: %w", err)
	}

	if err := r.attachLines(ctx, payslips); err != nil {
		return nil, err
	}

	return payslips, nil
}

func (r *payslipRepository) GetByID(ctx context.Context, id, companyID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.run_id, p.employee_id, p.gross_pay, p.total_deductions, p.net_pay, p.created_at,
			e.full_name, e.employee_code
		FROM payslips p
		JOIN payroll_runs pr ON pr.id = p.run_id
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1 AND pr.company_id = $2
	`

	var p payroll.Payslip
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.RunID, &p.EmployeeID, &p.GrossPay, &p.TotalDeductions, &p.NetPay, &p.CreatedAt,
		&p.EmployeeName, &p.EmployeeCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	payslips := []payroll.Payslip{p}
	if err := r.attachLines(ctx, payslips); err != nil {
		return payroll.Payslip{}, err
	}

	return payslips[0], nil
}

func (r *payslipRepository) attachLines(ctx context.Context, payslips []payroll.Payslip) error {
	if len(payslips) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	ids := make([]string, 0, len(payslips))
	index := make(map[string]int, len(payslips))
	for i, p := range payslips {
		ids = append(ids, p.ID)
		index[p.ID] = i
	}

	query := `
		SELECT id, payslip_id, category, description, amount, sort_order
		FROM payslip_lines
		WHERE payslip_id = ANY($1)
		ORDER BY payslip_id, sort_order
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to list payslip lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l payroll.PayslipLine
		if err := rows.Scan(&l.ID, &l.PayslipID, &l.Category, &l.Description, &l.Amount, &l.SortOrder); err != nil {
			return fmt.Errorf("failed to scan payslip line: %w", err)
		}
		if i, ok := index[l.PayslipID]; ok {
			payslips[i].Lines = append(payslips[i].Lines, l)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate payslip lines: %w", err)
	}

	return nil
}
