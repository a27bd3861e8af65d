package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/silang-hris/payroll-backend-go/internal/domain/timesheet"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/database"
)

type dayRecordRepository struct {
	db *database.DB
}

func NewDayRecordRepository(db *database.DB) timesheet.DayRecordRepository {
	return &dayRecordRepository{db: db}
}

const dayRecordColumns = `
	id, company_id, employee_id, date, clock_in, clock_out, source_type,
	day_type, status, early_in_approved, late_out_approved, late_in_approved,
	early_out_approved, break_minutes_override, daily_rate_override,
	shift_override_id, override_reason, is_locked, created_at, updated_at
`

func scanDayRecord(row pgx.Row) (timesheet.DayRecord, error) {
	var rec timesheet.DayRecord
	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.Date, &rec.ClockIn, &rec.ClockOut, &rec.SourceType,
		&rec.DayType, &rec.Status, &rec.Override.EarlyInApproved, &rec.Override.LateOutApproved, &rec.Override.LateInApproved,
		&rec.Override.EarlyOutApproved, &rec.Override.BreakMinutesOverride, &rec.Override.DailyRateOverride,
		&rec.Override.ShiftOverrideID, &rec.Override.Reason, &rec.IsLocked, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (r *dayRecordRepository) Upsert(ctx context.Context, rec timesheet.DayRecord) (timesheet.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	// A re-import replaces the punches only; a stored classification such
	// as a marked rest day survives.
	query := `
		INSERT INTO day_records (
			company_id, employee_id, date, clock_in, clock_out, source_type, day_type, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			clock_in = EXCLUDED.clock_in,
			clock_out = EXCLUDED.clock_out,
			source_type = EXCLUDED.source_type,
			updated_at = NOW()
		WHERE day_records.is_locked = FALSE
		RETURNING ` + dayRecordColumns

	saved, err := scanDayRecord(q.QueryRow(ctx, query,
		rec.CompanyID, rec.EmployeeID, rec.Date, rec.ClockIn, rec.ClockOut, rec.SourceType, rec.DayType, rec.Status,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			// Conflict hit a locked row, the WHERE suppressed the update.
			return timesheet.DayRecord{}, timesheet.ErrDayLocked
		}
		return timesheet.DayRecord{}, fmt.Errorf("failed to upsert day record: %w", err)
	}

	return saved, nil
}

func (r *dayRecordRepository) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) (timesheet.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dayRecordColumns + `
		FROM day_records
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`

	rec, err := scanDayRecord(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.DayRecord{}, timesheet.ErrDayRecordNotFound
		}
		return timesheet.DayRecord{}, fmt.Errorf("failed to get day record: %w", err)
	}

	return rec, nil
}

func (r *dayRecordRepository) ListByPeriod(ctx context.Context, companyID string, from, to time.Time, employeeIDs []string) ([]timesheet.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dayRecordColumns + `
		FROM day_records
		WHERE company_id = $1 AND date >= $2 AND date <= $3
	`
	args := []interface{}{companyID, from, to}
	if len(employeeIDs) > 0 {
		query += ` AND employee_id = ANY($4)`
		args = append(args, employeeIDs)
	}
	query += ` ORDER BY employee_id, date`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list day records: %w", err)
	}
	defer rows.Close()

	var records []timesheet.DayRecord
	for rows.Next() {
		rec, err := scanDayRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate day records: %w", err)
	}

	return records, nil
}

func (r *dayRecordRepository) List(ctx context.Context, companyID string, filter timesheet.DayRecordFilter) ([]timesheet.DayRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE dr.company_id = $1`
	args := []interface{}{companyID}
	argPos := 2

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(` AND dr.employee_id = $%d`, argPos)
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.DateFrom != nil {
		where += fmt.Sprintf(` AND dr.date >= $%d`, argPos)
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		where += fmt.Sprintf(` AND dr.date <= $%d`, argPos)
		args = append(args, *filter.DateTo)
		argPos++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(` AND dr.status = $%d`, argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM day_records dr` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count day records: %w", err)
	}

	query := `
		SELECT dr.id, dr.company_id, dr.employee_id, dr.date, dr.clock_in, dr.clock_out, dr.source_type,
			dr.day_type, dr.status, dr.early_in_approved, dr.late_out_approved, dr.late_in_approved,
			dr.early_out_approved, dr.break_minutes_override, dr.daily_rate_override,
			dr.shift_override_id, dr.override_reason, dr.is_locked, dr.created_at, dr.updated_at,
			e.full_name
		FROM day_records dr
		JOIN employees e ON e.id = dr.employee_id` + where + fmt.Sprintf(`
		ORDER BY dr.date DESC, e.full_name
		LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list day records: %w", err)
	}
	defer rows.Close()

	var records []timesheet.DayRecord
	for rows.Next() {
		var rec timesheet.DayRecord
		err := rows.Scan(
			&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.Date, &rec.ClockIn, &rec.ClockOut, &rec.SourceType,
			&rec.DayType, &rec.Status, &rec.Override.EarlyInApproved, &rec.Override.LateOutApproved, &rec.Override.LateInApproved,
			&rec.Override.EarlyOutApproved, &rec.Override.BreakMinutesOverride, &rec.Override.DailyRateOverride,
			&rec.Override.ShiftOverrideID, &rec.Override.Reason, &rec.IsLocked, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan day record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate day records: %w", err)
	}

	return records, total, nil
}

func (r *dayRecordRepository) UpdateOverride(ctx context.Context, id, companyID string, override timesheet.DayOverride) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE day_records SET
			early_in_approved = $1,
			late_out_approved = $2,
			late_in_approved = $3,
			early_out_approved = $4,
			break_minutes_override = $5,
			daily_rate_override = $6,
			shift_override_id = $7,
			override_reason = $8,
			updated_at = NOW()
		WHERE id = $9 AND company_id = $10 AND is_locked = FALSE
	`

	commandTag, err := q.Exec(ctx, query,
		override.EarlyInApproved, override.LateOutApproved, override.LateInApproved, override.EarlyOutApproved,
		override.BreakMinutesOverride, override.DailyRateOverride, override.ShiftOverrideID, override.Reason,
		id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update day override: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		// Either missing or locked; distinguish for the caller.
		var locked bool
		err := q.QueryRow(ctx, `SELECT is_locked FROM day_records WHERE id = $1 AND company_id = $2`, id, companyID).Scan(&locked)
		if err == pgx.ErrNoRows {
			return timesheet.ErrDayRecordNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check day record lock: %w", err)
		}
		if locked {
			return timesheet.ErrDayLocked
		}
		return timesheet.ErrDayRecordNotFound
	}

	return nil
}

func (r *dayRecordRepository) LockByPeriod(ctx context.Context, companyID string, from, to time.Time, employeeIDs []string) error {
	q := GetQuerier(ctx, r.db)

	// An empty id list locks nothing; the lock scope is always the run's
	// own employees, never the whole company.
	query := `
		UPDATE day_records SET is_locked = TRUE, updated_at = NOW()
		WHERE company_id = $1 AND date >= $2 AND date <= $3 AND employee_id = ANY($4)
	`
	if _, err := q.Exec(ctx, query, companyID, from, to, employeeIDs); err != nil {
		return fmt.Errorf("failed to lock day records: %w", err)
	}

	return nil
}

func (r *dayRecordRepository) SeedMissingForDate(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO day_records (company_id, employee_id, date, source_type, day_type, status)
		SELECT e.company_id, e.id, $1, $2, $3, $4
		FROM employees e
		WHERE e.is_active = TRUE
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	commandTag, err := q.Exec(ctx, query, date,
		timesheet.PunchSourceManual, timesheet.DayTypeRegular, timesheet.StatusAbsent)
	if err != nil {
		return 0, fmt.Errorf("failed to seed missing day records: %w", err)
	}

	return commandTag.RowsAffected(), nil
}
