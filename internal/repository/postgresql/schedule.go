package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/silang-hris/payroll-backend-go/internal/domain/schedule"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/database"
)

type shiftTemplateRepository struct {
	db *database.DB
}

func NewShiftTemplateRepository(db *database.DB) schedule.ShiftTemplateRepository {
	return &shiftTemplateRepository{db: db}
}

const shiftColumns = `
	id, company_id, name, start_minute, end_minute, break_minutes,
	break_start_minute, break_end_minute, grace_late_minutes,
	grace_early_out_minutes, is_overnight, created_at, updated_at, deleted_at
`

func scanShift(row pgx.Row) (schedule.ShiftTemplate, error) {
	var s schedule.ShiftTemplate
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.StartMinute, &s.EndMinute, &s.BreakMinutes,
		&s.BreakStartMinute, &s.BreakEndMinute, &s.GraceLateMinutes,
		&s.GraceEarlyOutMinutes, &s.IsOvernight, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	return s, err
}

func (r *shiftTemplateRepository) Create(ctx context.Context, shift schedule.ShiftTemplate) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_templates (
			company_id, name, start_minute, end_minute, break_minutes,
			break_start_minute, break_end_minute, grace_late_minutes,
			grace_early_out_minutes, is_overnight
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query,
		shift.CompanyID, shift.Name, shift.StartMinute, shift.EndMinute, shift.BreakMinutes,
		shift.BreakStartMinute, shift.BreakEndMinute, shift.GraceLateMinutes,
		shift.GraceEarlyOutMinutes, shift.IsOvernight,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_shift_template_name") {
			return schedule.ShiftTemplate{}, schedule.ErrShiftNameExists
		}
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to create shift template: %w", err)
	}

	return created, nil
}

func (r *shiftTemplateRepository) GetByID(ctx context.Context, id, companyID string) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_templates
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	s, err := scanShift(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ShiftTemplate{}, schedule.ErrShiftNotFound
		}
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to get shift template: %w", err)
	}

	return s, nil
}

func (r *shiftTemplateRepository) GetByIDs(ctx context.Context, ids []string, companyID string) (map[string]schedule.ShiftTemplate, error) {
	result := make(map[string]schedule.ShiftTemplate, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_templates
		WHERE id = ANY($1) AND company_id = $2 AND deleted_at IS NULL
	`

	rows, err := q.Query(ctx, query, ids, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shift templates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		result[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift templates: %w", err)
	}

	return result, nil
}

func (r *shiftTemplateRepository) ListByCompanyID(ctx context.Context, companyID string) ([]schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_templates
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}
	defer rows.Close()

	var shifts []schedule.ShiftTemplate
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift templates: %w", err)
	}

	return shifts, nil
}

func (r *shiftTemplateRepository) Update(ctx context.Context, shift schedule.ShiftTemplate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_templates SET
			name = $1,
			start_minute = $2,
			end_minute = $3,
			break_minutes = $4,
			break_start_minute = $5,
			break_end_minute = $6,
			grace_late_minutes = $7,
			grace_early_out_minutes = $8,
			is_overnight = $9,
			updated_at = NOW()
		WHERE id = $10 AND company_id = $11 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query,
		shift.Name, shift.StartMinute, shift.EndMinute, shift.BreakMinutes,
		shift.BreakStartMinute, shift.BreakEndMinute, shift.GraceLateMinutes,
		shift.GraceEarlyOutMinutes, shift.IsOvernight,
		shift.ID, shift.CompanyID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_shift_template_name") {
			return schedule.ErrShiftNameExists
		}
		return fmt.Errorf("failed to update shift template: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrShiftNotFound
	}

	return nil
}

func (r *shiftTemplateRepository) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_templates SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete shift template: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrShiftNotFound
	}

	return nil
}
