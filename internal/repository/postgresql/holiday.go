package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/silang-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.CalendarRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) GetByDate(ctx context.Context, companyID string, date time.Time) (holiday.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, date, name, kind, created_at, updated_at
		FROM holidays
		WHERE company_id = $1 AND date = $2
	`

	var ev holiday.Event
	err := q.QueryRow(ctx, query, companyID, date).Scan(
		&ev.ID, &ev.CompanyID, &ev.Date, &ev.Name, &ev.Kind, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return holiday.Event{}, holiday.ErrHolidayNotFound
		}
		return holiday.Event{}, fmt.Errorf("failed to get holiday: %w", err)
	}

	return ev, nil
}

func (r *holidayRepository) ListByRange(ctx context.Context, companyID string, from, to time.Time) (map[string]holiday.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, date, name, kind, created_at, updated_at
		FROM holidays
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	result := make(map[string]holiday.Event)
	for rows.Next() {
		var ev holiday.Event
		err := rows.Scan(&ev.ID, &ev.CompanyID, &ev.Date, &ev.Name, &ev.Kind, &ev.CreatedAt, &ev.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		result[ev.Date.Format("2006-01-02")] = ev
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return result, nil
}

func (r *holidayRepository) Upsert(ctx context.Context, ev holiday.Event) (holiday.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (company_id, date, name, kind)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id, date) DO UPDATE SET
			name = EXCLUDED.name,
			kind = EXCLUDED.kind,
			updated_at = NOW()
		RETURNING id, company_id, date, name, kind, created_at, updated_at
	`

	var saved holiday.Event
	err := q.QueryRow(ctx, query, ev.CompanyID, ev.Date, ev.Name, ev.Kind).Scan(
		&saved.ID, &saved.CompanyID, &saved.Date, &saved.Name, &saved.Kind, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return holiday.Event{}, fmt.Errorf("failed to upsert holiday: %w", err)
	}

	return saved, nil
}

func (r *holidayRepository) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}
