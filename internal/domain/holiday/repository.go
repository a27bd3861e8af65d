package holiday

import (
	"context"
	"errors"
	"time"
)

var ErrHolidayNotFound = errors.New("holiday not found")

type CalendarRepository interface {
	GetByDate(ctx context.Context, companyID string, date time.Time) (Event, error)
	// ListByRange returns holidays keyed by "2006-01-02" date string.
	ListByRange(ctx context.Context, companyID string, from, to time.Time) (map[string]Event, error)
	Upsert(ctx context.Context, ev Event) (Event, error)
	Delete(ctx context.Context, id, companyID string) error
}
