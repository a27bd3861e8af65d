package timesheet

import (
	"context"
	"time"
)

type DayRecordFilter struct {
	EmployeeID *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     *AttendanceStatus
	Page       int
	Limit      int
}

type DayRecordRepository interface {
	Upsert(ctx context.Context, rec DayRecord) (DayRecord, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) (DayRecord, error)
	ListByPeriod(ctx context.Context, companyID string, from, to time.Time, employeeIDs []string) ([]DayRecord, error)
	List(ctx context.Context, companyID string, filter DayRecordFilter) ([]DayRecord, int64, error)
	UpdateOverride(ctx context.Context, id, companyID string, override DayOverride) error
	// LockByPeriod marks every record in the run's employee/date scope
	// immutable. Called inside the approval transaction.
	LockByPeriod(ctx context.Context, companyID string, from, to time.Time, employeeIDs []string) error
	// SeedMissingForDate creates an absent day record for every active
	// employee with no record on the date. Returns how many were created.
	SeedMissingForDate(ctx context.Context, date time.Time) (int64, error)
}
