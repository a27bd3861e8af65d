package payroll

import (
	"context"
	"time"
)

type RunFilter struct {
	Status *RunStatus
	Year   *int
	Page   int
	Limit  int
}

type RunRepository interface {
	Create(ctx context.Context, run Run) (Run, error)
	GetByID(ctx context.Context, id, companyID string) (Run, error)
	GetByPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (Run, error)
	List(ctx context.Context, companyID string, filter RunFilter) ([]Run, int64, error)
	// UpdateStatusIf transitions the run only when its current status still
	// equals expected; returns ErrRunStatusChanged otherwise. This is the
	// optimistic fence against concurrent transitions.
	UpdateStatusIf(ctx context.Context, id, companyID string, expected, next RunStatus) error
	UpdateTotals(ctx context.Context, id, companyID string, summary RunSummary) error
	SetApproval(ctx context.Context, id, companyID, approvedBy string, approvedAt time.Time) error
	SetReleased(ctx context.Context, id, companyID string, releasedAt time.Time) error
}

type PayslipRepository interface {
	// DeleteByRunID clears previous results so recomputation regenerates the
	// whole batch instead of resuming a partial one.
	DeleteByRunID(ctx context.Context, runID string) error
	CreateBatch(ctx context.Context, payslips []Payslip) error
	ListByRunID(ctx context.Context, runID, companyID string) ([]Payslip, error)
	GetByID(ctx context.Context, id, companyID string) (Payslip, error)
}
