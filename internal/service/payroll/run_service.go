package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/silang-hris/payroll-backend-go/internal/domain/employee"
	"github.com/silang-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/silang-hris/payroll-backend-go/internal/domain/leave"
	"github.com/silang-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/silang-hris/payroll-backend-go/internal/domain/timesheet"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/database"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/validator"
	scheduleService "github.com/silang-hris/payroll-backend-go/internal/service/schedule"
	timesheetService "github.com/silang-hris/payroll-backend-go/internal/service/timesheet"
	"golang.org/x/sync/errgroup"
)

type RunService interface {
	CreateRun(ctx context.Context, req payroll.CreateRunRequest) (payroll.RunResponse, error)
	GetRun(ctx context.Context, id string) (payroll.RunResponse, error)
	ListRuns(ctx context.Context, filter payroll.RunFilter) (payroll.ListRunResponse, error)
	ComputeRun(ctx context.Context, id string) (payroll.RunResponse, error)
	ApproveRun(ctx context.Context, id string) (payroll.RunResponse, error)
	ReleaseRun(ctx context.Context, id string) (payroll.RunResponse, error)
	CancelRun(ctx context.Context, id string) (payroll.RunResponse, error)
	ListPayslips(ctx context.Context, runID string) ([]payroll.PayslipResponse, error)
}

type RunServiceImpl struct {
	tx           database.TxManager
	runRepo      payroll.RunRepository
	payslipRepo  payroll.PayslipRepository
	dayRepo      timesheet.DayRecordRepository
	employeeRepo employee.EmployeeRepository
	holidayRepo  holiday.CalendarRepository
	leaveRepo    leave.GrantRepository
	resolver     *scheduleService.Resolver
	calculator   *Calculator
	loc          *time.Location
}

func NewRunService(
	tx database.TxManager,
	runRepo payroll.RunRepository,
	payslipRepo payroll.PayslipRepository,
	dayRepo timesheet.DayRecordRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.CalendarRepository,
	leaveRepo leave.GrantRepository,
	resolver *scheduleService.Resolver,
	calculator *Calculator,
	loc *time.Location,
) RunService {
	return &RunServiceImpl{
		tx:           tx,
		runRepo:      runRepo,
		payslipRepo:  payslipRepo,
		dayRepo:      dayRepo,
		employeeRepo: employeeRepo,
		holidayRepo:  holidayRepo,
		leaveRepo:    leaveRepo,
		resolver:     resolver,
		calculator:   calculator,
		loc:          loc,
	}
}

func (s *RunServiceImpl) CreateRun(ctx context.Context, req payroll.CreateRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	start, _ := validator.ParseDate(req.PeriodStart)
	end, _ := validator.ParseDate(req.PeriodEnd)

	if _, err := s.runRepo.GetByPeriod(ctx, ident.CompanyID, start, end); err == nil {
		return payroll.RunResponse{}, payroll.ErrRunAlreadyExists
	} else if !errors.Is(err, payroll.ErrRunNotFound) {
		return payroll.RunResponse{}, fmt.Errorf("failed to check existing run: %w", err)
	}

	run := payroll.Run{
		CompanyID:       ident.CompanyID,
		PeriodStart:     start,
		PeriodEnd:       end,
		Status:          payroll.RunStatusDraft,
		CreatedBy:       ident.UserID,
		TotalGross:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
	}

	created, err := s.runRepo.Create(ctx, run)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to create payroll run: %w", err)
	}
	return payroll.ToRunResponse(created), nil
}

func (s *RunServiceImpl) GetRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.runRepo.GetByID(ctx, id, ident.CompanyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.ToRunResponse(run), nil
}

func (s *RunServiceImpl) ListRuns(ctx context.Context, filter payroll.RunFilter) (payroll.ListRunResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return payroll.ListRunResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	runs, total, err := s.runRepo.List(ctx, ident.CompanyID, filter)
	if err != nil {
		return payroll.ListRunResponse{}, fmt.Errorf("failed to list payroll runs: %w", err)
	}

	resp := payroll.ListRunResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Runs:       make([]payroll.RunResponse, 0, len(runs)),
	}
	for _, r := range runs {
		resp.Runs = append(resp.Runs, payroll.ToRunResponse(r))
	}
	return resp, nil
}

// ComputeRun recomputes every payslip in the run. Compute is re-entrant from
// DRAFT and REVIEW: previous payslips are discarded and the whole batch is
// regenerated, never resumed. Any failure reverts the run to DRAFT so it can
// never stick in COMPUTING.
func (s *RunServiceImpl) ComputeRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.runRepo.GetByID(ctx, id, ident.CompanyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if run.Status != payroll.RunStatusDraft && run.Status != payroll.RunStatusReview {
		return payroll.RunResponse{}, payroll.ErrInvalidRunTransition
	}

	if err := s.runRepo.UpdateStatusIf(ctx, run.ID, run.CompanyID, run.Status, payroll.RunStatusComputing); err != nil {
		return payroll.RunResponse{}, err
	}

	summary, err := s.computeBatch(ctx, run)
	if err != nil {
		// Best-effort revert; the run must not stay mid-state.
		if revertErr := s.runRepo.UpdateStatusIf(ctx, run.ID, run.CompanyID, payroll.RunStatusComputing, payroll.RunStatusDraft); revertErr != nil {
			slog.Error("failed to revert payroll run to draft", "run_id", run.ID, "error", revertErr)
		}
		return payroll.RunResponse{}, fmt.Errorf("%w: %v", payroll.ErrComputationFailed, err)
	}

	slog.Info("payroll run computed",
		"run_id", run.ID,
		"employees", summary.EmployeeCount,
		"total_net", summary.TotalNet,
	)

	refreshed, err := s.runRepo.GetByID(ctx, run.ID, run.CompanyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.ToRunResponse(refreshed), nil
}

// computeBatch builds every payslip and commits the batch atomically.
func (s *RunServiceImpl) computeBatch(ctx context.Context, run payroll.Run) (payroll.RunSummary, error) {
	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, run.CompanyID)
	if err != nil {
		return payroll.RunSummary{}, fmt.Errorf("failed to get employees: %w", err)
	}
	// Stable employee order keeps recomputation output identical.
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })

	figures, err := s.gatherFigures(ctx, run, employees)
	if err != nil {
		return payroll.RunSummary{}, err
	}

	// Per-employee computation has no cross-employee dependency, so the
	// pure arithmetic fans out; all writes stay in one transaction below.
	payslips := make([]payroll.Payslip, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slip, err := s.calculator.BuildPayslip(emp, figures[emp.ID])
			if err != nil {
				if errors.Is(err, employee.ErrMissingPayProfile) {
					return nil // no base rate, no payslip
				}
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			slip.RunID = run.ID
			payslips[i] = slip
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.RunSummary{}, err
	}

	kept := payslips[:0]
	for _, slip := range payslips {
		if slip.RunID != "" {
			kept = append(kept, slip)
		}
	}

	summary := payroll.RunSummary{RunID: run.ID, EmployeeCount: len(kept)}
	summary.TotalGross = decimal.Zero
	summary.TotalDeductions = decimal.Zero
	summary.TotalNet = decimal.Zero
	for _, slip := range kept {
		summary.TotalGross = summary.TotalGross.Add(slip.GrossPay)
		summary.TotalDeductions = summary.TotalDeductions.Add(slip.TotalDeductions)
		summary.TotalNet = summary.TotalNet.Add(slip.NetPay)
	}

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.payslipRepo.DeleteByRunID(txCtx, run.ID); err != nil {
			return fmt.Errorf("failed to clear previous payslips: %w", err)
		}
		if err := s.payslipRepo.CreateBatch(txCtx, kept); err != nil {
			return fmt.Errorf("failed to create payslips: %w", err)
		}
		if err := s.runRepo.UpdateTotals(txCtx, run.ID, run.CompanyID, summary); err != nil {
			return fmt.Errorf("failed to update run totals: %w", err)
		}
		return s.runRepo.UpdateStatusIf(txCtx, run.ID, run.CompanyID, payroll.RunStatusComputing, payroll.RunStatusReview)
	})
	if err != nil {
		return payroll.RunSummary{}, err
	}
	return summary, nil
}

// gatherFigures reconciles every day record in the period, grouped by
// employee.
func (s *RunServiceImpl) gatherFigures(ctx context.Context, run payroll.Run, employees []employee.Employee) (map[string][]DayFigures, error) {
	empByID := make(map[string]employee.Employee, len(employees))
	empIDs := make([]string, 0, len(employees))
	for _, emp := range employees {
		empByID[emp.ID] = emp
		empIDs = append(empIDs, emp.ID)
	}

	records, err := s.dayRepo.ListByPeriod(ctx, run.CompanyID, run.PeriodStart, run.PeriodEnd, empIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list day records: %w", err)
	}

	holidays, err := s.holidayRepo.ListByRange(ctx, run.CompanyID, run.PeriodStart, run.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	grants, err := s.leaveRepo.ListApprovedByRange(ctx, run.CompanyID, run.PeriodStart, run.PeriodEnd, empIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave grants: %w", err)
	}

	shifts, err := s.resolver.ResolveBatch(ctx, empByID, records, run.CompanyID)
	if err != nil {
		return nil, err
	}

	figures := make(map[string][]DayFigures, len(employees))
	for _, rec := range records {
		emp, ok := empByID[rec.EmployeeID]
		if !ok {
			continue
		}

		var holidayEv *holiday.Event
		if ev, ok := holidays[rec.Date.Format("2006-01-02")]; ok {
			holidayEv = &ev
		}
		var grant *leave.Grant
		for i := range grants {
			if grants[i].EmployeeID == rec.EmployeeID && grants[i].Covers(rec.Date) {
				grant = &grants[i]
				break
			}
		}

		cls := timesheetService.Classify(timesheetService.ClassifyInput{
			Date:               rec.Date,
			ClockIn:            rec.ClockIn,
			ClockOut:           rec.ClockOut,
			StandardDailyHours: emp.PayProfile.StandardHoursPerDay,
			Leave:              grant,
			Holiday:            holidayEv,
			StoredDayType:      rec.DayType,
			StoredStatus:       rec.Status,
			HasAssignedShift:   emp.DefaultShiftID != nil || rec.Override.ShiftOverrideID != nil,
		})
		rec.DayType = cls.DayType

		shift, ok := shifts[rec.ID]
		if !ok {
			return nil, fmt.Errorf("no resolved shift for record %s", rec.ID)
		}

		day := DayFigures{
			Date:    rec.Date,
			DayType: cls.DayType,
			Status:  cls.Status,
			Figures: timesheetService.Reconcile(timesheetService.ReconcileInput{
				Date:     rec.Date,
				DayType:  rec.DayType,
				ClockIn:  rec.ClockIn,
				ClockOut: rec.ClockOut,
				Shift:    shift,
				Override: rec.Override,
			}, s.loc),
		}
		if rec.Override.DailyRateOverride != nil {
			// A stored override that no longer parses must fail the batch;
			// silently paying the default rate would misprice the day.
			rate, err := decimal.NewFromString(*rec.Override.DailyRateOverride)
			if err != nil {
				return nil, fmt.Errorf("day record %s: invalid daily rate override %q: %w", rec.ID, *rec.Override.DailyRateOverride, err)
			}
			day.DailyRateOverride = &rate
		}

		figures[rec.EmployeeID] = append(figures[rec.EmployeeID], day)
	}
	return figures, nil
}

// ApproveRun moves a reviewed run to APPROVED. The approver may not be the
// creator unless they hold the override role, and approval locks every day
// record in the run scope in the same transaction as the status change so no
// edit can land between the decision and the lock.
func (s *RunServiceImpl) ApproveRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.runRepo.GetByID(ctx, id, ident.CompanyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if run.Status != payroll.RunStatusReview {
		return payroll.RunResponse{}, payroll.ErrInvalidRunTransition
	}
	if run.CreatedBy == ident.UserID && !ident.HasApprovalOverride() {
		return payroll.RunResponse{}, payroll.ErrSelfApproval
	}

	now := time.Now()
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.runRepo.UpdateStatusIf(txCtx, run.ID, run.CompanyID, payroll.RunStatusReview, payroll.RunStatusApproved); err != nil {
			return err
		}
		if err := s.runRepo.SetApproval(txCtx, run.ID, run.CompanyID, ident.UserID, now); err != nil {
			return fmt.Errorf("failed to record approval: %w", err)
		}

		// Only days the run actually paid become immutable; employees
		// outside the batch keep their records editable.
		slips, err := s.payslipRepo.ListByRunID(txCtx, run.ID, run.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to list payslips for locking: %w", err)
		}
		if len(slips) == 0 {
			return nil
		}
		empIDs := make([]string, 0, len(slips))
		for _, slip := range slips {
			empIDs = append(empIDs, slip.EmployeeID)
		}
		return s.dayRepo.LockByPeriod(txCtx, run.CompanyID, run.PeriodStart, run.PeriodEnd, empIDs)
	})
	if err != nil {
		return payroll.RunResponse{}, err
	}

	slog.Info("payroll run approved", "run_id", run.ID, "approved_by", ident.UserID)

	refreshed, err := s.runRepo.GetByID(ctx, run.ID, run.CompanyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.ToRunResponse(refreshed), nil
}

func (s *RunServiceImpl) ReleaseRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.runRepo.GetByID(ctx, id, ident.CompanyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if run.Status != payroll.RunStatusApproved {
		return payroll.RunResponse{}, payroll.ErrInvalidRunTransition
	}

	now := time.Now()
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.runRepo.UpdateStatusIf(txCtx, run.ID, run.CompanyID, payroll.RunStatusApproved, payroll.RunStatusReleased); err != nil {
			return err
		}
		return s.runRepo.SetReleased(txCtx, run.ID, run.CompanyID, now)
	})
	if err != nil {
		return payroll.RunResponse{}, err
	}

	refreshed, err := s.runRepo.GetByID(ctx, run.ID, run.CompanyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.ToRunResponse(refreshed), nil
}

func (s *RunServiceImpl) CancelRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.runRepo.GetByID(ctx, id, ident.CompanyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if run.Status != payroll.RunStatusDraft && run.Status != payroll.RunStatusReview {
		return payroll.RunResponse{}, payroll.ErrInvalidRunTransition
	}

	if err := s.runRepo.UpdateStatusIf(ctx, run.ID, run.CompanyID, run.Status, payroll.RunStatusCancelled); err != nil {
		return payroll.RunResponse{}, err
	}

	refreshed, err := s.runRepo.GetByID(ctx, run.ID, run.CompanyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.ToRunResponse(refreshed), nil
}

func (s *RunServiceImpl) ListPayslips(ctx context.Context, runID string) ([]payroll.PayslipResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	payslips, err := s.payslipRepo.ListByRunID(ctx, runID, ident.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}

	result := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		result = append(result, payroll.ToPayslipResponse(p))
	}
	return result, nil
}
