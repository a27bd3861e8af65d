package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/silang-hris/payroll-backend-go/internal/domain/employee"
	"github.com/silang-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/silang-hris/payroll-backend-go/internal/domain/leave"
	"github.com/silang-hris/payroll-backend-go/internal/domain/timesheet"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/validator"
	scheduleService "github.com/silang-hris/payroll-backend-go/internal/service/schedule"
)

type TimesheetService interface {
	GetDay(ctx context.Context, employeeID, dateStr string) (timesheet.DayResponse, error)
	ListDays(ctx context.Context, filter timesheet.DayRecordFilter) (timesheet.ListDaysResponse, error)
	ImportPunches(ctx context.Context, req timesheet.ImportPunchesRequest) (timesheet.ImportPunchesResponse, error)
	UpsertOverride(ctx context.Context, req timesheet.UpsertOverrideRequest) (timesheet.DayResponse, error)
}

type TimesheetServiceImpl struct {
	dayRepo      timesheet.DayRecordRepository
	employeeRepo employee.EmployeeRepository
	holidayRepo  holiday.CalendarRepository
	leaveRepo    leave.GrantRepository
	resolver     *scheduleService.Resolver
	loc          *time.Location
}

func NewTimesheetService(
	dayRepo timesheet.DayRecordRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.CalendarRepository,
	leaveRepo leave.GrantRepository,
	resolver *scheduleService.Resolver,
	loc *time.Location,
) TimesheetService {
	return &TimesheetServiceImpl{
		dayRepo:      dayRepo,
		employeeRepo: employeeRepo,
		holidayRepo:  holidayRepo,
		leaveRepo:    leaveRepo,
		resolver:     resolver,
		loc:          loc,
	}
}

// GetDay returns the day record with figures reconciled from source facts.
// Figures are recomputed on every read; a schedule or override edit is
// reflected immediately instead of serving a stale cache.
func (s *TimesheetServiceImpl) GetDay(ctx context.Context, employeeID, dateStr string) (timesheet.DayResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return timesheet.DayResponse{}, err
	}

	date, err := validator.ParseDate(dateStr)
	if err != nil {
		return timesheet.DayResponse{}, validator.ValidationErrors{{Field: "date", Message: "must be in YYYY-MM-DD format"}}
	}

	rec, err := s.dayRepo.GetByEmployeeDate(ctx, employeeID, date, ident.CompanyID)
	if err != nil {
		if errors.Is(err, timesheet.ErrDayRecordNotFound) {
			return timesheet.DayResponse{}, timesheet.ErrDayRecordNotFound
		}
		return timesheet.DayResponse{}, fmt.Errorf("failed to get day record: %w", err)
	}

	return s.reconcileRecord(ctx, rec, ident.CompanyID)
}

// ListDays lists day records for a filter, each freshly reconciled.
func (s *TimesheetServiceImpl) ListDays(ctx context.Context, filter timesheet.DayRecordFilter) (timesheet.ListDaysResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return timesheet.ListDaysResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 31
	}

	recs, total, err := s.dayRepo.List(ctx, ident.CompanyID, filter)
	if err != nil {
		return timesheet.ListDaysResponse{}, fmt.Errorf("failed to list day records: %w", err)
	}

	days := make([]timesheet.DayResponse, 0, len(recs))
	for _, rec := range recs {
		day, err := s.reconcileRecord(ctx, rec, ident.CompanyID)
		if err != nil {
			return timesheet.ListDaysResponse{}, err
		}
		days = append(days, day)
	}

	return timesheet.ListDaysResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Days:       days,
	}, nil
}

// ImportPunches upserts already-mapped punch rows as day records. Rows that
// hit a locked record are counted as skipped, not failed: a locked day is an
// approved payroll fact and stays immutable.
func (s *TimesheetServiceImpl) ImportPunches(ctx context.Context, req timesheet.ImportPunchesRequest) (timesheet.ImportPunchesResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.ImportPunchesResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return timesheet.ImportPunchesResponse{}, err
	}

	var resp timesheet.ImportPunchesResponse
	for _, row := range req.Punches {
		date, err := validator.ParseDate(row.Date)
		if err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s/%s: invalid date", row.EmployeeID, row.Date))
			continue
		}

		rec := timesheet.DayRecord{
			CompanyID:  ident.CompanyID,
			EmployeeID: row.EmployeeID,
			Date:       date,
			SourceType: timesheet.PunchSource(row.SourceType),
			DayType:    timesheet.DayTypeRegular,
			Status:     timesheet.StatusNoData,
		}
		if rec.SourceType == "" {
			rec.SourceType = timesheet.PunchSourceImport
		}

		if row.ClockIn != nil {
			t, ok := validator.IsValidDateTime(*row.ClockIn)
			if !ok {
				resp.Errors = append(resp.Errors, fmt.Sprintf("%s/%s: invalid clock_in", row.EmployeeID, row.Date))
				continue
			}
			rec.ClockIn = &t
		}
		if row.ClockOut != nil {
			t, ok := validator.IsValidDateTime(*row.ClockOut)
			if !ok {
				resp.Errors = append(resp.Errors, fmt.Sprintf("%s/%s: invalid clock_out", row.EmployeeID, row.Date))
				continue
			}
			rec.ClockOut = &t
		}
		if rec.ClockIn != nil && rec.ClockOut != nil && rec.ClockOut.Before(*rec.ClockIn) {
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s/%s: %s", row.EmployeeID, row.Date, timesheet.ErrInvalidPunchOrder))
			continue
		}

		if _, err := s.dayRepo.Upsert(ctx, rec); err != nil {
			if errors.Is(err, timesheet.ErrDayLocked) {
				resp.Skipped++
				continue
			}
			return timesheet.ImportPunchesResponse{}, fmt.Errorf("failed to upsert day record: %w", err)
		}
		resp.Imported++
	}

	return resp, nil
}

// UpsertOverride stores per-day supervisor decisions. Locked records reject
// the edit outright.
func (s *TimesheetServiceImpl) UpsertOverride(ctx context.Context, req timesheet.UpsertOverrideRequest) (timesheet.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.DayResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return timesheet.DayResponse{}, err
	}

	date, _ := validator.ParseDate(req.Date)
	rec, err := s.dayRepo.GetByEmployeeDate(ctx, req.EmployeeID, date, ident.CompanyID)
	if err != nil {
		if errors.Is(err, timesheet.ErrDayRecordNotFound) {
			return timesheet.DayResponse{}, timesheet.ErrDayRecordNotFound
		}
		return timesheet.DayResponse{}, fmt.Errorf("failed to get day record: %w", err)
	}

	if rec.IsLocked {
		return timesheet.DayResponse{}, timesheet.ErrDayLocked
	}

	override := rec.Override
	if req.EarlyInApproved != nil {
		override.EarlyInApproved = *req.EarlyInApproved
	}
	if req.LateOutApproved != nil {
		override.LateOutApproved = *req.LateOutApproved
	}
	if req.LateInApproved != nil {
		override.LateInApproved = *req.LateInApproved
	}
	if req.EarlyOutApproved != nil {
		override.EarlyOutApproved = *req.EarlyOutApproved
	}
	if req.BreakMinutesOverride != nil {
		override.BreakMinutesOverride = req.BreakMinutesOverride
	}
	if req.DailyRateOverride != nil {
		override.DailyRateOverride = req.DailyRateOverride
	}
	if req.ShiftOverrideID != nil {
		override.ShiftOverrideID = req.ShiftOverrideID
	}
	if req.Reason != nil {
		override.Reason = req.Reason
	}

	if err := s.dayRepo.UpdateOverride(ctx, rec.ID, ident.CompanyID, override); err != nil {
		if errors.Is(err, timesheet.ErrDayLocked) {
			return timesheet.DayResponse{}, timesheet.ErrDayLocked
		}
		return timesheet.DayResponse{}, fmt.Errorf("failed to update override: %w", err)
	}

	rec.Override = override
	return s.reconcileRecord(ctx, rec, ident.CompanyID)
}

// reconcileRecord runs the classifier and reconciliation engine over one
// record using freshly fetched collaborator facts.
func (s *TimesheetServiceImpl) reconcileRecord(ctx context.Context, rec timesheet.DayRecord, companyID string) (timesheet.DayResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, rec.EmployeeID, companyID)
	if err != nil {
		return timesheet.DayResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	var holidayEv *holiday.Event
	if ev, err := s.holidayRepo.GetByDate(ctx, companyID, rec.Date); err == nil {
		holidayEv = &ev
	} else if !errors.Is(err, holiday.ErrHolidayNotFound) {
		return timesheet.DayResponse{}, fmt.Errorf("failed to get holiday: %w", err)
	}

	var leaveGrant *leave.Grant
	if g, err := s.leaveRepo.GetApprovedByEmployeeDate(ctx, rec.EmployeeID, rec.Date, companyID); err == nil {
		leaveGrant = &g
	} else if !errors.Is(err, leave.ErrGrantNotFound) {
		return timesheet.DayResponse{}, fmt.Errorf("failed to get leave grant: %w", err)
	}

	cls := Classify(ClassifyInput{
		Date:               rec.Date,
		ClockIn:            rec.ClockIn,
		ClockOut:           rec.ClockOut,
		StandardDailyHours: emp.PayProfile.StandardHoursPerDay,
		Leave:              leaveGrant,
		Holiday:            holidayEv,
		StoredDayType:      rec.DayType,
		StoredStatus:       rec.Status,
		HasAssignedShift:   emp.DefaultShiftID != nil || rec.Override.ShiftOverrideID != nil,
	})
	rec.DayType = cls.DayType
	rec.Status = cls.Status

	shift, err := s.resolver.Resolve(ctx, emp, rec)
	if err != nil {
		return timesheet.DayResponse{}, err
	}

	figures := Reconcile(ReconcileInput{
		Date:     rec.Date,
		DayType:  rec.DayType,
		ClockIn:  rec.ClockIn,
		ClockOut: rec.ClockOut,
		Shift:    shift,
		Override: rec.Override,
	}, s.loc)

	return toDayResponse(rec, cls, figures, s.loc), nil
}

func toDayResponse(rec timesheet.DayRecord, cls Classification, f timesheet.ReconciledDay, loc *time.Location) timesheet.DayResponse {
	resp := timesheet.DayResponse{
		ID:          rec.ID,
		EmployeeID:  rec.EmployeeID,
		Date:        rec.Date.Format("2006-01-02"),
		DayType:     string(cls.DayType),
		Status:      string(cls.Status),
		HolidayName: cls.HolidayName,
		IsLocked:    rec.IsLocked,

		LateMinutes:           f.LateMinutes,
		UndertimeMinutes:      f.UndertimeMinutes,
		OtEarlyInMinutes:      f.OtEarlyInMinutes,
		OtLateOutMinutes:      f.OtLateOutMinutes,
		OtRestDayMinutes:      f.OtRestDayMinutes,
		OtHolidayMinutes:      f.OtHolidayMinutes,
		OtBreakMinutes:        f.OtBreakMinutes,
		PendingEarlyInMinutes: f.PendingEarlyInMinutes,
		PendingLateOutMinutes: f.PendingLateOutMinutes,
		NightDiffMinutes:      f.NightDiffMinutes,
		WorkedMinutes:         f.WorkedMinutes,
	}
	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	if rec.ClockIn != nil {
		s := rec.ClockIn.In(loc).Format("2006-01-02 15:04:05")
		resp.ClockIn = &s
	}
	if rec.ClockOut != nil {
		s := rec.ClockOut.In(loc).Format("2006-01-02 15:04:05")
		resp.ClockOut = &s
	}
	return resp
}
