package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/silang-hris/payroll-backend-go/internal/domain/employee"
	"github.com/silang-hris/payroll-backend-go/internal/domain/schedule"
	"github.com/silang-hris/payroll-backend-go/internal/domain/timesheet"
)

// Resolver resolves the effective shift window for an employee-date pair.
// Priority: the day record's own shift override (the shift actually imported
// for that day) beats the employee's default shift; with neither, weekends
// fall back to a rest day.
type Resolver struct {
	shiftRepo schedule.ShiftTemplateRepository
}

func NewResolver(shiftRepo schedule.ShiftTemplateRepository) *Resolver {
	return &Resolver{shiftRepo: shiftRepo}
}

// Resolve returns the effective shift for the employee on the record's date.
// A weekday with no resolvable schedule is a validation failure: the caller
// must not silently reconcile against an empty window.
func (r *Resolver) Resolve(ctx context.Context, emp employee.Employee, rec timesheet.DayRecord) (schedule.ResolvedShift, error) {
	shiftID := emp.DefaultShiftID
	if rec.Override.ShiftOverrideID != nil {
		shiftID = rec.Override.ShiftOverrideID
	}

	if shiftID == nil {
		if isWeekend(rec.Date) || rec.DayType == timesheet.DayTypeRestDay {
			return schedule.RestDay(), nil
		}
		return schedule.ResolvedShift{}, schedule.ErrNoScheduleForDay
	}

	tpl, err := r.shiftRepo.GetByID(ctx, *shiftID, emp.CompanyID)
	if err != nil {
		if errors.Is(err, schedule.ErrShiftNotFound) {
			return schedule.ResolvedShift{}, schedule.ErrNoScheduleForDay
		}
		return schedule.ResolvedShift{}, fmt.Errorf("failed to get shift template: %w", err)
	}

	resolved := schedule.FromTemplate(tpl)
	if rec.DayType == timesheet.DayTypeRestDay {
		resolved.IsRestDay = true
	}
	return resolved, nil
}

// ResolveBatch resolves shifts for many day records with one template fetch,
// keyed by record ID.
func (r *Resolver) ResolveBatch(ctx context.Context, employees map[string]employee.Employee, recs []timesheet.DayRecord, companyID string) (map[string]schedule.ResolvedShift, error) {
	idSet := make(map[string]struct{})
	for _, rec := range recs {
		if rec.Override.ShiftOverrideID != nil {
			idSet[*rec.Override.ShiftOverrideID] = struct{}{}
		} else if emp, ok := employees[rec.EmployeeID]; ok && emp.DefaultShiftID != nil {
			idSet[*emp.DefaultShiftID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	templates, err := r.shiftRepo.GetByIDs(ctx, ids, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shift templates: %w", err)
	}

	out := make(map[string]schedule.ResolvedShift, len(recs))
	for _, rec := range recs {
		emp, ok := employees[rec.EmployeeID]
		if !ok {
			continue
		}
		shiftID := emp.DefaultShiftID
		if rec.Override.ShiftOverrideID != nil {
			shiftID = rec.Override.ShiftOverrideID
		}

		if shiftID == nil {
			if isWeekend(rec.Date) || rec.DayType == timesheet.DayTypeRestDay {
				out[rec.ID] = schedule.RestDay()
				continue
			}
			return nil, fmt.Errorf("employee %s on %s: %w", rec.EmployeeID, rec.Date.Format("2006-01-02"), schedule.ErrNoScheduleForDay)
		}

		tpl, ok := templates[*shiftID]
		if !ok {
			return nil, fmt.Errorf("employee %s on %s: %w", rec.EmployeeID, rec.Date.Format("2006-01-02"), schedule.ErrNoScheduleForDay)
		}
		resolved := schedule.FromTemplate(tpl)
		if rec.DayType == timesheet.DayTypeRestDay {
			resolved.IsRestDay = true
		}
		out[rec.ID] = resolved
	}
	return out, nil
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
