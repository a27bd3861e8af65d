package timesheet

import (
	"github.com/shopspring/decimal"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/validator"
)

// DayResponse is a day record joined with its freshly reconciled figures.
type DayResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	ClockIn      *string `json:"clock_in,omitempty"`
	ClockOut     *string `json:"clock_out,omitempty"`
	DayType      string  `json:"day_type"`
	Status       string  `json:"status"`
	HolidayName  *string `json:"holiday_name,omitempty"`
	IsLocked     bool    `json:"is_locked"`

	LateMinutes           int `json:"late_minutes"`
	UndertimeMinutes      int `json:"undertime_minutes"`
	OtEarlyInMinutes      int `json:"ot_early_in_minutes"`
	OtLateOutMinutes      int `json:"ot_late_out_minutes"`
	OtRestDayMinutes      int `json:"ot_rest_day_minutes"`
	OtHolidayMinutes      int `json:"ot_holiday_minutes"`
	OtBreakMinutes        int `json:"ot_break_minutes"`
	PendingEarlyInMinutes int `json:"pending_early_in_minutes"`
	PendingLateOutMinutes int `json:"pending_late_out_minutes"`
	NightDiffMinutes      int `json:"night_diff_minutes"`
	WorkedMinutes         int `json:"worked_minutes"`
}

type ListDaysResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Days       []DayResponse `json:"days"`
}

// PunchRow is one already-mapped punch record from an import source.
type PunchRow struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`      // "2006-01-02"
	ClockIn    *string `json:"clock_in"`  // RFC3339, nullable
	ClockOut   *string `json:"clock_out"` // RFC3339, nullable
	SourceType string  `json:"source_type"`
}

type ImportPunchesRequest struct {
	Punches []PunchRow `json:"punches"`
}

func (r *ImportPunchesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Punches) == 0 {
		errs = append(errs, validator.ValidationError{Field: "punches", Message: "at least one punch row is required"})
	}
	for _, p := range r.Punches {
		if validator.IsEmpty(p.EmployeeID) {
			errs = append(errs, validator.ValidationError{Field: "punches", Message: "employee_id is required on every row"})
			break
		}
		if !validator.IsValidDate(p.Date) {
			errs = append(errs, validator.ValidationError{Field: "punches", Message: "date must be in YYYY-MM-DD format"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ImportPunchesResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"` // locked records are skipped, not failed
	Errors   []string `json:"errors,omitempty"`
}

type UpsertOverrideRequest struct {
	EmployeeID           string  `json:"employee_id"`
	Date                 string  `json:"date"`
	EarlyInApproved      *bool   `json:"early_in_approved,omitempty"`
	LateOutApproved      *bool   `json:"late_out_approved,omitempty"`
	LateInApproved       *bool   `json:"late_in_approved,omitempty"`
	EarlyOutApproved     *bool   `json:"early_out_approved,omitempty"`
	BreakMinutesOverride *int    `json:"break_minutes_override,omitempty"`
	DailyRateOverride    *string `json:"daily_rate_override,omitempty"`
	ShiftOverrideID      *string `json:"shift_override_id,omitempty"`
	Reason               *string `json:"reason,omitempty"`
}

func (r *UpsertOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.BreakMinutesOverride != nil && *r.BreakMinutesOverride < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_minutes_override", Message: "must be non-negative"})
	}
	if r.DailyRateOverride != nil {
		rate, err := decimal.NewFromString(*r.DailyRateOverride)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "daily_rate_override", Message: "must be a decimal amount"})
		} else if rate.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "daily_rate_override", Message: "must be non-negative"})
		}
	}
	if r.ShiftOverrideID != nil && !validator.IsValidUUID(*r.ShiftOverrideID) {
		errs = append(errs, validator.ValidationError{Field: "shift_override_id", Message: "must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
