package schedule

import (
	"fmt"

	"github.com/silang-hris/payroll-backend-go/internal/pkg/validator"
)

type ShiftTemplateResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	StartTime            string `json:"start_time"` // "HH:MM"
	EndTime              string `json:"end_time"`
	BreakMinutes         int    `json:"break_minutes"`
	BreakStartTime       *string `json:"break_start_time,omitempty"`
	BreakEndTime         *string `json:"break_end_time,omitempty"`
	GraceLateMinutes     int    `json:"grace_late_minutes"`
	GraceEarlyOutMinutes int    `json:"grace_early_out_minutes"`
	IsOvernight          bool   `json:"is_overnight"`
}

type CreateShiftTemplateRequest struct {
	Name                 string  `json:"name"`
	StartTime            string  `json:"start_time"`
	EndTime              string  `json:"end_time"`
	BreakMinutes         int     `json:"break_minutes"`
	BreakStartTime       *string `json:"break_start_time,omitempty"`
	BreakEndTime         *string `json:"break_end_time,omitempty"`
	GraceLateMinutes     int     `json:"grace_late_minutes"`
	GraceEarlyOutMinutes int     `json:"grace_early_out_minutes"`
	IsOvernight          bool    `json:"is_overnight"`
}

func (r *CreateShiftTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if _, err := validator.ParseWallClock(r.StartTime); err != nil {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be in HH:MM format"})
	}
	if _, err := validator.ParseWallClock(r.EndTime); err != nil {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be in HH:MM format"})
	}
	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "must be non-negative"})
	}
	if r.GraceLateMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "grace_late_minutes", Message: "must be non-negative"})
	}
	if r.GraceEarlyOutMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "grace_early_out_minutes", Message: "must be non-negative"})
	}
	if (r.BreakStartTime == nil) != (r.BreakEndTime == nil) {
		errs = append(errs, validator.ValidationError{Field: "break_start_time", Message: "break start and end must be set together"})
	}
	if r.BreakStartTime != nil {
		if _, err := validator.ParseWallClock(*r.BreakStartTime); err != nil {
			errs = append(errs, validator.ValidationError{Field: "break_start_time", Message: "must be in HH:MM format"})
		}
	}
	if r.BreakEndTime != nil {
		if _, err := validator.ParseWallClock(*r.BreakEndTime); err != nil {
			errs = append(errs, validator.ValidationError{Field: "break_end_time", Message: "must be in HH:MM format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FormatWallClock renders minutes since midnight as "HH:MM".
func FormatWallClock(minute int) string {
	minute %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

func ToResponse(t ShiftTemplate) ShiftTemplateResponse {
	resp := ShiftTemplateResponse{
		ID:                   t.ID,
		Name:                 t.Name,
		StartTime:            FormatWallClock(t.StartMinute),
		EndTime:              FormatWallClock(t.EndMinute),
		BreakMinutes:         t.BreakMinutes,
		GraceLateMinutes:     t.GraceLateMinutes,
		GraceEarlyOutMinutes: t.GraceEarlyOutMinutes,
		IsOvernight:          t.IsOvernight,
	}
	if t.BreakStartMinute != nil {
		s := FormatWallClock(*t.BreakStartMinute)
		resp.BreakStartTime = &s
	}
	if t.BreakEndMinute != nil {
		s := FormatWallClock(*t.BreakEndMinute)
		resp.BreakEndTime = &s
	}
	return resp
}
