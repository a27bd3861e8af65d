package holiday

import (
	"github.com/silang-hris/payroll-backend-go/internal/pkg/validator"
)

type UpsertHolidayRequest struct {
	Date string `json:"date"` // "2006-01-02"
	Name string `json:"name"`
	Kind string `json:"kind"` // REGULAR or SPECIAL
}

func (r *UpsertHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsInSlice(r.Kind, []string{string(DayKindRegular), string(DayKindSpecial)}) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be REGULAR or SPECIAL"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func ToResponse(ev Event) HolidayResponse {
	return HolidayResponse{
		ID:   ev.ID,
		Date: ev.Date.Format("2006-01-02"),
		Name: ev.Name,
		Kind: string(ev.Kind),
	}
}
