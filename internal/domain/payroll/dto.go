package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/validator"
)

type CreateRunRequest struct {
	PeriodStart string `json:"period_start"` // "2006-01-02"
	PeriodEnd   string `json:"period_end"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidDate(r.PeriodStart) {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be in YYYY-MM-DD format"})
	}
	if !validator.IsValidDate(r.PeriodEnd) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be in YYYY-MM-DD format"})
	}
	if len(errs) == 0 {
		start, _ := time.Parse("2006-01-02", r.PeriodStart)
		end, _ := time.Parse("2006-01-02", r.PeriodEnd)
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not precede period_start"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunResponse struct {
	ID              string          `json:"id"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	Status          string          `json:"status"`
	CreatedBy       string          `json:"created_by"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	ApprovedAt      *string         `json:"approved_at,omitempty"`
	ReleasedAt      *string         `json:"released_at,omitempty"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
	EmployeeCount   int             `json:"employee_count"`
}

type ListRunResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Runs       []RunResponse `json:"runs"`
}

type PayslipLineResponse struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SortOrder   int             `json:"sort_order"`
}

type PayslipResponse struct {
	ID              string                `json:"id"`
	RunID           string                `json:"run_id"`
	EmployeeID      string                `json:"employee_id"`
	EmployeeName    string                `json:"employee_name"`
	EmployeeCode    string                `json:"employee_code"`
	GrossPay        decimal.Decimal       `json:"gross_pay"`
	TotalDeductions decimal.Decimal       `json:"total_deductions"`
	NetPay          decimal.Decimal       `json:"net_pay"`
	Lines           []PayslipLineResponse `json:"lines"`
}

func ToRunResponse(r Run) RunResponse {
	resp := RunResponse{
		ID:              r.ID,
		PeriodStart:     r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       r.PeriodEnd.Format("2006-01-02"),
		Status:          string(r.Status),
		CreatedBy:       r.CreatedBy,
		ApprovedBy:      r.ApprovedBy,
		TotalGross:      r.TotalGross,
		TotalDeductions: r.TotalDeductions,
		TotalNet:        r.TotalNet,
		EmployeeCount:   r.EmployeeCount,
	}
	if r.ApprovedAt != nil {
		s := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}
	if r.ReleasedAt != nil {
		s := r.ReleasedAt.Format(time.RFC3339)
		resp.ReleasedAt = &s
	}
	return resp
}

func ToPayslipResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:              p.ID,
		RunID:           p.RunID,
		EmployeeID:      p.EmployeeID,
		GrossPay:        p.GrossPay,
		TotalDeductions: p.TotalDeductions,
		NetPay:          p.NetPay,
	}
	if p.EmployeeName != nil {
		resp.EmployeeName = *p.EmployeeName
	}
	if p.EmployeeCode != nil {
		resp.EmployeeCode = *p.EmployeeCode
	}
	resp.Lines = make([]PayslipLineResponse, 0, len(p.Lines))
	for _, l := range p.Lines {
		resp.Lines = append(resp.Lines, PayslipLineResponse{
			Category:    string(l.Category),
			Description: l.Description,
			Amount:      l.Amount,
			SortOrder:   l.SortOrder,
		})
	}
	return resp
}
