package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus is the payroll run lifecycle state.
type RunStatus string

const (
	RunStatusDraft     RunStatus = "DRAFT"
	RunStatusComputing RunStatus = "COMPUTING"
	RunStatusReview    RunStatus = "REVIEW"
	RunStatusApproved  RunStatus = "APPROVED"
	RunStatusReleased  RunStatus = "RELEASED"
	RunStatusCancelled RunStatus = "CANCELLED"
)

// Run is one payroll run over a locked period.
type Run struct {
	ID              string
	CompanyID       string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	Status          RunStatus
	CreatedBy       string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	ReleasedAt      *time.Time
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal
	EmployeeCount   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LineCategory is the closed set of payslip line kinds. SortOrder fixes the
// line ordering on every payslip so recomputation is byte-identical.
type LineCategory string

const (
	LineBasicPay          LineCategory = "BASIC_PAY"
	LineOvertimeRegular   LineCategory = "OVERTIME_REGULAR"
	LineOvertimeRestDay   LineCategory = "OVERTIME_REST_DAY"
	LineOvertimeHoliday   LineCategory = "OVERTIME_HOLIDAY"
	LineNightDifferential LineCategory = "NIGHT_DIFFERENTIAL"
	LineLateDeduction     LineCategory = "LATE_DEDUCTION"
	LineUndertimeDeduct   LineCategory = "UNDERTIME_DEDUCTION"
	LineSSSEmployee       LineCategory = "SSS_EE"
	LinePhilHealthEE      LineCategory = "PHILHEALTH_EE"
	LinePagIbigEE         LineCategory = "PAGIBIG_EE"
	LineTaxWithholding    LineCategory = "TAX_WITHHOLDING"
)

var lineSortOrder = map[LineCategory]int{
	LineBasicPay:          1,
	LineOvertimeRegular:   2,
	LineOvertimeRestDay:   3,
	LineOvertimeHoliday:   4,
	LineNightDifferential: 5,
	LineLateDeduction:     6,
	LineUndertimeDeduct:   7,
	LineSSSEmployee:       8,
	LinePhilHealthEE:      9,
	LinePagIbigEE:         10,
	LineTaxWithholding:    11,
}

// SortOrder returns the fixed position of the category on a payslip.
func (c LineCategory) SortOrder() int {
	return lineSortOrder[c]
}

// IsDeduction reports whether the category subtracts from gross pay.
func (c LineCategory) IsDeduction() bool {
	switch c {
	case LineLateDeduction, LineUndertimeDeduct, LineSSSEmployee,
		LinePhilHealthEE, LinePagIbigEE, LineTaxWithholding:
		return true
	}
	return false
}

// PayslipLine is one earning or deduction line on a payslip.
type PayslipLine struct {
	ID          string
	PayslipID   string
	Category    LineCategory
	Description string
	Amount      decimal.Decimal
	SortOrder   int
}

// Payslip is the per-employee result of a computed run.
type Payslip struct {
	ID              string
	RunID           string
	EmployeeID      string
	GrossPay        decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	Lines           []PayslipLine
	CreatedAt       time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// RunSummary aggregates a computed run for review screens.
type RunSummary struct {
	RunID           string
	EmployeeCount   int
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal
}
