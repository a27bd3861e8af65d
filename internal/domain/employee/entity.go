package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type WageType string

const (
	WageTypeMonthly WageType = "MONTHLY"
	WageTypeDaily   WageType = "DAILY"
	WageTypeHourly  WageType = "HOURLY"
)

type PayFrequency string

const (
	PayFrequencyMonthly     PayFrequency = "MONTHLY"
	PayFrequencySemiMonthly PayFrequency = "SEMI_MONTHLY"
)

// PeriodsPerMonth returns how many pay periods this frequency yields a month.
func (f PayFrequency) PeriodsPerMonth() int {
	if f == PayFrequencySemiMonthly {
		return 2
	}
	return 1
}

// PeriodsPerYear is used when annualizing taxable income.
func (f PayFrequency) PeriodsPerYear() int {
	return f.PeriodsPerMonth() * 12
}

// PayProfile is how an employee is paid. Daily/hourly/minute rates are
// derived from the base rate and the standard working calendar, never stored.
type PayProfile struct {
	WageType                 WageType
	BaseRate                 decimal.Decimal
	PayFrequency             PayFrequency
	StandardWorkDaysPerMonth int // 0 means use the policy default
	StandardHoursPerDay      int // 0 means use the policy default
}

type Employee struct {
	ID             string
	CompanyID      string
	EmployeeCode   string
	FullName       string
	DefaultShiftID *string
	PayProfile     PayProfile
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
