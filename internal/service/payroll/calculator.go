package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/silang-hris/payroll-backend-go/internal/domain/employee"
	"github.com/silang-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/silang-hris/payroll-backend-go/internal/domain/timesheet"
)

// DayFigures is one reconciled day feeding the payslip computation.
type DayFigures struct {
	Date              time.Time
	DayType           timesheet.DayType
	Status            timesheet.AttendanceStatus
	Figures           timesheet.ReconciledDay
	DailyRateOverride *decimal.Decimal
}

// Rates are the per-day/hour/minute equivalents of a pay profile. They are
// derived on demand and never persisted.
type Rates struct {
	Daily  decimal.Decimal
	Hourly decimal.Decimal
	Minute decimal.Decimal
}

// Calculator turns a period's reconciled days into payslip lines. It is a
// pure computation over its inputs; identical inputs produce byte-identical
// line amounts and ordering.
type Calculator struct {
	policy payroll.Policy
}

func NewCalculator(policy payroll.Policy) *Calculator {
	return &Calculator{policy: policy}
}

var sixty = decimal.NewFromInt(60)

// DeriveRates derives daily/hourly/minute rates from the wage type and the
// standard working calendar (policy defaults apply when the profile is
// silent).
func (c *Calculator) DeriveRates(p employee.PayProfile) Rates {
	workDays := p.StandardWorkDaysPerMonth
	if workDays <= 0 {
		workDays = c.policy.StandardWorkDaysPerMonth
	}
	hoursPerDay := p.StandardHoursPerDay
	if hoursPerDay <= 0 {
		hoursPerDay = c.policy.StandardHoursPerDay
	}

	var daily, hourly decimal.Decimal
	switch p.WageType {
	case employee.WageTypeDaily:
		daily = p.BaseRate
		hourly = daily.Div(decimal.NewFromInt(int64(hoursPerDay)))
	case employee.WageTypeHourly:
		hourly = p.BaseRate
		daily = hourly.Mul(decimal.NewFromInt(int64(hoursPerDay)))
	default: // MONTHLY
		daily = p.BaseRate.Div(decimal.NewFromInt(int64(workDays)))
		hourly = daily.Div(decimal.NewFromInt(int64(hoursPerDay)))
	}

	return Rates{
		Daily:  daily,
		Hourly: hourly,
		Minute: hourly.Div(sixty),
	}
}

// MonthlyEquivalent converts any wage type to the monthly salary the
// statutory contribution tables key on.
func (c *Calculator) MonthlyEquivalent(p employee.PayProfile) decimal.Decimal {
	if p.WageType == employee.WageTypeMonthly {
		return p.BaseRate
	}
	workDays := p.StandardWorkDaysPerMonth
	if workDays <= 0 {
		workDays = c.policy.StandardWorkDaysPerMonth
	}
	return c.DeriveRates(p).Daily.Mul(decimal.NewFromInt(int64(workDays)))
}

// minuteTotals aggregates a period's reconciled days into the minute buckets
// the payslip lines are priced from.
type minuteTotals struct {
	otRegular        int
	otRestDay        int
	otRegularHoliday int
	otSpecialHoliday int
	nightDiff        int
	late             int
	undertime        int
	regularWorked    int
}

func aggregate(days []DayFigures) minuteTotals {
	var t minuteTotals
	for _, d := range days {
		f := d.Figures
		t.nightDiff += f.NightDiffMinutes
		t.late += f.LateMinutes
		t.undertime += f.UndertimeMinutes

		// On premium days every effective minute is already in that
		// category's bucket; crediting the regular buckets too would
		// pay the same minutes twice.
		switch d.DayType {
		case timesheet.DayTypeRestDay:
			t.otRestDay += f.OtRestDayMinutes
		case timesheet.DayTypeRegularHoliday:
			t.otRegularHoliday += f.OtHolidayMinutes
		case timesheet.DayTypeSpecialHoliday:
			t.otSpecialHoliday += f.OtHolidayMinutes
		default:
			t.otRegular += f.OtEarlyInMinutes + f.OtLateOutMinutes + f.OtBreakMinutes
			t.regularWorked += f.WorkedMinutes
		}
	}
	return t
}

// BuildPayslip computes one employee's payslip for a period. Amounts are
// kept at full precision through the computation and rounded to two decimals
// only when the lines are materialized, so drift cannot accumulate across a
// batch.
func (c *Calculator) BuildPayslip(emp employee.Employee, days []DayFigures) (payroll.Payslip, error) {
	if emp.PayProfile.BaseRate.IsZero() {
		return payroll.Payslip{}, employee.ErrMissingPayProfile
	}

	rates := c.DeriveRates(emp.PayProfile)
	totals := aggregate(days)
	periodsPerMonth := emp.PayProfile.PayFrequency.PeriodsPerMonth()
	periodsPerYear := emp.PayProfile.PayFrequency.PeriodsPerYear()

	basic := c.basicPay(emp.PayProfile, rates, days, totals)

	minuteRate := rates.Minute
	otRegularPay := decimal.NewFromInt(int64(totals.otRegular)).Mul(minuteRate).Mul(c.policy.MultiplierFor(payroll.LineOvertimeRegular, false))
	otRestDayPay := decimal.NewFromInt(int64(totals.otRestDay)).Mul(minuteRate).Mul(c.policy.MultiplierFor(payroll.LineOvertimeRestDay, false))
	otHolidayPay := decimal.NewFromInt(int64(totals.otRegularHoliday)).Mul(minuteRate).Mul(c.policy.MultiplierFor(payroll.LineOvertimeHoliday, false)).
		Add(decimal.NewFromInt(int64(totals.otSpecialHoliday)).Mul(minuteRate).Mul(c.policy.MultiplierFor(payroll.LineOvertimeHoliday, true)))
	nightDiffPay := decimal.NewFromInt(int64(totals.nightDiff)).Mul(minuteRate).Mul(c.policy.NightDiffRate)

	lateDeduction := decimal.Zero
	undertimeDeduction := decimal.Zero
	if emp.PayProfile.WageType == employee.WageTypeMonthly {
		// Daily and hourly earners already absorb missed minutes in the
		// basic pay itself.
		if c.policy.LateDeductionEnabled {
			lateDeduction = decimal.NewFromInt(int64(totals.late)).Mul(minuteRate)
		}
		if c.policy.UndertimeDeductionEnabled {
			undertimeDeduction = decimal.NewFromInt(int64(totals.undertime)).Mul(minuteRate)
		}
	}

	monthlySalary := c.MonthlyEquivalent(emp.PayProfile)
	statutory := ComputeStatutory(c.policy, monthlySalary, periodsPerMonth)

	gross := basic.Add(otRegularPay).Add(otRestDayPay).Add(otHolidayPay).Add(nightDiffPay)
	taxable := gross.Sub(lateDeduction).Sub(undertimeDeduction).Sub(statutory.TotalEmployee())
	tax := WithholdingTax(c.policy, taxable, periodsPerYear)

	slip := payroll.Payslip{EmployeeID: emp.ID}
	addLine := func(cat payroll.LineCategory, desc string, amount decimal.Decimal) {
		if amount.IsZero() && cat != payroll.LineBasicPay {
			return
		}
		slip.Lines = append(slip.Lines, payroll.PayslipLine{
			Category:    cat,
			Description: desc,
			Amount:      amount.Round(2),
			SortOrder:   cat.SortOrder(),
		})
	}

	addLine(payroll.LineBasicPay, "Basic pay", basic)
	addLine(payroll.LineOvertimeRegular, "Regular overtime", otRegularPay)
	addLine(payroll.LineOvertimeRestDay, "Rest day overtime", otRestDayPay)
	addLine(payroll.LineOvertimeHoliday, "Holiday overtime", otHolidayPay)
	addLine(payroll.LineNightDifferential, "Night differential", nightDiffPay)
	addLine(payroll.LineLateDeduction, "Late deduction", lateDeduction)
	addLine(payroll.LineUndertimeDeduct, "Undertime deduction", undertimeDeduction)
	addLine(payroll.LineSSSEmployee, "SSS contribution", statutory.SSSEmployee)
	addLine(payroll.LinePhilHealthEE, "PhilHealth contribution", statutory.PhilHealthEmployee)
	addLine(payroll.LinePagIbigEE, "Pag-IBIG contribution", statutory.PagIbigEmployee)
	addLine(payroll.LineTaxWithholding, "Withholding tax", tax)

	// Totals are summed from the rounded lines so they always match what
	// the payslip shows.
	grossTotal := decimal.Zero
	deductionTotal := decimal.Zero
	for _, l := range slip.Lines {
		if l.Category.IsDeduction() {
			deductionTotal = deductionTotal.Add(l.Amount)
		} else {
			grossTotal = grossTotal.Add(l.Amount)
		}
	}
	slip.GrossPay = grossTotal
	slip.TotalDeductions = deductionTotal
	slip.NetPay = grossTotal.Sub(deductionTotal)

	return slip, nil
}

// basicPay prices the period's base compensation for the wage type.
func (c *Calculator) basicPay(p employee.PayProfile, rates Rates, days []DayFigures, totals minuteTotals) decimal.Decimal {
	switch p.WageType {
	case employee.WageTypeDaily:
		sum := decimal.Zero
		for _, d := range days {
			if d.DayType.IsPremium() {
				continue
			}
			if d.Status != timesheet.StatusPresent && d.Status != timesheet.StatusHalfDay {
				continue
			}
			rate := rates.Daily
			if d.DailyRateOverride != nil {
				rate = *d.DailyRateOverride
			}
			if d.Status == timesheet.StatusHalfDay {
				rate = rate.Div(decimal.NewFromInt(2))
			}
			sum = sum.Add(rate)
		}
		return sum
	case employee.WageTypeHourly:
		return decimal.NewFromInt(int64(totals.regularWorked)).Mul(rates.Minute)
	default: // MONTHLY
		return p.BaseRate.Div(decimal.NewFromInt(int64(p.PayFrequency.PeriodsPerMonth())))
	}
}
