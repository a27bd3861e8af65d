package payroll

import "github.com/shopspring/decimal"

// Policy carries every jurisdiction- and year-dependent constant the
// computation engine needs: overtime multipliers, statutory contribution
// tables, and the withholding tax brackets. It is injected, not read from
// globals, so a new tax year is a data change.
type Policy struct {
	StandardWorkDaysPerMonth int
	StandardHoursPerDay      int

	OvertimeRegularRate        decimal.Decimal // e.g. 1.25
	OvertimeRestDayRate        decimal.Decimal // e.g. 1.30
	OvertimeRegularHolidayRate decimal.Decimal // e.g. 2.00
	OvertimeSpecialHolidayRate decimal.Decimal // e.g. 1.30
	NightDiffRate              decimal.Decimal // e.g. 0.10

	LateDeductionEnabled      bool
	UndertimeDeductionEnabled bool

	SSS        ContributionTable
	PhilHealth ContributionTable
	PagIbig    ContributionTable

	TaxBrackets []TaxBracket
}

// ContributionTable is a rate-based statutory contribution with a clamped
// salary base. A zero floor or ceiling means unbounded on that side.
type ContributionTable struct {
	EmployeeRate  decimal.Decimal
	EmployerRate  decimal.Decimal
	SalaryFloor   decimal.Decimal
	SalaryCeiling decimal.Decimal
}

// MonthlyBase clamps a monthly salary to the table's contribution base.
func (t ContributionTable) MonthlyBase(monthlySalary decimal.Decimal) decimal.Decimal {
	base := monthlySalary
	if !t.SalaryFloor.IsZero() && base.LessThan(t.SalaryFloor) {
		base = t.SalaryFloor
	}
	if !t.SalaryCeiling.IsZero() && base.GreaterThan(t.SalaryCeiling) {
		base = t.SalaryCeiling
	}
	return base
}

// TaxBracket is one marginal bracket of the annual withholding table.
// Tax on annual income x within a bracket is BaseTax + Rate*(x - LowerBound).
type TaxBracket struct {
	LowerBound decimal.Decimal
	BaseTax    decimal.Decimal
	Rate       decimal.Decimal
}

// AnnualTax applies the progressive bracket table to annual taxable income.
func (p Policy) AnnualTax(annualTaxable decimal.Decimal) decimal.Decimal {
	if annualTaxable.Sign() <= 0 || len(p.TaxBrackets) == 0 {
		return decimal.Zero
	}
	bracket := p.TaxBrackets[0]
	for _, b := range p.TaxBrackets[1:] {
		if annualTaxable.LessThan(b.LowerBound) {
			break
		}
		bracket = b
	}
	excess := annualTaxable.Sub(bracket.LowerBound)
	return bracket.BaseTax.Add(excess.Mul(bracket.Rate))
}

// MultiplierFor maps an overtime line category to its premium multiplier.
// Special-holiday overtime shares the OVERTIME_HOLIDAY line but uses its own
// rate, so callers pass the day kind through the isSpecial flag.
func (p Policy) MultiplierFor(category LineCategory, isSpecialHoliday bool) decimal.Decimal {
	switch category {
	case LineOvertimeRegular:
		return p.OvertimeRegularRate
	case LineOvertimeRestDay:
		return p.OvertimeRestDayRate
	case LineOvertimeHoliday:
		if isSpecialHoliday {
			return p.OvertimeSpecialHolidayRate
		}
		return p.OvertimeRegularHolidayRate
	}
	return decimal.NewFromInt(1)
}
