package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/silang-hris/payroll-backend-go/internal/domain/payroll"
)

// StatutoryShares are the per-period mandatory contribution amounts. Employer
// shares are computed alongside for remittance reports even though only the
// employee shares land on the payslip.
type StatutoryShares struct {
	SSSEmployee        decimal.Decimal
	SSSEmployer        decimal.Decimal
	PhilHealthEmployee decimal.Decimal
	PhilHealthEmployer decimal.Decimal
	PagIbigEmployee    decimal.Decimal
	PagIbigEmployer    decimal.Decimal
}

func (s StatutoryShares) TotalEmployee() decimal.Decimal {
	return s.SSSEmployee.Add(s.PhilHealthEmployee).Add(s.PagIbigEmployee)
}

// ComputeStatutory prices the statutory contributions against the monthly
// salary, clamped per table, then splits the monthly amount across the pay
// periods of the month.
func ComputeStatutory(policy payroll.Policy, monthlySalary decimal.Decimal, periodsPerMonth int) StatutoryShares {
	divisor := decimal.NewFromInt(int64(periodsPerMonth))

	perPeriod := func(table payroll.ContributionTable, rate decimal.Decimal) decimal.Decimal {
		return table.MonthlyBase(monthlySalary).Mul(rate).Div(divisor)
	}

	return StatutoryShares{
		SSSEmployee:        perPeriod(policy.SSS, policy.SSS.EmployeeRate),
		SSSEmployer:        perPeriod(policy.SSS, policy.SSS.EmployerRate),
		PhilHealthEmployee: perPeriod(policy.PhilHealth, policy.PhilHealth.EmployeeRate),
		PhilHealthEmployer: perPeriod(policy.PhilHealth, policy.PhilHealth.EmployerRate),
		PagIbigEmployee:    perPeriod(policy.PagIbig, policy.PagIbig.EmployeeRate),
		PagIbigEmployer:    perPeriod(policy.PagIbig, policy.PagIbig.EmployerRate),
	}
}

// WithholdingTax annualizes the per-period taxable income, applies the
// progressive bracket table, and divides the annual tax back to the period.
func WithholdingTax(policy payroll.Policy, periodTaxable decimal.Decimal, periodsPerYear int) decimal.Decimal {
	if periodTaxable.Sign() <= 0 {
		return decimal.Zero
	}
	periods := decimal.NewFromInt(int64(periodsPerYear))
	annualTax := policy.AnnualTax(periodTaxable.Mul(periods))
	return annualTax.Div(periods)
}
