package fixtures

import (
	"github.com/shopspring/decimal"
	"github.com/silang-hris/payroll-backend-go/internal/domain/payroll"
)

// DefaultPolicy returns the Philippine statutory defaults: labor-code
// overtime premiums, SSS/PhilHealth/Pag-IBIG contribution tables, and the
// TRAIN-law annual withholding brackets. A company can override any of it,
// but a fresh install computes correctly with this table alone.
func DefaultPolicy() payroll.Policy {
	return payroll.Policy{
		StandardWorkDaysPerMonth: 26,
		StandardHoursPerDay:      8,

		OvertimeRegularRate:        decimal.NewFromFloat(1.25),
		OvertimeRestDayRate:        decimal.NewFromFloat(1.30),
		OvertimeRegularHolidayRate: decimal.NewFromFloat(2.00),
		OvertimeSpecialHolidayRate: decimal.NewFromFloat(1.30),
		NightDiffRate:              decimal.NewFromFloat(0.10),

		LateDeductionEnabled:      true,
		UndertimeDeductionEnabled: true,

		SSS: payroll.ContributionTable{
			EmployeeRate:  decimal.NewFromFloat(0.045),
			EmployerRate:  decimal.NewFromFloat(0.095),
			SalaryCeiling: decimal.NewFromInt(30000),
		},
		PhilHealth: payroll.ContributionTable{
			EmployeeRate:  decimal.NewFromFloat(0.025),
			EmployerRate:  decimal.NewFromFloat(0.025),
			SalaryFloor:   decimal.NewFromInt(10000),
			SalaryCeiling: decimal.NewFromInt(100000),
		},
		PagIbig: payroll.ContributionTable{
			EmployeeRate:  decimal.NewFromFloat(0.02),
			EmployerRate:  decimal.NewFromFloat(0.02),
			SalaryCeiling: decimal.NewFromInt(5000),
		},

		TaxBrackets: []payroll.TaxBracket{
			{LowerBound: decimal.Zero, BaseTax: decimal.Zero, Rate: decimal.Zero},
			{LowerBound: decimal.NewFromInt(250000), BaseTax: decimal.Zero, Rate: decimal.NewFromFloat(0.15)},
			{LowerBound: decimal.NewFromInt(400000), BaseTax: decimal.NewFromInt(22500), Rate: decimal.NewFromFloat(0.20)},
			{LowerBound: decimal.NewFromInt(800000), BaseTax: decimal.NewFromInt(102500), Rate: decimal.NewFromFloat(0.25)},
			{LowerBound: decimal.NewFromInt(2000000), BaseTax: decimal.NewFromInt(402500), Rate: decimal.NewFromFloat(0.30)},
			{LowerBound: decimal.NewFromInt(8000000), BaseTax: decimal.NewFromInt(2202500), Rate: decimal.NewFromFloat(0.35)},
		},
	}
}
