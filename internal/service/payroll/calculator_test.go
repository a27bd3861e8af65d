package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/silang-hris/payroll-backend-go/internal/domain/employee"
	"github.com/silang-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/silang-hris/payroll-backend-go/internal/domain/timesheet"
	"github.com/silang-hris/payroll-backend-go/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlyProfile(rate int64) employee.PayProfile {
	return employee.PayProfile{
		WageType:     employee.WageTypeMonthly,
		BaseRate:     decimal.NewFromInt(rate),
		PayFrequency: employee.PayFrequencySemiMonthly,
	}
}

func figuresDay(dayType timesheet.DayType, status timesheet.AttendanceStatus, f timesheet.ReconciledDay) DayFigures {
	return DayFigures{
		Date:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		DayType: dayType,
		Status:  status,
		Figures: f,
	}
}

func lineAmount(t *testing.T, slip payroll.Payslip, cat payroll.LineCategory) string {
	t.Helper()
	for _, l := range slip.Lines {
		if l.Category == cat {
			return l.Amount.StringFixed(2)
		}
	}
	t.Fatalf("payslip has no %s line", cat)
	return ""
}

func TestDeriveRates_Monthly(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())

	// 26000 over 26 standard days and 8-hour days.
	rates := c.DeriveRates(monthlyProfile(26000))

	assert.Equal(t, "1000.00", rates.Daily.StringFixed(2))
	assert.Equal(t, "125.00", rates.Hourly.StringFixed(2))
	assert.Equal(t, "2.0833", rates.Minute.StringFixed(4))
}

func TestDeriveRates_DailyAndHourly(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())

	daily := c.DeriveRates(employee.PayProfile{
		WageType: employee.WageTypeDaily,
		BaseRate: decimal.NewFromInt(1000),
	})
	assert.Equal(t, "1000.00", daily.Daily.StringFixed(2))
	assert.Equal(t, "125.00", daily.Hourly.StringFixed(2))

	hourly := c.DeriveRates(employee.PayProfile{
		WageType: employee.WageTypeHourly,
		BaseRate: decimal.NewFromInt(100),
	})
	assert.Equal(t, "800.00", hourly.Daily.StringFixed(2))
	assert.Equal(t, "100.00", hourly.Hourly.StringFixed(2))
}

func TestDeriveRates_ProfileCalendarOverridesPolicy(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())

	rates := c.DeriveRates(employee.PayProfile{
		WageType:                 employee.WageTypeMonthly,
		BaseRate:                 decimal.NewFromInt(22000),
		StandardWorkDaysPerMonth: 22,
		StandardHoursPerDay:      8,
	})

	assert.Equal(t, "1000.00", rates.Daily.StringFixed(2))
}

func TestMonthlyEquivalent(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())

	monthly := c.MonthlyEquivalent(monthlyProfile(26000))
	assert.Equal(t, "26000.00", monthly.StringFixed(2))

	daily := c.MonthlyEquivalent(employee.PayProfile{
		WageType: employee.WageTypeDaily,
		BaseRate: decimal.NewFromInt(800),
	})
	assert.Equal(t, "20800.00", daily.StringFixed(2), "800/day over 26 standard days")
}

func TestBuildPayslip_MissingPayProfile(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())

	_, err := c.BuildPayslip(employee.Employee{ID: "emp-1"}, nil)

	assert.ErrorIs(t, err, employee.ErrMissingPayProfile)
}

func TestBuildPayslip_MonthlyFull(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())
	emp := employee.Employee{ID: "emp-1", PayProfile: monthlyProfile(26000)}

	days := []DayFigures{
		figuresDay(timesheet.DayTypeRegular, timesheet.StatusPresent, timesheet.ReconciledDay{
			WorkedMinutes:    540,
			OtLateOutMinutes: 60,
			LateMinutes:      10,
		}),
		figuresDay(timesheet.DayTypeRestDay, timesheet.StatusNoData, timesheet.ReconciledDay{
			WorkedMinutes:    240,
			OtRestDayMinutes: 240,
		}),
	}

	slip, err := c.BuildPayslip(emp, days)
	require.NoError(t, err)

	// Basic: 26000 / 2 periods. OT: 60 min at 1.25x, 240 rest-day min at
	// 1.30x of the 125/hr rate.
	assert.Equal(t, "13000.00", lineAmount(t, slip, payroll.LineBasicPay))
	assert.Equal(t, "156.25", lineAmount(t, slip, payroll.LineOvertimeRegular))
	assert.Equal(t, "650.00", lineAmount(t, slip, payroll.LineOvertimeRestDay))
	assert.Equal(t, "20.83", lineAmount(t, slip, payroll.LineLateDeduction))

	// Statutory on the 26000 monthly base, split over two periods.
	assert.Equal(t, "585.00", lineAmount(t, slip, payroll.LineSSSEmployee))
	assert.Equal(t, "325.00", lineAmount(t, slip, payroll.LinePhilHealthEE))
	assert.Equal(t, "50.00", lineAmount(t, slip, payroll.LinePagIbigEE))
	assert.Equal(t, "361.31", lineAmount(t, slip, payroll.LineTaxWithholding))

	assert.Equal(t, "13806.25", slip.GrossPay.StringFixed(2))
	assert.Equal(t, "1342.14", slip.TotalDeductions.StringFixed(2))
	assert.Equal(t, "12464.11", slip.NetPay.StringFixed(2))
}

func TestBuildPayslip_ZeroLinesOmitted(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())
	emp := employee.Employee{ID: "emp-1", PayProfile: monthlyProfile(26000)}

	slip, err := c.BuildPayslip(emp, []DayFigures{
		figuresDay(timesheet.DayTypeRegular, timesheet.StatusPresent, timesheet.ReconciledDay{WorkedMinutes: 480}),
	})
	require.NoError(t, err)

	for _, l := range slip.Lines {
		switch l.Category {
		case payroll.LineOvertimeRegular, payroll.LineOvertimeRestDay,
			payroll.LineOvertimeHoliday, payroll.LineNightDifferential,
			payroll.LineLateDeduction, payroll.LineUndertimeDeduct:
			t.Fatalf("zero-amount %s line should not be materialized", l.Category)
		}
	}
}

func TestBuildPayslip_LinesSorted(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())
	emp := employee.Employee{ID: "emp-1", PayProfile: monthlyProfile(26000)}

	slip, err := c.BuildPayslip(emp, []DayFigures{
		figuresDay(timesheet.DayTypeRestDay, timesheet.StatusNoData, timesheet.ReconciledDay{
			WorkedMinutes: 240, OtRestDayMinutes: 240, NightDiffMinutes: 60,
		}),
		figuresDay(timesheet.DayTypeRegular, timesheet.StatusPresent, timesheet.ReconciledDay{
			WorkedMinutes: 480, LateMinutes: 15, UndertimeMinutes: 30,
		}),
	})
	require.NoError(t, err)
	require.NotEmpty(t, slip.Lines)

	for i := 1; i < len(slip.Lines); i++ {
		assert.Less(t, slip.Lines[i-1].SortOrder, slip.Lines[i].SortOrder)
	}
	assert.Equal(t, payroll.LineBasicPay, slip.Lines[0].Category)
}

func TestBuildPayslip_DailyWageHalfDayAndOverride(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())
	override := decimal.NewFromInt(1200)
	emp := employee.Employee{ID: "emp-1", PayProfile: employee.PayProfile{
		WageType:     employee.WageTypeDaily,
		BaseRate:     decimal.NewFromInt(800),
		PayFrequency: employee.PayFrequencySemiMonthly,
	}}

	days := []DayFigures{
		figuresDay(timesheet.DayTypeRegular, timesheet.StatusPresent, timesheet.ReconciledDay{WorkedMinutes: 480}),
		figuresDay(timesheet.DayTypeRegular, timesheet.StatusHalfDay, timesheet.ReconciledDay{WorkedMinutes: 240}),
		figuresDay(timesheet.DayTypeRegular, timesheet.StatusAbsent, timesheet.ReconciledDay{}),
		{
			Date:              time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
			DayType:           timesheet.DayTypeRegular,
			Status:            timesheet.StatusPresent,
			Figures:           timesheet.ReconciledDay{WorkedMinutes: 480},
			DailyRateOverride: &override,
		},
	}

	slip, err := c.BuildPayslip(emp, days)
	require.NoError(t, err)

	// 800 full + 400 half + 0 absent + 1200 override.
	assert.Equal(t, "2400.00", lineAmount(t, slip, payroll.LineBasicPay))
}

func TestBuildPayslip_DailyWagePremiumDayNotInBasic(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())
	emp := employee.Employee{ID: "emp-1", PayProfile: employee.PayProfile{
		WageType:     employee.WageTypeDaily,
		BaseRate:     decimal.NewFromInt(800),
		PayFrequency: employee.PayFrequencyMonthly,
	}}

	slip, err := c.BuildPayslip(emp, []DayFigures{
		figuresDay(timesheet.DayTypeRegular, timesheet.StatusPresent, timesheet.ReconciledDay{WorkedMinutes: 480}),
		figuresDay(timesheet.DayTypeRestDay, timesheet.StatusPresent, timesheet.ReconciledDay{
			WorkedMinutes: 480, OtRestDayMinutes: 480,
		}),
	})
	require.NoError(t, err)

	// The rest day pays only through its overtime line, not a second
	// daily rate.
	assert.Equal(t, "800.00", lineAmount(t, slip, payroll.LineBasicPay))
	assert.Equal(t, "1040.00", lineAmount(t, slip, payroll.LineOvertimeRestDay))
}

func TestBuildPayslip_HourlyWagePaysWorkedMinutes(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())
	emp := employee.Employee{ID: "emp-1", PayProfile: employee.PayProfile{
		WageType:     employee.WageTypeHourly,
		BaseRate:     decimal.NewFromInt(100),
		PayFrequency: employee.PayFrequencyMonthly,
	}}

	slip, err := c.BuildPayslip(emp, []DayFigures{
		figuresDay(timesheet.DayTypeRegular, timesheet.StatusPresent, timesheet.ReconciledDay{WorkedMinutes: 450}),
	})
	require.NoError(t, err)

	assert.Equal(t, "750.00", lineAmount(t, slip, payroll.LineBasicPay))
}

func TestBuildPayslip_LateDeductionOnlyForMonthly(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())
	emp := employee.Employee{ID: "emp-1", PayProfile: employee.PayProfile{
		WageType:     employee.WageTypeHourly,
		BaseRate:     decimal.NewFromInt(100),
		PayFrequency: employee.PayFrequencyMonthly,
	}}

	slip, err := c.BuildPayslip(emp, []DayFigures{
		figuresDay(timesheet.DayTypeRegular, timesheet.StatusPresent, timesheet.ReconciledDay{
			WorkedMinutes: 450, LateMinutes: 30,
		}),
	})
	require.NoError(t, err)

	for _, l := range slip.Lines {
		assert.NotEqual(t, payroll.LineLateDeduction, l.Category,
			"hourly earners already absorb lateness in basic pay")
	}
}

func TestBuildPayslip_NetMatchesRoundedLines(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())
	emp := employee.Employee{ID: "emp-1", PayProfile: monthlyProfile(31333)}

	slip, err := c.BuildPayslip(emp, []DayFigures{
		figuresDay(timesheet.DayTypeRegular, timesheet.StatusPresent, timesheet.ReconciledDay{
			WorkedMinutes: 480, OtLateOutMinutes: 37, NightDiffMinutes: 11, LateMinutes: 7,
		}),
	})
	require.NoError(t, err)

	gross := decimal.Zero
	deductions := decimal.Zero
	for _, l := range slip.Lines {
		if l.Category.IsDeduction() {
			deductions = deductions.Add(l.Amount)
		} else {
			gross = gross.Add(l.Amount)
		}
	}

	assert.True(t, slip.GrossPay.Equal(gross), "gross %s vs lines %s", slip.GrossPay, gross)
	assert.True(t, slip.TotalDeductions.Equal(deductions))
	assert.True(t, slip.NetPay.Equal(gross.Sub(deductions)))
}

// Recomputing over the same inputs yields identical output.
func TestBuildPayslip_Deterministic(t *testing.T) {
	t.Parallel()

	c := NewCalculator(fixtures.DefaultPolicy())
	emp := employee.Employee{ID: "emp-1", PayProfile: monthlyProfile(26000)}
	days := []DayFigures{
		figuresDay(timesheet.DayTypeRegular, timesheet.StatusPresent, timesheet.ReconciledDay{
			WorkedMinutes: 510, OtEarlyInMinutes: 30, NightDiffMinutes: 45,
		}),
		figuresDay(timesheet.DayTypeSpecialHoliday, timesheet.StatusPresent, timesheet.ReconciledDay{
			WorkedMinutes: 480, OtHolidayMinutes: 480,
		}),
	}

	first, err := c.BuildPayslip(emp, days)
	require.NoError(t, err)
	second, err := c.BuildPayslip(emp, days)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
