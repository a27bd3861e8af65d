package timesheet

import (
	"testing"
	"time"

	"github.com/silang-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/silang-hris/payroll-backend-go/internal/domain/leave"
	"github.com/silang-hris/payroll-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
)

func TestClassify_PunchesMeanPresent(t *testing.T) {
	t.Parallel()

	got := Classify(ClassifyInput{
		Date:               testDate(),
		ClockIn:            punch(0, 9, 0),
		ClockOut:           punch(0, 18, 0),
		StandardDailyHours: 8,
		HasAssignedShift:   true,
	})

	assert.Equal(t, timesheet.StatusPresent, got.Status)
	assert.Equal(t, timesheet.DayTypeRegular, got.DayType)
}

func TestClassify_ShortSpanDowngradesToHalfDay(t *testing.T) {
	t.Parallel()

	got := Classify(ClassifyInput{
		Date:               testDate(),
		ClockIn:            punch(0, 9, 0),
		ClockOut:           punch(0, 13, 0),
		StandardDailyHours: 8,
		HasAssignedShift:   true,
	})

	assert.Equal(t, timesheet.StatusHalfDay, got.Status, "4 hours is half of an 8-hour day")
}

func TestClassify_SinglePunchStillPresent(t *testing.T) {
	t.Parallel()

	got := Classify(ClassifyInput{
		Date:             testDate(),
		ClockIn:          punch(0, 9, 0),
		HasAssignedShift: true,
	})

	assert.Equal(t, timesheet.StatusPresent, got.Status, "a lone punch is attendance, not a half day")
}

func TestClassify_ApprovedLeave(t *testing.T) {
	t.Parallel()

	got := Classify(ClassifyInput{
		Date:             testDate(),
		Leave:            &leave.Grant{Status: leave.GrantStatusApproved},
		HasAssignedShift: true,
	})

	assert.Equal(t, timesheet.StatusOnLeave, got.Status)
}

func TestClassify_PendingLeaveIsAbsence(t *testing.T) {
	t.Parallel()

	got := Classify(ClassifyInput{
		Date:             testDate(),
		Leave:            &leave.Grant{Status: leave.GrantStatusPending},
		HasAssignedShift: true,
	})

	assert.Equal(t, timesheet.StatusAbsent, got.Status)
}

func TestClassify_PunchesBeatLeave(t *testing.T) {
	t.Parallel()

	got := Classify(ClassifyInput{
		Date:             testDate(),
		ClockIn:          punch(0, 9, 0),
		ClockOut:         punch(0, 18, 0),
		Leave:            &leave.Grant{Status: leave.GrantStatusApproved},
		HasAssignedShift: true,
	})

	assert.Equal(t, timesheet.StatusPresent, got.Status, "working cancels the leave for the day")
}

func TestClassify_UnworkedHolidayIsNoData(t *testing.T) {
	t.Parallel()

	got := Classify(ClassifyInput{
		Date:             testDate(),
		Holiday:          &holiday.Event{Name: "Araw ng Kagitingan", Kind: holiday.DayKindRegular},
		HasAssignedShift: true,
	})

	assert.Equal(t, timesheet.StatusNoData, got.Status)
	assert.Equal(t, timesheet.DayTypeRegularHoliday, got.DayType)
	if assert.NotNil(t, got.HolidayName) {
		assert.Equal(t, "Araw ng Kagitingan", *got.HolidayName)
	}
}

func TestClassify_WorkedHolidayKeepsHolidayDayType(t *testing.T) {
	t.Parallel()

	got := Classify(ClassifyInput{
		Date:             testDate(),
		ClockIn:          punch(0, 9, 0),
		ClockOut:         punch(0, 18, 0),
		Holiday:          &holiday.Event{Name: "Ninoy Aquino Day", Kind: holiday.DayKindSpecial},
		HasAssignedShift: true,
	})

	assert.Equal(t, timesheet.StatusPresent, got.Status)
	assert.Equal(t, timesheet.DayTypeSpecialHoliday, got.DayType)
}

func TestClassify_WeekendWithoutShiftIsRestDay(t *testing.T) {
	t.Parallel()

	saturday := time.Date(2025, 3, 15, 0, 0, 0, 0, manila)

	got := Classify(ClassifyInput{
		Date:             saturday,
		HasAssignedShift: false,
	})

	assert.Equal(t, timesheet.DayTypeRestDay, got.DayType)
	assert.Equal(t, timesheet.StatusNoData, got.Status, "a rest day is not an absence")
}

func TestClassify_WeekendWithShiftIsRegular(t *testing.T) {
	t.Parallel()

	saturday := time.Date(2025, 3, 15, 0, 0, 0, 0, manila)

	got := Classify(ClassifyInput{
		Date:             saturday,
		HasAssignedShift: true,
	})

	assert.Equal(t, timesheet.DayTypeRegular, got.DayType)
	assert.Equal(t, timesheet.StatusAbsent, got.Status)
}

func TestClassify_StoredRestDayHonored(t *testing.T) {
	t.Parallel()

	got := Classify(ClassifyInput{
		Date:             testDate(),
		StoredDayType:    timesheet.DayTypeRestDay,
		HasAssignedShift: true,
	})

	assert.Equal(t, timesheet.DayTypeRestDay, got.DayType)
	assert.Equal(t, timesheet.StatusNoData, got.Status)
}

func TestClassify_StoredStatusHonoredWithoutEvidence(t *testing.T) {
	t.Parallel()

	got := Classify(ClassifyInput{
		Date:             testDate(),
		StoredStatus:     timesheet.StatusOnLeave,
		HasAssignedShift: true,
	})

	assert.Equal(t, timesheet.StatusOnLeave, got.Status)
}

func TestClassify_NoEvidenceDefaultsToAbsent(t *testing.T) {
	t.Parallel()

	got := Classify(ClassifyInput{
		Date:             testDate(),
		HasAssignedShift: true,
	})

	assert.Equal(t, timesheet.StatusAbsent, got.Status)
	assert.Equal(t, timesheet.DayTypeRegular, got.DayType)
}

func TestClassify_ZeroStandardHoursFallsBackToEight(t *testing.T) {
	t.Parallel()

	got := Classify(ClassifyInput{
		Date:             testDate(),
		ClockIn:          punch(0, 9, 0),
		ClockOut:         punch(0, 13, 30),
		HasAssignedShift: true,
	})

	assert.Equal(t, timesheet.StatusPresent, got.Status, "4.5 hours is over half of the default 8")
}
