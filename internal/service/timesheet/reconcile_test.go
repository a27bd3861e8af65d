package timesheet

import (
	"testing"
	"time"

	"github.com/silang-hris/payroll-backend-go/internal/domain/schedule"
	"github.com/silang-hris/payroll-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manila = mustLoadManila()

func mustLoadManila() *time.Location {
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		panic(err)
	}
	return loc
}

// dayShift is the canonical 09:00-18:00 shift with a 60-minute unpositioned
// break and zero grace.
func dayShift() schedule.ResolvedShift {
	return schedule.ResolvedShift{
		StartMinute:  9 * 60,
		EndMinute:    18 * 60,
		BreakMinutes: 60,
	}
}

func testDate() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, manila)
}

// punch returns a clock timestamp at h:m local, offset dayOffset days from
// the attendance date.
func punch(dayOffset, h, m int) *time.Time {
	d := testDate().AddDate(0, 0, dayOffset)
	t := time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, manila)
	return &t
}

func TestReconcile_LateArrival(t *testing.T) {
	t.Parallel()

	got := Reconcile(ReconcileInput{
		Date:     testDate(),
		DayType:  timesheet.DayTypeRegular,
		ClockIn:  punch(0, 9, 10),
		ClockOut: punch(0, 18, 0),
		Shift:    dayShift(),
	}, manila)

	assert.Equal(t, 10, got.LateMinutes)
	assert.Equal(t, 0, got.UndertimeMinutes)
	assert.Equal(t, 470, got.WorkedMinutes)
}

func TestReconcile_UnapprovedEarlyInClampsToSchedule(t *testing.T) {
	t.Parallel()

	got := Reconcile(ReconcileInput{
		Date:     testDate(),
		DayType:  timesheet.DayTypeRegular,
		ClockIn:  punch(0, 8, 30),
		ClockOut: punch(0, 18, 0),
		Shift:    dayShift(),
	}, manila)

	assert.Equal(t, 0, got.LateMinutes)
	assert.Equal(t, 0, got.OtEarlyInMinutes, "unapproved early-in must not be credited")
	assert.Equal(t, 30, got.PendingEarlyInMinutes, "unapproved early-in is still reported")
	assert.Equal(t, 480, got.WorkedMinutes)
}

func TestReconcile_ApprovedEarlyInCredited(t *testing.T) {
	t.Parallel()

	got := Reconcile(ReconcileInput{
		Date:     testDate(),
		DayType:  timesheet.DayTypeRegular,
		ClockIn:  punch(0, 8, 30),
		ClockOut: punch(0, 18, 0),
		Shift:    dayShift(),
		Override: timesheet.DayOverride{EarlyInApproved: true},
	}, manila)

	assert.Equal(t, 30, got.OtEarlyInMinutes)
	assert.Equal(t, 510, got.WorkedMinutes)
}

func TestReconcile_RestDayShortSpanNoBreakDeduction(t *testing.T) {
	t.Parallel()

	got := Reconcile(ReconcileInput{
		Date:     testDate(),
		DayType:  timesheet.DayTypeRestDay,
		ClockIn:  punch(0, 9, 0),
		ClockOut: punch(0, 13, 0),
		Shift:    schedule.RestDay(),
	}, manila)

	assert.Equal(t, 240, got.WorkedMinutes, "span at 300 minutes or under keeps the break")
	assert.Equal(t, 240, got.OtRestDayMinutes)
	assert.Equal(t, 0, got.LateMinutes)
}

func TestReconcile_OvernightNightDifferential(t *testing.T) {
	t.Parallel()

	got := Reconcile(ReconcileInput{
		Date:    testDate(),
		DayType: timesheet.DayTypeRegular,
		ClockIn: punch(0, 21, 0),
		// Clock-out lands on the next calendar day.
		ClockOut: punch(1, 7, 0),
		Shift: schedule.ResolvedShift{
			StartMinute: 21 * 60,
			EndMinute:   6 * 60,
			IsOvernight: true,
		},
	}, manila)

	assert.Equal(t, 480, got.NightDiffMinutes, "full 22:00-06:00 window")
	assert.Equal(t, 540, got.WorkedMinutes, "unapproved late-out clamps to 06:00")
	assert.Equal(t, 60, got.PendingLateOutMinutes)
	assert.Equal(t, 0, got.LateMinutes)
	assert.Equal(t, 0, got.UndertimeMinutes)
}

func TestReconcile_MissingPunchesYieldsZeroes(t *testing.T) {
	t.Parallel()

	got := Reconcile(ReconcileInput{
		Date:    testDate(),
		DayType: timesheet.DayTypeRegular,
		ClockIn: punch(0, 9, 0),
		Shift:   dayShift(),
	}, manila)

	assert.Equal(t, timesheet.ReconciledDay{}, got)
}

func TestReconcile_ClockOutBeforeClockInYieldsZeroes(t *testing.T) {
	t.Parallel()

	got := Reconcile(ReconcileInput{
		Date:     testDate(),
		DayType:  timesheet.DayTypeRegular,
		ClockIn:  punch(0, 18, 0),
		ClockOut: punch(0, 9, 0),
		Shift:    dayShift(),
	}, manila)

	assert.Equal(t, timesheet.ReconciledDay{}, got)
}

func TestReconcile_BreakOverlapExcludedFromLateness(t *testing.T) {
	t.Parallel()

	breakStart := 12 * 60
	breakEnd := 13 * 60
	shift := dayShift()
	shift.BreakStartMinute = &breakStart
	shift.BreakEndMinute = &breakEnd

	// Arriving at 13:30 misses 09:00-13:30, but 12:00-13:00 was break.
	got := Reconcile(ReconcileInput{
		Date:     testDate(),
		DayType:  timesheet.DayTypeRegular,
		ClockIn:  punch(0, 13, 30),
		ClockOut: punch(0, 18, 0),
		Shift:    shift,
	}, manila)

	assert.Equal(t, 210, got.LateMinutes, "the 60-minute break inside the missed window is not lateness")
}

func TestReconcile_BreakOverlapExcludedFromUndertime(t *testing.T) {
	t.Parallel()

	breakStart := 12 * 60
	breakEnd := 13 * 60
	shift := dayShift()
	shift.BreakStartMinute = &breakStart
	shift.BreakEndMinute = &breakEnd

	// Leaving at 11:30 misses 11:30-18:00, of which 12:00-13:00 was break.
	got := Reconcile(ReconcileInput{
		Date:     testDate(),
		DayType:  timesheet.DayTypeRegular,
		ClockIn:  punch(0, 9, 0),
		ClockOut: punch(0, 11, 30),
		Shift:    shift,
	}, manila)

	assert.Equal(t, 330, got.UndertimeMinutes)
}

func TestReconcile_LateInApprovedZeroesLateness(t *testing.T) {
	t.Parallel()

	got := Reconcile(ReconcileInput{
		Date:     testDate(),
		DayType:  timesheet.DayTypeRegular,
		ClockIn:  punch(0, 10, 0),
		ClockOut: punch(0, 18, 0),
		Shift:    dayShift(),
		Override: timesheet.DayOverride{LateInApproved: true},
	}, manila)

	assert.Equal(t, 0, got.LateMinutes)
}

func TestReconcile_GracePeriodSuppressesLateness(t *testing.T) {
	t.Parallel()

	shift := dayShift()
	shift.GraceLateMinutes = 15

	got := Reconcile(ReconcileInput{
		Date:     testDate(),
		DayType:  timesheet.DayTypeRegular,
		ClockIn:  punch(0, 9, 10),
		ClockOut: punch(0, 18, 0),
		Shift:    shift,
	}, manila)

	assert.Equal(t, 0, got.LateMinutes, "arrival inside grace is not late")
}

func TestReconcile_BreakMinutesOverrideZeroSkipsDeduction(t *testing.T) {
	t.Parallel()

	zero := 0
	got := Reconcile(ReconcileInput{
		Date:     testDate(),
		DayType:  timesheet.DayTypeRegular,
		ClockIn:  punch(0, 9, 0),
		ClockOut: punch(0, 18, 0),
		Shift:    dayShift(),
		Override: timesheet.DayOverride{BreakMinutesOverride: &zero},
	}, manila)

	assert.Equal(t, 540, got.WorkedMinutes, "a worked-through break is not deducted")
	assert.Equal(t, 60, got.OtBreakMinutes)
}

func TestReconcile_HolidayWorkRoutedToHolidayBucket(t *testing.T) {
	t.Parallel()

	got := Reconcile(ReconcileInput{
		Date:     testDate(),
		DayType:  timesheet.DayTypeRegularHoliday,
		ClockIn:  punch(0, 9, 0),
		ClockOut: punch(0, 18, 0),
		Shift:    dayShift(),
	}, manila)

	assert.Equal(t, 480, got.WorkedMinutes)
	assert.Equal(t, 480, got.OtHolidayMinutes)
	assert.Equal(t, 0, got.OtRestDayMinutes)
}

// All derived minute figures stay non-negative over a sweep of punch
// combinations, including inverted and degenerate ones.
func TestReconcile_AllFiguresNonNegative(t *testing.T) {
	t.Parallel()

	shifts := []schedule.ResolvedShift{
		dayShift(),
		{StartMinute: 21 * 60, EndMinute: 6 * 60, IsOvernight: true, BreakMinutes: 30},
		schedule.RestDay(),
	}

	for _, shift := range shifts {
		for inH := 0; inH < 30; inH += 3 {
			for outH := 0; outH < 30; outH += 3 {
				got := Reconcile(ReconcileInput{
					Date:     testDate(),
					DayType:  timesheet.DayTypeRegular,
					ClockIn:  punch(inH/24, inH%24, 17),
					ClockOut: punch(outH/24, outH%24, 43),
					Shift:    shift,
				}, manila)

				for _, v := range []int{
					got.LateMinutes, got.UndertimeMinutes, got.OtEarlyInMinutes,
					got.OtLateOutMinutes, got.OtRestDayMinutes, got.OtHolidayMinutes,
					got.OtBreakMinutes, got.NightDiffMinutes, got.WorkedMinutes,
					got.PendingEarlyInMinutes, got.PendingLateOutMinutes,
				} {
					require.GreaterOrEqual(t, v, 0, "in=%dh out=%dh shift=%+v", inH, outH, shift)
				}
			}
		}
	}
}

func TestReconcile_PunchRoundingToWholeMinutes(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, 3, 10, 9, 9, 31, 0, manila)  // rounds to 09:10
	out := time.Date(2025, 3, 10, 18, 0, 29, 0, manila) // rounds to 18:00

	got := Reconcile(ReconcileInput{
		Date:     testDate(),
		DayType:  timesheet.DayTypeRegular,
		ClockIn:  &in,
		ClockOut: &out,
		Shift:    dayShift(),
	}, manila)

	assert.Equal(t, 10, got.LateMinutes)
	assert.Equal(t, 470, got.WorkedMinutes)
}
