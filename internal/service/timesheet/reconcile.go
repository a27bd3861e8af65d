package timesheet

import (
	"math"
	"time"

	"github.com/silang-hris/payroll-backend-go/internal/domain/schedule"
	"github.com/silang-hris/payroll-backend-go/internal/domain/timesheet"
)

// breakDeductionThresholdMinutes: a raw punch span at or under this length
// gets no break deduction when computing worked minutes.
const breakDeductionThresholdMinutes = 300

// Night differential window: 22:00-24:00 and 00:00-06:00 local time.
const (
	nightWindowEveningStart = 22 * 60
	nightWindowEveningEnd   = 24 * 60
	nightWindowMorningEnd   = 6 * 60
)

// ReconcileInput is everything the reconciliation arithmetic needs for one
// employee-date. All of it is already-fetched data; the function itself does
// no I/O and never fails.
type ReconcileInput struct {
	Date     time.Time
	DayType  timesheet.DayType
	ClockIn  *time.Time
	ClockOut *time.Time
	Shift    schedule.ResolvedShift
	Override timesheet.DayOverride
}

// Reconcile computes the authoritative per-day time-accounting figures from
// punches, the resolved schedule, and the day's approval flags. It is the
// single shared implementation: attendance views, payslip computation, and
// exports must all go through it so their figures can never diverge.
//
// The arithmetic operates in local minutes since midnight of the attendance
// date. Punch timestamps are converted against local midnight, so an
// overnight clock-out lands past 1440 rather than wrapping.
func Reconcile(in ReconcileInput, loc *time.Location) timesheet.ReconciledDay {
	var out timesheet.ReconciledDay

	if in.ClockIn == nil || in.ClockOut == nil {
		return out
	}

	clockIn := minutesSinceMidnight(in.Date, *in.ClockIn, loc)
	clockOut := minutesSinceMidnight(in.Date, *in.ClockOut, loc)
	if clockOut < clockIn {
		return out
	}

	effBreak := in.Shift.BreakMinutes
	if in.Override.BreakMinutesOverride != nil {
		effBreak = *in.Override.BreakMinutesOverride
	}

	if in.Shift.IsRestDay {
		return reconcileUnscheduled(in, clockIn, clockOut, effBreak)
	}

	start := in.Shift.StartMinute
	end := in.Shift.EndMinute
	if in.Shift.IsOvernight || end < start {
		end += 24 * 60
	}

	breakStart, breakEnd, hasBreakWindow := breakWindow(in.Shift, start)

	// Lateness: measured from scheduled start, not from the grace limit.
	// Break minutes inside the missed window are not lateness.
	if clockIn > start+in.Shift.GraceLateMinutes {
		late := clockIn - start
		if hasBreakWindow {
			late -= overlap(breakStart, breakEnd, start, clockIn)
		}
		out.LateMinutes = clamp(late)
	}
	if in.Override.LateInApproved {
		out.LateMinutes = 0
	}

	// Undertime: break overlap within the unworked tail is excluded, and a
	// shortened break entitles an equally early departure.
	if clockOut < end-in.Shift.GraceEarlyOutMinutes {
		under := end - clockOut
		counted := 0
		if hasBreakWindow {
			counted = overlap(breakStart, breakEnd, clockOut, end)
			under -= counted
		}
		shortBreakCredit := in.Shift.BreakMinutes - effBreak - counted
		if shortBreakCredit > 0 {
			under -= shortBreakCredit
		}
		out.UndertimeMinutes = clamp(under)
	}
	if in.Override.EarlyOutApproved {
		out.UndertimeMinutes = 0
	}

	// Overtime outside the window is always measured so unapproved minutes
	// can still be shown as pending; only approved minutes are credited.
	out.PendingEarlyInMinutes = clamp(start - clockIn)
	out.PendingLateOutMinutes = clamp(clockOut - end)
	if in.Override.EarlyInApproved {
		out.OtEarlyInMinutes = out.PendingEarlyInMinutes
	}
	if in.Override.LateOutApproved {
		out.OtLateOutMinutes = out.PendingLateOutMinutes
	}

	// Effective span clamps unapproved minutes back to the schedule window.
	effIn := clockIn
	if !in.Override.EarlyInApproved && effIn < start {
		effIn = start
	}
	effOut := clockOut
	if !in.Override.LateOutApproved && effOut > end {
		effOut = end
	}
	if effOut < effIn {
		effOut = effIn
	}

	worked := effOut - effIn
	if clockOut-clockIn > breakDeductionThresholdMinutes {
		worked -= effBreak
	}
	out.WorkedMinutes = clamp(worked)

	// On a premium day the entire effective time is that category's
	// overtime; there is no regular bucket to split against.
	switch in.DayType {
	case timesheet.DayTypeRestDay:
		out.OtRestDayMinutes = out.WorkedMinutes
	case timesheet.DayTypeRegularHoliday, timesheet.DayTypeSpecialHoliday:
		out.OtHolidayMinutes = out.WorkedMinutes
	}

	out.NightDiffMinutes = nightOverlap(effIn, effOut)
	out.OtBreakMinutes = clamp(in.Shift.BreakMinutes - effBreak)

	return out
}

// reconcileUnscheduled handles rest days and other days without a schedule:
// no window to be late against, every effective minute is rest-day or
// holiday overtime.
func reconcileUnscheduled(in ReconcileInput, clockIn, clockOut, effBreak int) timesheet.ReconciledDay {
	var out timesheet.ReconciledDay

	worked := clockOut - clockIn
	if worked > breakDeductionThresholdMinutes {
		worked -= effBreak
	}
	out.WorkedMinutes = clamp(worked)

	switch in.DayType {
	case timesheet.DayTypeRegularHoliday, timesheet.DayTypeSpecialHoliday:
		out.OtHolidayMinutes = out.WorkedMinutes
	default:
		out.OtRestDayMinutes = out.WorkedMinutes
	}

	out.NightDiffMinutes = nightOverlap(clockIn, clockOut)
	return out
}

// breakWindow normalizes the shift's break window into the same
// minutes-since-midnight frame as the shift, handling overnight wraparound
// (a 01:00 break on a 21:00-06:00 shift belongs to the next calendar day).
func breakWindow(s schedule.ResolvedShift, start int) (bs, be int, ok bool) {
	if s.BreakStartMinute == nil || s.BreakEndMinute == nil {
		return 0, 0, false
	}
	bs = *s.BreakStartMinute
	be = *s.BreakEndMinute
	if be < bs {
		be += 24 * 60
	}
	if bs < start {
		bs += 24 * 60
		be += 24 * 60
	}
	return bs, be, true
}

// overlap returns the length of the intersection of [aStart,aEnd) and
// [bStart,bEnd) in minutes, zero when disjoint.
func overlap(aStart, aEnd, bStart, bEnd int) int {
	lo := aStart
	if bStart > lo {
		lo = bStart
	}
	hi := aEnd
	if bEnd < hi {
		hi = bEnd
	}
	return clamp(hi - lo)
}

// nightOverlap measures the night-differential minutes of [from,to), where
// both bounds are minutes since midnight of the attendance date and may
// exceed 1440 for overnight spans. The window repeats per calendar day.
func nightOverlap(from, to int) int {
	total := 0
	for day := 0; day*24*60 < to; day++ {
		base := day * 24 * 60
		total += overlap(from, to, base, base+nightWindowMorningEnd)
		total += overlap(from, to, base+nightWindowEveningStart, base+nightWindowEveningEnd)
	}
	return total
}

// minutesSinceMidnight converts a punch timestamp to whole minutes after
// local midnight of the attendance date, rounding the millisecond delta.
func minutesSinceMidnight(date time.Time, t time.Time, loc *time.Location) int {
	local := t.In(loc)
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	deltaMs := local.Sub(midnight).Milliseconds()
	return int(math.Round(float64(deltaMs) / 60000.0))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
