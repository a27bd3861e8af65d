package timesheet

import "time"

// DayType classifies what kind of day the employee worked against.
type DayType string

const (
	DayTypeRegular        DayType = "REGULAR"
	DayTypeRestDay        DayType = "REST_DAY"
	DayTypeRegularHoliday DayType = "REGULAR_HOLIDAY"
	DayTypeSpecialHoliday DayType = "SPECIAL_HOLIDAY"
)

// IsPremium reports whether every effective worked minute on this day type is
// overtime of that category rather than regular time.
func (d DayType) IsPremium() bool {
	return d == DayTypeRestDay || d == DayTypeRegularHoliday || d == DayTypeSpecialHoliday
}

// AttendanceStatus is the attendance outcome for one employee-date.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusHalfDay AttendanceStatus = "HALF_DAY"
	StatusOnLeave AttendanceStatus = "ON_LEAVE"
	StatusAbsent  AttendanceStatus = "ABSENT"
	StatusNoData  AttendanceStatus = "NO_DATA"
)

// PunchSource identifies where a raw punch came from.
type PunchSource string

const (
	PunchSourceBiometric PunchSource = "BIOMETRIC"
	PunchSourceImport    PunchSource = "IMPORT"
	PunchSourceManual    PunchSource = "MANUAL"
)

// DayOverride carries per-day supervisor decisions. Approval flags gate how
// punches outside the schedule window are credited; BreakMinutesOverride
// follows three-state semantics: nil uses the schedule default, 0 means no
// break was taken, >0 is a custom break length.
type DayOverride struct {
	EarlyInApproved      bool
	LateOutApproved      bool
	LateInApproved       bool
	EarlyOutApproved     bool
	BreakMinutesOverride *int
	DailyRateOverride    *string // decimal string, parsed at the payroll boundary
	ShiftOverrideID      *string
	Reason               *string
}

// DayRecord is the persisted attendance fact for one employee-date: the raw
// punches, the stored classification, and the override set. Once a payroll
// run that covers it is approved, IsLocked is set and the record is immutable.
type DayRecord struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	Date        time.Time // local calendar date, midnight
	ClockIn     *time.Time
	ClockOut    *time.Time
	SourceType  PunchSource
	DayType     DayType
	Status      AttendanceStatus
	Override    DayOverride
	IsLocked    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
}

// ReconciledDay is the derived set of time-accounting figures for one
// employee-date. It is never the system of record: edits to schedules or
// overrides must be reflected by recomputing from the source facts, so it is
// recomputed on every read instead of cached.
type ReconciledDay struct {
	LateMinutes      int
	UndertimeMinutes int

	// Credited overtime, gated by the day's approval flags.
	OtEarlyInMinutes int
	OtLateOutMinutes int
	OtRestDayMinutes int
	OtHolidayMinutes int
	OtBreakMinutes   int

	// Overtime clocked but not approved, reported for display only.
	PendingEarlyInMinutes int
	PendingLateOutMinutes int

	NightDiffMinutes int
	WorkedMinutes    int
}
