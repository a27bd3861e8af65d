package schedule

import "time"

// ShiftTemplate describes a work shift as local wall-clock offsets from
// midnight of the attendance date. Times carry no timezone of their own;
// resolving a shift anchors them to local midnight of a concrete date.
type ShiftTemplate struct {
	ID                   string
	CompanyID            string
	Name                 string
	StartMinute          int // minutes since local midnight
	EndMinute            int
	BreakMinutes         int
	BreakStartMinute     *int
	BreakEndMinute       *int
	GraceLateMinutes     int
	GraceEarlyOutMinutes int
	IsOvernight          bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time
}

// ResolvedShift is the effective shift window for one employee-date pair.
type ResolvedShift struct {
	StartMinute          int
	EndMinute            int
	BreakMinutes         int
	BreakStartMinute     *int
	BreakEndMinute       *int
	GraceLateMinutes     int
	GraceEarlyOutMinutes int
	IsOvernight          bool
	IsRestDay            bool
}

// RestDay is the resolved shift for a day with no schedule.
func RestDay() ResolvedShift {
	return ResolvedShift{IsRestDay: true}
}

// FromTemplate builds the resolved window out of a shift template.
func FromTemplate(t ShiftTemplate) ResolvedShift {
	return ResolvedShift{
		StartMinute:          t.StartMinute,
		EndMinute:            t.EndMinute,
		BreakMinutes:         t.BreakMinutes,
		BreakStartMinute:     t.BreakStartMinute,
		BreakEndMinute:       t.BreakEndMinute,
		GraceLateMinutes:     t.GraceLateMinutes,
		GraceEarlyOutMinutes: t.GraceEarlyOutMinutes,
		IsOvernight:          t.IsOvernight || t.EndMinute < t.StartMinute,
	}
}
