package timesheet

import (
	"time"

	"github.com/silang-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/silang-hris/payroll-backend-go/internal/domain/leave"
	"github.com/silang-hris/payroll-backend-go/internal/domain/timesheet"
)

// ClassifyInput gathers the already-fetched facts about one employee-date.
type ClassifyInput struct {
	Date               time.Time
	ClockIn            *time.Time
	ClockOut           *time.Time
	StandardDailyHours int
	Leave              *leave.Grant
	Holiday            *holiday.Event
	StoredDayType      timesheet.DayType
	StoredStatus       timesheet.AttendanceStatus
	HasAssignedShift   bool
}

// Classification is the resolved attendance status and day type. The holiday
// name rides along independently of the status: a day worked on a holiday is
// simultaneously PRESENT and holiday-premium-eligible.
type Classification struct {
	Status      timesheet.AttendanceStatus
	DayType     timesheet.DayType
	HolidayName *string
}

// Classify determines the attendance status and day type for a day.
// First match wins: punches, approved leave, holiday calendar, stored
// classification, weekend default, absence.
func Classify(in ClassifyInput) Classification {
	out := Classification{
		Status:  timesheet.StatusNoData,
		DayType: dayType(in),
	}
	if in.Holiday != nil {
		name := in.Holiday.Name
		out.HolidayName = &name
	}

	switch {
	case in.ClockIn != nil || in.ClockOut != nil:
		out.Status = timesheet.StatusPresent
		if isHalfDay(in) {
			out.Status = timesheet.StatusHalfDay
		}
	case in.Leave != nil && in.Leave.Status == leave.GrantStatusApproved:
		out.Status = timesheet.StatusOnLeave
	case in.Holiday != nil:
		// Not worked and not absent: the day is accounted for by the
		// holiday itself, carried in DayType.
		out.Status = timesheet.StatusNoData
	case in.StoredStatus == timesheet.StatusAbsent || in.StoredStatus == timesheet.StatusOnLeave:
		out.Status = in.StoredStatus
	case out.DayType == timesheet.DayTypeRestDay:
		out.Status = timesheet.StatusNoData
	default:
		out.Status = timesheet.StatusAbsent
	}

	return out
}

// dayType resolves the premium classification independently of attendance:
// calendar holiday first, then the stored day type, then the weekend rest
// day default for employees with no assigned shift.
func dayType(in ClassifyInput) timesheet.DayType {
	if in.Holiday != nil {
		if in.Holiday.Kind == holiday.DayKindSpecial {
			return timesheet.DayTypeSpecialHoliday
		}
		return timesheet.DayTypeRegularHoliday
	}
	if in.StoredDayType == timesheet.DayTypeRestDay {
		return timesheet.DayTypeRestDay
	}
	if !in.HasAssignedShift && isWeekend(in.Date) {
		return timesheet.DayTypeRestDay
	}
	if in.StoredDayType != "" {
		return in.StoredDayType
	}
	return timesheet.DayTypeRegular
}

// isHalfDay downgrades PRESENT when the raw punch span covers at most half
// the employee's standard daily hours.
func isHalfDay(in ClassifyInput) bool {
	if in.ClockIn == nil || in.ClockOut == nil {
		return false
	}
	hours := in.StandardDailyHours
	if hours <= 0 {
		hours = 8
	}
	span := in.ClockOut.Sub(*in.ClockIn)
	return span <= time.Duration(hours)*time.Hour/2
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
