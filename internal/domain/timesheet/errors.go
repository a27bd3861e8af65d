package timesheet

import "errors"

var (
	ErrDayRecordNotFound = errors.New("attendance day record not found")
	ErrDayLocked         = errors.New("attendance day record is locked by an approved payroll run")
	ErrInvalidPunchOrder = errors.New("clock-out must not precede clock-in")
	ErrUnknownDayType    = errors.New("unknown day type")
)
