package schedule

import "errors"

var (
	ErrShiftNotFound      = errors.New("shift template not found")
	ErrShiftNameExists    = errors.New("shift template name already exists")
	ErrNoScheduleForDay   = errors.New("no resolvable schedule for a non-rest day")
	ErrInvalidShiftWindow = errors.New("shift end must differ from shift start")
)
