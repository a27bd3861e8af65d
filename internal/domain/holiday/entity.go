package holiday

import "time"

type DayKind string

const (
	DayKindRegular DayKind = "REGULAR"
	DayKindSpecial DayKind = "SPECIAL"
)

// Event is one calendar holiday. Dates are local calendar dates.
type Event struct {
	ID        string
	CompanyID string
	Date      time.Time
	Name      string
	Kind      DayKind
	CreatedAt time.Time
	UpdatedAt time.Time
}
