package leave

import "time"

type GrantStatus string

const (
	GrantStatusPending  GrantStatus = "PENDING"
	GrantStatusApproved GrantStatus = "APPROVED"
	GrantStatusRejected GrantStatus = "REJECTED"
)

// Grant is an approved (or pending) leave over a date range, inclusive.
type Grant struct {
	ID         string
	CompanyID  string
	EmployeeID string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Status     GrantStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Covers reports whether the grant spans the given local calendar date.
func (g Grant) Covers(date time.Time) bool {
	return !date.Before(g.StartDate) && !date.After(g.EndDate)
}
