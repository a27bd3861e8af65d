package leave

import (
	"context"
	"errors"
	"time"
)

var ErrGrantNotFound = errors.New("leave grant not found")

type GrantRepository interface {
	// ListApprovedByRange returns approved grants overlapping [from, to]
	// for the given employees (all employees when the slice is empty).
	ListApprovedByRange(ctx context.Context, companyID string, from, to time.Time, employeeIDs []string) ([]Grant, error)
	GetApprovedByEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) (Grant, error)
}
