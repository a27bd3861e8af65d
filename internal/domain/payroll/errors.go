package payroll

import "errors"

var (
	ErrRunNotFound          = errors.New("payroll run not found")
	ErrRunAlreadyExists     = errors.New("payroll run already exists for this period")
	ErrInvalidRunTransition = errors.New("payroll run status does not allow this operation")
	ErrRunStatusChanged     = errors.New("payroll run status changed concurrently")
	ErrSelfApproval         = errors.New("payroll run cannot be approved by its creator")
	ErrPayslipNotFound      = errors.New("payslip not found")
	ErrInvalidPeriod        = errors.New("invalid payroll period")
	ErrComputationFailed    = errors.New("payroll computation failed")
)
