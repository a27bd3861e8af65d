package response

import (
	"errors"
	"net/http"

	"github.com/silang-hris/payroll-backend-go/internal/domain/employee"
	"github.com/silang-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/silang-hris/payroll-backend-go/internal/domain/leave"
	"github.com/silang-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/silang-hris/payroll-backend-go/internal/domain/schedule"
	"github.com/silang-hris/payroll-backend-go/internal/domain/timesheet"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Schedule domain errors
	case errors.Is(err, schedule.ErrShiftNotFound):
		NotFound(w, "Shift template not found")
	case errors.Is(err, schedule.ErrShiftNameExists):
		Conflict(w, CodeNameTaken, "Shift template name already exists")
	case errors.Is(err, schedule.ErrNoScheduleForDay):
		BadRequest(w, "No resolvable schedule for the day", nil)
	case errors.Is(err, schedule.ErrInvalidShiftWindow):
		BadRequest(w, "Shift end must differ from shift start", nil)

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrDayRecordNotFound):
		NotFound(w, "Attendance day record not found")
	case errors.Is(err, timesheet.ErrDayLocked):
		Conflict(w, CodeDayLocked, "Day record is locked by an approved payroll run")
	case errors.Is(err, timesheet.ErrInvalidPunchOrder):
		BadRequest(w, "Clock-out must not precede clock-in", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrMissingPayProfile):
		BadRequest(w, "Employee has no pay profile configured", nil)

	// Holiday and leave domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, leave.ErrGrantNotFound):
		NotFound(w, "Leave grant not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrRunAlreadyExists):
		Conflict(w, CodeRunPeriodTaken, "Payroll run already exists for this period")
	case errors.Is(err, payroll.ErrInvalidRunTransition):
		Conflict(w, CodeRunStatusBlocked, "Payroll run status does not allow this operation")
	case errors.Is(err, payroll.ErrRunStatusChanged):
		Conflict(w, CodeRunStatusChanged, "Payroll run status changed concurrently, reload and retry")
	case errors.Is(err, payroll.ErrSelfApproval):
		Forbidden(w, "Payroll run cannot be approved by its creator")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrComputationFailed):
		InternalServerError(w, "Payroll computation failed")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
