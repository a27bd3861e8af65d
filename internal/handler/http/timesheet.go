package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/silang-hris/payroll-backend-go/internal/domain/timesheet"
	"github.com/silang-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/validator"
	timesheetService "github.com/silang-hris/payroll-backend-go/internal/service/timesheet"
)

type TimesheetHandler interface {
	GetDay(w http.ResponseWriter, r *http.Request)
	ListDays(w http.ResponseWriter, r *http.Request)
	ImportPunches(w http.ResponseWriter, r *http.Request)
	UpsertOverride(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheetService.TimesheetService
}

func NewTimesheetHandler(ts timesheetService.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: ts}
}

func (h *timesheetHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := chi.URLParam(r, "date")

	result, err := h.timesheetService.GetDay(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) ListDays(w http.ResponseWriter, r *http.Request) {
	filter := timesheet.DayRecordFilter{
		Page:  parseIntQuery(r, "page", 1),
		Limit: parseIntQuery(r, "limit", 31),
	}

	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("from"); v != "" {
		date, err := validator.ParseDate(v)
		if err != nil {
			response.BadRequest(w, "from must be in YYYY-MM-DD format", nil)
			return
		}
		filter.DateFrom = &date
	}
	if v := r.URL.Query().Get("to"); v != "" {
		date, err := validator.ParseDate(v)
		if err != nil {
			response.BadRequest(w, "to must be in YYYY-MM-DD format", nil)
			return
		}
		filter.DateTo = &date
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := timesheet.AttendanceStatus(v)
		filter.Status = &status
	}

	result, err := h.timesheetService.ListDays(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Days, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

func (h *timesheetHandlerImpl) ImportPunches(w http.ResponseWriter, r *http.Request) {
	var req timesheet.ImportPunchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.ImportPunches(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) UpsertOverride(w http.ResponseWriter, r *http.Request) {
	var req timesheet.UpsertOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")
	req.Date = chi.URLParam(r, "date")

	result, err := h.timesheetService.UpsertOverride(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
