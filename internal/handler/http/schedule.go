package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/silang-hris/payroll-backend-go/internal/domain/schedule"
	"github.com/silang-hris/payroll-backend-go/internal/handler/http/response"
	scheduleService "github.com/silang-hris/payroll-backend-go/internal/service/schedule"
)

type ScheduleHandler interface {
	CreateShiftTemplate(w http.ResponseWriter, r *http.Request)
	GetShiftTemplate(w http.ResponseWriter, r *http.Request)
	ListShiftTemplates(w http.ResponseWriter, r *http.Request)
	UpdateShiftTemplate(w http.ResponseWriter, r *http.Request)
	DeleteShiftTemplate(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService scheduleService.Service
}

func NewScheduleHandler(s scheduleService.Service) ScheduleHandler {
	return &scheduleHandlerImpl{scheduleService: s}
}

func (h *scheduleHandlerImpl) CreateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateShiftTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.scheduleService.CreateShiftTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift template created successfully", result)
}

func (h *scheduleHandlerImpl) GetShiftTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.scheduleService.GetShiftTemplate(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) ListShiftTemplates(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.ListShiftTemplates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) UpdateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req schedule.CreateShiftTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.scheduleService.UpdateShiftTemplate(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift template updated successfully", result)
}

func (h *scheduleHandlerImpl) DeleteShiftTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.scheduleService.DeleteShiftTemplate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift template deleted successfully", nil)
}
