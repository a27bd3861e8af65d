package schedule

import (
	"context"
	"fmt"

	"github.com/silang-hris/payroll-backend-go/internal/domain/schedule"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/validator"
)

type Service interface {
	CreateShiftTemplate(ctx context.Context, req schedule.CreateShiftTemplateRequest) (schedule.ShiftTemplateResponse, error)
	GetShiftTemplate(ctx context.Context, id string) (schedule.ShiftTemplateResponse, error)
	ListShiftTemplates(ctx context.Context) ([]schedule.ShiftTemplateResponse, error)
	UpdateShiftTemplate(ctx context.Context, id string, req schedule.CreateShiftTemplateRequest) (schedule.ShiftTemplateResponse, error)
	DeleteShiftTemplate(ctx context.Context, id string) error
}

type ServiceImpl struct {
	shiftRepo schedule.ShiftTemplateRepository
}

func NewService(shiftRepo schedule.ShiftTemplateRepository) Service {
	return &ServiceImpl{shiftRepo: shiftRepo}
}

func templateFromRequest(companyID string, req schedule.CreateShiftTemplateRequest) (schedule.ShiftTemplate, error) {
	start, err := validator.ParseWallClock(req.StartTime)
	if err != nil {
		return schedule.ShiftTemplate{}, err
	}
	end, err := validator.ParseWallClock(req.EndTime)
	if err != nil {
		return schedule.ShiftTemplate{}, err
	}
	if start == end {
		return schedule.ShiftTemplate{}, schedule.ErrInvalidShiftWindow
	}

	t := schedule.ShiftTemplate{
		CompanyID:            companyID,
		Name:                 req.Name,
		StartMinute:          start,
		EndMinute:            end,
		BreakMinutes:         req.BreakMinutes,
		GraceLateMinutes:     req.GraceLateMinutes,
		GraceEarlyOutMinutes: req.GraceEarlyOutMinutes,
		IsOvernight:          req.IsOvernight || end < start,
	}
	if req.BreakStartTime != nil && req.BreakEndTime != nil {
		bs, err := validator.ParseWallClock(*req.BreakStartTime)
		if err != nil {
			return schedule.ShiftTemplate{}, err
		}
		be, err := validator.ParseWallClock(*req.BreakEndTime)
		if err != nil {
			return schedule.ShiftTemplate{}, err
		}
		t.BreakStartMinute = &bs
		t.BreakEndMinute = &be
	}
	return t, nil
}

func (s *ServiceImpl) CreateShiftTemplate(ctx context.Context, req schedule.CreateShiftTemplateRequest) (schedule.ShiftTemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}

	t, err := templateFromRequest(ident.CompanyID, req)
	if err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}

	created, err := s.shiftRepo.Create(ctx, t)
	if err != nil {
		return schedule.ShiftTemplateResponse{}, fmt.Errorf("failed to create shift template: %w", err)
	}
	return schedule.ToResponse(created), nil
}

func (s *ServiceImpl) GetShiftTemplate(ctx context.Context, id string) (schedule.ShiftTemplateResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}

	t, err := s.shiftRepo.GetByID(ctx, id, ident.CompanyID)
	if err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}
	return schedule.ToResponse(t), nil
}

func (s *ServiceImpl) ListShiftTemplates(ctx context.Context) ([]schedule.ShiftTemplateResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	templates, err := s.shiftRepo.ListByCompanyID(ctx, ident.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}

	result := make([]schedule.ShiftTemplateResponse, 0, len(templates))
	for _, t := range templates {
		result = append(result, schedule.ToResponse(t))
	}
	return result, nil
}

func (s *ServiceImpl) UpdateShiftTemplate(ctx context.Context, id string, req schedule.CreateShiftTemplateRequest) (schedule.ShiftTemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}

	t, err := templateFromRequest(ident.CompanyID, req)
	if err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}
	t.ID = id

	if err := s.shiftRepo.Update(ctx, t); err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}

	updated, err := s.shiftRepo.GetByID(ctx, id, ident.CompanyID)
	if err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}
	return schedule.ToResponse(updated), nil
}

func (s *ServiceImpl) DeleteShiftTemplate(ctx context.Context, id string) error {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return err
	}

	return s.shiftRepo.Delete(ctx, id, ident.CompanyID)
}
