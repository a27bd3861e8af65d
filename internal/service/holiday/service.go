package holiday

import (
	"context"
	"fmt"
	"sort"

	"github.com/silang-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/validator"
)

type Service interface {
	Upsert(ctx context.Context, req holiday.UpsertHolidayRequest) (holiday.HolidayResponse, error)
	ListByRange(ctx context.Context, fromStr, toStr string) ([]holiday.HolidayResponse, error)
	Delete(ctx context.Context, id string) error
}

type ServiceImpl struct {
	calendarRepo holiday.CalendarRepository
}

func NewService(calendarRepo holiday.CalendarRepository) Service {
	return &ServiceImpl{calendarRepo: calendarRepo}
}

func (s *ServiceImpl) Upsert(ctx context.Context, req holiday.UpsertHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := validator.ParseDate(req.Date)
	saved, err := s.calendarRepo.Upsert(ctx, holiday.Event{
		CompanyID: ident.CompanyID,
		Date:      date,
		Name:      req.Name,
		Kind:      holiday.DayKind(req.Kind),
	})
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to upsert holiday: %w", err)
	}
	return holiday.ToResponse(saved), nil
}

func (s *ServiceImpl) ListByRange(ctx context.Context, fromStr, toStr string) ([]holiday.HolidayResponse, error) {
	var errs validator.ValidationErrors
	if !validator.IsValidDate(fromStr) {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be in YYYY-MM-DD format"})
	}
	if !validator.IsValidDate(toStr) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	from, _ := validator.ParseDate(fromStr)
	to, _ := validator.ParseDate(toStr)

	events, err := s.calendarRepo.ListByRange(ctx, ident.CompanyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	result := make([]holiday.HolidayResponse, 0, len(events))
	for _, ev := range events {
		result = append(result, holiday.ToResponse(ev))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return err
	}

	return s.calendarRepo.Delete(ctx, id, ident.CompanyID)
}
