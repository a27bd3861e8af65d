package schedule

import "context"

type ShiftTemplateRepository interface {
	Create(ctx context.Context, shift ShiftTemplate) (ShiftTemplate, error)
	GetByID(ctx context.Context, id, companyID string) (ShiftTemplate, error)
	GetByIDs(ctx context.Context, ids []string, companyID string) (map[string]ShiftTemplate, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]ShiftTemplate, error)
	Update(ctx context.Context, shift ShiftTemplate) error
	Delete(ctx context.Context, id, companyID string) error
}
