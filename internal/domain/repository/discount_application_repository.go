package repository

import (
	"context"

	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
)

// DiscountApplicationRepository auditoría de intentos de aplicar descuento.
type DiscountApplicationRepository interface {
	Create(ctx context.Context, app *entity.DiscountApplication) error
	ListByCompany(ctx context.Context, companyID string, limit int) ([]*entity.DiscountApplication, error)
}
