package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/repository"
)

var _ repository.DiscountApplicationRepository = (*DiscountApplicationRepository)(nil)

// DiscountApplicationRepository auditoría en memoria; se usa cuando no hay PostgreSQL.
type DiscountApplicationRepository struct {
	mu   sync.RWMutex
	apps []*entity.DiscountApplication
}

func NewDiscountApplicationRepository() *DiscountApplicationRepository {
	return &DiscountApplicationRepository{}
}

func (r *DiscountApplicationRepository) Create(_ context.Context, app *entity.DiscountApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *app
	cp.Items = append([]entity.DiscountApplicationItem(nil), app.Items...)
	r.apps = append(r.apps, &cp)
	return nil
}

// ListByCompany devuelve los más recientes primero.
func (r *DiscountApplicationRepository) ListByCompany(_ context.Context, companyID string, limit int) ([]*entity.DiscountApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.DiscountApplication
	for i := len(r.apps) - 1; i >= 0; i-- {
		if r.apps[i].CompanyID != companyID {
			continue
		}
		out = append(out, r.apps[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
