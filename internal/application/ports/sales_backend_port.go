package ports

import (
	"context"

	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
)

// SalesBackend puerto de salida hacia el backend de ventas que agrega métricas
// y decide qué ítems son elegibles para descuento.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type SalesBackend interface {
	// FetchDashboard GET /api/admindis/dashboard.
	FetchDashboard(ctx context.Context) (*entity.DashboardData, error)
	// ApplyDiscount POST /api/discount/apply-discount. Una lista vacía significa
	// "no hay ítems elegibles" y no es error.
	ApplyDiscount(ctx context.Context, discountType string) ([]entity.AffectedItem, error)
}
