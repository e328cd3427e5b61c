package ports

import (
	"context"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/dto"
)

// ChartImages imágenes PNG de los dos gráficos del dashboard. Un slice vacío
// significa que el gráfico no tiene datos que pintar.
type ChartImages struct {
	HourlySales []byte
	ItemSales   []byte
}

// ChartRenderer produce las imágenes de los gráficos a partir de la vista.
type ChartRenderer interface {
	RenderCharts(ctx context.Context, view *dto.DashboardViewDTO) (*ChartImages, error)
}

// ReportDocument contenido del reporte: la vista sin acciones más las imágenes.
type ReportDocument struct {
	Title      string
	SignerName string
	SignerRole string
	DateLabel  string
	View       *dto.DashboardViewDTO
	Charts     *ChartImages
}

// ReportGenerator maqueta el documento paginado y devuelve sus bytes.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, doc *ReportDocument) ([]byte, error)
}
