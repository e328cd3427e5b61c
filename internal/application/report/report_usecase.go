// Package report genera el PDF "Sales Report" del dashboard.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/dto"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/ports"
)

// DashboardReader fuente de la vista que se exporta.
type DashboardReader interface {
	GetDashboard(ctx context.Context, companyID string) (*dto.DashboardViewDTO, error)
}

// Config textos fijos del reporte.
type Config struct {
	Title      string
	SignerName string
	SignerRole string
}

// ReportUseCase combina dos capacidades independientes: imágenes de los gráficos y
// maquetación del documento. Ninguna de las dos conoce el cooldown ni el backend.
type ReportUseCase struct {
	dashboard DashboardReader
	charts    ports.ChartRenderer
	generator ports.ReportGenerator
	cfg       Config
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(dashboard DashboardReader, charts ports.ChartRenderer, generator ports.ReportGenerator, cfg Config) *ReportUseCase {
	if cfg.Title == "" {
		cfg.Title = "Sales Report"
	}
	if cfg.SignerRole == "" {
		cfg.SignerRole = "Signature of Sales Manager"
	}
	return &ReportUseCase{dashboard: dashboard, charts: charts, generator: generator, cfg: cfg, now: time.Now}
}

// WithClock reemplaza el reloj que fecha el reporte (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// GenerateReport devuelve (pdfBytes, filename). El nombre lleva la fecha actual:
// sales_report_2026-10-19.pdf.
func (uc *ReportUseCase) GenerateReport(ctx context.Context, companyID string) ([]byte, string, error) {
	view, err := uc.dashboard.GetDashboard(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener dashboard: %w", err)
	}

	charts, err := uc.charts.RenderCharts(ctx, view)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: gráficos: %w", err)
	}

	// las acciones (botones) nunca forman parte del reporte
	printable := *view
	printable.Actions = nil

	now := uc.now()
	pdfBytes, err := uc.generator.GenerateReport(ctx, &ports.ReportDocument{
		Title:      uc.cfg.Title,
		SignerName: uc.cfg.SignerName,
		SignerRole: uc.cfg.SignerRole,
		DateLabel:  now.Format("02/01/2006"),
		View:       &printable,
		Charts:     charts,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}

	return pdfBytes, Filename(now), nil
}

// Filename nombre del archivo para la fecha dada.
func Filename(t time.Time) string {
	return fmt.Sprintf("sales_report_%s.pdf", t.Format("2006-01-02"))
}
