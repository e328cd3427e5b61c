// Package analytics arma la vista del dashboard de descuentos a partir de las
// métricas del backend de ventas y del estado del cooldown.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/dto"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/ports"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
)

const fetchTimeout = 10 * time.Second

// Colores de Chart.js del frontend original.
const (
	hourlyBorderColor     = "rgba(75, 192, 192, 1)"
	hourlyBackgroundColor = "rgba(75, 192, 192, 0.2)"
	itemBorderColor       = "rgba(153, 102, 255, 1.0)"
	itemBackgroundColor   = "rgba(153, 102, 255, 0.6)"
)

// CooldownReader estado actual del botón de descuento.
type CooldownReader interface {
	Status(ctx context.Context, companyID string) (dto.CooldownStatusDTO, error)
}

// Navigation rutas del frontend para las acciones de navegación.
type Navigation struct {
	ProductsPath    string
	AIAssistantPath string
}

// DashboardUseCase construye DashboardViewDTO.
//
// Fuente de datos: SalesBackend (solo lectura). El estado del cooldown lo aporta
// el controlador; este caso de uso no lo modifica.
type DashboardUseCase struct {
	backend  ports.SalesBackend
	cooldown CooldownReader
	nav      Navigation
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(backend ports.SalesBackend, cooldown CooldownReader, nav Navigation) *DashboardUseCase {
	if nav.ProductsPath == "" {
		nav.ProductsPath = "/products"
	}
	if nav.AIAssistantPath == "" {
		nav.AIAssistantPath = "/aibot"
	}
	return &DashboardUseCase{backend: backend, cooldown: cooldown, nav: nav}
}

// GetDashboard consulta en paralelo:
//  1. FetchDashboard      → gráficos, rankings y descuentos del día
//  2. Status(companyID)   → botón "Apply Discount Now"
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, companyID string) (*dto.DashboardViewDTO, error) {
	type dataResult struct {
		data *entity.DashboardData
		err  error
	}
	type cooldownResult struct {
		status dto.CooldownStatusDTO
		err    error
	}

	dataCh := make(chan dataResult, 1)
	coolCh := make(chan cooldownResult, 1)

	go func() {
		data, err := uc.fetch(ctx)
		dataCh <- dataResult{data, err}
	}()
	go func() {
		st, err := uc.cooldown.Status(ctx, companyID)
		coolCh <- cooldownResult{st, err}
	}()

	data := <-dataCh
	cool := <-coolCh

	if data.err != nil {
		return nil, fmt.Errorf("dashboard: métricas: %w", data.err)
	}
	if cool.err != nil {
		return nil, fmt.Errorf("dashboard: cooldown: %w", cool.err)
	}

	return uc.BuildView(data.data, cool.status), nil
}

// Refresh vuelve a consultar el backend tras aplicar un descuento; conserva el
// estado de cooldown recibido en vez de leerlo de nuevo.
func (uc *DashboardUseCase) Refresh(ctx context.Context, status dto.CooldownStatusDTO) (*dto.DashboardViewDTO, error) {
	data, err := uc.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: refrescar métricas: %w", err)
	}
	return uc.BuildView(data, status), nil
}

func (uc *DashboardUseCase) fetch(ctx context.Context) (*entity.DashboardData, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	data, err := uc.backend.FetchDashboard(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = &entity.DashboardData{}
	}
	return data, nil
}

// BuildView traduce la respuesta del backend a la vista, aplicando los textos por
// defecto cuando faltan datos. Nunca falla: un campo ausente se muestra como no disponible.
func (uc *DashboardUseCase) BuildView(data *entity.DashboardData, status dto.CooldownStatusDTO) *dto.DashboardViewDTO {
	if data == nil {
		data = &entity.DashboardData{}
	}
	view := &dto.DashboardViewDTO{
		HourlySalesChart: hourlyChart(data),
		ItemSalesChart:   itemChart(data),
		MostSalesHour:    orNotAvailable(data.MostSalesHour),
		LeastSalesHour:   orNotAvailable(data.LeastSalesHour),
		MostSoldItems:    soldItems(data.MostSoldItems),
		LeastSoldItems:   soldItems(data.LeastSoldItems),
		DiscountedHours:  discountedHours(data.DiscountedHours),
		DiscountedItems:  discountedItems(data.DiscountedItems),
		Cooldown:         status,
		Actions:          uc.actions(status),
	}
	view.MostSoldItemsText = joinDisplays(view.MostSoldItems, dto.TextNoMostSoldItems)
	view.LeastSoldItemsText = joinDisplays(view.LeastSoldItems, dto.TextNoLeastSoldItems)
	if len(view.DiscountedItems) == 0 {
		view.DiscountedItemsEmptyText = dto.TextNoDiscountedItems
	}
	return view
}

func (uc *DashboardUseCase) actions(status dto.CooldownStatusDTO) []dto.ActionDTO {
	label := dto.LabelApplyDiscountNow
	if status.IsDisabled {
		label = dto.LabelDiscountActiveForAHour
	}
	return []dto.ActionDTO{
		{Name: "apply_discount", Label: label, Method: "POST", Href: "/api/dashboard/discount", Enabled: !status.IsDisabled},
		{Name: "manage_products", Label: "Manage Products", Method: "GET", Href: uc.nav.ProductsPath, Enabled: true},
		{Name: "generate_report", Label: "Generate Report", Method: "GET", Href: "/api/dashboard/report", Enabled: true},
		{Name: "ai_assistant", Label: "Get AI Assistant for Your Business", Method: "GET", Href: uc.nav.AIAssistantPath, Enabled: true},
	}
}

// ── Gráficos ──────────────────────────────────────────────────────────────────

func integerAxis() dto.ChartAxisDTO {
	return dto.ChartAxisDTO{BeginAtZero: true, Min: 0, StepSize: 1}
}

func hourlyChart(data *entity.DashboardData) dto.ChartDTO {
	labels := make([]string, entity.HoursPerDay)
	for h := range labels {
		labels[h] = fmt.Sprintf("Hour %d", h)
	}
	return dto.ChartDTO{
		Type:            "line",
		Labels:          labels,
		DatasetLabel:    "Sales per Hour",
		Data:            data.HourlySeries(),
		BorderColor:     hourlyBorderColor,
		BackgroundColor: hourlyBackgroundColor,
		Tension:         0.4,
		YAxis:           integerAxis(),
	}
}

func itemChart(data *entity.DashboardData) dto.ChartDTO {
	labels := make([]string, 0, len(data.ItemSales))
	values := make([]decimal.Decimal, 0, len(data.ItemSales))
	for _, it := range data.ItemSales {
		labels = append(labels, it.ItemName)
		values = append(values, it.SoldCount)
	}
	return dto.ChartDTO{
		Type:            "bar",
		Labels:          labels,
		DatasetLabel:    "Sales per Item",
		Data:            values,
		BorderColor:     itemBorderColor,
		BackgroundColor: itemBackgroundColor,
		Tension:         0.4,
		YAxis:           integerAxis(),
	}
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return dto.TextDataNotAvailable
	}
	return s
}

func soldItems(items []entity.SoldItem) []dto.SoldItemDTO {
	out := make([]dto.SoldItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.SoldItemDTO{
			ItemID:    string(it.ItemID),
			ItemName:  it.ItemName,
			SoldCount: it.SoldCount,
			Display:   fmt.Sprintf("%s (%s sales)", it.ItemName, it.SoldCount.String()),
		})
	}
	return out
}

func joinDisplays(items []dto.SoldItemDTO, empty string) string {
	if len(items) == 0 {
		return empty
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.Display
	}
	return strings.Join(parts, ", ")
}

// discountedHours: [most, least]. Con menos de dos entradas ambas lecturas quedan
// como no disponibles; una entrada null solo afecta a su lado.
func discountedHours(hours []*int) dto.DiscountedHoursDTO {
	if len(hours) < 2 {
		return dto.DiscountedHoursDTO{Most: dto.TextDataNotAvailable, Least: dto.TextDataNotAvailable}
	}
	return dto.DiscountedHoursDTO{Most: formatHour(hours[0]), Least: formatHour(hours[1])}
}

// formatHour: 0 es medianoche y se muestra como "00:00", no como dato ausente.
// Solo null o una hora fuera de 0..23 dan "Data not available".
func formatHour(h *int) string {
	if h == nil || *h < 0 || *h >= entity.HoursPerDay {
		return dto.TextDataNotAvailable
	}
	return fmt.Sprintf("%02d:00", *h)
}

func discountedItems(items []entity.DiscountedItem) []dto.DiscountedItemDTO {
	out := make([]dto.DiscountedItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.DiscountedItemDTO{
			ItemID:             string(it.ItemID),
			ItemName:           it.ItemName,
			SoldCount:          it.SoldCount,
			DiscountPercentage: it.DiscountPercentage,
			DiscountDisplay:    it.DiscountPercentage.String() + "%",
		})
	}
	return out
}
