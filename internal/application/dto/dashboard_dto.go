package dto

import "github.com/shopspring/decimal"

// Textos que el dashboard muestra cuando falta información.
const (
	TextDataNotAvailable        = "Data not available"
	TextNoMostSoldItems         = "No most sold items found."
	TextNoLeastSoldItems        = "No least sold items found."
	TextNoDiscountedItems       = "No data available for discount items."
	LabelApplyDiscountNow       = "Apply Discount Now"
	LabelDiscountActiveForAHour = "Discount Active for an Hour"
)

// DashboardViewDTO respuesta de GET /api/dashboard: todo lo que la pantalla necesita
// para pintarse, ya formateado.
type DashboardViewDTO struct {
	HourlySalesChart ChartDTO `json:"hourly_sales_chart"`
	ItemSalesChart   ChartDTO `json:"item_sales_chart"`

	MostSalesHour  string `json:"most_sales_hour"`
	LeastSalesHour string `json:"least_sales_hour"`

	MostSoldItems      []SoldItemDTO `json:"most_sold_items"`
	MostSoldItemsText  string        `json:"most_sold_items_text"`
	LeastSoldItems     []SoldItemDTO `json:"least_sold_items"`
	LeastSoldItemsText string        `json:"least_sold_items_text"`

	DiscountedHours DiscountedHoursDTO `json:"discounted_hours"`

	DiscountedItems          []DiscountedItemDTO `json:"discounted_items"`
	DiscountedItemsEmptyText string              `json:"discounted_items_empty_text,omitempty"`

	Cooldown CooldownStatusDTO `json:"cooldown"`
	Actions  []ActionDTO       `json:"actions"`
}

// ChartDTO serie lista para Chart.js (labels + un dataset).
type ChartDTO struct {
	Type            string            `json:"type"` // line | bar
	Labels          []string          `json:"labels"`
	DatasetLabel    string            `json:"dataset_label"`
	Data            []decimal.Decimal `json:"data"`
	BorderColor     string            `json:"border_color"`
	BackgroundColor string            `json:"background_color"`
	Tension         float64           `json:"tension"`
	YAxis           ChartAxisDTO      `json:"y_axis"`
}

// ChartAxisDTO eje Y: arranca en cero, pasos enteros.
type ChartAxisDTO struct {
	BeginAtZero bool `json:"begin_at_zero"`
	Min         int  `json:"min"`
	StepSize    int  `json:"step_size"`
}

// SoldItemDTO ítem del ranking de más/menos vendidos.
type SoldItemDTO struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	SoldCount decimal.Decimal `json:"sold_count"`
	Display   string          `json:"display"` // "Bread (12 sales)"
}

// DiscountedHoursDTO lectura "Most: 18:00 / Least: 03:00".
type DiscountedHoursDTO struct {
	Most  string `json:"most"`
	Least string `json:"least"`
}

// DiscountedItemDTO fila de la tabla de ítems con descuento.
type DiscountedItemDTO struct {
	ItemID             string          `json:"item_id"`
	ItemName           string          `json:"item_name"`
	SoldCount          decimal.Decimal `json:"sold_count"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountDisplay    string          `json:"discount_display"` // "15%"
}

// ActionDTO acción disponible en la pantalla (botón o navegación).
type ActionDTO struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Method  string `json:"method"`
	Href    string `json:"href"`
	Enabled bool   `json:"enabled"`
}
