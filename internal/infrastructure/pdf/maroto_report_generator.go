// Package pdf implementa el reporte "Sales Report" del dashboard de descuentos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                 Sales Report            Fecha               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  GRÁFICO: Sales per Hour                                    │
//	│  GRÁFICO: Sales per Item                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LECTURAS: horas y ítems más/menos vendidos                 │
//	│  HORAS CON DESCUENTO: Most / Least                          │
//	│  TABLA: Ítem | Ventas | Descuento                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMA: _ _ _ _ / Signature of Sales Manager / nombre       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/dto"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/ports"
)

var _ ports.ReportGenerator = (*MarotoReportGenerator)(nil)

const signatureLine = "_ _ _ _ _ _ _ _ _ _ _ _ _ _ _"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 75, Green: 192, Blue: 192}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReport maqueta el reporte y devuelve los bytes del PDF.
func (g *MarotoReportGenerator) GenerateReport(_ context.Context, doc *ports.ReportDocument) ([]byte, error) {
	if doc == nil || doc.View == nil {
		return nil, fmt.Errorf("pdf: documento vacío")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(doc.SignerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(doc.Title, doc.DateLabel))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if doc.Charts != nil {
		m.AddRows(chartRows(doc.View.HourlySalesChart.DatasetLabel, doc.Charts.HourlySales)...)
		m.AddRows(chartRows(doc.View.ItemSalesChart.DatasetLabel, doc.Charts.ItemSales)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(readoutRows(doc.View)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(discountTableRows(doc.View)...)

	m.AddRows(line.NewRow(8))
	m.AddRows(signatureRows(doc.SignerRole, doc.SignerName)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(title, date string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorPrimary, Top: 1,
			}),
			text.New(date, props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 9,
			}),
		),
	)
}

// chartRows: subtítulo + imagen. Sin imagen no se agrega nada.
func chartRows(label string, png []byte) []core.Row {
	if len(png) == 0 {
		return nil
	}
	return []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
		)),
		image.NewFromBytesRow(75, png, extension.Png, props.Rect{Center: true, Percent: 100}),
	}
}

func readoutRows(v *dto.DashboardViewDTO) []core.Row {
	pair := func(label, value string) core.Row {
		return row.New(7).Add(
			col.New(4).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1})),
			col.New(8).Add(text.New(value, props.Text{Size: 9, Top: 1})),
		)
	}
	return []core.Row{
		pair("Most Sales Hour:", v.MostSalesHour),
		pair("Least Sales Hour:", v.LeastSalesHour),
		pair("Most Sold Items:", v.MostSoldItemsText),
		pair("Least Sold Items:", v.LeastSoldItemsText),
		pair("Most Discounted Hour:", v.DiscountedHours.Most),
		pair("Least Discounted Hour:", v.DiscountedHours.Least),
	}
}

// discountTableRows: cabecera + una fila por ítem con descuento.
func discountTableRows(v *dto.DashboardViewDTO) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("Discounted Items", props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1}),
		)),
	}
	if len(v.DiscountedItems) == 0 {
		return append(rows, row.New(7).Add(col.New(12).Add(
			text.New(nonEmpty(v.DiscountedItemsEmptyText, dto.TextNoDiscountedItems), props.Text{Size: 9, Color: colorGray, Top: 1}),
		)))
	}

	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	rows = append(rows,
		row.New(7).Add(
			h("Item", 6, align.Left),
			h("Sales", 3, align.Right),
			h("Discount", 3, align.Right),
		),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}),
	)
	for _, it := range v.DiscountedItems {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(it.ItemName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(it.SoldCount.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(it.DiscountDisplay, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// signatureRows: bloque de firma alineado a la derecha.
func signatureRows(role, name string) []core.Row {
	right := func(s string, style fontstyle.Type) core.Row {
		return row.New(6).Add(
			col.New(7),
			col.New(5).Add(text.New(s, props.Text{Style: style, Size: 9, Align: align.Center, Top: 1})),
		)
	}
	return []core.Row{
		right(signatureLine, fontstyle.Normal),
		right(role, fontstyle.Normal),
		right(nonEmpty(name, " "), fontstyle.Bold),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
