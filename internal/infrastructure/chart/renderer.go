// Package chart dibuja los gráficos del dashboard como PNG para el reporte y
// para los endpoints de imagen.
package chart

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/dto"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/ports"
)

var _ ports.ChartRenderer = (*Renderer)(nil)

// Colores equivalentes a los del dashboard web.
var (
	hourlyStroke = drawing.Color{R: 75, G: 192, B: 192, A: 255}
	hourlyFill   = drawing.Color{R: 75, G: 192, B: 192, A: 51}
	itemStroke   = drawing.Color{R: 153, G: 102, B: 255, A: 255}
	itemFill     = drawing.Color{R: 153, G: 102, B: 255, A: 153}
)

const (
	defaultWidth  = 1024
	defaultHeight = 400
	maxYTicks     = 10
)

// Renderer implementa ports.ChartRenderer con go-chart.
type Renderer struct {
	width  int
	height int
}

// NewRenderer construye el renderer con el tamaño por defecto.
func NewRenderer() *Renderer {
	return &Renderer{width: defaultWidth, height: defaultHeight}
}

// RenderCharts dibuja ambos gráficos. Sin ítems, ItemSales queda vacío.
func (r *Renderer) RenderCharts(ctx context.Context, view *dto.DashboardViewDTO) (*ports.ChartImages, error) {
	hourly, err := r.HourlySalesPNG(view.HourlySalesChart)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := r.ItemSalesPNG(view.ItemSalesChart)
	if err != nil {
		return nil, err
	}
	return &ports.ChartImages{HourlySales: hourly, ItemSales: items}, nil
}

// HourlySalesPNG gráfico de líneas "Sales per Hour".
func (r *Renderer) HourlySalesPNG(c dto.ChartDTO) ([]byte, error) {
	xs := make([]float64, len(c.Data))
	ys := make([]float64, len(c.Data))
	maxY := 0.0
	for i, v := range c.Data {
		xs[i] = float64(i)
		ys[i] = v.InexactFloat64()
		maxY = math.Max(maxY, ys[i])
	}
	if len(xs) < 2 {
		return nil, nil
	}

	xTicks := make([]gochart.Tick, 0, len(c.Labels))
	for i := range c.Labels {
		xTicks = append(xTicks, gochart.Tick{Value: float64(i), Label: strconv.Itoa(i)})
	}

	graph := gochart.Chart{
		Title:  c.DatasetLabel,
		Width:  r.width,
		Height: r.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: gochart.XAxis{Ticks: xTicks},
		YAxis: yAxis(maxY),
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    c.DatasetLabel,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: hourlyStroke,
					FillColor:   hourlyFill,
					StrokeWidth: 2,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart: ventas por hora: %w", err)
	}
	return buf.Bytes(), nil
}

// ItemSalesPNG gráfico de barras "Sales per Item". Devuelve nil si no hay ítems.
func (r *Renderer) ItemSalesPNG(c dto.ChartDTO) ([]byte, error) {
	if len(c.Data) == 0 {
		return nil, nil
	}
	bars := make([]gochart.Value, 0, len(c.Data))
	maxY := 0.0
	for i, v := range c.Data {
		label := ""
		if i < len(c.Labels) {
			label = c.Labels[i]
		}
		f := v.InexactFloat64()
		maxY = math.Max(maxY, f)
		bars = append(bars, gochart.Value{
			Value: f,
			Label: label,
			Style: gochart.Style{FillColor: itemFill, StrokeColor: itemStroke, StrokeWidth: 1},
		})
	}

	bw := barWidth(r.width, len(bars))
	graph := gochart.BarChart{
		Title:  c.DatasetLabel,
		Width:  r.width,
		Height: r.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		BarWidth:   bw,
		BarSpacing: bw,
		YAxis:      yAxis(maxY),
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart: ventas por ítem: %w", err)
	}
	return buf.Bytes(), nil
}

// yAxis eje desde cero con ticks enteros; el rango nunca es nulo.
func yAxis(maxY float64) gochart.YAxis {
	top := math.Max(1, math.Ceil(maxY))
	step := math.Max(1, math.Ceil(top/maxYTicks))
	top = math.Ceil(top/step) * step

	ticks := make([]gochart.Tick, 0, int(top/step)+1)
	for v := 0.0; v <= top; v += step {
		ticks = append(ticks, gochart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', 0, 64)})
	}
	return gochart.YAxis{
		Range: &gochart.ContinuousRange{Min: 0, Max: top},
		Ticks: ticks,
	}
}

func barWidth(width, n int) int {
	w := (width - 100) / (n * 2)
	switch {
	case w > 80:
		return 80
	case w < 8:
		return 8
	}
	return w
}
