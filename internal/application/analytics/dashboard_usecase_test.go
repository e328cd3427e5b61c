package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/analytics"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/dto"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
)

type stubBackend struct {
	data *entity.DashboardData
	err  error
}

func (s stubBackend) FetchDashboard(context.Context) (*entity.DashboardData, error) {
	return s.data, s.err
}

func (s stubBackend) ApplyDiscount(context.Context, string) ([]entity.AffectedItem, error) {
	return nil, nil
}

type stubCooldown struct {
	status dto.CooldownStatusDTO
	err    error
}

func (s stubCooldown) Status(context.Context, string) (dto.CooldownStatusDTO, error) {
	return s.status, s.err
}

func hour(h int) *int { return &h }

func enabled() dto.CooldownStatusDTO {
	return dto.CooldownStatusDTO{ButtonLabel: dto.LabelApplyDiscountNow}
}

func TestBuildView_SinDatos_TextosPorDefecto(t *testing.T) {
	uc := analytics.NewDashboardUseCase(stubBackend{}, stubCooldown{}, analytics.Navigation{})

	view := uc.BuildView(&entity.DashboardData{}, enabled())

	assert.Equal(t, dto.TextDataNotAvailable, view.MostSalesHour)
	assert.Equal(t, dto.TextDataNotAvailable, view.LeastSalesHour)
	assert.Equal(t, dto.TextNoMostSoldItems, view.MostSoldItemsText)
	assert.Equal(t, dto.TextNoLeastSoldItems, view.LeastSoldItemsText)
	assert.Equal(t, dto.DiscountedHoursDTO{Most: dto.TextDataNotAvailable, Least: dto.TextDataNotAvailable}, view.DiscountedHours)
	assert.Empty(t, view.DiscountedItems)
	assert.Equal(t, dto.TextNoDiscountedItems, view.DiscountedItemsEmptyText)

	require.Len(t, view.HourlySalesChart.Labels, entity.HoursPerDay)
	assert.Equal(t, "Hour 0", view.HourlySalesChart.Labels[0])
	assert.Equal(t, "Hour 23", view.HourlySalesChart.Labels[23])
	require.Len(t, view.HourlySalesChart.Data, entity.HoursPerDay)
	assert.Empty(t, view.ItemSalesChart.Labels)
}

func TestBuildView_HorasConDescuento(t *testing.T) {
	uc := analytics.NewDashboardUseCase(stubBackend{}, stubCooldown{}, analytics.Navigation{})

	cases := []struct {
		name  string
		hours []*int
		want  dto.DiscountedHoursDTO
	}{
		{"ambas", []*int{hour(18), hour(3)}, dto.DiscountedHoursDTO{Most: "18:00", Least: "03:00"}},
		{"hora cero se muestra", []*int{hour(0), hour(23)}, dto.DiscountedHoursDTO{Most: "00:00", Least: "23:00"}},
		{"null de un lado", []*int{hour(9), nil}, dto.DiscountedHoursDTO{Most: "09:00", Least: dto.TextDataNotAvailable}},
		{"una sola entrada", []*int{hour(9)}, dto.DiscountedHoursDTO{Most: dto.TextDataNotAvailable, Least: dto.TextDataNotAvailable}},
		{"fuera de rango", []*int{hour(24), hour(-1)}, dto.DiscountedHoursDTO{Most: dto.TextDataNotAvailable, Least: dto.TextDataNotAvailable}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := uc.BuildView(&entity.DashboardData{DiscountedHours: tc.hours}, enabled())
			assert.Equal(t, tc.want, view.DiscountedHours)
		})
	}
}

func TestBuildView_RankingsYDescuentos(t *testing.T) {
	uc := analytics.NewDashboardUseCase(stubBackend{}, stubCooldown{}, analytics.Navigation{})
	data := &entity.DashboardData{
		MostSalesHour: "18:00",
		MostSoldItems: []entity.SoldItem{
			{ItemID: "1", ItemName: "Bread", SoldCount: decimal.NewFromInt(12)},
			{ItemID: "2", ItemName: "Milk", SoldCount: decimal.NewFromInt(9)},
		},
		DiscountedItems: []entity.DiscountedItem{
			{ItemID: "3", ItemName: "Eggs", SoldCount: decimal.NewFromInt(1), DiscountPercentage: decimal.NewFromInt(15)},
		},
	}

	view := uc.BuildView(data, enabled())

	assert.Equal(t, "18:00", view.MostSalesHour)
	assert.Equal(t, "Bread (12 sales), Milk (9 sales)", view.MostSoldItemsText)
	require.Len(t, view.DiscountedItems, 1)
	assert.Equal(t, "15%", view.DiscountedItems[0].DiscountDisplay)
	assert.Empty(t, view.DiscountedItemsEmptyText)
}

func TestBuildView_AccionesSegunCooldown(t *testing.T) {
	uc := analytics.NewDashboardUseCase(stubBackend{}, stubCooldown{}, analytics.Navigation{ProductsPath: "/productos"})

	disabled := dto.CooldownStatusDTO{IsDisabled: true, ButtonLabel: dto.LabelDiscountActiveForAHour, RemainingSeconds: 60}
	got := uc.BuildView(&entity.DashboardData{}, disabled).Actions

	want := []dto.ActionDTO{
		{Name: "apply_discount", Label: dto.LabelDiscountActiveForAHour, Method: "POST", Href: "/api/dashboard/discount", Enabled: false},
		{Name: "manage_products", Label: "Manage Products", Method: "GET", Href: "/productos", Enabled: true},
		{Name: "generate_report", Label: "Generate Report", Method: "GET", Href: "/api/dashboard/report", Enabled: true},
		{Name: "ai_assistant", Label: "Get AI Assistant for Your Business", Method: "GET", Href: "/aibot", Enabled: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("acciones (-want +got):\n%s", diff)
	}
}

func TestBuildView_GraficoPorItem(t *testing.T) {
	uc := analytics.NewDashboardUseCase(stubBackend{}, stubCooldown{}, analytics.Navigation{})
	data := &entity.DashboardData{ItemSales: []entity.ItemSales{
		{ItemName: "Bread", SoldCount: decimal.NewFromInt(4)},
		{ItemName: "Milk", SoldCount: decimal.NewFromInt(2)},
	}}

	chart := uc.BuildView(data, enabled()).ItemSalesChart

	assert.Equal(t, "bar", chart.Type)
	assert.Equal(t, "Sales per Item", chart.DatasetLabel)
	if diff := cmp.Diff([]string{"Bread", "Milk"}, chart.Labels); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	require.Len(t, chart.Data, 2)
	assert.True(t, chart.Data[0].Equal(decimal.NewFromInt(4)))
	assert.Equal(t, dto.ChartAxisDTO{BeginAtZero: true, Min: 0, StepSize: 1}, chart.YAxis)
}

func TestGetDashboard_CombinaMetricasYCooldown(t *testing.T) {
	status := dto.CooldownStatusDTO{IsDisabled: true, ButtonLabel: dto.LabelDiscountActiveForAHour}
	uc := analytics.NewDashboardUseCase(
		stubBackend{data: &entity.DashboardData{LeastSalesHour: "03:00"}},
		stubCooldown{status: status},
		analytics.Navigation{},
	)

	view, err := uc.GetDashboard(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "03:00", view.LeastSalesHour)
	assert.True(t, view.Cooldown.IsDisabled)
	assert.False(t, view.Actions[0].Enabled)
}

func TestGetDashboard_RespuestaNulaEsVacia(t *testing.T) {
	uc := analytics.NewDashboardUseCase(stubBackend{}, stubCooldown{status: enabled()}, analytics.Navigation{})

	view, err := uc.GetDashboard(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, dto.TextDataNotAvailable, view.MostSalesHour)
}

func TestGetDashboard_ErrorDelBackend(t *testing.T) {
	uc := analytics.NewDashboardUseCase(stubBackend{err: errors.New("timeout")}, stubCooldown{}, analytics.Navigation{})

	_, err := uc.GetDashboard(context.Background(), "c1")
	assert.ErrorContains(t, err, "timeout")
}

func TestGetDashboard_ErrorDelCooldown(t *testing.T) {
	uc := analytics.NewDashboardUseCase(stubBackend{data: &entity.DashboardData{}}, stubCooldown{err: errors.New("redis")}, analytics.Navigation{})

	_, err := uc.GetDashboard(context.Background(), "c1")
	assert.ErrorContains(t, err, "redis")
}
