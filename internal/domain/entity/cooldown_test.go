package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
)

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func TestCooldownState_ActivoDentroDeLaVentana(t *testing.T) {
	s := entity.NewCooldownState("k", t0)
	w := entity.DefaultCooldownWindow

	for _, elapsed := range []time.Duration{0, time.Millisecond, 30 * time.Minute, w - time.Millisecond} {
		now := t0.Add(elapsed)
		assert.True(t, s.Active(now, w), "elapsed=%s", elapsed)
		assert.Equal(t, w-elapsed, s.Remaining(now, w), "elapsed=%s", elapsed)
		assert.Equal(t, t0.Add(w), s.ExpiresAt(now, w))
	}
}

func TestCooldownState_ExpiraAlCumplirLaVentana(t *testing.T) {
	s := entity.NewCooldownState("k", t0)
	w := entity.DefaultCooldownWindow

	for _, elapsed := range []time.Duration{w, w + time.Millisecond, 48 * time.Hour} {
		now := t0.Add(elapsed)
		assert.False(t, s.Active(now, w), "elapsed=%s", elapsed)
		assert.Zero(t, s.Remaining(now, w))
	}
}

func TestCooldownState_DisparoFuturoNoExcedeLaVentana(t *testing.T) {
	s := entity.NewCooldownState("k", t0.Add(10*time.Minute))
	w := entity.DefaultCooldownWindow

	assert.True(t, s.Active(t0, w))
	assert.Equal(t, w, s.Remaining(t0, w))
}

func TestCooldownState_TruncaAMilisegundos(t *testing.T) {
	s := entity.NewCooldownState("k", t0.Add(1500*time.Microsecond))
	assert.Equal(t, t0.UnixMilli()+1, s.TriggeredAtMillis())
	assert.Equal(t, t0.Add(time.Millisecond), s.TriggeredAt)
}

func TestDashboardData_DecodificaFormatosMixtos(t *testing.T) {
	raw := `{
		"hourlySales": [1, "2", 3.5],
		"mostSoldItems": [{"item_id": 7, "item_name": "Bread", "soldCount": "12"}],
		"discountedHours": [18, null],
		"discountedItems": [{"item_id": "a-1", "item_name": "Milk", "soldCount": 3, "discount_precentage": "12.5"}]
	}`
	var d entity.DashboardData
	require.NoError(t, json.Unmarshal([]byte(raw), &d))

	series := d.HourlySeries()
	require.Len(t, series, entity.HoursPerDay)
	assert.True(t, series[1].Equal(decimal.NewFromInt(2)))
	assert.True(t, series[2].Equal(decimal.RequireFromString("3.5")))
	assert.True(t, series[23].IsZero())

	assert.Equal(t, entity.ItemID("7"), d.MostSoldItems[0].ItemID)
	assert.Equal(t, entity.ItemID("a-1"), d.DiscountedItems[0].ItemID)
	require.Len(t, d.DiscountedHours, 2)
	assert.Equal(t, 18, *d.DiscountedHours[0])
	assert.Nil(t, d.DiscountedHours[1])
}
