package discount_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/analytics"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/cooldown"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/discount"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/dto"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/ports"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
	"github.com/jhoicas/pos-discount-dashboard/internal/infrastructure/memory"
)

const (
	companyID = "c1"
	userID    = "u1"
)

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// fakeBackend registra las llamadas y observa el cooldown en el momento de aplicar.
type fakeBackend struct {
	items     []entity.AffectedItem
	applyErr  error
	fetches   int
	applied   []string
	onApply   func()
	dashboard *entity.DashboardData
}

func (f *fakeBackend) FetchDashboard(context.Context) (*entity.DashboardData, error) {
	f.fetches++
	if f.dashboard == nil {
		return &entity.DashboardData{}, nil
	}
	return f.dashboard, nil
}

func (f *fakeBackend) ApplyDiscount(_ context.Context, discountType string) ([]entity.AffectedItem, error) {
	f.applied = append(f.applied, discountType)
	if f.onApply != nil {
		f.onApply()
	}
	return f.items, f.applyErr
}

type fakePublisher struct{ events []ports.DiscountAppliedEvent }

func (p *fakePublisher) PublishDiscountApplied(_ context.Context, e ports.DiscountAppliedEvent) error {
	p.events = append(p.events, e)
	return nil
}

type fixture struct {
	uc      *discount.ApplyDiscountUseCase
	backend *fakeBackend
	store   *memory.CooldownRepository
	ctrl    *cooldown.Controller
	history *memory.DiscountApplicationRepository
	events  *fakePublisher
}

func newFixture(backend *fakeBackend) *fixture {
	store := memory.NewCooldownRepository()
	ctrl := cooldown.NewController(store, cooldown.Config{Now: func() time.Time { return t0 }}, nil)
	dash := analytics.NewDashboardUseCase(backend, ctrl, analytics.Navigation{})
	history := memory.NewDiscountApplicationRepository()
	events := &fakePublisher{}
	uc := discount.NewApplyDiscountUseCase(backend, ctrl, dash, history, events, nil).
		WithClock(func() time.Time { return t0 })
	return &fixture{uc: uc, backend: backend, store: store, ctrl: ctrl, history: history, events: events}
}

func threeItems() []entity.AffectedItem {
	return []entity.AffectedItem{
		{ItemID: "1", ItemName: "Bread", SoldCount: decimal.NewFromInt(2), DiscountPercentage: decimal.NewFromInt(10)},
		{ItemID: "2", ItemName: "Milk", SoldCount: decimal.NewFromInt(1), DiscountPercentage: decimal.NewFromInt(15)},
		{ItemID: "3", ItemName: "Eggs", SoldCount: decimal.Zero, DiscountPercentage: decimal.NewFromInt(20)},
	}
}

// El cooldown se persiste antes de que la llamada de red responda.
func TestApply_DeshabilitaAntesDeLlamarAlBackend(t *testing.T) {
	backend := &fakeBackend{items: threeItems()}
	f := newFixture(backend)

	var seenDuringCall dto.CooldownStatusDTO
	backend.onApply = func() {
		seenDuringCall, _ = f.ctrl.Status(context.Background(), companyID)
	}

	_, err := f.uc.Apply(context.Background(), companyID, userID, dto.ApplyDiscountRequest{Type: "hour"})
	require.NoError(t, err)

	assert.True(t, seenDuringCall.IsDisabled, "el botón ya debe estar deshabilitado durante la llamada")
	require.NotNil(t, seenDuringCall.TriggeredAt)
	assert.True(t, t0.Equal(*seenDuringCall.TriggeredAt))
}

// Escenario: type "hour", el backend devuelve 3 ítems.
func TestApply_ConItems_MantieneCooldownYRefresca(t *testing.T) {
	f := newFixture(&fakeBackend{items: threeItems()})
	ctx := context.Background()

	res, err := f.uc.Apply(ctx, companyID, userID, dto.ApplyDiscountRequest{Type: "hour"})
	require.NoError(t, err)

	assert.Equal(t, entity.DiscountOutcomeApplied, res.Outcome)
	assert.Equal(t, "Discount applied successfully for hour items.", res.Message)
	assert.True(t, res.Cooldown.IsDisabled)
	assert.Len(t, res.AffectedItems, 3)
	assert.Equal(t, []string{"hour"}, f.backend.applied)

	require.NotNil(t, res.Dashboard, "debe incluir el dashboard refrescado")
	assert.Equal(t, 1, f.backend.fetches)
	assert.True(t, res.Dashboard.Cooldown.IsDisabled)

	st, err := f.ctrl.Status(ctx, companyID)
	require.NoError(t, err)
	assert.True(t, st.IsDisabled, "el cooldown sigue activo")

	require.Len(t, f.events.events, 1)
	assert.Equal(t, "hour", f.events.events[0].DiscountType)
	assert.Len(t, f.events.events[0].AffectedItems, 3)

	hist, err := f.uc.History(ctx, companyID, 10)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.DiscountOutcomeApplied, hist[0].Outcome)
	assert.Len(t, hist[0].AffectedItems, 3)
	assert.True(t, t0.Equal(hist[0].CreatedAt))
}

// Con el cooldown vigente no se llama al backend ni se registra nada.
func TestApply_CooldownVigente_ErrCooldownActive(t *testing.T) {
	f := newFixture(&fakeBackend{items: threeItems()})
	ctx := context.Background()

	_, err := f.uc.Apply(ctx, companyID, userID, dto.ApplyDiscountRequest{Type: "hour"})
	require.NoError(t, err)

	res, err := f.uc.Apply(ctx, companyID, userID, dto.ApplyDiscountRequest{Type: "item"})
	require.ErrorIs(t, err, domain.ErrCooldownActive)
	assert.Nil(t, res)
	assert.ErrorContains(t, err, "3600 s restantes")

	assert.Equal(t, []string{"hour"}, f.backend.applied)
	hist, err := f.uc.History(ctx, companyID, 10)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
	assert.Len(t, f.events.events, 1)
}

// Escenario: type "item", el backend devuelve [].
func TestApply_SinItems_LiberaCooldown(t *testing.T) {
	f := newFixture(&fakeBackend{items: []entity.AffectedItem{}})
	ctx := context.Background()

	res, err := f.uc.Apply(ctx, companyID, userID, dto.ApplyDiscountRequest{Type: "item"})
	require.NoError(t, err)

	assert.Equal(t, entity.DiscountOutcomeNoEligible, res.Outcome)
	assert.Equal(t, "No eligible items available for discount.", res.Message)
	assert.False(t, res.Cooldown.IsDisabled)
	assert.Nil(t, res.Dashboard)
	assert.Zero(t, f.store.Len(), "la clave persistida debe eliminarse")
	assert.Empty(t, f.events.events)
}

// Respuesta ausente (null) equivale a lista vacía.
func TestApply_RespuestaNula_LiberaCooldown(t *testing.T) {
	f := newFixture(&fakeBackend{items: nil})

	res, err := f.uc.Apply(context.Background(), companyID, userID, dto.ApplyDiscountRequest{Type: "item"})
	require.NoError(t, err)

	assert.Equal(t, discount.MsgNoEligibleItems, res.Message)
	assert.Zero(t, f.store.Len())
}

func TestApply_ErrorDelBackend_LiberaCooldownYMuestraDetalle(t *testing.T) {
	f := newFixture(&fakeBackend{applyErr: errors.New("Request failed with status code 500")})
	ctx := context.Background()

	res, err := f.uc.Apply(ctx, companyID, userID, dto.ApplyDiscountRequest{Type: "hour"})
	require.NoError(t, err, "un fallo del backend es un resultado, no un error")

	assert.Equal(t, entity.DiscountOutcomeFailed, res.Outcome)
	assert.Equal(t, "Error applying discount: Request failed with status code 500", res.Message)
	assert.False(t, res.Cooldown.IsDisabled)
	assert.Zero(t, f.store.Len())
	assert.Empty(t, f.events.events)

	hist, err := f.uc.History(ctx, companyID, 10)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.DiscountOutcomeFailed, hist[0].Outcome)
}

// El tipo se reenvía sin validar.
func TestApply_TipoSinValidar(t *testing.T) {
	f := newFixture(&fakeBackend{items: threeItems()})

	_, err := f.uc.Apply(context.Background(), companyID, userID, dto.ApplyDiscountRequest{Type: ""})
	require.NoError(t, err)
	assert.Equal(t, []string{""}, f.backend.applied)
}

type failingGate struct{}

func (failingGate) Claim(context.Context, string) (dto.CooldownStatusDTO, error) {
	return dto.CooldownStatusDTO{}, errors.New("store caído")
}

func (failingGate) Release(context.Context, string) (dto.CooldownStatusDTO, error) {
	return dto.CooldownStatusDTO{}, nil
}

func TestApply_SinCooldownNoLlamaAlBackend(t *testing.T) {
	backend := &fakeBackend{items: threeItems()}
	uc := discount.NewApplyDiscountUseCase(backend, failingGate{}, nil, nil, nil, nil)

	_, err := uc.Apply(context.Background(), companyID, userID, dto.ApplyDiscountRequest{Type: "hour"})
	assert.ErrorContains(t, err, "store caído")
	assert.Empty(t, backend.applied)
}
