// Package discount orquesta "Apply Discount Now": cooldown optimista, llamada al
// backend de ventas y registro del resultado.
package discount

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/dto"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/ports"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/repository"
	"github.com/jhoicas/pos-discount-dashboard/pkg/logger"
)

const (
	applyTimeout = 15 * time.Second
	// los efectos secundarios no dependen del request del operador
	sideEffectTimeout = 5 * time.Second
)

// Mensajes que ve el operador.
const (
	MsgNoEligibleItems = "No eligible items available for discount."
	msgAppliedFmt      = "Discount applied successfully for %s items."
	msgErrorFmt        = "Error applying discount: %s"
)

// CooldownGate es lo que el caso de uso necesita del controlador de cooldown.
type CooldownGate interface {
	Claim(ctx context.Context, companyID string) (dto.CooldownStatusDTO, error)
	Release(ctx context.Context, companyID string) (dto.CooldownStatusDTO, error)
}

// DashboardRefresher vuelve a leer las métricas tras un descuento aplicado.
type DashboardRefresher interface {
	Refresh(ctx context.Context, status dto.CooldownStatusDTO) (*dto.DashboardViewDTO, error)
}

// ApplyDiscountUseCase dispara el descuento.
//
// Orden:
//  1. Claim: deshabilita y persiste el instante (antes de la llamada de red). Si ya
//     había un cooldown vigente devuelve domain.ErrCooldownActive y no sigue.
//  2. ApplyDiscount en el backend.
//  3. Según el resultado: mantener cooldown y refrescar, o liberar el cooldown.
type ApplyDiscountUseCase struct {
	backend   ports.SalesBackend
	cooldown  CooldownGate
	dashboard DashboardRefresher
	history   repository.DiscountApplicationRepository
	events    ports.EventPublisher
	now       func() time.Time
	log       *logger.Logger
}

// NewApplyDiscountUseCase construye el caso de uso. history y events son opcionales.
func NewApplyDiscountUseCase(
	backend ports.SalesBackend,
	cooldown CooldownGate,
	dashboard DashboardRefresher,
	history repository.DiscountApplicationRepository,
	events ports.EventPublisher,
	log *logger.Logger,
) *ApplyDiscountUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ApplyDiscountUseCase{
		backend:   backend,
		cooldown:  cooldown,
		dashboard: dashboard,
		history:   history,
		events:    events,
		now:       time.Now,
		log:       log.Component("discount"),
	}
}

// WithClock reemplaza el reloj usado en auditoría y eventos (tests).
func (uc *ApplyDiscountUseCase) WithClock(now func() time.Time) *ApplyDiscountUseCase {
	uc.now = now
	return uc
}

// Apply ejecuta el flujo completo. Solo devuelve error si no se pudo iniciar el
// cooldown (store caído o domain.ErrCooldownActive); los fallos del backend son un resultado (Outcome = failed) con su mensaje.
func (uc *ApplyDiscountUseCase) Apply(
	ctx context.Context,
	companyID, userID string,
	req dto.ApplyDiscountRequest,
) (*dto.ApplyDiscountResultDTO, error) {
	status, err := uc.cooldown.Claim(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("aplicar descuento: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, applyTimeout)
	items, applyErr := uc.backend.ApplyDiscount(callCtx, req.Type)
	cancel()

	result := &dto.ApplyDiscountResultDTO{AffectedItems: affectedItems(items)}
	app := &entity.DiscountApplication{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		UserID:       userID,
		DiscountType: req.Type,
		CreatedAt:    uc.now().UTC(),
	}

	switch {
	case applyErr != nil:
		result.Outcome = entity.DiscountOutcomeFailed
		result.Message = fmt.Sprintf(msgErrorFmt, applyErr.Error())
		result.Cooldown = uc.release(ctx, companyID)
		uc.log.Warn().Err(applyErr).Str("company_id", companyID).Str("type", req.Type).Msg("backend rechazó el descuento")

	case len(items) == 0:
		result.Outcome = entity.DiscountOutcomeNoEligible
		result.Message = MsgNoEligibleItems
		result.Cooldown = uc.release(ctx, companyID)
		uc.log.Info().Str("company_id", companyID).Str("type", req.Type).Msg("sin ítems elegibles")

	default:
		result.Outcome = entity.DiscountOutcomeApplied
		result.Message = fmt.Sprintf(msgAppliedFmt, req.Type)
		result.Cooldown = status
		uc.log.Info().Str("company_id", companyID).Str("type", req.Type).Int("items", len(items)).Msg("descuento aplicado")

		if uc.dashboard != nil {
			view, err := uc.dashboard.Refresh(ctx, status)
			if err != nil {
				uc.log.Warn().Err(err).Msg("no se pudo refrescar el dashboard")
			} else {
				result.Dashboard = view
			}
		}
	}

	app.Outcome = result.Outcome
	app.Message = result.Message
	app.Items = applicationItems(items)
	uc.record(ctx, app)
	if result.Outcome == entity.DiscountOutcomeApplied {
		uc.publish(ctx, app, result.AffectedItems)
	}
	return result, nil
}

// History últimas aplicaciones de la empresa.
func (uc *ApplyDiscountUseCase) History(ctx context.Context, companyID string, limit int) ([]dto.DiscountApplicationDTO, error) {
	if uc.history == nil {
		return []dto.DiscountApplicationDTO{}, nil
	}
	apps, err := uc.history.ListByCompany(ctx, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("historial de descuentos: %w", err)
	}
	out := make([]dto.DiscountApplicationDTO, 0, len(apps))
	for _, a := range apps {
		items := make([]dto.AffectedItemDTO, 0, len(a.Items))
		for _, it := range a.Items {
			items = append(items, dto.AffectedItemDTO{
				ItemID:             it.ItemID,
				ItemName:           it.ItemName,
				SoldCount:          it.SoldCount,
				DiscountPercentage: it.DiscountPercentage,
			})
		}
		out = append(out, dto.DiscountApplicationDTO{
			ID:            a.ID,
			UserID:        a.UserID,
			DiscountType:  a.DiscountType,
			Outcome:       a.Outcome,
			Message:       a.Message,
			AffectedItems: items,
			CreatedAt:     a.CreatedAt,
		})
	}
	return out, nil
}

// release habilita el botón. Si el store falla el botón queda bloqueado hasta
// que venza la ventana; se registra pero no se oculta el resultado del backend.
func (uc *ApplyDiscountUseCase) release(ctx context.Context, companyID string) dto.CooldownStatusDTO {
	st, err := uc.cooldown.Release(ctx, companyID)
	if err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Msg("no se pudo liberar el cooldown")
	}
	return st
}

func (uc *ApplyDiscountUseCase) record(ctx context.Context, app *entity.DiscountApplication) {
	if uc.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()
	if err := uc.history.Create(ctx, app); err != nil {
		uc.log.Error().Err(err).Str("application_id", app.ID).Msg("no se pudo registrar la aplicación de descuento")
	}
}

func (uc *ApplyDiscountUseCase) publish(ctx context.Context, app *entity.DiscountApplication, items []dto.AffectedItemDTO) {
	if uc.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()
	err := uc.events.PublishDiscountApplied(ctx, ports.DiscountAppliedEvent{
		ApplicationID: app.ID,
		CompanyID:     app.CompanyID,
		UserID:        app.UserID,
		DiscountType:  app.DiscountType,
		AffectedItems: items,
		AppliedAt:     app.CreatedAt,
	})
	if err != nil {
		uc.log.Error().Err(err).Str("application_id", app.ID).Msg("no se pudo publicar discount.applied")
	}
}

func affectedItems(items []entity.AffectedItem) []dto.AffectedItemDTO {
	out := make([]dto.AffectedItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.AffectedItemDTO{
			ItemID:             string(it.ItemID),
			ItemName:           it.ItemName,
			SoldCount:          it.SoldCount,
			DiscountPercentage: it.DiscountPercentage,
		})
	}
	return out
}

func applicationItems(items []entity.AffectedItem) []entity.DiscountApplicationItem {
	out := make([]entity.DiscountApplicationItem, 0, len(items))
	for _, it := range items {
		out = append(out, entity.DiscountApplicationItem{
			ItemID:             string(it.ItemID),
			ItemName:           it.ItemName,
			SoldCount:          it.SoldCount,
			DiscountPercentage: it.DiscountPercentage,
		})
	}
	return out
}
