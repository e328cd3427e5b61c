// Package cooldown controla el bloqueo de una hora del botón "Apply Discount Now".
//
// El cooldown es un valor con instante de expiración; cada lectura compara el reloj
// con esa expiración y limpia la clave persistida si ya venció. No hay temporizadores
// que cancelar ni que puedan quedar colgados.
package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/dto"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/repository"
	"github.com/jhoicas/pos-discount-dashboard/pkg/logger"
)

// Config parámetros del controlador.
type Config struct {
	Window    time.Duration // 0 = entity.DefaultCooldownWindow
	KeyPrefix string
	Now       func() time.Time // nil = time.Now
}

// Controller lee, crea y limpia el cooldown de cada empresa.
type Controller struct {
	repo      repository.CooldownRepository
	window    time.Duration
	keyPrefix string
	now       func() time.Time
	log       *logger.Logger
}

// NewController construye el controlador.
func NewController(repo repository.CooldownRepository, cfg Config, log *logger.Logger) *Controller {
	if cfg.Window <= 0 {
		cfg.Window = entity.DefaultCooldownWindow
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "discountButtonDisabled"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		repo:      repo,
		window:    cfg.Window,
		keyPrefix: cfg.KeyPrefix,
		now:       cfg.Now,
		log:       log.Component("cooldown"),
	}
}

// Window duración configurada.
func (c *Controller) Window() time.Duration { return c.window }

// Key clave persistida para la empresa.
func (c *Controller) Key(companyID string) string {
	if companyID == "" {
		return c.keyPrefix
	}
	return c.keyPrefix + ":" + companyID
}

// Rehydrate lee el estado persistido y decide si el botón está deshabilitado:
//   - sin clave → habilitado;
//   - elapsed >= ventana → habilitado y se borra la clave;
//   - si no → deshabilitado hasta TriggeredAt + ventana.
func (c *Controller) Rehydrate(ctx context.Context, companyID string) (dto.CooldownStatusDTO, error) {
	key := c.Key(companyID)
	state, err := c.repo.Get(ctx, key)
	if err != nil {
		return enabledStatus(), fmt.Errorf("cooldown: leer %s: %w", key, err)
	}
	now := c.now()
	if state == nil {
		return enabledStatus(), nil
	}
	if !state.Active(now, c.window) {
		if err := c.repo.Delete(ctx, key); err != nil {
			return enabledStatus(), fmt.Errorf("cooldown: limpiar %s: %w", key, err)
		}
		c.log.Debug().Str("key", key).Msg("cooldown vencido, clave eliminada")
		return enabledStatus(), nil
	}
	return c.status(state, now), nil
}

// Status es Rehydrate: el estado es función pura del reloj y lo persistido.
func (c *Controller) Status(ctx context.Context, companyID string) (dto.CooldownStatusDTO, error) {
	return c.Rehydrate(ctx, companyID)
}

// Begin deshabilita el botón y persiste el instante actual. No revisa si ya había
// un cooldown activo: la última escritura gana.
func (c *Controller) Begin(ctx context.Context, companyID string) (dto.CooldownStatusDTO, error) {
	now := c.now()
	state := entity.NewCooldownState(c.Key(companyID), now)
	if err := c.repo.Save(ctx, state, c.window); err != nil {
		return enabledStatus(), fmt.Errorf("cooldown: guardar %s: %w", state.Key, err)
	}
	c.log.Info().Str("key", state.Key).Int64("triggered_at", state.TriggeredAtMillis()).Msg("cooldown iniciado")
	return c.status(state, now), nil
}

// Claim es Begin condicionado: solo deshabilita si no hay un cooldown vigente, y la
// comprobación y la escritura son una sola operación del store. Con uno vigente
// devuelve su estado junto con domain.ErrCooldownActive.
func (c *Controller) Claim(ctx context.Context, companyID string) (dto.CooldownStatusDTO, error) {
	now := c.now()
	state := entity.NewCooldownState(c.Key(companyID), now)
	ok, err := c.repo.Claim(ctx, state, c.window)
	if err != nil {
		return enabledStatus(), fmt.Errorf("cooldown: reservar %s: %w", state.Key, err)
	}
	if !ok {
		st, err := c.Rehydrate(ctx, companyID)
		if err != nil {
			return st, err
		}
		return st, fmt.Errorf("%w: %d s restantes", domain.ErrCooldownActive, st.RemainingSeconds)
	}
	c.log.Info().Str("key", state.Key).Int64("triggered_at", state.TriggeredAtMillis()).Msg("cooldown iniciado")
	return c.status(state, now), nil
}

// Release habilita el botón y borra la clave. Es idempotente.
func (c *Controller) Release(ctx context.Context, companyID string) (dto.CooldownStatusDTO, error) {
	key := c.Key(companyID)
	if err := c.repo.Delete(ctx, key); err != nil {
		return enabledStatus(), fmt.Errorf("cooldown: limpiar %s: %w", key, err)
	}
	c.log.Info().Str("key", key).Msg("cooldown liberado")
	return enabledStatus(), nil
}

func (c *Controller) status(state *entity.CooldownState, now time.Time) dto.CooldownStatusDTO {
	triggered := state.TriggeredAt
	expires := state.ExpiresAt(now, c.window)
	remaining := state.Remaining(now, c.window)
	return dto.CooldownStatusDTO{
		IsDisabled:       true,
		ButtonLabel:      dto.LabelDiscountActiveForAHour,
		TriggeredAt:      &triggered,
		ExpiresAt:        &expires,
		RemainingSeconds: int64((remaining + time.Second - 1) / time.Second),
	}
}

func enabledStatus() dto.CooldownStatusDTO {
	return dto.CooldownStatusDTO{IsDisabled: false, ButtonLabel: dto.LabelApplyDiscountNow}
}
