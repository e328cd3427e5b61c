package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
)

// CooldownRepository define el puerto de persistencia del cooldown (DIP).
// Cada clave es una escritura atómica de un solo valor: la última escritura gana.
type CooldownRepository interface {
	// Get devuelve (nil, nil) si la clave no existe.
	Get(ctx context.Context, key string) (*entity.CooldownState, error)
	// Save sobrescribe la clave. ttl es la ventana completa; los stores que soportan
	// expiración nativa (Redis) la usan como red de seguridad.
	Save(ctx context.Context, state *entity.CooldownState, ttl time.Duration) error
	// Claim guarda el estado solo si la clave no tiene un cooldown vigente respecto
	// de state.TriggeredAt, en una única operación del store. Devuelve false si ya
	// había uno vigente.
	Claim(ctx context.Context, state *entity.CooldownState, ttl time.Duration) (bool, error)
	// Delete es idempotente: borrar una clave inexistente no es error.
	Delete(ctx context.Context, key string) error
}
