// Package memory implementa los repositorios en memoria del proceso.
// Se usa con COOLDOWN_STORE=memory (desarrollo) y en los tests de la capa de aplicación.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/repository"
)

var _ repository.CooldownRepository = (*CooldownRepository)(nil)

// CooldownRepository guarda el epoch en milisegundos por clave, igual que los stores persistentes.
type CooldownRepository struct {
	mu     sync.RWMutex
	values map[string]int64
}

// NewCooldownRepository construye el repositorio vacío.
func NewCooldownRepository() *CooldownRepository {
	return &CooldownRepository{values: make(map[string]int64)}
}

func (r *CooldownRepository) Get(_ context.Context, key string) (*entity.CooldownState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ms, ok := r.values[key]
	if !ok {
		return nil, nil
	}
	return &entity.CooldownState{Key: key, TriggeredAt: time.UnixMilli(ms).UTC()}, nil
}

func (r *CooldownRepository) Save(_ context.Context, state *entity.CooldownState, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[state.Key] = state.TriggeredAtMillis()
	return nil
}

func (r *CooldownRepository) Claim(_ context.Context, state *entity.CooldownState, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ms, ok := r.values[state.Key]; ok {
		prev := entity.CooldownState{Key: state.Key, TriggeredAt: time.UnixMilli(ms)}
		if prev.Active(state.TriggeredAt, ttl) {
			return false, nil
		}
	}
	r.values[state.Key] = state.TriggeredAtMillis()
	return true, nil
}

func (r *CooldownRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}

// Len cantidad de claves guardadas.
func (r *CooldownRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}
