package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/repository"
)

var _ repository.CooldownRepository = (*CooldownRepo)(nil)

// CooldownRepo persiste el cooldown en la tabla discount_cooldowns.
// Get no mira expires_at: la decisión la toma el controlador. Claim sí lo usa como
// condición del upsert.
type CooldownRepo struct {
	q Querier
}

// NewCooldownRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCooldownRepository(q Querier) *CooldownRepo {
	return &CooldownRepo{q: q}
}

func (r *CooldownRepo) Get(ctx context.Context, key string) (*entity.CooldownState, error) {
	const query = `SELECT triggered_at FROM discount_cooldowns WHERE cooldown_key = $1`
	var triggeredAt time.Time
	err := r.q.QueryRow(ctx, query, key).Scan(&triggeredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cooldown.Get: %w", err)
	}
	return &entity.CooldownState{Key: key, TriggeredAt: triggeredAt.UTC()}, nil
}

func (r *CooldownRepo) Save(ctx context.Context, state *entity.CooldownState, ttl time.Duration) error {
	const query = `
		INSERT INTO discount_cooldowns (cooldown_key, triggered_at, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (cooldown_key)
		DO UPDATE SET triggered_at = EXCLUDED.triggered_at, expires_at = EXCLUDED.expires_at`
	if _, err := r.q.Exec(ctx, query, state.Key, state.TriggeredAt, state.TriggeredAt.Add(ttl)); err != nil {
		return fmt.Errorf("cooldown.Save: %w", err)
	}
	return nil
}

func (r *CooldownRepo) Claim(ctx context.Context, state *entity.CooldownState, ttl time.Duration) (bool, error) {
	const query = `
		INSERT INTO discount_cooldowns (cooldown_key, triggered_at, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (cooldown_key)
		DO UPDATE SET triggered_at = EXCLUDED.triggered_at, expires_at = EXCLUDED.expires_at
		WHERE discount_cooldowns.expires_at <= EXCLUDED.triggered_at`
	tag, err := r.q.Exec(ctx, query, state.Key, state.TriggeredAt, state.TriggeredAt.Add(ttl))
	if err != nil {
		return false, fmt.Errorf("cooldown.Claim: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CooldownRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM discount_cooldowns WHERE cooldown_key = $1`, key); err != nil {
		return fmt.Errorf("cooldown.Delete: %w", err)
	}
	return nil
}
