// Package redisstore persiste el cooldown en Redis. La clave expira sola al cumplirse
// la ventana (TTL), que hace de red de seguridad si nadie la borra.
package redisstore

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/repository"
	"github.com/jhoicas/pos-discount-dashboard/pkg/config"
)

var _ repository.CooldownRepository = (*CooldownRepo)(nil)

// NewClient crea el cliente y hace ping con timeout corto.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// CooldownRepo guarda el epoch en milisegundos como string, igual que el localStorage del frontend.
type CooldownRepo struct {
	rdb redis.Cmdable
}

// NewCooldownRepository construye el adaptador.
func NewCooldownRepository(rdb redis.Cmdable) *CooldownRepo {
	return &CooldownRepo{rdb: rdb}
}

func (r *CooldownRepo) Get(ctx context.Context, key string) (*entity.CooldownState, error) {
	val, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis cooldown get: %w", err)
	}
	ms, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// valor corrupto: se trata como ausente y se limpia
		_ = r.rdb.Del(ctx, key).Err()
		return nil, nil
	}
	return &entity.CooldownState{Key: key, TriggeredAt: time.UnixMilli(ms).UTC()}, nil
}

func (r *CooldownRepo) Save(ctx context.Context, state *entity.CooldownState, ttl time.Duration) error {
	val := strconv.FormatInt(state.TriggeredAtMillis(), 10)
	if err := r.rdb.Set(ctx, state.Key, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis cooldown set: %w", err)
	}
	return nil
}

// Claim usa SET NX PX. Si la clave existe pero está corrupta o vencida (escrita sin
// TTL) se borra y se reintenta una vez.
func (r *CooldownRepo) Claim(ctx context.Context, state *entity.CooldownState, ttl time.Duration) (bool, error) {
	val := strconv.FormatInt(state.TriggeredAtMillis(), 10)
	ok, err := r.rdb.SetNX(ctx, state.Key, val, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis cooldown setnx: %w", err)
	}
	if ok {
		return true, nil
	}
	prev, err := r.Get(ctx, state.Key)
	if err != nil {
		return false, err
	}
	if prev != nil {
		if prev.Active(state.TriggeredAt, ttl) {
			return false, nil
		}
		if err := r.Delete(ctx, state.Key); err != nil {
			return false, err
		}
	}
	ok, err = r.rdb.SetNX(ctx, state.Key, val, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis cooldown setnx: %w", err)
	}
	return ok, nil
}

func (r *CooldownRepo) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis cooldown del: %w", err)
	}
	return nil
}
