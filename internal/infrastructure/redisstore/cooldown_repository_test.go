package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
	"github.com/jhoicas/pos-discount-dashboard/internal/infrastructure/redisstore"
	"github.com/jhoicas/pos-discount-dashboard/pkg/config"
)

const key = "discountButtonDisabled:c1"

var triggered = time.Date(2026, 10, 19, 9, 0, 0, 250_000_000, time.UTC)

func newRepo(t *testing.T) (*redisstore.CooldownRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := redisstore.NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return redisstore.NewCooldownRepository(rdb), mr
}

func TestNewClient_SinServidor(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := redisstore.NewClient(context.Background(), config.RedisConfig{Addr: addr})
	assert.ErrorContains(t, err, "redis ping")
}

func TestCooldownRepo_GuardaConTTLYBorra(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t)

	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Save(ctx, entity.NewCooldownState(key, triggered), time.Hour))

	raw, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "1792400400250", raw, "epoch en milisegundos")
	assert.Equal(t, time.Hour, mr.TTL(key))

	got, err = repo.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, triggered.Equal(got.TriggeredAt))
	assert.Equal(t, key, got.Key)

	require.NoError(t, repo.Delete(ctx, key))
	require.NoError(t, repo.Delete(ctx, key), "borrar dos veces no es error")
	assert.False(t, mr.Exists(key))
}

func TestCooldownRepo_ValorCorruptoEsAusente(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t)
	require.NoError(t, mr.Set(key, "not-a-number"))

	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists(key), "el valor corrupto se limpia")
}

func TestCooldownRepo_ExpiraConLaVentana(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t)
	require.NoError(t, repo.Save(ctx, entity.NewCooldownState(key, triggered), time.Hour))

	mr.FastForward(59 * time.Minute)
	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.NotNil(t, got)

	mr.FastForward(time.Minute)
	got, err = repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCooldownRepo_Claim(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t)

	ok, err := repo.Claim(ctx, entity.NewCooldownState(key, triggered), time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Hour, mr.TTL(key))

	ok, err = repo.Claim(ctx, entity.NewCooldownState(key, triggered.Add(time.Minute)), time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
	got, _ := repo.Get(ctx, key)
	assert.True(t, triggered.Equal(got.TriggeredAt), "el rechazo no reescribe el instante")

	mr.FastForward(time.Hour)
	ok, err = repo.Claim(ctx, entity.NewCooldownState(key, triggered.Add(time.Hour)), time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCooldownRepo_ClaimSobreValorCorruptoOSinTTL(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupto", func(t *testing.T) {
		repo, mr := newRepo(t)
		require.NoError(t, mr.Set(key, "garbage"))

		ok, err := repo.Claim(ctx, entity.NewCooldownState(key, triggered), time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("vencido sin TTL", func(t *testing.T) {
		repo, mr := newRepo(t)
		old := entity.NewCooldownState(key, triggered.Add(-2*time.Hour))
		require.NoError(t, mr.Set(key, "1792393200250"))
		require.Equal(t, old.TriggeredAtMillis(), int64(1792393200250))

		ok, err := repo.Claim(ctx, entity.NewCooldownState(key, triggered), time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, time.Hour, mr.TTL(key))
	})
}
