package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "http://localhost:3001", cfg.SalesAPI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.SalesAPI.Timeout)
	assert.Equal(t, CooldownStorePostgres, cfg.Cooldown.Store)
	assert.Equal(t, time.Hour, cfg.Cooldown.Duration)
	assert.Equal(t, "discountButtonDisabled", cfg.Cooldown.KeyPrefix)
	assert.Equal(t, "Sales Report", cfg.Report.Title)
	assert.Equal(t, "/products", cfg.UI.ProductsPath)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.TLS)
}

func TestFromViper_EnvStringsSeConviertenANumeros(t *testing.T) {
	v := viper.New()
	v.Set("COOLDOWN_DURATION_MINUTES", "30")
	v.Set("HTTP_PORT", "9090")
	v.Set("COOLDOWN_STORE", "Redis")
	v.Set("SALES_API_URL", "http://sales:3001/")
	v.Set("REDIS_TLS", "true")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.True(t, cfg.Redis.TLS)
	assert.Equal(t, 30*time.Minute, cfg.Cooldown.Duration)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, CooldownStoreRedis, cfg.Cooldown.Store)
	assert.Equal(t, "http://sales:3001", cfg.SalesAPI.BaseURL, "se recorta la barra final")
}

func TestFromViper_StoreDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("COOLDOWN_STORE", "localstorage")

	_, err := fromViper(v)
	assert.ErrorContains(t, err, "COOLDOWN_STORE")
}

func TestFromViper_DuracionInvalida(t *testing.T) {
	v := viper.New()
	v.Set("COOLDOWN_DURATION_MINUTES", "0")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "admin", Password: "p@ss", DBName: "pos", SSLMode: "disable"}
	assert.Equal(t, "postgres://admin:p%40ss@db:5432/pos?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
