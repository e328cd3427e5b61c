package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pos-discount-dashboard/pkg/config"
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Registrar codec para NUMERIC/DECIMAL -> shopspring/decimal (todas las conexiones del pool).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// EnsureSchema crea las tablas del dashboard si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS discount_cooldowns (
			cooldown_key TEXT PRIMARY KEY,
			triggered_at TIMESTAMPTZ NOT NULL,
			expires_at   TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS discount_applications (
			id            UUID PRIMARY KEY,
			company_id    TEXT NOT NULL,
			user_id       TEXT NOT NULL,
			discount_type TEXT NOT NULL,
			outcome       TEXT NOT NULL,
			message       TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_discount_applications_company
			ON discount_applications (company_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS discount_application_items (
			application_id      UUID NOT NULL REFERENCES discount_applications(id) ON DELETE CASCADE,
			item_id             TEXT NOT NULL,
			item_name           TEXT NOT NULL,
			sold_count          NUMERIC(14,2) NOT NULL DEFAULT 0,
			discount_percentage NUMERIC(7,2)  NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range stmts {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
