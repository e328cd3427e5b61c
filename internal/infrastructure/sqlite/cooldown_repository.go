// Package sqlite persiste el cooldown en un archivo local: el equivalente en servidor
// del localStorage del navegador.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/repository"
)

var _ repository.CooldownRepository = (*CooldownRepo)(nil)

const defaultDSN = "file:dashboard.db?_pragma=busy_timeout(5000)"

// Open abre la base y crea la tabla key/value.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	// un solo escritor: evita SQLITE_BUSY entre requests concurrentes
	db.SetMaxOpenConns(1)

	const schema = `CREATE TABLE IF NOT EXISTS kv_store (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return db, nil
}

// CooldownRepo guarda el epoch en milisegundos como texto.
type CooldownRepo struct {
	db *sql.DB
}

// NewCooldownRepository construye el adaptador sobre una base abierta con Open.
func NewCooldownRepository(db *sql.DB) *CooldownRepo {
	return &CooldownRepo{db: db}
}

func (r *CooldownRepo) Get(ctx context.Context, key string) (*entity.CooldownState, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT v FROM kv_store WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite cooldown get: %w", err)
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		_ = r.Delete(ctx, key)
		return nil, nil
	}
	return &entity.CooldownState{Key: key, TriggeredAt: time.UnixMilli(ms).UTC()}, nil
}

func (r *CooldownRepo) Save(ctx context.Context, state *entity.CooldownState, _ time.Duration) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv_store (k, v) VALUES (?, ?)
		 ON CONFLICT(k) DO UPDATE SET v = excluded.v`,
		state.Key, strconv.FormatInt(state.TriggeredAtMillis(), 10),
	)
	if err != nil {
		return fmt.Errorf("sqlite cooldown set: %w", err)
	}
	return nil
}

// Claim: un valor no numérico se castea a 0 y cuenta como vencido.
func (r *CooldownRepo) Claim(ctx context.Context, state *entity.CooldownState, ttl time.Duration) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO kv_store (k, v) VALUES (?, ?)
		 ON CONFLICT(k) DO UPDATE SET v = excluded.v
		 WHERE CAST(kv_store.v AS INTEGER) + ? <= CAST(excluded.v AS INTEGER)`,
		state.Key, strconv.FormatInt(state.TriggeredAtMillis(), 10), ttl.Milliseconds(),
	)
	if err != nil {
		return false, fmt.Errorf("sqlite cooldown claim: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite cooldown claim: %w", err)
	}
	return n > 0, nil
}

func (r *CooldownRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE k = ?`, key); err != nil {
		return fmt.Errorf("sqlite cooldown del: %w", err)
	}
	return nil
}
