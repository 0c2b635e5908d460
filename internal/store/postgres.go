package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"headliner/internal/game"
)

// PGStore persists snapshots to Postgres for server deployments. The
// previous payload is kept in a backup column and serves the same fallback
// role as the file store's .bak.
type PGStore struct {
	pool *pgxpool.Pool
	slot string
	log  *slog.Logger
}

func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 10 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

func NewPGStore(ctx context.Context, pool *pgxpool.Pool, slot string, logger *slog.Logger) (*PGStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if slot == "" {
		slot = "default"
	}
	s := &PGStore{pool: pool, slot: slot, log: logger}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PGStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS saves (
			slot       text PRIMARY KEY,
			payload    jsonb NOT NULL,
			backup     jsonb,
			updated_at timestamptz NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure saves table: %w", err)
	}
	return nil
}

func (s *PGStore) Save(ctx context.Context, st *game.State) error {
	raw, err := Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO saves (slot, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slot) DO UPDATE
		SET backup = saves.payload,
		    payload = EXCLUDED.payload,
		    updated_at = now()
	`, s.slot, raw)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *PGStore) Load(ctx context.Context) (*game.State, error) {
	var payload, backup []byte
	err := s.pool.QueryRow(ctx, `
		SELECT payload, backup
		FROM saves
		WHERE slot = $1
	`, s.slot).Scan(&payload, &backup)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	st, decodeErr := Decode(payload)
	if decodeErr == nil {
		return st, nil
	}
	s.log.Warn("primary snapshot failed validation", "slot", s.slot, "err", decodeErr)
	if backup != nil {
		if st, err := Decode(backup); err == nil {
			s.log.Warn("restored snapshot from backup", "slot", s.slot)
			return st, nil
		}
	}
	return nil, nil
}
