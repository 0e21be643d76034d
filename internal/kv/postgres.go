package kv

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veslo/orderdesk/db"
)

const (
	getEntrySQL = `SELECT value FROM kv_entries WHERE key = $1`
	putEntrySQL = `INSERT INTO kv_entries (key, value, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

var _ Store = (*PGStore)(nil)

// PGStore persists blobs in a single kv_entries table. The upsert on Put
// replaces the whole value in one statement, keeping the atomic-replace
// contract of Store.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPool creates a pgxpool.Pool for the given connection URL.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse database config")
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "create connection pool")
	}
	return pool, nil
}

// RunMigrations executes the embedded DDL schema against the pool.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, db.Schema); err != nil {
		return errors.Wrap(err, "run migrations")
	}
	return nil
}

// NewPGStore returns a PGStore that uses the given pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Get reads the blob stored for key.
func (s *PGStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, getEntrySQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "get %s", key)
	}
	return value, nil
}

// Put upserts the blob stored for key.
func (s *PGStore) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.pool.Exec(ctx, putEntrySQL, key, value); err != nil {
		return errors.Wrapf(err, "put %s", key)
	}
	return nil
}
