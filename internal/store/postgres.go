package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore keeps records in a single key/value table.
type PostgresStore struct {
	db *sql.DB
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS tracker_records (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for postgres store")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	// single local writer; a small pool is plenty
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := NewPostgresWithDB(db)
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func NewPostgresWithDB(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create tracker_records: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	k, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	const query = `SELECT value FROM tracker_records WHERE key = $1`
	var raw []byte
	err = s.db.QueryRowContext(ctx, query, k).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select record %s: %w", k, err)
	}
	return raw, nil
}

// Put upserts the record. The value must be valid JSON because the column is JSONB.
func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	k, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("record %s is not valid json", k)
	}
	const query = `
		INSERT INTO tracker_records (key, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()`
	if _, err := s.db.ExecContext(ctx, query, k, string(value)); err != nil {
		return fmt.Errorf("upsert record %s: %w", k, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
