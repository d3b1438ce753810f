package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore persists documents in a Postgres table, one JSONB row per
// key. Useful when several clients want to share one tracker database;
// note the read-modify-write cycle is still last-writer-wins.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	if connStr == "" {
		return nil, fmt.Errorf("missing postgres connection string")
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("could not open db connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to the database: %w", err)
	}

	if err := runPostgresMigrations(connStr); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string, out any) (bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read document %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode document %q: %w", key, err)
	}
	return true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = NOW()
	`, key, raw)
	if err != nil {
		return fmt.Errorf("write document %q: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
