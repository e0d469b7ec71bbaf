// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-vote/db"
)

// SQLStore persists values in the vote_store table (SQLite or PostgreSQL)
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates the schema if needed and takes ownership of conn
func NewSQLStore(conn *sql.DB) (*SQLStore, error) {
	if err := db.CreateSchema(conn); err != nil {
		return nil, err
	}
	return &SQLStore{db: conn}, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote_store (store_key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (store_key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM vote_store WHERE store_key = $1
	`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
