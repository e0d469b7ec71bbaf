// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	maxRetries    = 5
	retryInterval = 2 * time.Second
)

// Driver names registered by the imported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the vote store database and verifies the connection,
// retrying the ping a few times before giving up.
func Open(ctx context.Context, driver, url string) (*sql.DB, error) {
	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	// SQLite allows one writer; a single connection also keeps :memory: databases shared
	if driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = conn.PingContext(ctx)
		if err == nil {
			return conn, nil
		}

		slog.Warn("database ping failed", "attempt", attempt, "max", maxRetries, "error", err)
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				conn.Close()
				return nil, ctx.Err()
			case <-time.After(retryInterval):
			}
		}
	}

	conn.Close()
	return nil, fmt.Errorf("database connection failed after %d attempts: %w", maxRetries, err)
}

// CreateSchema creates all tables needed for the vote store.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The statement is valid for both SQLite and PostgreSQL.
const schema = `
CREATE TABLE IF NOT EXISTS vote_store (
    store_key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
