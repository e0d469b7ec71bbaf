// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
)

// VoteKey is the process-wide key the question/vote collection is mirrored under
const VoteKey = "quickly-vote.votes"

var ErrNotFound = errors.New("key not found")

// Store is the write side the session controller depends on
type Store interface {
	Set(ctx context.Context, key string, value []byte) error
}

// Getter is implemented by stores that can be read back for restores
type Getter interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Backend is a readable, closable store
type Backend interface {
	Store
	Getter
	io.Closer
}

// Open returns the backend selected by cfg.DatabaseType
func Open(ctx context.Context, cfg cliparse.Config) (Backend, error) {
	switch cfg.DatabaseType {
	case cliparse.StoreMemory:
		return NewMemoryStore(), nil
	case cliparse.StoreSQLite, cliparse.StorePostgres:
		driver := db.DriverSQLite
		if cfg.DatabaseType == cliparse.StorePostgres {
			driver = db.DriverPostgres
		}
		conn, err := db.Open(ctx, driver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s, err := NewSQLStore(conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return s, nil
	case cliparse.StoreRedis:
		return NewRedisStore(ctx, cfg.DatabaseURL)
	}
	return nil, fmt.Errorf("unknown store type %q", cfg.DatabaseType)
}
