// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store mirrors the voting session's question collection into a local
key-value store.

# Interfaces

The session controller only needs to write:

	type Store interface {
		Set(ctx context.Context, key string, value []byte) error
	}

Stores that can be read back also implement Getter, which returns
ErrNotFound for missing keys. The controller uses it to restore votes.

All values are written under VoteKey. The controller stores its collection
there tagged with the session id and ignores a value saved for another session.

# Backends

Open selects a backend from the configuration:

	backend, err := store.Open(ctx, cfg)
	defer backend.Close()

  - memory: MemoryStore, lost on exit
  - sqlite: SQLStore over modernc.org/sqlite
  - postgres: SQLStore over lib/pq
  - redis: RedisStore over go-redis

SQL stores upsert into the vote_store table created by db.CreateSchema.
*/
package store
