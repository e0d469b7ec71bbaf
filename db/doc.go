// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL vote stores and creates their schema.

# Drivers

Both drivers are registered by importing this package:

  - sqlite: modernc.org/sqlite (pure Go, default)
  - postgres: github.com/lib/pq

# Connecting

Open pings the database, retrying up to five times:

	conn, err := db.Open(ctx, db.DriverSQLite, "file:quickly-vote.db")

SQLite connections are limited to one open connection.

# Schema Creation

CreateSchema initializes the vote_store table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - vote_store: store_key (primary key), value (JSON text), updated_at
*/
package db
