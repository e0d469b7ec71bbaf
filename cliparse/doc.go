// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first when present.

# Config Fields

  - Port: Local API listen port (default: 3319)
  - APIURL: Polling API base URL (required)
  - SessionID: Session to vote in (required)
  - DatabaseType: memory, sqlite, postgres or redis (default: sqlite)
  - DatabaseURL: Vote store URL (default for sqlite: file:quickly-vote.db)
  - RequestTimeout: Bound on each fetch or submission (default: 10s)
  - FetchAttempts: Attempts for the idempotent question fetch (default: 3)

# CLI Flags

	-p               Local API port
	-a               Polling API base URL
	-s               Session identifier
	-t               Vote store type
	-d               Vote store URL
	-timeout         Request timeout
	-fetch-attempts  Question fetch attempts

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	API_URL         → -a
	SESSION_ID      → -s
	DATABASE_TYPE   → -t
	DATABASE_URL    → -d
	REQUEST_TIMEOUT → -timeout
	FETCH_ATTEMPTS  → -fetch-attempts

CLI flags take precedence over environment variables.
*/
package cliparse
