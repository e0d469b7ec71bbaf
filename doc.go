// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote client daemon.

Quickly Vote drives one voting session against a remote polling API: it
fetches the session's questions, keeps the user's votes in a local store as
they change, submits them on request and records the confirmation key. A
presentation layer renders it through a small local JSON API.

# Starting the Daemon

The daemon requires environment variables or CLI flags for configuration:

	API_URL=https://polls.example.com SESSION_ID=abc123 go run .

Or with flags:

	go run . -p 3319 -a https://polls.example.com -s abc123 -t redis -d redis://localhost:6379/0

# Configuration

Required settings:

  - API_URL (-a): Polling API base URL
  - SESSION_ID (-s): Session to vote in

Optional settings:

  - PORT (-p): Local API port (default: 3319)
  - DATABASE_TYPE (-t): memory, sqlite, postgres or redis (default: sqlite)
  - DATABASE_URL (-d): Vote store URL (default: file:quickly-vote.db)
  - REQUEST_TIMEOUT (-timeout): Bound on each fetch or submission (default: 10s)
  - FETCH_ATTEMPTS (-fetch-attempts): Question fetch attempts (default: 3)

# Architecture

  - session: Controller event loop and vote normalization
  - transport: Polling API client
  - store: Vote persistence (memory, SQLite, PostgreSQL, Redis)
  - handlers: Local API handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, outbound request logging
  - metrics: Prometheus collectors
  - models: Wire and local API types
  - db: SQL connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
