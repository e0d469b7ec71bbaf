// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"testing"
)

func TestOpenAndCreateSchema(t *testing.T) {
	conn, err := Open(context.Background(), DriverSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	// Twice, to check it is idempotent
	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema() call %d error = %v", i+1, err)
		}
	}

	_, err = conn.Exec(`INSERT INTO vote_store (store_key, value) VALUES ($1, $2)`, "k", "[]")
	if err != nil {
		t.Fatalf("Failed to insert into vote_store: %v", err)
	}

	var value string
	if err := conn.QueryRow(`SELECT value FROM vote_store WHERE store_key = $1`, "k").Scan(&value); err != nil {
		t.Fatalf("Failed to read vote_store: %v", err)
	}
	if value != "[]" {
		t.Errorf("Expected value '[]', got %q", value)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "nope", "x"); err == nil {
		t.Error("Expected error for unknown driver")
	}
}
