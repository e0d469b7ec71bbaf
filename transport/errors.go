// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package transport

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport covers network failures, timeouts and non-2xx responses
	ErrTransport = errors.New("transport error")
	// ErrDeserialization means the server answered with an unexpected shape
	ErrDeserialization = errors.New("deserialization error")
)

// StatusError is returned (wrapped in ErrTransport) for non-2xx responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("unexpected status %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Temporary reports whether the server may succeed on a retry
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

func transportErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
}

func deserializationErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDeserialization, err)
}
