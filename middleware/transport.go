// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader is stamped on every outgoing polling API request
const RequestIDHeader = "X-Request-ID"

type loggingTransport struct {
	next http.RoundTripper
}

// LoggingTransport wraps an outgoing round tripper with request logging.
// A nil next uses http.DefaultTransport.
func LoggingTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	// RoundTrippers must not modify the caller's request
	if req.Header.Get(RequestIDHeader) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	requestID := req.Header.Get(RequestIDHeader)

	slog.Debug("upstream request started",
		"method", req.Method,
		"url", req.URL.Redacted(),
		"request_id", requestID,
	)

	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		slog.Warn("upstream request failed",
			"method", req.Method,
			"url", req.URL.Redacted(),
			"request_id", requestID,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	slog.Info("upstream request completed",
		"method", req.Method,
		"url", req.URL.Redacted(),
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", duration.Milliseconds(),
	)
	return resp, nil
}
