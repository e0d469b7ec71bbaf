// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestLoggingTransport_StampsRequestID(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := &http.Client{Transport: LoggingTransport(nil)}

	req, _ := http.NewRequest("GET", server.URL+"/question/s1", nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	resp.Body.Close()

	if seen == "" {
		t.Error("Expected X-Request-ID header on the outgoing request")
	}
	if req.Header.Get(RequestIDHeader) != "" {
		t.Error("Caller's request must not be modified")
	}
}

func TestLoggingTransport_KeepsExistingRequestID(t *testing.T) {
	var seen string
	rt := LoggingTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = r.Header.Get(RequestIDHeader)
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	}))

	req := httptest.NewRequest("GET", "http://example.com/question/s1", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")

	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	if seen != "fixed-id" {
		t.Errorf("Expected request id 'fixed-id', got '%s'", seen)
	}
}

func TestLoggingTransport_PropagatesErrors(t *testing.T) {
	wantErr := errors.New("connection refused")
	rt := LoggingTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, wantErr
	}))

	req := httptest.NewRequest("POST", "http://example.com/vote/s1", nil)
	resp, err := rt.RoundTrip(req)
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected wrapped transport error, got %v", err)
	}
	if resp != nil {
		t.Error("Expected nil response on error")
	}
}
