// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware for both directions of traffic:
the local presentation API and the outgoing polling API client.

# Request Logging

Wrap local API handlers with request logging:

	mux.HandleFunc("GET /session", middleware.WithLogging(handler))

Logs method, path, status, remote and duration_ms on completion. 4xx responses
log at warn level and 5xx at error level.

# Upstream Logging

Wrap the polling API client's round tripper:

	client := &http.Client{Transport: middleware.LoggingTransport(nil)}

Every outgoing request gets an X-Request-ID header (a UUID) unless one is
already set, and its completion or failure is logged with the same id.

# CORS Middleware

Enable cross-origin requests for a browser presentation layer:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var q models.Question
	if err := middleware.ParseJSONBody(r, &q); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP; used in request logs.
*/
package middleware
