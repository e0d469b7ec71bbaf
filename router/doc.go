// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Vote local API.

# Route Registration

NewRouter creates a configured http.ServeMux over a running session
controller and the Prometheus registry its metrics live in:

	mux := router.NewRouter(ctrl, registry)

# Endpoints

Health:

	GET /health

Session:

	GET  /session                 - Current state and questions
	POST /session/load            - Fetch questions again
	PUT  /session/questions/{key} - Replace one question's votes
	POST /session/submit          - Submit all votes

Metrics:

	GET /metrics - Prometheus exposition

Every route except /health and / is wrapped in middleware.WithLogging.
Wrap the returned mux in middleware.CORS when serving a browser UI from
another origin.
*/
package router
