// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers of the local Quickly Vote API.

The local API is the presentation boundary: a UI renders GET /session and
turns user actions into intents on the session controller.

# Session Handler

SessionHandler wraps anything satisfying Controller, normally a
*session.Controller:

	sessionHandler := handlers.NewSessionHandler(ctrl)

Routes and their controller intents:

	GET  /session                → GetState (StateResponse)
	POST /session/load           → Load (RequestLoad)
	PUT  /session/questions/{key} → ChangeVote (RequestVoteChange)
	POST /session/submit         → Submit (RequestSubmit)

Load and Submit only start background work and answer 202; poll
GET /session for the outcome.

# Status Mapping

  - 409: fetch or submission already in flight, or submit before load
  - 404: vote change for a question key that is not loaded (changed=false)
  - 500: vote changed in memory but the store write failed (changed=true)
  - 503: controller stopped

# Metrics

NewMetricsHandler exposes the Prometheus registry at GET /metrics.
*/
package handlers
