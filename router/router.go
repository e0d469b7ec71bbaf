// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/middleware"
)

func NewRouter(ctrl handlers.Controller, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(ctrl)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session state and intents
	mux.HandleFunc("GET /session", middleware.WithLogging(sessionHandler.GetState))
	mux.HandleFunc("POST /session/load", middleware.WithLogging(sessionHandler.Load))
	mux.HandleFunc("PUT /session/questions/{key}", middleware.WithLogging(sessionHandler.ChangeVote))
	mux.HandleFunc("POST /session/submit", middleware.WithLogging(sessionHandler.Submit))

	// Metrics
	mux.HandleFunc("GET /metrics", middleware.WithLogging(handlers.NewMetricsHandler(gatherer)))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote local API v1"))
	})

	return mux
}
