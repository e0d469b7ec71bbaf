package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/metrics"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/router"
	"github.com/danielhkuo/quickly-vote/session"
	"github.com/danielhkuo/quickly-vote/store"
	"github.com/danielhkuo/quickly-vote/transport"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the vote store
	backend, err := store.Open(ctx, cfg)
	if err != nil {
		slog.Error("vote store unavailable", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer backend.Close()
	slog.Info("Vote store ready", "type", cfg.DatabaseType)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Polling API client
	client := transport.NewClient(cfg.APIURL, nil)
	client.FetchAttempts = cfg.FetchAttempts

	// Session controller
	ctrl := session.New(cfg.SessionID, client, backend, session.Options{
		Timeout: cfg.RequestTimeout,
		Metrics: m,
	})
	controllerDone := make(chan struct{})
	go func() {
		defer close(controllerDone)
		if err := ctrl.Run(ctx); err != nil {
			slog.Error("session controller failed", "error", err)
		}
	}()

	// Create router
	mux := router.NewRouter(ctrl, registry)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "session", cfg.SessionID, "api", cfg.APIURL)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	cancel()
	<-controllerDone
}
