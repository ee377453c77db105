package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"medhead-allocator/allocation"
	"medhead-allocator/api"
	"medhead-allocator/catalog"
	"medhead-allocator/config"
	"medhead-allocator/directory"
	"medhead-allocator/gps"
	"medhead-allocator/health"
	"medhead-allocator/metrics"
	"medhead-allocator/queues"
	qpubsub "medhead-allocator/queues/pubsub"
	"medhead-allocator/reserve"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var version = "source"

func setLogger(level string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func main() {
	// Load config
	cfg := config.Load()
	setLogger(cfg.LogLevel)
	log.Info().Msgf("Starting medhead-allocator version: %s", version)
	log.Info().Interface("config", cfg.Redacted()).Msg("config loaded")

	cat, err := catalog.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load specialities catalog")
	}
	dir := directory.New()
	provider := gps.New()
	reserver := reserve.New(dir)

	controller := allocation.NewController(cat, dir, provider, reserver, allocation.Options{
		DelayWorkers:    cfg.DelayWorkers,
		DelayTimeout:    cfg.DelayTimeout,
		ResultCapacity:  cfg.ResultCapacity,
		PatientCapacity: cfg.PatientCapacity,
	})

	// Context and shutdown handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics, health and allocation API HTTP server
	mux := http.NewServeMux()
	metrics.Register(mux)
	health.Register(mux)
	api.Register(mux, controller)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr()).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	// Queue transport is optional; requests also arrive over the HTTP API.
	if cfg.PubsubEnabled() {
		publisher := qpubsub.NewPublisher(cfg.GoogleProjectID, cfg.PubsubTopic, cfg.CredentialsFile)
		handler := allocation.NewHandler(controller, publisher)
		subscriber := qpubsub.NewSubscriber(cfg.GoogleProjectID, cfg.Subscription, cfg.CredentialsFile)

		go func() {
			log.Info().Str("subscription", cfg.Subscription).Msg("starting subscriber loop")
			if err := subscriber.Start(ctx, func(ctx context.Context, req *queues.AllocationRequest) error {
				return handler.Handle(ctx, req)
			}); err != nil {
				// Non-recoverable: if we can't receive from Pub/Sub, terminate the process
				log.Fatal().Err(err).Msg("subscriber exited with fatal error; shutting down")
			}
		}()
	} else {
		log.Info().Msg("pubsub transport not configured; serving HTTP API only")
	}

	// Block until shutdown
	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server graceful shutdown failed")
	}
	log.Info().Msg("shutdown complete")
}
