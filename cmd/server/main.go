// Command server runs the residence hall relay backend.
//
// Startup order: env file, configuration, logging, tracing, reference data,
// registry, gateway, router, HTTP server. Shutdown drains in-flight requests
// and flushes the tracer before exit.
//
// @title       Residence Hall Relay API
// @version     1.0
// @description Backend for registering GroupMe floor chats and fanning announcements out to buildings.
// @BasePath    /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/resihall/relay-backend/internal/buildings"
	"github.com/resihall/relay-backend/internal/config"
	"github.com/resihall/relay-backend/internal/groupme"
	httpapi "github.com/resihall/relay-backend/internal/http"
	"github.com/resihall/relay-backend/internal/observability"
	"github.com/resihall/relay-backend/internal/registry"
	"github.com/resihall/relay-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Optional .env for local development; real deployments set env directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().
		Str("version", version).
		Str("env", cfg.AppEnv).
		Str("port", cfg.Port).
		Msg("starting relay backend")

	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	idx, err := buildings.Load(cfg.BuildingsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.BuildingsPath).Msg("building catalog load failed")
	}
	log.Info().Int("buildings", len(idx.Records())).Msg("building catalog loaded")

	store, db := registry.Open(cfg.DBPath, cfg.OTEL.Enabled)

	gw := groupme.NewClient(cfg.GroupMe, cfg.Dispatch.SendTimeout)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, store, db, idx, gw, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Block until SIGINT/SIGTERM, then drain.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown error")
	}
	log.Info().Msg("shutdown complete")
}
