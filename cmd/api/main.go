// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briangreenhill/questhub/igdb"
	"github.com/briangreenhill/questhub/internal/config"
	"github.com/briangreenhill/questhub/internal/http/routes"
	"github.com/briangreenhill/questhub/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logging.New(logging.Config{})
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := logging.New(logging.Config{Format: cfg.LogFormat, Level: cfg.LogLevel})

	if !cfg.HasIGDB() {
		logger.Warn().Msg("IGDB_CLIENT_ID / IGDB_CLIENT_SECRET not set, game endpoints will return 503")
	}

	client := igdb.New(cfg.IGDB.ClientID, cfg.IGDB.ClientSecret,
		igdb.WithBaseURL(cfg.IGDB.BaseURL),
		igdb.WithTokenURL(cfg.IGDB.TokenURL),
		igdb.WithCacheTTL(cfg.IGDB.CacheTTL),
		igdb.WithLogger(logger),
	)

	s := routes.New(routes.ServerOptions{
		IGDB:               client,
		Logger:             logger,
		AllowCustomQueries: cfg.IGDB.AllowCustomQueries,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Bool("igdb_configured", client.IsConfigured()).Msg("starting api")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
