package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"product-catalog-service/internal/config"
	"product-catalog-service/internal/database"
	"product-catalog-service/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.EnvFileLoaded {
		log.Info().Msg(".env file loaded")
	}

	stores, err := database.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := newServer(context.Background(), cfg, stores, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.StoreDriver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		log.Error().Err(appErr).Msg("server failed")
	case <-shutdown:
		log.Info().Msg("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	if err := stores.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("store close error")
	}

	log.Info().Msg("server shutdown complete")
	if appErr != nil {
		os.Exit(1)
	}
}
