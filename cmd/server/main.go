package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/ledgerly/server/internal/auth"
	"codeberg.org/ledgerly/server/internal/config"
	"codeberg.org/ledgerly/server/internal/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	log := logger.Init(cfg.Environment)
	log.Info("starting ledgerly server", "environment", cfg.Environment)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// initialize OAuth providers
	if err := auth.InitializeProviders(cfg); err != nil {
		logger.Fatal("failed to initialize OAuth providers", "error", err)
	}

	// create server with all dependencies
	srv, err := NewServer(cfg, log)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           srv.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server in goroutine
	go func() {
		log.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.ErrorErr(err, "server forced to shutdown")
	}

	if srv.redis != nil {
		srv.redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	srv.db.Close()

	log.Info("server stopped")
}
