package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"codeberg.org/ledgerly/server/api/rest/health"
	"codeberg.org/ledgerly/server/internal/auth"
	"codeberg.org/ledgerly/server/internal/config"
	"codeberg.org/ledgerly/server/internal/errors"
	"codeberg.org/ledgerly/server/internal/flash"
	"codeberg.org/ledgerly/server/internal/middleware"
	"codeberg.org/ledgerly/server/internal/views"
	"codeberg.org/ledgerly/server/ledgerly/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config, log *slog.Logger) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	checks := map[string]health.Check{
		"database": db.Ping,
	}

	// redis is optional: without it rate limits are per process
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = connectRedis(ctx, cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, err
		}

		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	server, err := assemble(cfg, log, users.NewRepository(db), redisClient, checks)
	if err != nil {
		if redisClient != nil {
			redisClient.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		}
		db.Close()
		return nil, err
	}

	server.db = db
	return server, nil
}

func connectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// wires everything that does not need a live database
func assemble(
	cfg *config.Config,
	log *slog.Logger,
	userRepo UserRepository,
	redisClient *redis.Client,
	checks map[string]health.Check,
) (*Server, error) {
	cookies := auth.NewCookieStore(cfg.SecretKey, cfg.Session)
	sessions := auth.NewSessionStore(cookies, cfg.Session.Name)
	flashes := flash.NewStore(cookies, cfg.Session.Name)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	dispatcher := errors.NewDispatcher(log, flashes, errors.Routes{
		Login:     cfg.LoginPath,
		Dashboard: cfg.DashboardPath,
	}, errors.WithMetrics(errors.NewMetrics(registry)))

	limiter, err := middleware.RateLimit(cfg.RateLimit, redisClient)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(views.Templates())

	server := &Server{
		redis:      redisClient,
		config:     cfg,
		logger:     log,
		userRepo:   userRepo,
		sessions:   sessions,
		flashes:    flashes,
		renderer:   views.NewRenderer(flashes, log),
		dispatcher: dispatcher,
		registry:   registry,
		limiter:    limiter,
		checks:     checks,
		router:     router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
