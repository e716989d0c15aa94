package main

import (
	"context"
	"log/slog"

	"codeberg.org/ledgerly/server/api/rest/health"
	"codeberg.org/ledgerly/server/internal/auth"
	"codeberg.org/ledgerly/server/internal/config"
	"codeberg.org/ledgerly/server/internal/errors"
	"codeberg.org/ledgerly/server/internal/flash"
	"codeberg.org/ledgerly/server/internal/views"
	"codeberg.org/ledgerly/server/ledgerly/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// user lookups needed by the auth routes
type UserRepository interface {
	FindOrCreateByProvider(ctx context.Context, provider, providerID, email, name, avatarURL string) (*users.User, error)
	FindByID(ctx context.Context, userID string) (*users.User, error)
}

// holds all dependencies and state for the web server
type Server struct {
	db         *pgxpool.Pool
	redis      *redis.Client
	config     *config.Config
	logger     *slog.Logger
	userRepo   UserRepository
	sessions   *auth.SessionStore
	flashes    *flash.Store
	renderer   *views.Renderer
	dispatcher *errors.Dispatcher
	registry   *prometheus.Registry
	limiter    gin.HandlerFunc
	checks     map[string]health.Check
	router     *gin.Engine
}
