package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"codeberg.org/ledgerly/server/internal/auth"
	"codeberg.org/ledgerly/server/internal/config"
	"codeberg.org/ledgerly/server/internal/logger"
	"codeberg.org/ledgerly/server/ledgerly/users"
	"github.com/jackc/pgx/v5/pgxpool"
)

// prints a bearer token for a local test user
func main() {
	email := flag.String("email", "test@ledgerly.dev", "email of the test user")
	providerID := flag.String("provider-id", "test-user-123", "provider id of the test user")
	flag.Parse()

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.FatalErr(err, "failed to load configuration")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.FatalErr(err, "failed to connect to database")
	}
	defer pool.Close()

	user, err := users.NewRepository(pool).FindOrCreateByProvider(ctx, "test", *providerID, *email, "Test User", "")
	if err != nil {
		logger.FatalErr(err, "failed to find or create test user")
	}

	token, err := auth.GenerateJWT(cfg.JWTSecret, user.Identity())
	if err != nil {
		logger.FatalErr(err, "failed to generate token")
	}

	fmt.Fprintf(os.Stderr, "test user %s (id %s)\n", user.Email, user.ID)
	fmt.Println(token)
}
