package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultBaseURL         = "http://localhost:8080"
	defaultRateLimit       = "300-M"
	defaultSessionName     = "ledgerly_session"
	defaultSessionLifetime = 3600
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return FromEnv(os.Getenv)
}

// builds the configuration from a variable lookup function
func FromEnv(getenv func(string) string) (*Config, error) {
	secretKey := getenv("SECRET_KEY")
	jwtSecret := getenv("JWT_SECRET")
	databaseURL := getenv("DATABASE_URL")
	environment := getenv("ENVIRONMENT")

	if secretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	lifetime := defaultSessionLifetime
	if raw := getenv("SESSION_LIFETIME"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("SESSION_LIFETIME must be a positive number of seconds, got %q", raw)
		}
		lifetime = n
	}

	baseURL := valueOr(getenv("BASE_URL"), defaultBaseURL)

	return &Config{
		Environment: environment,
		Port:        valueOr(getenv("PORT"), defaultPort),
		BaseURL:     baseURL,
		SecretKey:   secretKey,
		JWTSecret:   jwtSecret,
		DatabaseURL: databaseURL,
		RedisURL:    getenv("REDIS_URL"),
		RateLimit:   valueOr(getenv("RATE_LIMIT"), defaultRateLimit),
		CORSOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS")),
		Session: SessionConfig{
			Name:     defaultSessionName,
			Lifetime: time.Duration(lifetime) * time.Second,
			Secure:   strings.HasPrefix(baseURL, "https://"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: getenv("GOOGLE_CLIENT_SECRET"),
			GitHubClientID:     getenv("GITHUB_CLIENT_ID"),
			GitHubClientSecret: getenv("GITHUB_CLIENT_SECRET"),
		},
		LoginPath:     "/login",
		DashboardPath: "/dashboard",
	}, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
