package config

import "time"

type Config struct {
	Environment   string
	Port          string
	BaseURL       string
	SecretKey     string
	JWTSecret     string
	DatabaseURL   string
	RedisURL      string
	RateLimit     string
	CORSOrigins   []string
	Session       SessionConfig
	OAuth         OAuthConfig
	LoginPath     string
	DashboardPath string
}

// cookie settings shared by the login session and flash messages
type SessionConfig struct {
	Name     string
	Lifetime time.Duration
	Secure   bool
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GitHubClientID     string
	GitHubClientSecret string
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
