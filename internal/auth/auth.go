package auth

import (
	"fmt"
	"net/http"
	"time"

	"codeberg.org/ledgerly/server/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/github"
	"github.com/markbates/goth/providers/google"
)

const tokenLifetime = 7 * 24 * time.Hour

// sets up all OAuth providers using goth
func InitializeProviders(cfg *config.Config) error {
	store := sessions.NewCookieStore([]byte(cfg.SecretKey))

	// short-lived cookie, only has to survive the OAuth round trip
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	gothic.Store = store

	var providers []goth.Provider

	if cfg.OAuth.GoogleClientID != "" && cfg.OAuth.GoogleClientSecret != "" {
		providers = append(providers, google.New(
			cfg.OAuth.GoogleClientID,
			cfg.OAuth.GoogleClientSecret,
			cfg.BaseURL+"/auth/google/callback",
			"email", "profile",
		))
	}

	if cfg.OAuth.GitHubClientID != "" && cfg.OAuth.GitHubClientSecret != "" {
		providers = append(providers, github.New(
			cfg.OAuth.GitHubClientID,
			cfg.OAuth.GitHubClientSecret,
			cfg.BaseURL+"/auth/github/callback",
			"user:email",
		))
	}

	if len(providers) == 0 {
		return fmt.Errorf("at least one OAuth provider must be configured (GOOGLE_CLIENT_ID or GITHUB_CLIENT_ID)")
	}

	goth.UseProviders(providers...)
	return nil
}

// creates a JWT token for the identity
func GenerateJWT(secret string, id *Identity) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT secret not set")
	}

	now := time.Now()
	claims := Claims{
		UserID:      id.UserID,
		TenantID:    id.TenantID,
		Email:       id.Email,
		Role:        id.Role,
		Permissions: id.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// validates a JWT token and returns the claims
func ValidateJWT(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret not set")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
