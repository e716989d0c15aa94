package auth

import (
	"context"

	"codeberg.org/ledgerly/server/ledgerly/users"
)

// loads users by ID
type UserFinder interface {
	FindByID(ctx context.Context, userID string) (*users.User, error)
}

// UserResponse wraps user data
type UserResponse struct {
	User *users.User `json:"user"`
}

// TokenResponse carries a bearer token for API clients
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}
