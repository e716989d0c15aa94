package auth

import (
	"context"

	"codeberg.org/ledgerly/server/ledgerly/users"
)

// finds or creates the user behind an OAuth login
type UserStore interface {
	FindOrCreateByProvider(ctx context.Context, provider, providerID, email, name, avatarURL string) (*users.User, error)
}
