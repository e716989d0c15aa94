package users

import (
	"time"

	"codeberg.org/ledgerly/server/internal/auth"
	"github.com/jackc/pgx/v5/pgxpool"
)

// handles user database operations
type Repository struct {
	db *pgxpool.Pool
}

// represents a user of one tenant's books
type User struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Email       string    `json:"email"`
	Provider    string    `json:"provider"`
	ProviderID  string    `json:"-"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// returns the session identity for the user
func (u *User) Identity() *auth.Identity {
	return &auth.Identity{
		UserID:      u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Permissions: u.Permissions,
	}
}
