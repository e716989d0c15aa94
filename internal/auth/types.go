package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// the signed-in user as seen by handlers
type Identity struct {
	UserID      string   `json:"user_id"`
	TenantID    string   `json:"tenant_id"`
	Email       string   `json:"email"`
	Name        string   `json:"name,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
}

func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// admins hold every permission
func (i *Identity) Can(permission string) bool {
	return i.IsAdmin() || slices.Contains(i.Permissions, permission)
}

// represents JWT claims
type Claims struct {
	UserID      string   `json:"user_id"`
	TenantID    string   `json:"tenant_id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() *Identity {
	return &Identity{
		UserID:      c.UserID,
		TenantID:    c.TenantID,
		Email:       c.Email,
		Role:        c.Role,
		Permissions: c.Permissions,
	}
}
