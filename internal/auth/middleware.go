package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// resolves the caller from a bearer token or the session cookie.
// never rejects; use the interceptors to require a login.
func Authenticate(sessions *SessionStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := bearerIdentity(c, jwtSecret); ok {
			setIdentity(c, id)
		} else if id, ok := sessions.Identity(c.Request); ok {
			setIdentity(c, id)
		}

		c.Next()
	}
}

func bearerIdentity(c *gin.Context, secret string) (*Identity, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := ValidateJWT(secret, parts[1])
	if err != nil {
		return nil, false
	}

	return claims.Identity(), true
}

func setIdentity(c *gin.Context, id *Identity) {
	c.Set(identityKey, id)
	c.Set("user_id", id.UserID)
}

// returns the identity stored by Authenticate
func CurrentIdentity(c *gin.Context) (*Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}

	id, ok := v.(*Identity)
	return id, ok
}

// extracts user_id from context after Authenticate
func GetUserID(c *gin.Context) (string, bool) {
	id, ok := CurrentIdentity(c)
	if !ok {
		return "", false
	}

	return id.UserID, true
}
