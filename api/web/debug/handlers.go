package debug

import (
	"net/http"

	"codeberg.org/ledgerly/server/internal/auth"
	"codeberg.org/ledgerly/server/internal/errors"
	"codeberg.org/ledgerly/server/internal/middleware"
	"github.com/gin-gonic/gin"
)

type SessionResponse struct {
	RequestID string         `json:"request_id"`
	Caller    string         `json:"caller"`
	Identity  *auth.Identity `json:"identity"`
}

// shows what the server knows about the current request
func SessionHandler(c *gin.Context) {
	id, _ := auth.CurrentIdentity(c)

	c.JSON(http.StatusOK, SessionResponse{
		RequestID: c.GetString(middleware.RequestIDKey),
		Caller:    errors.CallerOf(c).String(),
		Identity:  id,
	})
}

// registers debugging routes; callers must skip this in production
func RegisterRoutes(router gin.IRouter) {
	router.GET("/debug/session", SessionHandler)
}
