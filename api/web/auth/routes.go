package auth

import (
	"log/slog"

	"codeberg.org/ledgerly/server/internal/auth"
	"codeberg.org/ledgerly/server/internal/flash"
	"codeberg.org/ledgerly/server/internal/views"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Logger        *slog.Logger
	Users         UserStore
	Sessions      *auth.SessionStore
	Flashes       *flash.Store
	Renderer      *views.Renderer
	LoginPath     string
	DashboardPath string
}

// registers the login and OAuth routes
func RegisterRoutes(router gin.IRouter, deps Deps) {
	router.GET(deps.LoginPath, LoginPageHandler(deps.Renderer, deps.DashboardPath))
	router.GET("/logout", LogoutHandler(deps.Logger, deps.Sessions, deps.Flashes, deps.LoginPath))

	authGroup := router.Group("/auth")
	{
		authGroup.GET("/:provider", BeginAuthHandler())
		authGroup.GET("/:provider/callback", CallbackHandler(deps.Logger, deps.Users, deps.Sessions, deps.Flashes, deps.DashboardPath))
	}
}
