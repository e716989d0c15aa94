package dashboard

import (
	"codeberg.org/ledgerly/server/internal/auth"
	"codeberg.org/ledgerly/server/internal/views"
	"github.com/gin-gonic/gin"
)

// registers the dashboard and settings pages
func RegisterRoutes(router gin.IRouter, renderer *views.Renderer, dashboardPath string) {
	router.GET("/", IndexHandler(dashboardPath))
	router.GET(dashboardPath, auth.LoginRequired(), DashboardHandler(renderer))
	router.GET("/settings", auth.AdminRequired(), SettingsHandler(renderer))
}
