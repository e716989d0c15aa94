package dashboard

import (
	"net/http"

	"codeberg.org/ledgerly/server/internal/views"
	"github.com/gin-gonic/gin"
)

// a tile on the dashboard
type Module struct {
	Label string
	Path  string
}

var modules = []Module{
	{Label: "Operations", Path: "/operations"},
	{Label: "Invoices", Path: "/invoices"},
	{Label: "Bills", Path: "/bills"},
	{Label: "Clients", Path: "/clients"},
	{Label: "Vendors", Path: "/vendors"},
	{Label: "Expenses", Path: "/expenses"},
	{Label: "Payments", Path: "/payments"},
}

func IndexHandler(dashboardPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, dashboardPath)
	}
}

func DashboardHandler(renderer *views.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderer.HTML(c, "dashboard.html", "Dashboard", modules)
	}
}

func SettingsHandler(renderer *views.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderer.HTML(c, "settings.html", "Settings", nil)
	}
}
