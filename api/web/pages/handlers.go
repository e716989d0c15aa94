package pages

import (
	"codeberg.org/ledgerly/server/internal/views"
	"github.com/gin-gonic/gin"
)

func PageHandler(renderer *views.Renderer, title, body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderer.HTML(c, "page.html", title, body)
	}
}

// registers the public static pages
func RegisterRoutes(router gin.IRouter, renderer *views.Renderer) {
	router.GET("/about", PageHandler(renderer, "About",
		"Ledgerly keeps invoices, bills, clients, vendors, expenses and payments for small businesses."))
	router.GET("/terms", PageHandler(renderer, "Terms",
		"Use of this service is subject to your organisation's agreement with Ledgerly."))
}
