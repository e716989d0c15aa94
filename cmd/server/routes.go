package main

import (
	"net/http"

	"codeberg.org/ledgerly/server/api/ajax"
	restauth "codeberg.org/ledgerly/server/api/rest/auth"
	"codeberg.org/ledgerly/server/api/rest/health"
	webauth "codeberg.org/ledgerly/server/api/web/auth"
	"codeberg.org/ledgerly/server/api/web/dashboard"
	"codeberg.org/ledgerly/server/api/web/debug"
	"codeberg.org/ledgerly/server/api/web/pages"
	"codeberg.org/ledgerly/server/internal/auth"
	"codeberg.org/ledgerly/server/internal/errors"
	"codeberg.org/ledgerly/server/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// sets up all routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	cfg := server.config

	// order matters: the dispatcher must wrap everything that can fail
	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(server.logger),
		errors.Classify(),
		server.dispatcher.Middleware(),
		server.limiter,
		auth.Authenticate(server.sessions, cfg.JWTSecret),
	)
	router.NoRoute(server.dispatcher.NoRoute())

	router.GET("/health", health.Handler(server.checks))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(server.registry, promhttp.HandlerOpts{})))

	webauth.RegisterRoutes(router, webauth.Deps{
		Logger:        server.logger,
		Users:         server.userRepo,
		Sessions:      server.sessions,
		Flashes:       server.flashes,
		Renderer:      server.renderer,
		LoginPath:     cfg.LoginPath,
		DashboardPath: cfg.DashboardPath,
	})
	dashboard.RegisterRoutes(router, server.renderer, cfg.DashboardPath)
	pages.RegisterRoutes(router, server.renderer)

	if !cfg.IsProduction() {
		debug.RegisterRoutes(router)
	}

	ajax.RegisterRoutes(router)

	v1 := router.Group("/api/v1", middleware.CORS(cfg.CORSOrigins, cfg.BaseURL))
	{
		// preflight requests never reach a handler, cors answers them
		v1.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		v1.GET("/ping", health.PingHandler)

		restauth.RegisterRoutes(v1, server.userRepo, cfg.JWTSecret)
	}
}
