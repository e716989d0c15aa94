package auth

import (
	"codeberg.org/ledgerly/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers all authentication routes
func RegisterRoutes(router gin.IRouter, userFinder UserFinder, jwtSecret string) {
	authGroup := router.Group("/auth", auth.LoginRequired())
	{
		authGroup.GET("/me", GetCurrentUserHandler(userFinder))
		authGroup.POST("/token", IssueTokenHandler(jwtSecret))
	}
}
