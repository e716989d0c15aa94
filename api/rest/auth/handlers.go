package auth

import (
	"net/http"

	"codeberg.org/ledgerly/server/internal/auth"
	"codeberg.org/ledgerly/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// GetCurrentUserHandler godoc
// @Summary Get current user
// @Description Get the signed-in user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/auth/me [get]
// @Security BearerAuth
func GetCurrentUserHandler(userFinder UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Abort(c, errors.KindUnauthorized, nil)
			return
		}

		user, err := userFinder.FindByID(c.Request.Context(), userID)
		if err != nil {
			errors.AbortWith(c, err)
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// IssueTokenHandler godoc
// @Summary Issue API token
// @Description Exchange the browser session for a bearer token
// @Tags auth
// @Produce json
// @Success 200 {object} TokenResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/auth/token [post]
func IssueTokenHandler(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, exists := auth.CurrentIdentity(c)
		if !exists {
			errors.Abort(c, errors.KindUnauthorized, nil)
			return
		}

		token, err := auth.GenerateJWT(jwtSecret, id)
		if err != nil {
			errors.Abort(c, errors.KindInternal, err)
			return
		}

		c.JSON(http.StatusOK, TokenResponse{Token: token, TokenType: "Bearer"})
	}
}
