package ajax

import (
	"net/http"

	"codeberg.org/ledgerly/server/internal/auth"
	"codeberg.org/ledgerly/server/internal/errors"
	"github.com/gin-gonic/gin"
)

type SessionResponse struct {
	Identity *auth.Identity `json:"identity"`
}

// returns the signed-in identity for the page scripts
func SessionHandler(c *gin.Context) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		errors.Abort(c, errors.KindUnauthorized, nil)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Identity: id})
}

// registers the AJAX endpoints under /ajax
func RegisterRoutes(router gin.IRouter) {
	group := router.Group("/ajax", auth.LoginRequired())
	{
		group.GET("/session", SessionHandler)
	}
}
