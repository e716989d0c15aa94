package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const checkTimeout = 2 * time.Second

// returns the server health status. any failing check turns it into a 503.
func Handler(checks map[string]Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()

		status := http.StatusOK
		response := Response{
			Status:  "healthy",
			Service: "ledgerly",
			Version: "1.0.0",
			Checks:  make(map[string]string, len(checks)),
		}

		for name, check := range checks {
			if err := check(ctx); err != nil {
				response.Checks[name] = err.Error()
				response.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}

			response.Checks[name] = "ok"
		}

		c.JSON(status, response)
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
