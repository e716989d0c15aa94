package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"codeberg.org/ledgerly/server/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const limiterPrefix = "ledgerly:limiter"

// limits requests per client IP. formatted is limiter notation, e.g. "300-M".
// counters live in redis when a client is given, in process memory otherwise.
func RateLimit(formatted string, client *redis.Client) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix:   limiterPrefix,
			MaxRetry: 3,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          limiterPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}

	return mgin.NewMiddleware(
		limiter.New(store, rate),
		mgin.WithLimitReachedHandler(limitReached),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			errors.Abort(c, errors.KindInternal, fmt.Errorf("rate limiter: %w", err))
		}),
	), nil
}

func limitReached(c *gin.Context) {
	c.Header("Retry-After", retryAfter(c.Writer.Header().Get("X-RateLimit-Reset")))

	if errors.CallerOf(c) == errors.CallerProgrammatic {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, errors.ErrorResponse{Error: "Too many requests"})
		return
	}

	c.String(http.StatusTooManyRequests, "Too many requests. Please slow down.")
	c.Abort()
}

// converts the limiter's reset timestamp into seconds to wait
func retryAfter(reset string) string {
	ts, err := strconv.ParseInt(reset, 10, 64)
	if err != nil {
		return "60"
	}

	wait := time.Until(time.Unix(ts, 0)).Seconds()
	if wait < 1 {
		wait = 1
	}

	return strconv.Itoa(int(wait))
}
