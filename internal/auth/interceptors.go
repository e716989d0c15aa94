package auth

import (
	"fmt"

	"codeberg.org/ledgerly/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// Interceptor inspects a request before its handler runs. Returning an
// error stops the chain; the error's kind decides the response.
type Interceptor interface {
	Intercept(c *gin.Context) error
}

type InterceptorFunc func(c *gin.Context) error

func (f InterceptorFunc) Intercept(c *gin.Context) error {
	return f(c)
}

// runs interceptors in order and aborts on the first failure
func Chain(interceptors ...Interceptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, i := range interceptors {
			if err := i.Intercept(c); err != nil {
				errors.AbortWith(c, err)
				return
			}
		}

		c.Next()
	}
}

// rejects anonymous callers with 401
func RequireLogin() Interceptor {
	return InterceptorFunc(func(c *gin.Context) error {
		if _, ok := CurrentIdentity(c); !ok {
			return errors.ErrUnauthorized
		}

		return nil
	})
}

// rejects anonymous callers with 401 and non-admins with 403
func RequireAdmin() Interceptor {
	return InterceptorFunc(func(c *gin.Context) error {
		id, ok := CurrentIdentity(c)
		if !ok {
			return errors.ErrUnauthorized
		}

		if !id.IsAdmin() {
			return errors.New(errors.KindForbidden, fmt.Errorf("user %s is not an admin", id.UserID))
		}

		return nil
	})
}

// requires every listed permission
func RequirePermission(permissions ...string) Interceptor {
	return InterceptorFunc(func(c *gin.Context) error {
		id, ok := CurrentIdentity(c)
		if !ok {
			return errors.ErrUnauthorized
		}

		for _, p := range permissions {
			if !id.Can(p) {
				return errors.New(errors.KindForbidden, fmt.Errorf("user %s lacks permission %q", id.UserID, p))
			}
		}

		return nil
	})
}

// shorthand for Chain(RequireLogin())
func LoginRequired() gin.HandlerFunc {
	return Chain(RequireLogin())
}

// shorthand for Chain(RequireAdmin())
func AdminRequired() gin.HandlerFunc {
	return Chain(RequireAdmin())
}

// shorthand for Chain(RequirePermission(...))
func PermissionRequired(permissions ...string) gin.HandlerFunc {
	return Chain(RequirePermission(permissions...))
}
