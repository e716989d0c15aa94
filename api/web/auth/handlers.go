package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"codeberg.org/ledgerly/server/internal/auth"
	"codeberg.org/ledgerly/server/internal/errors"
	"codeberg.org/ledgerly/server/internal/flash"
	"codeberg.org/ledgerly/server/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
)

// renders the login page, or skips it for signed-in users
func LoginPageHandler(renderer *views.Renderer, dashboardPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.CurrentIdentity(c); ok {
			c.Redirect(http.StatusFound, dashboardPath)
			return
		}

		renderer.HTML(c, "login.html", "Log in", providerNames())
	}
}

// starts the OAuth flow with the named provider
func BeginAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		if _, err := goth.GetProvider(provider); err != nil {
			errors.Abort(c, errors.KindNotFound, err)
			return
		}

		// set provider in query for gothic
		q := c.Request.URL.Query()
		q.Set("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothic.BeginAuthHandler(c.Writer, c.Request)
	}
}

// completes the OAuth flow and signs the user in
func CallbackHandler(log *slog.Logger, userStore UserStore, sessions *auth.SessionStore, flashes *flash.Store, dashboardPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		q := c.Request.URL.Query()
		q.Set("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			errors.Abort(c, errors.KindUnauthorized, fmt.Errorf("oauth callback: %w", err))
			return
		}

		user, err := userStore.FindOrCreateByProvider(
			c.Request.Context(),
			gothUser.Provider,
			gothUser.UserID,
			gothUser.Email,
			gothUser.Name,
			gothUser.AvatarURL,
		)

		if err != nil {
			errors.AbortWith(c, err)
			return
		}

		if err := sessions.Login(c.Writer, c.Request, user.Identity()); err != nil {
			errors.Abort(c, errors.KindInternal, err)
			return
		}

		welcome := flash.Message{Text: "Welcome back, " + user.Name, Severity: flash.SeveritySuccess}
		if err := flashes.Add(c.Writer, c.Request, welcome); err != nil {
			log.Warn("failed to queue welcome message", "user_id", user.ID, "error", err)
		}

		c.Redirect(http.StatusFound, dashboardPath)
	}
}

// signs the user out and returns to the login page
func LogoutHandler(log *slog.Logger, sessions *auth.SessionStore, flashes *flash.Store, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gothic.Logout(c.Writer, c.Request); err != nil {
			log.Warn("failed to clear oauth session", "error", err)
		}

		if err := sessions.Logout(c.Writer, c.Request); err != nil {
			errors.Abort(c, errors.KindInternal, err)
			return
		}

		msg := flash.Message{Text: "You have been logged out", Severity: flash.SeverityInfo}
		if err := flashes.Add(c.Writer, c.Request, msg); err != nil {
			log.Warn("failed to queue logout message", "error", err)
		}

		c.Redirect(http.StatusFound, loginPath)
	}
}

func providerNames() []string {
	var names []string
	for name := range goth.GetProviders() {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
