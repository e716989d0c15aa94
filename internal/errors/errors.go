package errors

import (
	"log/slog"
	"net/http"

	"codeberg.org/ledgerly/server/internal/flash"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP handlers and interceptors:
//   - Call errors.Abort(c, kind, err) (or errors.AbortWith(c, err)) and return.
//     The dispatcher middleware writes the response: JSON for /api/ and /ajax/
//     paths, a redirect with a flash message for everything else.
//   - Never write an error body yourself; a written response is left untouched.
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond

// queues one-time messages for the next rendered page
type Flasher interface {
	Add(w http.ResponseWriter, r *http.Request, msg flash.Message) error
}

// where browser callers are sent
type Routes struct {
	Login     string
	Dashboard string
}

// turns error events into exactly one response each
type Dispatcher struct {
	logger  *slog.Logger
	flasher Flasher
	routes  Routes
	metrics *Metrics
}

type Option func(*Dispatcher)

// counts every dispatched event
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// creates a dispatcher. logger and flasher are required.
func NewDispatcher(logger *slog.Logger, flasher Flasher, routes Routes, opts ...Option) *Dispatcher {
	if routes.Login == "" {
		routes.Login = "/login"
	}

	if routes.Dashboard == "" {
		routes.Dashboard = "/dashboard"
	}

	d := &Dispatcher{
		logger:  logger,
		flasher: flasher,
		routes:  routes,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// answers the current request for the given error kind
func (d *Dispatcher) Dispatch(c *gin.Context, kind Kind, cause error) {
	d.dispatch(c, Event{Kind: kind, Path: c.Request.URL.Path, Cause: cause})
}

func (d *Dispatcher) dispatch(c *gin.Context, event Event) {
	p, ok := policies[event.Kind]
	if !ok {
		event.Kind = KindInternal
		p = policies[KindInternal]
	}

	caller := CallerOf(c)

	if event.Kind == KindInternal {
		d.logInternal(c, event)
	}

	d.metrics.observe(event.Kind, caller)

	if caller == CallerProgrammatic {
		c.AbortWithStatusJSON(event.Kind.Status(), ErrorResponse{Error: p.body})
		return
	}

	d.addFlash(c, p.message)

	target := d.routes.Dashboard
	if p.redirect == toLogin {
		target = d.routes.Login
	}

	c.Redirect(http.StatusFound, target)
	c.Abort()
}

// recovers panics and answers classified errors left by the handler chain
func (d *Dispatcher) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		original := c.Writer
		c.Writer = &heldWriter{ResponseWriter: original}

		defer func() {
			c.Writer = original

			r := recover()
			if r == nil {
				return
			}

			if c.Writer.Written() {
				// too late for a second response
				d.logInternal(c, Event{Kind: KindInternal, Path: c.Request.URL.Path, Cause: panicError(r)})
				c.Abort()
				return
			}

			d.Dispatch(c, KindInternal, panicError(r))
		}()

		c.Next()
		c.Writer = original

		if c.Writer.Written() {
			return
		}

		if event, ok := pendingEvent(c); ok {
			d.dispatch(c, event)
		}
	}
}

// handles requests that matched no route
func (d *Dispatcher) NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		Abort(c, KindNotFound, nil)
	}
}

// logging must never break the response path
func (d *Dispatcher) logInternal(c *gin.Context, event Event) {
	defer func() {
		_ = recover()
	}()

	args := []any{
		"path", event.Path,
		"method", c.Request.Method,
	}

	if id := c.GetString("request_id"); id != "" {
		args = append(args, "request_id", id)
	}

	if id := c.GetString("user_id"); id != "" {
		args = append(args, "user_id", id)
	}

	if event.Cause != nil {
		args = append(args, "error", event.Cause.Error())
	}

	d.logger.Error("internal server error", args...)
}

// a failed flash only loses the message, the redirect still happens.
// nothing is logged here: the only log write per event is the 500 line.
func (d *Dispatcher) addFlash(c *gin.Context, text string) {
	defer func() {
		_ = recover()
	}()

	msg := flash.Message{Text: text, Severity: flash.SeverityError}
	_ = d.flasher.Add(c.Writer, c.Request, msg) //nolint:errcheck // best-effort
}
