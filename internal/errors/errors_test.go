package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"codeberg.org/ledgerly/server/internal/flash"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captures log records for inspection
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) count(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, r := range h.records {
		if r.Level == level {
			n++
		}
	}

	return n
}

func (h *recordingHandler) total() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

func (h *recordingHandler) attr(index int, key string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var value string
	h.records[index].Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			value = a.Value.String()
			return false
		}
		return true
	})

	return value
}

// a log sink that blows up on every write
type panickingHandler struct{ recordingHandler }

func (h *panickingHandler) Handle(context.Context, slog.Record) error {
	panic("log sink unavailable")
}

type recordingFlasher struct {
	mu       sync.Mutex
	messages []flash.Message
}

func (f *recordingFlasher) Add(_ http.ResponseWriter, _ *http.Request, msg flash.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return nil
}

type failingFlasher struct{}

func (failingFlasher) Add(http.ResponseWriter, *http.Request, flash.Message) error {
	return errors.New("session store unavailable")
}

type panickingFlasher struct{}

func (panickingFlasher) Add(http.ResponseWriter, *http.Request, flash.Message) error {
	panic("cookie codec exploded")
}

type fixture struct {
	router  *gin.Engine
	logs    *recordingHandler
	flasher *recordingFlasher
	metrics *Metrics
}

// router whose catch-all handler fails with ?status=<code>&cause=<text>
func newFixture(t *testing.T) *fixture {
	t.Helper()

	logs := &recordingHandler{}
	flasher := &recordingFlasher{}
	metrics := NewMetrics(prometheus.NewRegistry())

	d := NewDispatcher(slog.New(logs), flasher, Routes{Login: "/login", Dashboard: "/dashboard"}, WithMetrics(metrics))

	return &fixture{
		router:  newRouter(d, failingRoute),
		logs:    logs,
		flasher: flasher,
		metrics: metrics,
	}
}

func newRouter(d *Dispatcher, register func(*gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Classify(), d.Middleware())
	r.NoRoute(d.NoRoute())

	if register != nil {
		register(r)
	}

	return r
}

func failingRoute(r *gin.Engine) {
	r.GET("/*path", func(c *gin.Context) {
		status, err := strconv.Atoi(c.Query("status"))
		if err != nil {
			c.String(http.StatusOK, "ok")
			return
		}

		var cause error
		if text := c.Query("cause"); text != "" {
			cause = errors.New(text)
		}

		Abort(c, Kind(status), cause)
	})
}

func serve(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

var table = []struct {
	kind     Kind
	body     string
	message  string
	location string
}{
	{KindUnauthorized, `{"error":"Unauthorized"}`, "Please log in to access this page", "/login"},
	{KindForbidden, `{"error":"Insufficient permissions"}`, "You do not have permission to access this page", "/dashboard"},
	{KindNotFound, `{"error":"Not found"}`, "Page not found", "/dashboard"},
	{KindInternal, `{"error":"Internal server error"}`, "An internal error occurred", "/dashboard"},
}

func TestClassifyPath(t *testing.T) {
	programmatic := []string{"/api/invoices", "/api/v1/auth/me", "/ajax/clients/5", "/ajax/"}
	browser := []string{"/", "/dashboard", "/settings", "/api", "/ajax", "/apiary", "/ajaxian/page", "/static/api/x"}

	for _, path := range programmatic {
		assert.Equal(t, CallerProgrammatic, ClassifyPath(path), path)
	}

	for _, path := range browser {
		assert.Equal(t, CallerBrowser, ClassifyPath(path), path)
	}
}

func TestDispatch_ProgrammaticCallersGetJSON(t *testing.T) {
	paths := []string{"/api/invoices", "/ajax/clients/5"}

	for _, tc := range table {
		for _, path := range paths {
			f := newFixture(t)
			rec := serve(f.router, fmt.Sprintf("%s?status=%d", path, tc.kind))

			assert.Equal(t, tc.kind.Status(), rec.Code, path)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			assert.JSONEq(t, tc.body, rec.Body.String(), path)
			assert.Empty(t, rec.Header().Get("Location"), "no redirect for programmatic callers")
			assert.Empty(t, f.flasher.messages, "no flash for programmatic callers")
		}
	}
}

func TestDispatch_BrowserCallersAreRedirected(t *testing.T) {
	paths := []string{"/dashboard", "/settings", "/api", "/apiary"}

	for _, tc := range table {
		for _, path := range paths {
			f := newFixture(t)
			rec := serve(f.router, fmt.Sprintf("%s?status=%d", path, tc.kind))

			assert.Equal(t, http.StatusFound, rec.Code, path)
			assert.Equal(t, tc.location, rec.Header().Get("Location"), path)
			assert.NotContains(t, rec.Header().Get("Content-Type"), "application/json")

			require.Len(t, f.flasher.messages, 1, "exactly one flash per event")
			assert.Equal(t, flash.Message{Text: tc.message, Severity: flash.SeverityError}, f.flasher.messages[0])
		}
	}
}

func TestDispatch_InternalErrorsAreLoggedOnce(t *testing.T) {
	for _, path := range []string{"/api/invoices", "/reports"} {
		for _, tc := range table {
			f := newFixture(t)
			serve(f.router, fmt.Sprintf("%s?status=%d&cause=boom", path, tc.kind))

			if tc.kind == KindInternal {
				assert.Equal(t, 1, f.logs.count(slog.LevelError), path)
				assert.Equal(t, 1, f.logs.total(), "no other log writes")
			} else {
				assert.Equal(t, 0, f.logs.total(), "only 500s are logged")
			}
		}
	}
}

func TestDispatch_Scenarios(t *testing.T) {
	t.Run("404 on ajax path", func(t *testing.T) {
		f := newFixture(t)
		rec := serve(f.router, "/ajax/clients/5?status=404")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
	})

	t.Run("401 on a page", func(t *testing.T) {
		f := newFixture(t)
		rec := serve(f.router, "/dashboard?status=401")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		require.Len(t, f.flasher.messages, 1)
		assert.Equal(t, "Please log in to access this page", f.flasher.messages[0].Text)
	})

	t.Run("500 on api path", func(t *testing.T) {
		f := newFixture(t)
		rec := serve(f.router, "/api/invoices?status=500&cause=bad+id")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
		require.Equal(t, 1, f.logs.count(slog.LevelError))
		assert.Contains(t, f.logs.attr(0, "error"), "bad id")
		assert.Equal(t, "/api/invoices", f.logs.attr(0, "path"))
	})

	t.Run("403 on settings", func(t *testing.T) {
		f := newFixture(t)
		rec := serve(f.router, "/settings?status=403")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
		require.Len(t, f.flasher.messages, 1)
		assert.Equal(t, "You do not have permission to access this page", f.flasher.messages[0].Text)
	})
}

func TestDispatch_Idempotent(t *testing.T) {
	f := newFixture(t)

	first := serve(f.router, "/settings?status=404")
	second := serve(f.router, "/settings?status=404")

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Header().Get("Location"), second.Header().Get("Location"))
	require.Len(t, f.flasher.messages, 2)
	assert.Equal(t, f.flasher.messages[0], f.flasher.messages[1])

	a := serve(f.router, "/api/x?status=403")
	b := serve(f.router, "/api/x?status=403")
	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, a.Body.String(), b.Body.String())
}

func TestDispatch_UnknownKindFallsBackToInternal(t *testing.T) {
	f := newFixture(t)
	rec := serve(f.router, "/api/x?status=418")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
	assert.Equal(t, 1, f.logs.count(slog.LevelError))
}

func TestMiddleware_RecoversPanics(t *testing.T) {
	logs := &recordingHandler{}
	flasher := &recordingFlasher{}
	d := NewDispatcher(slog.New(logs), flasher, Routes{})

	r := newRouter(d, func(r *gin.Engine) {
		r.GET("/api/explode", func(*gin.Context) { panic("nil map") })
		r.GET("/explode", func(*gin.Context) { panic(errors.New("bad id")) })
	})

	rec := serve(r, "/api/explode")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())

	rec = serve(r, "/explode")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	require.Len(t, flasher.messages, 1)
	assert.Equal(t, "An internal error occurred", flasher.messages[0].Text)

	assert.Equal(t, 2, logs.count(slog.LevelError))
	assert.Contains(t, logs.attr(1, "error"), "bad id")
}

func TestMiddleware_NoRoute(t *testing.T) {
	f := &recordingFlasher{}
	d := NewDispatcher(slog.New(&recordingHandler{}), f, Routes{})
	r := newRouter(d, nil)

	rec := serve(r, "/ajax/nothing-here")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())

	rec = serve(r, "/nothing-here")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	require.Len(t, f.messages, 1)
	assert.Equal(t, "Page not found", f.messages[0].Text)
}

func TestMiddleware_StatusWithoutBody(t *testing.T) {
	d := NewDispatcher(slog.New(&recordingHandler{}), &recordingFlasher{}, Routes{})
	r := newRouter(d, func(r *gin.Engine) {
		r.GET("/api/denied", func(c *gin.Context) { c.Status(http.StatusForbidden) })
		r.GET("/api/created", func(c *gin.Context) { c.Status(http.StatusCreated) })
	})

	rec := serve(r, "/api/denied")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Insufficient permissions"}`, rec.Body.String())

	rec = serve(r, "/api/created")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestMiddleware_AbortWithStatus(t *testing.T) {
	f := &recordingFlasher{}
	d := NewDispatcher(slog.New(&recordingHandler{}), f, Routes{})
	r := newRouter(d, func(r *gin.Engine) {
		r.GET("/api/x", func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) })
		r.GET("/page", func(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) })
		r.GET("/api/gone", func(c *gin.Context) { c.AbortWithStatus(http.StatusGone) })
	})

	rec := serve(r, "/api/x")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

	rec = serve(r, "/page")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	require.Len(t, f.messages, 1)
	assert.Equal(t, "You do not have permission to access this page", f.messages[0].Text)

	// statuses outside the table go out untouched
	rec = serve(r, "/api/gone")
	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestMiddleware_LeavesWrittenResponsesAlone(t *testing.T) {
	f := &recordingFlasher{}
	d := NewDispatcher(slog.New(&recordingHandler{}), f, Routes{})
	r := newRouter(d, func(r *gin.Engine) {
		r.GET("/custom", func(c *gin.Context) {
			c.String(http.StatusNotFound, "custom body")
			Abort(c, KindNotFound, nil)
		})
	})

	rec := serve(r, "/custom")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "custom body", rec.Body.String())
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Empty(t, f.messages)
}

func TestDispatch_FlashFailureStillRedirects(t *testing.T) {
	for _, flasher := range []Flasher{failingFlasher{}, panickingFlasher{}} {
		logs := &recordingHandler{}
		d := NewDispatcher(slog.New(logs), flasher, Routes{Login: "/auth/login"})
		r := newRouter(d, failingRoute)

		rec := serve(r, "/dashboard?status=401")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
		assert.Equal(t, 0, logs.total())
	}
}

func TestDispatch_LoggingFailureDoesNotAffectResponse(t *testing.T) {
	d := NewDispatcher(slog.New(&panickingHandler{}), &recordingFlasher{}, Routes{})
	r := newRouter(d, failingRoute)

	rec := serve(r, "/api/invoices?status=500&cause=bad+id")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())

	rec = serve(r, "/invoices?status=500")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestDispatch_Metrics(t *testing.T) {
	f := newFixture(t)

	serve(f.router, "/api/x?status=404")
	serve(f.router, "/ajax/y?status=404")
	serve(f.router, "/page?status=401")

	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.dispatched.WithLabelValues("404", "programmatic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.dispatched.WithLabelValues("401", "browser")))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.dispatched.WithLabelValues("500", "browser")))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("find client: %w", pgx.ErrNoRows)))
	assert.Equal(t, KindNotFound, KindOf(ErrNotFound))
	assert.Equal(t, KindForbidden, KindOf(fmt.Errorf("tenant mismatch: %w", ErrForbidden)))
	assert.Equal(t, KindUnauthorized, KindOf(New(KindUnauthorized, errors.New("token expired"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("disk full")))
}

func TestKindFromStatus(t *testing.T) {
	for _, tc := range table {
		kind, ok := KindFromStatus(tc.kind.Status())
		assert.True(t, ok)
		assert.Equal(t, tc.kind, kind)
	}

	_, ok := KindFromStatus(http.StatusBadRequest)
	assert.False(t, ok)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("bad id")
	err := New(KindInternal, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal: bad id", err.Error())
	assert.Equal(t, "forbidden", ErrForbidden.Error())
}
