package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

const callerKey = "caller"

// paths answered with JSON instead of redirects
var programmaticPrefixes = []string{"/api/", "/ajax/"}

var (
	ErrUnauthorized = New(KindUnauthorized, nil)
	ErrForbidden    = New(KindForbidden, nil)
	ErrNotFound     = New(KindNotFound, nil)
)

// wraps cause into a classified error
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

// decides how a request path expects to be answered
func ClassifyPath(path string) Caller {
	for _, prefix := range programmaticPrefixes {
		if strings.HasPrefix(path, prefix) {
			return CallerProgrammatic
		}
	}

	return CallerBrowser
}

// classifies the request once and stores the result on the context
func Classify() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(callerKey, ClassifyPath(c.Request.URL.Path))
		c.Next()
	}
}

// returns the caller stored by Classify, classifying on the spot if absent
func CallerOf(c *gin.Context) Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(Caller); ok {
			return caller
		}
	}

	return ClassifyPath(c.Request.URL.Path)
}

// maps any error to the kind it should be reported as
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return KindNotFound
	}

	return KindInternal
}

// records a classified error and stops the handler chain.
// the dispatcher middleware turns it into the response.
func Abort(c *gin.Context, kind Kind, cause error) {
	_ = c.Error(New(kind, cause)) //nolint:errcheck // returns its argument
	c.Abort()
}

// like Abort, with the kind derived from err
func AbortWith(c *gin.Context, err error) {
	Abort(c, KindOf(err), err)
}

// converts a recovered panic value into an error
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}

	return fmt.Errorf("panic: %v", v)
}

// finds the event left behind by the handler chain, if any
func pendingEvent(c *gin.Context) (Event, bool) {
	event := Event{Path: c.Request.URL.Path}

	for i := len(c.Errors) - 1; i >= 0; i-- {
		var classified *Error
		if errors.As(c.Errors[i].Err, &classified) {
			event.Kind = classified.Kind
			event.Cause = classified.Cause
			return event, true
		}
	}

	kind, ok := KindFromStatus(c.Writer.Status())
	if !ok {
		return event, false
	}

	event.Kind = kind
	if last := c.Errors.Last(); last != nil {
		event.Cause = last.Err
	}

	return event, true
}
