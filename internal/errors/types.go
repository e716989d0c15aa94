package errors

import (
	"net/http"
	"strconv"
)

// Kind is the closed set of error conditions the dispatcher answers for.
// Each value equals the HTTP status it is reported with.
type Kind int

const (
	KindUnauthorized Kind = http.StatusUnauthorized
	KindForbidden    Kind = http.StatusForbidden
	KindNotFound     Kind = http.StatusNotFound
	KindInternal     Kind = http.StatusInternalServerError
)

// returns the HTTP status code for the kind
func (k Kind) Status() int {
	return int(k)
}

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindInternal:
		return "internal"
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// maps a status code back to its kind
func KindFromStatus(status int) (Kind, bool) {
	switch k := Kind(status); k {
	case KindUnauthorized, KindForbidden, KindNotFound, KindInternal:
		return k, true
	}

	return 0, false
}

// Caller says how the client expects to be answered.
type Caller int

const (
	// navigates with a browser and gets redirects with flash messages
	CallerBrowser Caller = iota
	// calls the API or AJAX endpoints and gets JSON bodies
	CallerProgrammatic
)

func (c Caller) String() string {
	if c == CallerProgrammatic {
		return "programmatic"
	}

	return "browser"
}

// Error is a classified failure raised by handlers and interceptors.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Kind.String()
	}

	return e.Kind.String() + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Event is one failed request waiting for its response.
type Event struct {
	Kind  Kind
	Path  string
	Cause error
}

// ErrorResponse is the JSON body sent to programmatic callers.
type ErrorResponse struct {
	Error string `json:"error"`
}

type destination int

const (
	toDashboard destination = iota
	toLogin
)

type policy struct {
	body     string
	message  string
	redirect destination
}

// fixed per-kind answers
var policies = map[Kind]policy{
	KindUnauthorized: {
		body:     "Unauthorized",
		message:  "Please log in to access this page",
		redirect: toLogin,
	},
	KindForbidden: {
		body:     "Insufficient permissions",
		message:  "You do not have permission to access this page",
		redirect: toDashboard,
	},
	KindNotFound: {
		body:     "Not found",
		message:  "Page not found",
		redirect: toDashboard,
	},
	KindInternal: {
		body:     "Internal server error",
		message:  "An internal error occurred",
		redirect: toDashboard,
	},
}
