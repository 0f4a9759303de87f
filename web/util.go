package web

import (
	"fmt"
	"github.com/labstack/echo/v4"
	"net/http"
	"strings"
	"time"
)

func baseUrl(c echo.Context) string {
	scheme, host := contextSchemeAndHost(c)
	return scheme + "://" + host
}

func contextSchemeAndHost(c echo.Context) (string, string) {
	req := c.Request()
	if forwarded := req.Header.Get("Forwarded"); forwarded != "" {
		var host string
		var proto string

		for _, value := range strings.Split(forwarded, ";") {
			value = strings.TrimSpace(value)
			if v, ok := strings.CutPrefix(value, "host="); ok {
				host = v
			} else if v, ok := strings.CutPrefix(value, "proto="); ok {
				proto = v
			}
		}

		if host != "" && proto != "" {
			return proto, host
		}
	}

	if host := req.Header.Get("X-Forwarded-Host"); host != "" {
		if proto := req.Header.Get(echo.HeaderXForwardedProto); proto != "" {
			return proto, host
		}
	}

	return c.Scheme(), req.Host
}

func addExpirationHeaders(c echo.Context, now time.Time, expiration time.Duration) {
	now = now.UTC()
	expiresAt := now.Add(expiration)

	res := c.Response()
	res.Header().Set("Date", now.Format(http.TimeFormat))
	res.Header().Set("Expires", expiresAt.Format(http.TimeFormat))
	res.Header().Set(echo.HeaderCacheControl, fmt.Sprintf("public, max-age=%d, must-revalidate", int(expiration.Seconds())))
}

func noCache(c echo.Context) {
	res := c.Response()
	res.Header().Del("Expires")
	res.Header().Set(echo.HeaderCacheControl, "private, no-cache, no-store, max-age=0, must-revalidate")
}

type HTTPErrorOption func(e *HTTPError)

type HTTPError struct {
	code    int
	message string
	cause   error
}

func (e *HTTPError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%d %s: %s", e.code, e.message, e.cause)
	}

	return fmt.Sprintf("%d %s", e.code, e.message)
}

func (e *HTTPError) Unwrap() error {
	return e.cause
}

func (e *HTTPError) Code() int {
	return e.code
}

// PublicMessage is what the client gets to see; the cause is never part of it.
func (e *HTTPError) PublicMessage() string {
	if e.message != "" {
		return e.message
	}

	return http.StatusText(e.code)
}

func WithMessage(message string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.message = message
	}
}

func WithCause(cause error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.cause = cause
	}
}

func NewHTTPError(code int, opts ...HTTPErrorOption) *HTTPError {
	err := new(HTTPError)
	err.code = code

	for _, opt := range opts {
		opt(err)
	}

	return err
}
