package web

import (
	"context"
	"errors"
	"github.com/explore-flights/interconnections/interconnect"
	"github.com/explore-flights/interconnections/web/model"
	"github.com/labstack/echo/v4"
	"log/slog"
	"net/http"
)

const (
	HeaderRequestId     = "X-Request-Id"
	requestIdContextKey = "requestId"
)

func RequestIdMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := model.NewRequestId()
			if err != nil {
				return err
			}

			c.Set(requestIdContextKey, id)
			c.Response().Header().Set(HeaderRequestId, id.String())

			return next(c)
		}
	}
}

func RequestId(c echo.Context) model.RequestId {
	id, _ := c.Get(requestIdContextKey).(model.RequestId)
	return id
}

// ErrorLogAndMaskMiddleware logs every failed request and replaces the error with one that only
// carries a public message.
func ErrorLogAndMaskMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var echoErr *echo.HTTPError
			if errors.As(err, &echoErr) {
				// routing errors (404, 405) and explicit echo errors are already public
				return err
			}

			httpErr := toHTTPError(err)
			level := slog.LevelInfo
			if httpErr.Code() >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			req := c.Request()
			logger.LogAttrs(
				req.Context(),
				level,
				"request failed",
				slog.String("requestId", RequestId(c).String()),
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
				slog.Int("status", httpErr.Code()),
				slog.String("err", err.Error()),
			)

			return echo.NewHTTPError(httpErr.Code(), httpErr.PublicMessage())
		}
	}
}

func toHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case errors.Is(err, interconnect.ErrInvalidTimeWindow):
		return NewHTTPError(http.StatusBadRequest, WithMessage("departureDateTime must not be after arrivalDateTime"), WithCause(err))

	case errors.Is(err, interconnect.ErrNoRoutesFound):
		return NewHTTPError(http.StatusNotFound, WithMessage("no routes found"), WithCause(err))

	case errors.Is(err, interconnect.ErrNoFlightsFound):
		return NewHTTPError(http.StatusNotFound, WithMessage("no flights found"), WithCause(err))

	case errors.Is(err, context.DeadlineExceeded):
		return NewHTTPError(http.StatusRequestTimeout, WithCause(err))

	case errors.Is(err, interconnect.ErrUpstreamUnavailable):
		return NewHTTPError(http.StatusBadGateway, WithMessage("flight data is currently unavailable"), WithCause(err))
	}

	return NewHTTPError(http.StatusInternalServerError, WithCause(err))
}

func NoCacheOnErrorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				noCache(c)
			}

			return err
		}
	}
}
