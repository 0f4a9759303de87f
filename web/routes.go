package web

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"log/slog"
	"net/http"
)

// Setup installs the middleware chain and all routes on e.
func Setup(e *echo.Echo, logger *slog.Logger, h *InterconnectionsHandler) {
	e.Use(
		RequestIdMiddleware(),
		ErrorLogAndMaskMiddleware(logger),
		NoCacheOnErrorMiddleware(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		}),
	)

	group := e.Group("/api/interconnections")
	group.GET("", h.JSON)
	group.GET("/text", h.Text)
	group.GET("/png", h.PNG)
	group.GET("/feed.rss", h.RSSFeed)
	group.GET("/feed.atom", h.AtomFeed)
}
