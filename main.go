package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/explore-flights/interconnections/cache"
	"github.com/explore-flights/interconnections/config"
	"github.com/explore-flights/interconnections/web"
	lwamw "github.com/its-felix/aws-lwa-go-middleware"
	"github.com/labstack/echo/v4"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	logger := config.Config.Logger()
	slog.SetDefault(logger)

	engine, err := config.NewEngine(ctx, config.Config, logger)
	if err != nil {
		panic(err)
	}

	rc, err := config.Config.RedisClient(ctx)
	if err != nil {
		panic(err)
	}

	var h *web.InterconnectionsHandler
	if rc != nil {
		defer rc.Close()

		ttl := config.Config.ResultCacheTTL()
		h = web.NewInterconnectionsHandler(cache.NewResolver(engine.Resolver, cache.NewRedisCache(rc), ttl, logger), ttl)
	} else {
		h = web.NewInterconnectionsHandler(engine.Resolver, config.Config.ResultCacheTTL())
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(lwamw.EchoMiddleware(
		lwamw.WithMaskError(),
		lwamw.WithRemoveHeaders(),
	))

	web.Setup(e, logger, h)

	if err := run(ctx, e); err != nil {
		panic(err)
	}
}

func run(ctx context.Context, e *echo.Echo) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.Background()); err != nil {
			slog.Error("error shutting down the echo server", slog.String("err", err.Error()))
		}
	}()

	if err := e.Start(fmt.Sprintf(":%d", config.Config.EchoPort())); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}

	return nil
}
