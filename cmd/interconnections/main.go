package main

import (
	"context"
	"github.com/explore-flights/interconnections/config"
	"github.com/urfave/cli/v2"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	logger := config.Config.Logger()
	slog.SetDefault(logger)

	app := &cli.App{
		Name:  "interconnections",
		Usage: "Resolve direct and one-stop flight itineraries",
		Commands: []*cli.Command{
			resolveCommand(logger),
			warmCommand(logger),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Error("command failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
