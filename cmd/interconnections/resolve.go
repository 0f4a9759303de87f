package main

import (
	"fmt"
	"github.com/explore-flights/interconnections/common/xtime"
	"github.com/explore-flights/interconnections/config"
	"github.com/explore-flights/interconnections/export"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
	"log/slog"
	"strings"
)

func resolveCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Lists all itineraries between two airports within a time window",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "departure", Required: true, Usage: "departure airport IATA code"},
			&cli.StringFlag{Name: "arrival", Required: true, Usage: "arrival airport IATA code"},
			&cli.StringFlag{Name: "from", Required: true, Usage: "earliest departure, yyyy-MM-ddTHH:mm"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "latest arrival, yyyy-MM-ddTHH:mm"},
			&cli.StringFlag{Name: "format", Value: "text", Usage: "json or text"},
		},
		Action: func(c *cli.Context) error {
			searchDeparture, err := xtime.ParseLocalDateTime(c.String("from"))
			if err != nil {
				return err
			}

			searchArrival, err := xtime.ParseLocalDateTime(c.String("to"))
			if err != nil {
				return err
			}

			format := c.String("format")
			if format != "json" && format != "text" {
				return fmt.Errorf("unsupported format %q", format)
			}

			engine, err := config.NewEngine(c.Context, config.Config, logger)
			if err != nil {
				return err
			}

			itineraries, err := engine.Resolver.Resolve(
				c.Context,
				strings.ToUpper(c.String("departure")),
				strings.ToUpper(c.String("arrival")),
				searchDeparture,
				searchArrival,
			)
			if err != nil {
				return err
			}

			if format == "json" {
				enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(export.JSON(itineraries))
			}

			return export.Text(c.App.Writer, itineraries)
		},
	}
}
