package main

import (
	"context"
	"errors"
	"github.com/explore-flights/interconnections/common/concurrent"
	"github.com/explore-flights/interconnections/common/xtime"
	"github.com/explore-flights/interconnections/config"
	"github.com/explore-flights/interconnections/interconnect"
	"github.com/urfave/cli/v2"
	"log/slog"
	"time"
)

type warmTask struct {
	route interconnect.Route
	month xtime.YearMonth
}

type warmResult struct {
	task    warmTask
	flights int
}

type refresher interface {
	Refresh(ctx context.Context, route interconnect.Route, month xtime.YearMonth) (interconnect.MonthlySchedule, error)
}

func warmCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "warm",
		Usage: "Prefetches the timetables of all valid routes into the schedule archive",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "months", Value: 2, Usage: "number of months starting at the current month"},
			&cli.UintFlag{Name: "parallelism", Value: 4, Usage: "concurrent upstream requests"},
		},
		Action: func(c *cli.Context) error {
			if c.Uint("months") < 1 {
				return errors.New("months must be at least 1")
			}

			engine, err := config.NewEngine(c.Context, config.Config, logger)
			if err != nil {
				return err
			}

			routes, err := engine.Routes.Routes(c.Context)
			if err != nil {
				return err
			}

			graph := interconnect.BuildRouteGraph(routes, engine.Valid)
			tasks := warmTasks(graph.ValidRoutes(), xtime.NewYearMonth(time.Now()), c.Uint("months"))

			start := time.Now()
			results, err := warm(c.Context, engine.Archive, tasks, c.Uint("parallelism"))
			if err != nil {
				return err
			}

			var flights int
			for _, r := range results {
				flights += r.flights
			}

			logger.Info(
				"archive warmed",
				slog.Int("routes", graph.Routes()),
				slog.Int("schedules", len(results)),
				slog.Int("flights", flights),
				slog.Duration("duration", time.Since(start)),
			)

			return nil
		},
	}
}

func warmTasks(routes []interconnect.Route, start xtime.YearMonth, months uint) []warmTask {
	tasks := make([]warmTask, 0, len(routes)*int(months))
	for _, r := range routes {
		month := start
		for range months {
			tasks = append(tasks, warmTask{r, month})
			month = month.Next()
		}
	}

	return tasks
}

func warm(ctx context.Context, r refresher, tasks []warmTask, parallelism uint) ([]warmResult, error) {
	wg := concurrent.Collector(parallelism, func(ctx context.Context, t warmTask) ([]warmResult, error) {
		schedule, err := r.Refresh(ctx, t.route, t.month)
		if err != nil {
			return nil, err
		}

		return []warmResult{{t, schedule.Flights()}}, nil
	})

	return wg.RunSlice(ctx, tasks)
}
