package interconnect

import (
	"cmp"
	"context"
	"fmt"
	"github.com/explore-flights/interconnections/common/concurrent"
	"github.com/explore-flights/interconnections/common/xtime"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"slices"
)

const defaultParallelism = 8

type ResolverOption func(r *Resolver)

// WithCrossMonthConnections lets the second leg of a one-stop itinerary come from a different
// month than the first leg. Without it both legs are taken from the same month.
func WithCrossMonthConnections(enabled bool) ResolverOption {
	return func(r *Resolver) {
		r.crossMonth = enabled
	}
}

func WithParallelism(parallelism uint) ResolverOption {
	return func(r *Resolver) {
		r.parallelism = parallelism
	}
}

func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

type Resolver struct {
	routes      RouteSource
	schedules   ScheduleSource
	valid       RoutePredicate
	crossMonth  bool
	parallelism uint
	logger      *slog.Logger
}

func NewResolver(routes RouteSource, schedules ScheduleSource, valid RoutePredicate, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		routes:    routes,
		schedules: schedules,
		valid:     valid,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.parallelism = cmp.Or(r.parallelism, defaultParallelism)
	r.logger = cmp.Or(r.logger, slog.Default())

	return r
}

func (r *Resolver) Resolve(ctx context.Context, dep, arr string, searchDeparture, searchArrival xtime.LocalDateTime) ([]Itinerary, error) {
	w := Window{searchDeparture, searchArrival}
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %v > %v", ErrInvalidTimeWindow, searchDeparture, searchArrival)
	}

	routes, err := r.routes.Routes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: routes: %w", ErrUpstreamUnavailable, err)
	}

	graph := BuildRouteGraph(routes, r.valid)
	direct, hasDirect := graph.DirectRoute(dep, arr)
	pairs := graph.OneStopCandidates(dep, arr)
	if !hasDirect && len(pairs) < 1 {
		return nil, fmt.Errorf("%w: %s-%s", ErrNoRoutesFound, dep, arr)
	}

	months := w.Months()
	tasks := make([]scanTask, 0, len(months)*(len(pairs)+1))
	if hasDirect {
		for _, ym := range months {
			tasks = append(tasks, scanTask{first: direct, months: []xtime.YearMonth{ym}})
		}
	}

	for _, pair := range pairs {
		if r.crossMonth {
			tasks = append(tasks, scanTask{first: pair.First, second: &pair.Second, months: months})
		} else {
			for _, ym := range months {
				tasks = append(tasks, scanTask{first: pair.First, second: &pair.Second, months: []xtime.YearMonth{ym}})
			}
		}
	}

	wg := concurrent.Collector(r.parallelism, func(ctx context.Context, t scanTask) ([]Itinerary, error) {
		return t.scan(ctx, r.schedules, w)
	})

	itineraries, err := wg.RunSlice(ctx, tasks)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(
		ctx,
		"resolved interconnections",
		slog.String("departure", dep),
		slog.String("arrival", arr),
		slog.String("window", fmt.Sprintf("%v/%v", searchDeparture, searchArrival)),
		slog.Int("routes", graph.Routes()),
		slog.Bool("direct", hasDirect),
		slog.Int("pairs", len(pairs)),
		slog.Int("months", len(months)),
		slog.Int("tasks", len(tasks)),
		slog.Int("itineraries", len(itineraries)),
	)

	if len(itineraries) < 1 {
		return nil, fmt.Errorf("%w: %s-%s between %v and %v", ErrNoFlightsFound, dep, arr, searchDeparture, searchArrival)
	}

	slices.SortFunc(itineraries, CompareItineraries)

	return itineraries, nil
}

// scanTask covers one route shape (direct when second is nil) over a set of months.
type scanTask struct {
	first  Route
	second *Route
	months []xtime.YearMonth
}

func (t scanTask) scan(ctx context.Context, schedules ScheduleSource, w Window) ([]Itinerary, error) {
	if t.second == nil {
		legs, err := fetchLegs(ctx, schedules, t.first, t.months)
		if err != nil {
			return nil, err
		}

		result := make([]Itinerary, 0)
		for _, leg := range legs {
			if IsWithinWindow(leg, w) {
				result = append(result, DirectItinerary(leg))
			}
		}

		return result, nil
	}

	var firstLegs, secondLegs []FlightLeg
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		firstLegs, err = fetchLegs(gCtx, schedules, t.first, t.months)
		return err
	})

	g.Go(func() error {
		var err error
		secondLegs, err = fetchLegs(gCtx, schedules, *t.second, t.months)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]Itinerary, 0)
	for _, first := range firstLegs {
		for _, second := range secondLegs {
			if IsValidConnection(first, second, w) {
				result = append(result, OneStopItinerary(first, second))
			}
		}
	}

	return result, nil
}

func fetchLegs(ctx context.Context, schedules ScheduleSource, route Route, months []xtime.YearMonth) ([]FlightLeg, error) {
	legs := make([]FlightLeg, 0)
	for _, ym := range months {
		schedule, err := schedules.Schedule(ctx, route, ym)
		if err != nil {
			return nil, fmt.Errorf("%w: schedule %v %v: %w", ErrUpstreamUnavailable, route, ym, err)
		}

		legs = append(legs, ExpandSchedule(route, schedule, ym)...)
	}

	return legs, nil
}
