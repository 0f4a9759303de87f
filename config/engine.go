package config

import (
	"context"
	"github.com/explore-flights/interconnections/interconnect"
	"github.com/explore-flights/interconnections/sources"
	"log/slog"
)

// Engine bundles the collaborators every entrypoint needs.
type Engine struct {
	Routes   interconnect.RouteSource
	Archive  *sources.ArchivedSchedules
	Valid    interconnect.RoutePredicate
	Resolver *interconnect.Resolver
}

func NewEngine(ctx context.Context, a Accessor, logger *slog.Logger) (Engine, error) {
	s3c, err := a.S3Client(ctx)
	if err != nil {
		return Engine{}, err
	}

	bucket, err := a.ArchiveBucket()
	if err != nil {
		return Engine{}, err
	}

	upstream := sources.NewRyanair(a.RyanairClient())
	archive := sources.NewArchivedSchedules(upstream, s3c, bucket, a.ArchiveMaxAge(), logger)
	valid := interconnect.OperatedBy(a.Operator())

	return Engine{
		Routes:  upstream,
		Archive: archive,
		Valid:   valid,
		Resolver: interconnect.NewResolver(
			upstream,
			archive,
			valid,
			interconnect.WithCrossMonthConnections(a.CrossMonthConnections()),
			interconnect.WithParallelism(a.Parallelism()),
			interconnect.WithLogger(logger),
		),
	}, nil
}
