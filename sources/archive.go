package sources

import (
	"context"
	"fmt"
	"github.com/explore-flights/interconnections/common/adapt"
	"github.com/explore-flights/interconnections/common/xtime"
	"github.com/explore-flights/interconnections/interconnect"
	"log/slog"
	"time"
)

type archivedSchedule struct {
	FetchedAt time.Time                    `json:"fetchedAt"`
	Schedule  interconnect.MonthlySchedule `json:"schedule"`
}

// ArchivedSchedules keeps a snapshot of every fetched timetable in S3 and serves later
// requests for the same route and month from it until the snapshot is older than maxAge.
type ArchivedSchedules struct {
	upstream interconnect.ScheduleSource
	s3c      adapt.S3Client
	bucket   string
	maxAge   time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewArchivedSchedules panics on a non-positive maxAge; a snapshot must expire eventually.
func NewArchivedSchedules(upstream interconnect.ScheduleSource, s3c adapt.S3Client, bucket string, maxAge time.Duration, logger *slog.Logger) *ArchivedSchedules {
	if maxAge <= 0 {
		panic(fmt.Sprintf("invalid archive max age %v", maxAge))
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ArchivedSchedules{
		upstream: upstream,
		s3c:      s3c,
		bucket:   bucket,
		maxAge:   maxAge,
		logger:   logger,
		now:      time.Now,
	}
}

func (a *ArchivedSchedules) Schedule(ctx context.Context, route interconnect.Route, month xtime.YearMonth) (interconnect.MonthlySchedule, error) {
	key := archiveKey(route, month)
	archived, err := adapt.S3GetJson[archivedSchedule](ctx, a.s3c, a.bucket, key)
	if err == nil {
		if age := a.now().Sub(archived.FetchedAt); age <= a.maxAge {
			return archived.Schedule, nil
		}

		a.logger.DebugContext(ctx, "archived schedule is stale", slog.String("key", key), slog.Time("fetchedAt", archived.FetchedAt))
	} else if !adapt.IsS3NotFound(err) {
		return interconnect.MonthlySchedule{}, fmt.Errorf("failed to read archived schedule %q: %w", key, err)
	}

	return a.Refresh(ctx, route, month)
}

// Refresh fetches the timetable from upstream and replaces the archived snapshot.
func (a *ArchivedSchedules) Refresh(ctx context.Context, route interconnect.Route, month xtime.YearMonth) (interconnect.MonthlySchedule, error) {
	fetchedAt := a.now()
	schedule, err := a.upstream.Schedule(ctx, route, month)
	if err != nil {
		return interconnect.MonthlySchedule{}, err
	}

	key := archiveKey(route, month)
	if err = adapt.S3PutJson(ctx, a.s3c, a.bucket, key, archivedSchedule{fetchedAt.UTC(), schedule}); err != nil {
		return interconnect.MonthlySchedule{}, fmt.Errorf("failed to archive schedule %q: %w", key, err)
	}

	a.logger.DebugContext(
		ctx,
		"archived schedule",
		slog.String("key", key),
		slog.Int("flights", schedule.Flights()),
	)

	return schedule, nil
}

func archiveKey(route interconnect.Route, month xtime.YearMonth) string {
	return fmt.Sprintf("schedules/%s/%s/%v.json", route.From, route.To, month)
}

var _ interconnect.ScheduleSource = (*ArchivedSchedules)(nil)
