package interconnect

import (
	"context"
	"github.com/explore-flights/interconnections/common/xtime"
)

type RouteSource interface {
	Routes(ctx context.Context) ([]Route, error)
}

// ScheduleSource must behave as a pure function of route and month.
type ScheduleSource interface {
	Schedule(ctx context.Context, route Route, month xtime.YearMonth) (MonthlySchedule, error)
}

type RouteSourceFunc func(ctx context.Context) ([]Route, error)

func (f RouteSourceFunc) Routes(ctx context.Context) ([]Route, error) {
	return f(ctx)
}

type ScheduleSourceFunc func(ctx context.Context, route Route, month xtime.YearMonth) (MonthlySchedule, error)

func (f ScheduleSourceFunc) Schedule(ctx context.Context, route Route, month xtime.YearMonth) (MonthlySchedule, error) {
	return f(ctx, route, month)
}
