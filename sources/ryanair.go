package sources

import (
	"context"
	"github.com/explore-flights/interconnections/common/xtime"
	"github.com/explore-flights/interconnections/interconnect"
	"github.com/explore-flights/interconnections/ryanair"
	"time"
)

type ryanairClient interface {
	Routes(ctx context.Context) ([]ryanair.Route, error)
	Schedule(ctx context.Context, from, to string, year int, month time.Month) (ryanair.Schedule, error)
}

// Ryanair serves routes and timetables straight from the public Ryanair APIs.
type Ryanair struct {
	client ryanairClient
}

func NewRyanair(client ryanairClient) *Ryanair {
	return &Ryanair{client}
}

func (r *Ryanair) Routes(ctx context.Context) ([]interconnect.Route, error) {
	routes, err := r.client.Routes(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]interconnect.Route, 0, len(routes))
	for _, route := range routes {
		result = append(result, interconnect.Route{
			From:              route.AirportFrom,
			To:                route.AirportTo,
			ConnectingAirport: route.ConnectingAirport,
			Operator:          route.Operator,
			Group:             route.Group,
			Seasonal:          route.SeasonalRoute,
			New:               route.NewRoute,
		})
	}

	return result, nil
}

func (r *Ryanair) Schedule(ctx context.Context, route interconnect.Route, month xtime.YearMonth) (interconnect.MonthlySchedule, error) {
	s, err := r.client.Schedule(ctx, route.From, route.To, month.Year, month.Month)
	if err != nil {
		return interconnect.MonthlySchedule{}, err
	}

	days := make([]interconnect.ScheduleDay, 0, len(s.Days))
	for _, d := range s.Days {
		flights := make([]interconnect.Flight, 0, len(d.Flights))
		for _, f := range d.Flights {
			flights = append(flights, interconnect.Flight{
				Number:        f.CarrierCode + f.Number,
				DepartureTime: f.DepartureTime,
				ArrivalTime:   f.ArrivalTime,
			})
		}

		days = append(days, interconnect.ScheduleDay{
			Day:     d.Day,
			Flights: flights,
		})
	}

	return interconnect.MonthlySchedule{
		Month: s.Month,
		Days:  days,
	}, nil
}

var (
	_ interconnect.RouteSource    = (*Ryanair)(nil)
	_ interconnect.ScheduleSource = (*Ryanair)(nil)
)
