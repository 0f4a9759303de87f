package main

import (
	"context"
	"errors"
	"github.com/explore-flights/interconnections/common/xtime"
	"github.com/explore-flights/interconnections/interconnect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

type recordingRefresher struct {
	mtx       sync.Mutex
	refreshed []string
	failOn    string
}

func (r *recordingRefresher) Refresh(ctx context.Context, route interconnect.Route, month xtime.YearMonth) (interconnect.MonthlySchedule, error) {
	key := route.String() + "@" + month.String()
	if key == r.failOn {
		return interconnect.MonthlySchedule{}, errors.New("upstream down")
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.refreshed = append(r.refreshed, key)

	return interconnect.MonthlySchedule{
		Month: int(month.Month),
		Days:  []interconnect.ScheduleDay{{Day: 1, Flights: []interconnect.Flight{{Number: "FR1"}, {Number: "FR2"}}}},
	}, nil
}

func TestWarmTasks(t *testing.T) {
	routes := []interconnect.Route{{From: "MAD", To: "DUB"}, {From: "DUB", To: "MAD"}}
	tasks := warmTasks(routes, xtime.YearMonth{Year: 2020, Month: time.December}, 2)

	require.Len(t, tasks, 4)
	assert.Equal(t, xtime.YearMonth{Year: 2020, Month: time.December}, tasks[0].month)
	assert.Equal(t, xtime.YearMonth{Year: 2021, Month: time.January}, tasks[1].month)
	assert.Equal(t, "DUB-MAD", tasks[2].route.String())
}

func TestWarm(t *testing.T) {
	r := &recordingRefresher{}
	tasks := warmTasks(
		[]interconnect.Route{{From: "MAD", To: "DUB"}, {From: "MAD", To: "WRO"}, {From: "WRO", To: "DUB"}},
		xtime.YearMonth{Year: 2020, Month: time.September},
		2,
	)

	results, err := warm(context.Background(), r, tasks, 3)
	require.NoError(t, err)
	assert.Len(t, results, 6)
	assert.ElementsMatch(t, []string{
		"MAD-DUB@2020-09", "MAD-DUB@2020-10",
		"MAD-WRO@2020-09", "MAD-WRO@2020-10",
		"WRO-DUB@2020-09", "WRO-DUB@2020-10",
	}, r.refreshed)

	for _, res := range results {
		assert.Equal(t, 2, res.flights)
	}
}

func TestWarm_Error(t *testing.T) {
	r := &recordingRefresher{failOn: "MAD-WRO@2020-09"}
	tasks := warmTasks(
		[]interconnect.Route{{From: "MAD", To: "DUB"}, {From: "MAD", To: "WRO"}},
		xtime.YearMonth{Year: 2020, Month: time.September},
		1,
	)

	_, err := warm(context.Background(), r, tasks, 1)
	assert.ErrorContains(t, err, "upstream down")
}
