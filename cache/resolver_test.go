package cache

import (
	"context"
	"errors"
	"github.com/alicebob/miniredis/v2"
	"github.com/explore-flights/interconnections/common/xtime"
	"github.com/explore-flights/interconnections/interconnect"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

type countingResolver struct {
	itineraries []interconnect.Itinerary
	err         error
	calls       int
}

func (r *countingResolver) Resolve(ctx context.Context, dep, arr string, searchDeparture, searchArrival xtime.LocalDateTime) ([]interconnect.Itinerary, error) {
	r.calls++
	return r.itineraries, r.err
}

var (
	t1 = xtime.MustParseLocalDateTime("2020-09-17T06:00")
	t2 = xtime.MustParseLocalDateTime("2020-09-17T21:00")
)

func testItineraries() []interconnect.Itinerary {
	return []interconnect.Itinerary{
		interconnect.DirectItinerary(interconnect.FlightLeg{
			DepartureAirport: "MAD",
			ArrivalAirport:   "DUB",
			Departure:        xtime.MustParseLocalDateTime("2020-09-17T08:00"),
			Arrival:          xtime.MustParseLocalDateTime("2020-09-17T10:00"),
			FlightNumber:     "FR7062",
		}),
		interconnect.OneStopItinerary(
			interconnect.FlightLeg{
				DepartureAirport: "MAD",
				ArrivalAirport:   "WRO",
				Departure:        xtime.MustParseLocalDateTime("2020-09-17T06:00"),
				Arrival:          xtime.MustParseLocalDateTime("2020-09-17T09:00"),
				FlightNumber:     "FR1",
			},
			interconnect.FlightLeg{
				DepartureAirport: "WRO",
				ArrivalAirport:   "DUB",
				Departure:        xtime.MustParseLocalDateTime("2020-09-17T11:00"),
				Arrival:          xtime.MustParseLocalDateTime("2020-09-17T13:30"),
				FlightNumber:     "FR3",
			},
		),
	}
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return mr, client
}

func TestResolver_CachesSuccessfulResults(t *testing.T) {
	mr, client := newTestCache(t)
	inner := &countingResolver{itineraries: testItineraries()}
	r := NewResolver(inner, NewRedisCache(client), time.Hour, nil)

	first, err := r.Resolve(context.Background(), "MAD", "DUB", t1, t2)
	require.NoError(t, err)

	second, err := r.Resolve(context.Background(), "MAD", "DUB", t1, t2)
	require.NoError(t, err)

	assert.Equal(t, testItineraries(), first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)

	key := "interconnections/MAD/DUB/2020-09-17T06:00:00/2020-09-17T21:00:00"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))
}

func TestResolver_DistinctKeysPerSearch(t *testing.T) {
	_, client := newTestCache(t)
	inner := &countingResolver{itineraries: testItineraries()}
	r := NewResolver(inner, NewRedisCache(client), time.Hour, nil)

	_, err := r.Resolve(context.Background(), "MAD", "DUB", t1, t2)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "MAD", "DUB", t1, xtime.MustParseLocalDateTime("2020-09-17T18:00"))
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestResolver_SecondsAreSeparateSearches(t *testing.T) {
	mr, client := newTestCache(t)
	inner := &countingResolver{itineraries: testItineraries()}
	r := NewResolver(inner, NewRedisCache(client), time.Hour, nil)

	_, err := r.Resolve(context.Background(), "MAD", "DUB", t1, t2)
	require.NoError(t, err)

	// the 06:00 leg of the first result lies outside this window
	inner.itineraries = testItineraries()[:1]
	later := xtime.MustParseLocalDateTime("2020-09-17T06:00:30")
	itineraries, err := r.Resolve(context.Background(), "MAD", "DUB", later, t2)
	require.NoError(t, err)

	assert.Equal(t, testItineraries()[:1], itineraries)
	assert.Equal(t, 2, inner.calls)
	assert.NotEqual(t, Key("MAD", "DUB", t1, t2), Key("MAD", "DUB", later, t2))
	assert.True(t, mr.Exists("interconnections/MAD/DUB/2020-09-17T06:00:30/2020-09-17T21:00:00"))
}

func TestResolver_DoesNotCacheErrors(t *testing.T) {
	mr, client := newTestCache(t)
	inner := &countingResolver{err: interconnect.ErrNoFlightsFound}
	r := NewResolver(inner, NewRedisCache(client), time.Hour, nil)

	for range 2 {
		_, err := r.Resolve(context.Background(), "MAD", "DUB", t1, t2)
		assert.ErrorIs(t, err, interconnect.ErrNoFlightsFound)
	}

	assert.Equal(t, 2, inner.calls)
	assert.Empty(t, mr.Keys())
}

func TestResolver_FallsBackWhenCacheUnavailable(t *testing.T) {
	mr, client := newTestCache(t)
	mr.Close()

	inner := &countingResolver{itineraries: testItineraries()}
	r := NewResolver(inner, NewRedisCache(client), time.Hour, nil)

	itineraries, err := r.Resolve(context.Background(), "MAD", "DUB", t1, t2)
	require.NoError(t, err)
	assert.Equal(t, testItineraries(), itineraries)
	assert.Equal(t, 1, inner.calls)
}

func TestResolver_IgnoresCorruptEntries(t *testing.T) {
	mr, client := newTestCache(t)
	require.NoError(t, mr.Set(Key("MAD", "DUB", t1, t2), "not json"))

	inner := &countingResolver{itineraries: testItineraries()}
	r := NewResolver(inner, NewRedisCache(client), time.Hour, nil)

	itineraries, err := r.Resolve(context.Background(), "MAD", "DUB", t1, t2)
	require.NoError(t, err)
	assert.Equal(t, testItineraries(), itineraries)
	assert.Equal(t, 1, inner.calls)
}

func TestResolver_PropagatesInnerError(t *testing.T) {
	_, client := newTestCache(t)
	innerErr := errors.New("inner")
	r := NewResolver(&countingResolver{err: innerErr}, NewRedisCache(client), time.Hour, nil)

	_, err := r.Resolve(context.Background(), "MAD", "DUB", t1, t2)
	assert.ErrorIs(t, err, innerErr)
}
