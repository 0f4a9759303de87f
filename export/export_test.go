package export

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/explore-flights/interconnections/common/xtime"
	"github.com/explore-flights/interconnections/interconnect"
	"github.com/goccy/go-graphviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

func testLeg(from, to, dep, arr, number string) interconnect.FlightLeg {
	return interconnect.FlightLeg{
		DepartureAirport: from,
		ArrivalAirport:   to,
		Departure:        xtime.MustParseLocalDateTime(dep),
		Arrival:          xtime.MustParseLocalDateTime(arr),
		FlightNumber:     number,
	}
}

func testItineraries() []interconnect.Itinerary {
	fr1 := testLeg("MAD", "WRO", "2020-09-17T06:00", "2020-09-17T09:00", "FR1")

	return []interconnect.Itinerary{
		interconnect.OneStopItinerary(fr1, testLeg("WRO", "DUB", "2020-09-17T11:00", "2020-09-17T13:30", "FR3")),
		interconnect.DirectItinerary(testLeg("MAD", "DUB", "2020-09-17T08:00", "2020-09-17T10:00", "FR7062")),
		interconnect.OneStopItinerary(fr1, testLeg("WRO", "DUB", "2020-09-17T15:00", "2020-09-17T17:30", "FR4")),
	}
}

func TestJSON(t *testing.T) {
	b, err := json.Marshal(JSON(testItineraries()[:2]))
	require.NoError(t, err)

	assert.JSONEq(
		t,
		`[
			{"stops":1,"legs":[
				{"departureAirport":"MAD","arrivalAirport":"WRO","departureDateTime":"2020-09-17T06:00","arrivalDateTime":"2020-09-17T09:00"},
				{"departureAirport":"WRO","arrivalAirport":"DUB","departureDateTime":"2020-09-17T11:00","arrivalDateTime":"2020-09-17T13:30"}
			]},
			{"stops":0,"legs":[
				{"departureAirport":"MAD","arrivalAirport":"DUB","departureDateTime":"2020-09-17T08:00","arrivalDateTime":"2020-09-17T10:00"}
			]}
		]`,
		string(b),
	)
}

func TestJSON_Empty(t *testing.T) {
	b, err := json.Marshal(JSON(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, testItineraries()[:2]))

	assert.Equal(
		t,
		"1 stop  MAD 2020-09-17T06:00 → WRO 2020-09-17T09:00 FR1 | WRO 2020-09-17T11:00 → DUB 2020-09-17T13:30 FR3\n"+
			"direct  MAD 2020-09-17T08:00 → DUB 2020-09-17T10:00 FR7062\n",
		buf.String(),
	)
}

func TestFeed(t *testing.T) {
	now := time.Date(2020, time.September, 1, 12, 0, 0, 0, time.UTC)
	feed := Feed("https://example.org/api/interconnections?departure=MAD", "MAD", "DUB", testItineraries(), now)

	assert.Equal(t, "Flights from MAD to DUB", feed.Title)
	if assert.Len(t, feed.Items, 3) {
		assert.Equal(t, "MAD-WRO-DUB 1 stop departing 2020-09-17T06:00", feed.Items[0].Title)
		assert.Equal(t, "MAD-DUB direct departing 2020-09-17T08:00", feed.Items[1].Title)
		assert.NotEqual(t, feed.Items[0].Id, feed.Items[2].Id)
	}

	var rss bytes.Buffer
	require.NoError(t, feed.WriteRss(&rss))
	assert.Equal(t, 3, strings.Count(rss.String(), "<item>"))

	var atom bytes.Buffer
	require.NoError(t, feed.WriteAtom(&atom))
	assert.Equal(t, 3, strings.Count(atom.String(), "<entry>"))
}

func TestBuildGraph(t *testing.T) {
	ctx := context.Background()
	g, err := graphviz.New(ctx)
	require.NoError(t, err)
	defer g.Close()

	graph, err := g.Graph()
	require.NoError(t, err)

	require.NoError(t, buildGraph(graph, testItineraries()))

	// MAD, WRO, DUB; FR1 is shared by two itineraries
	assert.Equal(t, 3, graph.NumberNodes())
	assert.Equal(t, 4, graph.NumberEdges())
}
