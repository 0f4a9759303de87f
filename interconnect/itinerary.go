package interconnect

import (
	"cmp"
	"github.com/explore-flights/interconnections/common/xtime"
	"slices"
	"strings"
)

type FlightLeg struct {
	DepartureAirport string
	ArrivalAirport   string
	Departure        xtime.LocalDateTime
	Arrival          xtime.LocalDateTime
	FlightNumber     string
}

// Itinerary always holds Stops+1 legs; consecutive legs share the connecting airport.
type Itinerary struct {
	Stops int
	Legs  []FlightLeg
}

func DirectItinerary(leg FlightLeg) Itinerary {
	return Itinerary{
		Stops: 0,
		Legs:  []FlightLeg{leg},
	}
}

func OneStopItinerary(first, second FlightLeg) Itinerary {
	return Itinerary{
		Stops: 1,
		Legs:  []FlightLeg{first, second},
	}
}

func (it Itinerary) Departure() xtime.LocalDateTime {
	return it.Legs[0].Departure
}

func (it Itinerary) Arrival() xtime.LocalDateTime {
	return it.Legs[len(it.Legs)-1].Arrival
}

func (it Itinerary) Route() string {
	airports := make([]string, 0, len(it.Legs)+1)
	for i, leg := range it.Legs {
		if i == 0 {
			airports = append(airports, leg.DepartureAirport)
		}

		airports = append(airports, leg.ArrivalAirport)
	}

	return strings.Join(airports, "-")
}

func (it Itinerary) FlightNumbers() []string {
	numbers := make([]string, 0, len(it.Legs))
	for _, leg := range it.Legs {
		numbers = append(numbers, leg.FlightNumber)
	}

	return numbers
}

// CompareItineraries orders by departure, then arrival, then fewer stops, then flight numbers.
func CompareItineraries(a, b Itinerary) int {
	return cmp.Or(
		a.Departure().Compare(b.Departure()),
		a.Arrival().Compare(b.Arrival()),
		cmp.Compare(a.Stops, b.Stops),
		slices.Compare(a.FlightNumbers(), b.FlightNumbers()),
		strings.Compare(a.Route(), b.Route()),
	)
}
