package export

import (
	"github.com/explore-flights/interconnections/common/xtime"
	"github.com/explore-flights/interconnections/interconnect"
)

type ItineraryResponse struct {
	Stops int                 `json:"stops"`
	Legs  []FlightLegResponse `json:"legs"`
}

type FlightLegResponse struct {
	DepartureAirport  string              `json:"departureAirport"`
	ArrivalAirport    string              `json:"arrivalAirport"`
	DepartureDateTime xtime.LocalDateTime `json:"departureDateTime"`
	ArrivalDateTime   xtime.LocalDateTime `json:"arrivalDateTime"`
}

func JSON(itineraries []interconnect.Itinerary) []ItineraryResponse {
	r := make([]ItineraryResponse, 0, len(itineraries))
	for _, it := range itineraries {
		legs := make([]FlightLegResponse, 0, len(it.Legs))
		for _, leg := range it.Legs {
			legs = append(legs, FlightLegResponse{
				DepartureAirport:  leg.DepartureAirport,
				ArrivalAirport:    leg.ArrivalAirport,
				DepartureDateTime: leg.Departure,
				ArrivalDateTime:   leg.Arrival,
			})
		}

		r = append(r, ItineraryResponse{
			Stops: it.Stops,
			Legs:  legs,
		})
	}

	return r
}
