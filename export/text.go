package export

import (
	"bufio"
	"fmt"
	"github.com/explore-flights/interconnections/interconnect"
	"io"
	"strings"
)

// Text writes one line per itinerary:
//
//	1 stop  MAD 2020-09-17T06:00 → WRO 2020-09-17T09:00 FR1 | WRO 2020-09-17T11:00 → DUB 2020-09-17T13:30 FR3
func Text(w io.Writer, itineraries []interconnect.Itinerary) error {
	bw := bufio.NewWriter(w)
	for _, it := range itineraries {
		legs := make([]string, 0, len(it.Legs))
		for _, leg := range it.Legs {
			legs = append(legs, strings.TrimSpace(fmt.Sprintf(
				"%s %v → %s %v %s",
				leg.DepartureAirport,
				leg.Departure,
				leg.ArrivalAirport,
				leg.Arrival,
				leg.FlightNumber,
			)))
		}

		if _, err := fmt.Fprintf(bw, "%-7s %s\n", stopsLabel(it.Stops), strings.Join(legs, " | ")); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func stopsLabel(stops int) string {
	switch stops {
	case 0:
		return "direct"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}
