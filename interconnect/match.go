package interconnect

import (
	"github.com/explore-flights/interconnections/common/xtime"
	"time"
)

const MinLayoverHours = 2

// Window is the inclusive search range of a resolution.
type Window struct {
	Departure xtime.LocalDateTime
	Arrival   xtime.LocalDateTime
}

func (w Window) Valid() bool {
	return !w.Departure.After(w.Arrival)
}

// Months lists every calendar month touched by the window, crossing year boundaries.
func (w Window) Months() []xtime.YearMonth {
	months := make([]xtime.YearMonth, 0, 1)
	for ym := range w.Departure.YearMonth().Until(w.Arrival.YearMonth()) {
		months = append(months, ym)
	}

	return months
}

func IsWithinWindow(leg FlightLeg, w Window) bool {
	return !leg.Departure.Before(w.Departure) && !leg.Arrival.After(w.Arrival)
}

// IsValidConnection does not check the second leg's departure against the window start;
// the first leg anchors the lower bound of the itinerary.
func IsValidConnection(first, second FlightLeg, w Window) bool {
	return !first.Departure.Before(w.Departure) &&
		!first.Arrival.After(w.Arrival) &&
		LayoverHours(first, second) >= MinLayoverHours &&
		!second.Arrival.After(w.Arrival)
}

// LayoverHours truncates toward zero, so 1h59m counts as 1.
func LayoverHours(first, second FlightLeg) int {
	return int(second.Departure.Sub(first.Arrival) / time.Hour)
}
