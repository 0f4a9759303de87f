package interconnect

import (
	"github.com/explore-flights/interconnections/common/xtime"
)

type Flight struct {
	Number        string          `json:"number"`
	DepartureTime xtime.LocalTime `json:"departureTime"`
	ArrivalTime   xtime.LocalTime `json:"arrivalTime"`
}

type ScheduleDay struct {
	Day     int      `json:"day"`
	Flights []Flight `json:"flights"`
}

// MonthlySchedule is the timetable of a single route for one calendar month.
type MonthlySchedule struct {
	Month int           `json:"month"`
	Days  []ScheduleDay `json:"days"`
}

func (ms MonthlySchedule) Flights() int {
	var n int
	for _, d := range ms.Days {
		n += len(d.Flights)
	}

	return n
}

// ExpandSchedule dates every flight of the schedule within the anchor month.
// Departure and arrival always share the scheduled day: an arrival time earlier than the
// departure time is not rolled over to the next day, and day values are not range checked.
func ExpandSchedule(route Route, schedule MonthlySchedule, anchor xtime.YearMonth) []FlightLeg {
	legs := make([]FlightLeg, 0, schedule.Flights())
	for _, day := range schedule.Days {
		date := anchor.Date(day.Day)
		for _, f := range day.Flights {
			legs = append(legs, FlightLeg{
				DepartureAirport: route.From,
				ArrivalAirport:   route.To,
				Departure:        xtime.LocalDateTime{Date: date, Time: f.DepartureTime},
				Arrival:          xtime.LocalDateTime{Date: date, Time: f.ArrivalTime},
				FlightNumber:     f.Number,
			})
		}
	}

	return legs
}
