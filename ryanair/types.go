package ryanair

import "github.com/explore-flights/interconnections/common/xtime"

type Route struct {
	AirportFrom       string `json:"airportFrom"`
	AirportTo         string `json:"airportTo"`
	ConnectingAirport string `json:"connectingAirport"`
	NewRoute          bool   `json:"newRoute"`
	SeasonalRoute     bool   `json:"seasonalRoute"`
	Operator          string `json:"operator"`
	Group             string `json:"group"`
}

type Schedule struct {
	Month int   `json:"month"`
	Days  []Day `json:"days"`
}

type Day struct {
	Day     int      `json:"day"`
	Flights []Flight `json:"flights"`
}

type Flight struct {
	CarrierCode   string          `json:"carrierCode,omitempty"`
	Number        string          `json:"number"`
	DepartureTime xtime.LocalTime `json:"departureTime"`
	ArrivalTime   xtime.LocalTime `json:"arrivalTime"`
}
