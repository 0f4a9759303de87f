package interconnect

import "errors"

var (
	ErrInvalidTimeWindow   = errors.New("search departure is after search arrival")
	ErrNoRoutesFound       = errors.New("no routes found")
	ErrNoFlightsFound      = errors.New("no flights found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
