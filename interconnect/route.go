package interconnect

// Route is one entry of the upstream route feed. ConnectingAirport is empty for routes flown
// directly; a non-empty value marks a virtually interlined (bus, rail or partner) route.
type Route struct {
	From              string `json:"from"`
	To                string `json:"to"`
	ConnectingAirport string `json:"connectingAirport,omitempty"`
	Operator          string `json:"operator"`
	Group             string `json:"group,omitempty"`
	Seasonal          bool   `json:"seasonal"`
	New               bool   `json:"new"`
}

func (r Route) String() string {
	return r.From + "-" + r.To
}

type RoutePair struct {
	First  Route
	Second Route
}

// Connection returns the airport where the two routes meet.
func (rp RoutePair) Connection() string {
	return rp.First.To
}

type RoutePredicate func(r Route) bool

// OperatedBy accepts routes flown directly by the given operator.
func OperatedBy(operator string) RoutePredicate {
	return func(r Route) bool {
		return r.ConnectingAirport == "" && r.Operator == operator
	}
}
