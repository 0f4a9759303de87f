package interconnect

import (
	"slices"
	"strings"
)

// RouteGraph is built per resolution and never modified afterwards.
type RouteGraph struct {
	valid     []Route
	adjacency map[string]map[string]Route
}

func BuildRouteGraph(routes []Route, valid RoutePredicate) *RouteGraph {
	g := &RouteGraph{
		valid:     make([]Route, 0, len(routes)),
		adjacency: make(map[string]map[string]Route),
	}

	for _, r := range routes {
		if !valid(r) {
			continue
		}

		g.valid = append(g.valid, r)

		destinations, ok := g.adjacency[r.From]
		if !ok {
			destinations = make(map[string]Route)
			g.adjacency[r.From] = destinations
		}

		// duplicates for the same pair: last one wins
		destinations[r.To] = r
	}

	return g
}

// DirectRoute returns the first valid route from dep to arr in feed order.
func (g *RouteGraph) DirectRoute(dep, arr string) (Route, bool) {
	idx := slices.IndexFunc(g.valid, func(r Route) bool {
		return r.From == dep && r.To == arr
	})

	if idx < 0 {
		return Route{}, false
	}

	return g.valid[idx], true
}

// OneStopCandidates returns every dep->mid->arr combination, ordered by mid.
func (g *RouteGraph) OneStopCandidates(dep, arr string) []RoutePair {
	pairs := make([]RoutePair, 0)
	for mid, first := range g.adjacency[dep] {
		if second, ok := g.adjacency[mid][arr]; ok {
			pairs = append(pairs, RoutePair{first, second})
		}
	}

	slices.SortFunc(pairs, func(a, b RoutePair) int {
		return strings.Compare(a.Connection(), b.Connection())
	})

	return pairs
}

func (g *RouteGraph) Airports() int {
	return len(g.adjacency)
}

func (g *RouteGraph) Routes() int {
	return len(g.valid)
}

// ValidRoutes returns the routes that passed the predicate, in source order.
func (g *RouteGraph) ValidRoutes() []Route {
	return slices.Clone(g.valid)
}
