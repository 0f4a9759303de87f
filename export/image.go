package export

import (
	"context"
	"fmt"
	"github.com/explore-flights/interconnections/interconnect"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"io"
)

// Image renders airports as nodes and every distinct flight leg as an edge.
func Image(ctx context.Context, w io.Writer, itineraries []interconnect.Itinerary) error {
	g, err := graphviz.New(ctx)
	if err != nil {
		return err
	}

	defer g.Close()

	graph, err := g.Graph()
	if err != nil {
		return err
	}

	if err = buildGraph(graph, itineraries); err != nil {
		return err
	}

	return g.Render(ctx, graph, graphviz.PNG, w)
}

func buildGraph(graph *cgraph.Graph, itineraries []interconnect.Itinerary) error {
	nodes := make(map[string]*cgraph.Node)
	edges := make(map[interconnect.FlightLeg]struct{})

	node := func(airport string) (*cgraph.Node, error) {
		if n, ok := nodes[airport]; ok {
			return n, nil
		}

		n, err := graph.CreateNodeByName(airport)
		if err != nil {
			return nil, err
		}

		n.SetLabel(airport)
		nodes[airport] = n

		return n, nil
	}

	for _, it := range itineraries {
		for _, leg := range it.Legs {
			if _, ok := edges[leg]; ok {
				continue
			}

			edges[leg] = struct{}{}

			from, err := node(leg.DepartureAirport)
			if err != nil {
				return err
			}

			to, err := node(leg.ArrivalAirport)
			if err != nil {
				return err
			}

			edge, err := graph.CreateEdgeByName(fmt.Sprintf("%s %v", leg.FlightNumber, leg.Departure), from, to)
			if err != nil {
				return err
			}

			edge.SetLabel(fmt.Sprintf("%s\n%v\n%v", leg.FlightNumber, leg.Departure, leg.Arrival))
		}
	}

	return nil
}
