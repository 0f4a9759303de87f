package export

import (
	"fmt"
	"github.com/explore-flights/interconnections/interconnect"
	"github.com/gorilla/feeds"
	"net/url"
	"strings"
	"time"
)

// Feed lists every itinerary of one search as a feed item. link is the url of the search itself.
func Feed(link string, dep, arr string, itineraries []interconnect.Itinerary, now time.Time) *feeds.Feed {
	feed := &feeds.Feed{
		Id:    link,
		Title: fmt.Sprintf("Flights from %s to %s", dep, arr),
		Link: &feeds.Link{
			Href: link,
			Rel:  "alternate",
			Type: "application/json",
		},
		Created: now,
		Updated: now,
	}

	for _, it := range itineraries {
		itemId := itemLink(link, it)
		content := itemContent(it)

		feed.Items = append(feed.Items, &feeds.Item{
			Id:          itemId,
			IsPermaLink: "false",
			Title:       fmt.Sprintf("%s %s departing %v", it.Route(), stopsLabel(it.Stops), it.Departure()),
			Link: &feeds.Link{
				Href: itemId,
				Rel:  "alternate",
				Type: "application/json",
			},
			Created:     now,
			Updated:     now,
			Content:     content,
			Description: content,
		})
	}

	return feed
}

func itemLink(link string, it interconnect.Itinerary) string {
	frag := strings.Join(it.FlightNumbers(), "-") + "@" + it.Departure().String()
	return link + "#" + url.PathEscape(frag)
}

func itemContent(it interconnect.Itinerary) string {
	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, leg := range it.Legs {
		sb.WriteString(fmt.Sprintf(
			"<li>%s %s (%v) → %s (%v)</li>",
			leg.FlightNumber,
			leg.DepartureAirport,
			leg.Departure,
			leg.ArrivalAirport,
			leg.Arrival,
		))
	}
	sb.WriteString("</ul>")

	return sb.String()
}
