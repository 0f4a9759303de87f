package web

import (
	"bytes"
	"context"
	"github.com/explore-flights/interconnections/common/xtime"
	"github.com/explore-flights/interconnections/export"
	"github.com/explore-flights/interconnections/interconnect"
	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
	"io"
	"net/http"
	"strings"
	"time"
)

type resolver interface {
	Resolve(ctx context.Context, dep, arr string, searchDeparture, searchArrival xtime.LocalDateTime) ([]interconnect.Itinerary, error)
}

type InterconnectionsRequest struct {
	Departure         string
	Arrival           string
	DepartureDateTime xtime.LocalDateTime
	ArrivalDateTime   xtime.LocalDateTime
}

type InterconnectionsHandler struct {
	r        resolver
	cacheFor time.Duration
}

func NewInterconnectionsHandler(r resolver, cacheFor time.Duration) *InterconnectionsHandler {
	return &InterconnectionsHandler{
		r:        r,
		cacheFor: cacheFor,
	}
}

func (h *InterconnectionsHandler) JSON(c echo.Context) error {
	_, itineraries, err := h.resolve(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, export.JSON(itineraries))
}

func (h *InterconnectionsHandler) Text(c echo.Context) error {
	_, itineraries, err := h.resolve(c)
	if err != nil {
		return err
	}

	return render(c, echo.MIMETextPlainCharsetUTF8, func(w io.Writer) error {
		return export.Text(w, itineraries)
	})
}

func (h *InterconnectionsHandler) PNG(c echo.Context) error {
	_, itineraries, err := h.resolve(c)
	if err != nil {
		return err
	}

	return render(c, "image/png", func(w io.Writer) error {
		return export.Image(c.Request().Context(), w, itineraries)
	})
}

func (h *InterconnectionsHandler) RSSFeed(c echo.Context) error {
	return h.feed(c, "application/rss+xml", (*feeds.Feed).WriteRss)
}

func (h *InterconnectionsHandler) AtomFeed(c echo.Context) error {
	return h.feed(c, "application/atom+xml", (*feeds.Feed).WriteAtom)
}

func (h *InterconnectionsHandler) feed(c echo.Context, contentType string, writer func(*feeds.Feed, io.Writer) error) error {
	req, itineraries, err := h.resolve(c)
	if err != nil {
		return err
	}

	link := baseUrl(c) + c.Request().URL.RequestURI()
	feed := export.Feed(link, req.Departure, req.Arrival, itineraries, time.Now())

	return render(c, contentType, func(w io.Writer) error {
		return writer(feed, w)
	})
}

// render buffers the whole body so that a failing writer still leaves the response uncommitted.
func render(c echo.Context, contentType string, fn func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}

	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

func (h *InterconnectionsHandler) resolve(c echo.Context) (InterconnectionsRequest, []interconnect.Itinerary, error) {
	req, err := parseInterconnectionsRequest(c)
	if err != nil {
		return req, nil, err
	}

	itineraries, err := h.r.Resolve(c.Request().Context(), req.Departure, req.Arrival, req.DepartureDateTime, req.ArrivalDateTime)
	if err != nil {
		return req, nil, err
	}

	addExpirationHeaders(c, time.Now(), h.cacheFor)

	return req, itineraries, nil
}

func parseInterconnectionsRequest(c echo.Context) (InterconnectionsRequest, error) {
	var req InterconnectionsRequest
	var err error

	if req.Departure, err = airportParam(c, "departure"); err != nil {
		return req, err
	}

	if req.Arrival, err = airportParam(c, "arrival"); err != nil {
		return req, err
	}

	if req.DepartureDateTime, err = dateTimeParam(c, "departureDateTime"); err != nil {
		return req, err
	}

	if req.ArrivalDateTime, err = dateTimeParam(c, "arrivalDateTime"); err != nil {
		return req, err
	}

	return req, nil
}

func airportParam(c echo.Context, name string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(c.QueryParam(name)))
	if v == "" {
		return "", NewHTTPError(http.StatusBadRequest, WithMessage(name+" is required"))
	}

	return v, nil
}

func dateTimeParam(c echo.Context, name string) (xtime.LocalDateTime, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return xtime.LocalDateTime{}, NewHTTPError(http.StatusBadRequest, WithMessage(name+" is required"))
	}

	v, err := xtime.ParseLocalDateTime(raw)
	if err != nil {
		return xtime.LocalDateTime{}, NewHTTPError(
			http.StatusBadRequest,
			WithMessage(name+" must be formatted as yyyy-MM-ddTHH:mm"),
			WithCause(err),
		)
	}

	return v, nil
}
