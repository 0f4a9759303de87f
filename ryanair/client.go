package ryanair

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultRoutesUrl    = "https://services-api.ryanair.com/locate/3/routes"
	DefaultSchedulesUrl = "https://services-api.ryanair.com/timtbl/3/schedules"
)

var (
	ErrRateLimit                    = errors.New("rate limit error")
	ErrRateLimitWouldExceedDeadline = errors.New("rate limit wait would exceed deadline")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ResponseStatusError struct {
	StatusCode  int
	Status      string
	ContentType string
}

func (e ResponseStatusError) Error() string {
	return e.Status
}

type Client struct {
	httpClient     *http.Client
	limiter        *rate.Limiter
	routesUrl      string
	schedulesUrl   string
	maxRetries     uint64
	initialBackoff time.Duration
}

type ClientOption func(c *Client)

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithRateLimiter(limiter *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = limiter
	}
}

func WithRoutesUrl(routesUrl string) ClientOption {
	return func(c *Client) {
		c.routesUrl = routesUrl
	}
}

// WithSchedulesUrl sets the base url; /{from}/{to}/years/{year}/months/{month} is appended per request.
func WithSchedulesUrl(schedulesUrl string) ClientOption {
	return func(c *Client) {
		c.schedulesUrl = strings.TrimSuffix(schedulesUrl, "/")
	}
}

func WithMaxRetries(maxRetries uint64) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
	}
}

func WithInitialBackoff(d time.Duration) ClientOption {
	return func(c *Client) {
		c.initialBackoff = d
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{maxRetries: 3}
	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = cmp.Or(c.httpClient, http.DefaultClient)
	c.routesUrl = cmp.Or(c.routesUrl, DefaultRoutesUrl)
	c.schedulesUrl = cmp.Or(c.schedulesUrl, DefaultSchedulesUrl)
	c.initialBackoff = cmp.Or(c.initialBackoff, time.Millisecond*250)

	return c
}

func (c *Client) Routes(ctx context.Context) ([]Route, error) {
	return doRequest(ctx, c, c.routesUrl, readJsonFunc[[]Route]())
}

// Schedule returns the timetable of one route and month. Upstream answers a JSON 404 for months
// without any flights, which is reported as an empty schedule. Any other 404 (a wrong base url,
// a proxy error page) stays a ResponseStatusError.
func (c *Client) Schedule(ctx context.Context, from, to string, year int, month time.Month) (Schedule, error) {
	surl := fmt.Sprintf(
		"%s/%s/%s/years/%d/months/%d",
		c.schedulesUrl,
		url.PathEscape(from),
		url.PathEscape(to),
		year,
		int(month),
	)

	s, err := doRequest(ctx, c, surl, readJsonFunc[Schedule]())
	if err != nil {
		var statusErr ResponseStatusError
		if errors.As(err, &statusErr) && isNoTimetable(statusErr) {
			return Schedule{Month: int(month), Days: make([]Day, 0)}, nil
		}

		return Schedule{}, err
	}

	return s, nil
}

func (c *Client) doRequest(ctx context.Context, method, surl string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, surl, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	if c.limiter != nil {
		if err = c.limiter.Wait(ctx); err != nil {
			return nil, decorateLimiterErr(err)
		}
	}

	return c.httpClient.Do(req)
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialBackoff

	return backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx)
}

func doRequest[T any](ctx context.Context, c *Client, surl string, f func(r io.Reader) (T, error)) (T, error) {
	return backoff.RetryWithData(func() (T, error) {
		var def T

		resp, err := c.doRequest(ctx, http.MethodGet, surl)
		if err != nil {
			if errors.Is(err, ErrRateLimit) || ctx.Err() != nil {
				return def, backoff.Permanent(err)
			}

			return def, err
		}

		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			statusErr := ResponseStatusError{
				StatusCode:  resp.StatusCode,
				Status:      resp.Status,
				ContentType: resp.Header.Get("Content-Type"),
			}

			if isRetryableStatus(resp.StatusCode) {
				return def, statusErr
			}

			return def, backoff.Permanent(statusErr)
		}

		r, err := f(resp.Body)
		if err != nil {
			return def, backoff.Permanent(fmt.Errorf("failed to parse response: %w", err))
		}

		return r, nil
	}, c.newBackOff(ctx))
}

func readJsonFunc[T any]() func(r io.Reader) (T, error) {
	return func(r io.Reader) (T, error) {
		var res T
		return res, json.NewDecoder(r).Decode(&res)
	}
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests:
		return true
	}

	return status >= http.StatusInternalServerError && status != http.StatusNotImplemented
}

func isNoTimetable(err ResponseStatusError) bool {
	if err.StatusCode != http.StatusNotFound {
		return false
	}

	mediaType, _, _ := mime.ParseMediaType(err.ContentType)
	return mediaType == "application/json"
}

func decorateLimiterErr(err error) error {
	err = errors.Join(err, ErrRateLimit)

	if strings.Contains(err.Error(), "would exceed context deadline") {
		err = errors.Join(err, ErrRateLimitWouldExceedDeadline)
	}

	return err
}
