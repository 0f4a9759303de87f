package cache

import (
	"context"
	"fmt"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/explore-flights/interconnections/common/xtime"
	"github.com/explore-flights/interconnections/interconnect"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"time"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type resolver interface {
	Resolve(ctx context.Context, dep, arr string, searchDeparture, searchArrival xtime.LocalDateTime) ([]interconnect.Itinerary, error)
}

func NewRedisCache(client *redis.Client) *cache.Cache[string] {
	return cache.New[string](redisstore.NewRedis(client))
}

// Resolver serves repeated searches from a remote cache. Only successful results are stored;
// the cache being unavailable never fails a search.
type Resolver struct {
	inner  resolver
	c      *cache.Cache[string]
	ttl    time.Duration
	logger *slog.Logger
}

func NewResolver(inner resolver, c *cache.Cache[string], ttl time.Duration, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		inner:  inner,
		c:      c,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *Resolver) Resolve(ctx context.Context, dep, arr string, searchDeparture, searchArrival xtime.LocalDateTime) ([]interconnect.Itinerary, error) {
	key := Key(dep, arr, searchDeparture, searchArrival)
	if itineraries, ok := r.lookup(ctx, key); ok {
		return itineraries, nil
	}

	itineraries, err := r.inner.Resolve(ctx, dep, arr, searchDeparture, searchArrival)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, itineraries)

	return itineraries, nil
}

func (r *Resolver) lookup(ctx context.Context, key string) ([]interconnect.Itinerary, bool) {
	v, err := r.c.Get(ctx, key)
	if err != nil {
		// a missing key surfaces as an error too
		r.logger.DebugContext(ctx, "result cache miss", slog.String("key", key), slog.String("err", err.Error()))
		return nil, false
	}

	var itineraries []interconnect.Itinerary
	if err = json.Unmarshal([]byte(v), &itineraries); err != nil {
		r.logger.WarnContext(ctx, "discarding unreadable cached result", slog.String("key", key), slog.String("err", err.Error()))
		return nil, false
	}

	return itineraries, true
}

func (r *Resolver) store(ctx context.Context, key string, itineraries []interconnect.Itinerary) {
	b, err := json.Marshal(itineraries)
	if err != nil {
		r.logger.WarnContext(ctx, "failed to encode result for cache", slog.String("key", key), slog.String("err", err.Error()))
		return
	}

	if err = r.c.Set(ctx, key, string(b), store.WithExpiration(r.ttl)); err != nil {
		r.logger.WarnContext(ctx, "failed to cache result", slog.String("key", key), slog.String("err", err.Error()))
	}
}

const keyTimeLayout = "2006-01-02T15:04:05"

// Key keeps seconds so that windows differing below the minute never share an entry.
func Key(dep, arr string, searchDeparture, searchArrival xtime.LocalDateTime) string {
	return fmt.Sprintf(
		"interconnections/%s/%s/%s/%s",
		dep,
		arr,
		searchDeparture.Naive().Format(keyTimeLayout),
		searchArrival.Naive().Format(keyTimeLayout),
	)
}
