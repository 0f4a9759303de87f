package config

import (
	"cmp"
	"context"
	"github.com/explore-flights/interconnections/common/adapt"
	"github.com/explore-flights/interconnections/ryanair"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	defaultOperator       = "RYANAIR"
	defaultResultCacheTTL = time.Minute * 15
	defaultArchiveMaxAge  = time.Hour * 6
	defaultParallelism    = 8
)

type Accessor interface {
	EchoPort() int
	Logger() *slog.Logger
	Operator() string
	RyanairClient() *ryanair.Client
	S3Client(ctx context.Context) (adapt.S3Client, error)
	ArchiveBucket() (string, error)
	ArchiveMaxAge() time.Duration
	// RedisClient returns nil without error when no redis address is configured.
	RedisClient(ctx context.Context) (*redis.Client, error)
	ResultCacheTTL() time.Duration
	CrossMonthConnections() bool
	Parallelism() uint
}

var _ Accessor = Config

func operator() string {
	return cmp.Or(os.Getenv("FLIGHTS_OPERATOR"), defaultOperator)
}

func ryanairClient() *ryanair.Client {
	opts := []ryanair.ClientOption{
		ryanair.WithRateLimiter(rate.NewLimiter(rate.Limit(10), 5)),
	}

	if v := os.Getenv("FLIGHTS_ROUTES_URL"); v != "" {
		opts = append(opts, ryanair.WithRoutesUrl(v))
	}

	if v := os.Getenv("FLIGHTS_SCHEDULES_URL"); v != "" {
		opts = append(opts, ryanair.WithSchedulesUrl(v))
	}

	return ryanair.NewClient(opts...)
}

func resultCacheTTL() time.Duration {
	ttl, err := time.ParseDuration(os.Getenv("FLIGHTS_RESULT_CACHE_TTL"))
	if err != nil || ttl <= 0 {
		return defaultResultCacheTTL
	}

	return ttl
}

func archiveMaxAge() time.Duration {
	maxAge, err := time.ParseDuration(os.Getenv("FLIGHTS_ARCHIVE_MAX_AGE"))
	if err != nil || maxAge <= 0 {
		return defaultArchiveMaxAge
	}

	return maxAge
}

func crossMonthConnections() bool {
	v, _ := strconv.ParseBool(os.Getenv("FLIGHTS_CROSS_MONTH_CONNECTIONS"))
	return v
}

func parallelism() uint {
	v, _ := strconv.ParseUint(os.Getenv("FLIGHTS_PARALLELISM"), 10, 32)
	return cmp.Or(uint(v), defaultParallelism)
}

func redisOptions(password string) (*redis.Options, bool) {
	addr := os.Getenv("FLIGHTS_REDIS_ADDRESS")
	if addr == "" {
		return nil, false
	}

	db, _ := strconv.Atoi(os.Getenv("FLIGHTS_REDIS_DATABASE"))

	return &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}, true
}
