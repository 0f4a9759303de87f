//go:build !lambda

package config

import (
	"cmp"
	"context"
	"github.com/explore-flights/interconnections/common/adapt"
	"github.com/explore-flights/interconnections/common/local"
	"github.com/explore-flights/interconnections/ryanair"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var Config = accessor{}

type accessor struct{}

func (accessor) EchoPort() int {
	port, _ := strconv.Atoi(os.Getenv("FLIGHTS_PORT"))
	return cmp.Or(port, 8080)
}

func (accessor) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (accessor) Operator() string {
	return operator()
}

func (accessor) RyanairClient() *ryanair.Client {
	return ryanairClient()
}

func (accessor) S3Client(ctx context.Context) (adapt.S3Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return local.NewS3Client(filepath.Join(home, "Downloads", "local_s3")), nil
}

func (accessor) ArchiveBucket() (string, error) {
	return cmp.Or(os.Getenv("FLIGHTS_ARCHIVE_BUCKET"), "flights_archive_bucket"), nil
}

func (accessor) RedisClient(ctx context.Context) (*redis.Client, error) {
	opts, ok := redisOptions(os.Getenv("FLIGHTS_REDIS_PASSWORD"))
	if !ok {
		return nil, nil
	}

	return redis.NewClient(opts), nil
}

func (accessor) ArchiveMaxAge() time.Duration {
	return archiveMaxAge()
}

func (accessor) ResultCacheTTL() time.Duration {
	return resultCacheTTL()
}

func (accessor) CrossMonthConnections() bool {
	return crossMonthConnections()
}

func (accessor) Parallelism() uint {
	return parallelism()
}
