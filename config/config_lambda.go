//go:build lambda

package config

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/explore-flights/interconnections/common/adapt"
	"github.com/explore-flights/interconnections/common/xsync"
	"github.com/explore-flights/interconnections/ryanair"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"
)

var Config = func() *accessor {
	awsConfig := sync.OnceValues(func() (aws.Config, error) {
		return config.LoadDefaultConfig(context.Background())
	})

	return &accessor{
		awsConfig: awsConfig,
		ssmParams: xsync.NewPreload(func() (map[string]string, error) {
			if os.Getenv("FLIGHTS_SSM_REDIS_PASSWORD") == "" {
				return map[string]string{}, nil
			}

			cfg, err := awsConfig()
			if err != nil {
				return nil, err
			}

			return loadSsmParams(context.Background(), cfg, "FLIGHTS_SSM_REDIS_PASSWORD")
		}),
	}
}()

type accessor struct {
	awsConfig func() (aws.Config, error)
	ssmParams *xsync.Preload[map[string]string]
}

func (*accessor) EchoPort() int {
	port, _ := strconv.Atoi(os.Getenv("AWS_LWA_PORT"))
	return cmp.Or(port, 8080)
}

func (*accessor) Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func (*accessor) Operator() string {
	return operator()
}

func (*accessor) RyanairClient() *ryanair.Client {
	return ryanairClient()
}

func (a *accessor) S3Client(ctx context.Context) (adapt.S3Client, error) {
	cfg, err := a.awsConfig()
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg), nil
}

func (*accessor) ArchiveBucket() (string, error) {
	bucket := os.Getenv("FLIGHTS_ARCHIVE_BUCKET")
	if bucket == "" {
		return "", errors.New("env variable FLIGHTS_ARCHIVE_BUCKET required")
	}

	return bucket, nil
}

func (a *accessor) RedisClient(ctx context.Context) (*redis.Client, error) {
	params, err := a.ssmParams.Value(ctx)
	if err != nil {
		return nil, err
	}

	opts, ok := redisOptions(params["FLIGHTS_SSM_REDIS_PASSWORD"])
	if !ok {
		return nil, nil
	}

	return redis.NewClient(opts), nil
}

func (*accessor) ArchiveMaxAge() time.Duration {
	return archiveMaxAge()
}

func (*accessor) ResultCacheTTL() time.Duration {
	return resultCacheTTL()
}

func (*accessor) CrossMonthConnections() bool {
	return crossMonthConnections()
}

func (*accessor) Parallelism() uint {
	return parallelism()
}

func loadSsmParams(ctx context.Context, cfg aws.Config, envNames ...string) (map[string]string, error) {
	reqNames := make([]string, 0, len(envNames))
	lookup := make(map[string]string)

	for _, envName := range envNames {
		reqName := os.Getenv(envName)
		if reqName == "" {
			return nil, fmt.Errorf("env variable %s required", envName)
		}

		reqNames = append(reqNames, reqName)
		lookup[reqName] = envName
	}

	resp, err := ssm.NewFromConfig(cfg).GetParameters(ctx, &ssm.GetParametersInput{
		Names:          reqNames,
		WithDecryption: aws.Bool(true),
	})

	if err != nil {
		return nil, err
	} else if len(resp.InvalidParameters) > 0 {
		return nil, fmt.Errorf("ssm invalid parameters: %v", resp.InvalidParameters)
	}

	result := make(map[string]string)
	for _, p := range resp.Parameters {
		result[lookup[*p.Name]] = *p.Value
	}

	return result, nil
}
