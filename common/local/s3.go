//go:build !lambda

package local

import (
	"context"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/explore-flights/interconnections/common/adapt"
	"io"
	"os"
	"path/filepath"
)

// S3Client stores objects as plain files below basePath/{bucket}/{key}.
type S3Client struct {
	basePath string
}

func NewS3Client(basePath string) *S3Client {
	return &S3Client{basePath}
}

func (s3c *S3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f, err := os.Open(s3c.path(params.Bucket, params.Key))
	if err != nil {
		return nil, err
	}

	return &s3.GetObjectOutput{Body: f}, nil
}

func (s3c *S3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	fpath := s3c.path(params.Bucket, params.Key)
	if err := os.MkdirAll(filepath.Dir(fpath), 0750); err != nil {
		return nil, err
	}

	// write to a sibling file first so concurrent readers never see a partial object
	tmp, err := os.CreateTemp(filepath.Dir(fpath), ".put-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, params.Body); err != nil {
		_ = tmp.Close()
		return nil, err
	}

	if err = tmp.Close(); err != nil {
		return nil, err
	}

	if err = os.Rename(tmp.Name(), fpath); err != nil {
		return nil, err
	}

	return &s3.PutObjectOutput{}, nil
}

func (s3c *S3Client) path(bucket, key *string) string {
	return filepath.Join(s3c.basePath, *bucket, filepath.FromSlash(*key))
}

var _ adapt.S3Client = (*S3Client)(nil)
