//go:build lambda

package adapt

import (
	"errors"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"net/http"
)

func IsS3NotFound(err error) bool {
	if err == nil {
		return false
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var respError *awshttp.ResponseError
	return errors.As(err, &respError) && respError.HTTPStatusCode() == http.StatusNotFound
}
