package xsync

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"sync/atomic"
	"testing"
)

func TestPreload_Value(t *testing.T) {
	var calls atomic.Int32
	pl := NewPreload(func() (string, error) {
		calls.Add(1)
		return "secret", nil
	})

	for range 3 {
		v, err := pl.Value(context.Background())
		if assert.NoError(t, err) {
			assert.Equal(t, "secret", v)
		}
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestPreload_Error(t *testing.T) {
	fetchErr := errors.New("fetch")
	pl := NewPreload(func() (int, error) {
		return 0, fetchErr
	})

	_, err := pl.Value(context.Background())
	assert.ErrorIs(t, err, fetchErr)
}

func TestPreload_ContextDone(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	pl := NewPreload(func() (int, error) {
		<-block
		return 1, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pl.Value(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
