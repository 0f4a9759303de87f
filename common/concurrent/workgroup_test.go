package concurrent

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"slices"
	"testing"
	"time"
)

func TestWorkGroup_RunSeq_Aggregate(t *testing.T) {
	type stats struct {
		count, min, max, sum int
	}

	wg := WorkGroup[int, stats, stats]{
		Parallelism: 10,
		Worker: func(ctx context.Context, v int, acc stats) (stats, error) {
			if acc.count == 0 {
				return stats{1, v, v, v}, nil
			}

			return stats{acc.count + 1, min(acc.min, v), max(acc.max, v), acc.sum + v}, nil
		},
		Combiner: func(ctx context.Context, a, b stats) (stats, error) {
			switch {
			case a.count == 0:
				return b, nil
			case b.count == 0:
				return a, nil
			}

			return stats{a.count + b.count, min(a.min, b.min), max(a.max, b.max), a.sum + b.sum}, nil
		},
		Finisher: func(ctx context.Context, acc stats) (stats, error) {
			return acc, nil
		},
	}

	result, err := wg.RunSeq(context.Background(), func(yield func(int) bool) {
		for i := -50; i <= 100; i++ {
			if !yield(i) {
				break
			}
		}
	})

	if assert.NoError(t, err) {
		assert.Equal(t, stats{151, -50, 100, 3775}, result)
	}
}

func TestCollector(t *testing.T) {
	wg := Collector(4, func(ctx context.Context, v int) ([]string, error) {
		if v%2 == 0 {
			return nil, nil
		}

		return []string{time.Month(v).String()}, nil
	})

	result, err := wg.RunSlice(context.Background(), []int{1, 2, 3, 4, 5})
	if assert.NoError(t, err) {
		slices.Sort(result)
		assert.Equal(t, []string{"January", "March", "May"}, result)
	}
}

func TestCollector_ZeroParallelism(t *testing.T) {
	wg := Collector(0, func(ctx context.Context, v int) ([]int, error) {
		return []int{v * 2}, nil
	})

	result, err := wg.RunSlice(context.Background(), []int{1, 2, 3})
	if assert.NoError(t, err) {
		assert.ElementsMatch(t, []int{2, 4, 6}, result)
	}
}

func TestCollector_Empty(t *testing.T) {
	wg := Collector(3, func(ctx context.Context, v int) ([]int, error) {
		return []int{v}, nil
	})

	result, err := wg.RunSlice(context.Background(), nil)
	if assert.NoError(t, err) {
		assert.Empty(t, result)
	}
}

func TestWorkGroup_Run_Errors(t *testing.T) {
	workerErr := errors.New("worker")
	combinerErr := errors.New("combiner")
	finisherErr := errors.New("finisher")

	stdWorker := func(ctx context.Context, v struct{}, acc struct{}) (struct{}, error) {
		return struct{}{}, nil
	}

	stdCombiner := func(ctx context.Context, a, b struct{}) (struct{}, error) {
		return struct{}{}, nil
	}

	stdFinisher := func(ctx context.Context, acc struct{}) (struct{}, error) {
		return struct{}{}, nil
	}

	testCases := []struct {
		name        string
		worker      func(ctx context.Context, v struct{}, acc struct{}) (struct{}, error)
		combiner    func(ctx context.Context, a, b struct{}) (struct{}, error)
		finisher    func(ctx context.Context, acc struct{}) (struct{}, error)
		expectedErr error
	}{
		{
			name: "worker",
			worker: func(ctx context.Context, v struct{}, acc struct{}) (struct{}, error) {
				return struct{}{}, workerErr
			},
			combiner:    stdCombiner,
			finisher:    stdFinisher,
			expectedErr: workerErr,
		},
		{
			name:   "combiner",
			worker: stdWorker,
			combiner: func(ctx context.Context, a, b struct{}) (struct{}, error) {
				return struct{}{}, combinerErr
			},
			finisher:    stdFinisher,
			expectedErr: combinerErr,
		},
		{
			name:     "finisher",
			worker:   stdWorker,
			combiner: stdCombiner,
			finisher: func(ctx context.Context, acc struct{}) (struct{}, error) {
				return struct{}{}, finisherErr
			},
			expectedErr: finisherErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wg := WorkGroup[struct{}, struct{}, struct{}]{
				Parallelism: 1,
				Worker:      tc.worker,
				Combiner:    tc.combiner,
				Finisher:    tc.finisher,
			}

			_, err := wg.RunChan(context.Background(), singleValueChan(struct{}{}))
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestWorkGroup_Run_Cancel(t *testing.T) {
	wg := blockingCollector()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := wg.RunChan(ctx, singleValueChan(struct{}{}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkGroup_Run_Timeout(t *testing.T) {
	wg := blockingCollector()

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*10)
	defer cancel()

	_, err := wg.RunChan(ctx, singleValueChan(struct{}{}))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func blockingCollector() WorkGroup[struct{}, []struct{}, []struct{}] {
	return Collector(10, func(ctx context.Context, v struct{}) ([]struct{}, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
}

func singleValueChan[T any](v T) <-chan T {
	ch := make(chan T, 1)
	ch <- v
	close(ch)

	return ch
}
