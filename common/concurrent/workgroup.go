package concurrent

import (
	"context"
	"golang.org/x/sync/errgroup"
	"iter"
	"slices"
)

// WorkGroup fans inputs out to Parallelism workers. Each worker folds its inputs into a private
// accumulator, the accumulators are merged by Combiner and the merged value is passed to Finisher.
type WorkGroup[In any, Acc any, Out any] struct {
	Parallelism uint
	Worker      func(ctx context.Context, v In, acc Acc) (Acc, error)
	Combiner    func(ctx context.Context, a, b Acc) (Acc, error)
	Finisher    func(ctx context.Context, acc Acc) (Out, error)
}

// Collector returns a WorkGroup which maps every input to zero or more outputs and
// returns all outputs. Output order is unspecified.
func Collector[In any, Out any](parallelism uint, fn func(ctx context.Context, v In) ([]Out, error)) WorkGroup[In, []Out, []Out] {
	return WorkGroup[In, []Out, []Out]{
		Parallelism: parallelism,
		Worker: func(ctx context.Context, v In, acc []Out) ([]Out, error) {
			out, err := fn(ctx, v)
			if err != nil {
				return acc, err
			}

			return append(acc, out...), nil
		},
		Combiner: func(ctx context.Context, a, b []Out) ([]Out, error) {
			return append(a, b...), nil
		},
		Finisher: func(ctx context.Context, acc []Out) ([]Out, error) {
			return acc, nil
		},
	}
}

func (wg WorkGroup[In, Acc, Out]) RunSlice(ctx context.Context, inputs []In) (Out, error) {
	return wg.RunSeq(ctx, slices.Values(inputs))
}

func (wg WorkGroup[In, Acc, Out]) RunSeq(ctx context.Context, seq iter.Seq[In]) (Out, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	return wg.RunChan(ctx, wg.feed(ctx, seq))
}

func (wg WorkGroup[In, Acc, Out]) RunChan(ctx context.Context, ch <-chan In) (Out, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var zero Out
	accCh, wait := wg.spawn(ctx, ch)
	acc, err := wg.merge(ctx, accCh)
	if err != nil {
		return zero, err
	}

	if err = wait(); err != nil {
		return zero, err
	}

	return wg.Finisher(ctx, acc)
}

func (wg WorkGroup[In, Acc, Out]) workers() uint {
	return max(wg.Parallelism, 1)
}

func (wg WorkGroup[In, Acc, Out]) merge(ctx context.Context, ch <-chan Acc) (Acc, error) {
	var merged Acc
	for {
		select {
		case acc, ok := <-ch:
			if !ok {
				return merged, nil
			}

			var err error
			if merged, err = wg.Combiner(ctx, merged, acc); err != nil {
				return merged, err
			}

		case <-ctx.Done():
			return merged, ctx.Err()
		}
	}
}

func (wg WorkGroup[In, Acc, Out]) spawn(ctx context.Context, inCh <-chan In) (<-chan Acc, func() error) {
	accCh := make(chan Acc, wg.workers())
	g, ctx := errgroup.WithContext(ctx)
	for range wg.workers() {
		g.Go(func() error {
			var acc Acc
			for {
				select {
				case in, ok := <-inCh:
					if !ok {
						select {
						case accCh <- acc:
							return nil

						case <-ctx.Done():
							return ctx.Err()
						}
					}

					var err error
					if acc, err = wg.Worker(ctx, in, acc); err != nil {
						return err
					}

				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(accCh)
		defer close(errCh)

		if err := g.Wait(); err != nil {
			errCh <- err
		}
	}()

	return accCh, func() error {
		return <-errCh
	}
}

func (wg WorkGroup[In, Acc, Out]) feed(ctx context.Context, seq iter.Seq[In]) <-chan In {
	ch := make(chan In, wg.workers())
	go func() {
		defer close(ch)

		for v := range seq {
			select {
			case ch <- v:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}
