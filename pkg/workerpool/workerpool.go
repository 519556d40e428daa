// Package workerpool provides bounded fan-out helpers.
package workerpool

import (
	"context"
	"sync"
)

// Map applies fn to every item on at most workerCount goroutines and returns
// the results in item order. The first error cancels the remaining work.
func Map[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	fn func(context.Context, T) (R, error),
) ([]R, error) {
	results := make([]R, len(items))
	err := run(ctx, workerCount, len(items), func(ctx context.Context, i int) error {
		r, err := fn(ctx, items[i])
		if err != nil {
			return err
		}
		results[i] = r
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Process runs process for every item on at most workerCount goroutines.
// If process returns an error, onCancel is invoked and further work stops.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	return run(ctx, workerCount, len(items), func(ctx context.Context, i int) error {
		return process(ctx, items[i])
	}, onCancel)
}

func run(
	ctx context.Context,
	workerCount int,
	n int,
	do func(context.Context, int) error,
	onCancel func(),
) error {
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > n && n > 0 {
		workerCount = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	indexes := make(chan int)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			if onCancel != nil {
				onCancel()
			}
			cancel()
		})
	}

	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if ctx.Err() != nil {
					continue
				}
				if err := do(ctx, i); err != nil {
					fail(err)
				}
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
