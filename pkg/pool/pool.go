package pool

import (
	"context"
	"sync"
)

// WorkerFunc defines the function signature for a worker that processes an item and may return an error.
type WorkerFunc[T any] func(ctx context.Context, item T) error

// Run executes a worker pool. It processes a slice of items concurrently.
// It returns a slice containing any errors that occurred during processing.
func Run[T any](ctx context.Context, items []T, numWorkers int, workerFunc WorkerFunc[T]) []error {
	var wg sync.WaitGroup
	taskChan := make(chan T, numWorkers)
	errChan := make(chan error, len(items))

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range taskChan {
				select {
				case <-ctx.Done():
					return
				default:
					if err := workerFunc(ctx, item); err != nil {
						errChan <- err
					}
				}
			}
		}()
	}

OUT:
	for _, item := range items {
		select {
		case taskChan <- item:
		case <-ctx.Done():
			// Stop feeding tasks if the context is cancelled
			break OUT
		}
	}
	close(taskChan)

	wg.Wait()
	close(errChan)

	var allErrors []error
	for err := range errChan {
		allErrors = append(allErrors, err)
	}
	return allErrors
}

// MapFunc defines the function signature for a worker that transforms an item into a result.
type MapFunc[T, R any] func(ctx context.Context, item T) (R, error)

// Map executes a worker pool that collects results. Results keep the order
// of the input slice; failed items are left zero-valued and their errors
// returned alongside.
func Map[T, R any](ctx context.Context, items []T, numWorkers int, mapFunc MapFunc[T, R]) ([]R, []error) {
	results := make([]R, len(items))
	var mu sync.Mutex
	var errs []error

	indexes := make([]int, len(items))
	for i := range items {
		indexes[i] = i
	}

	poolErrs := Run(ctx, indexes, numWorkers, func(ctx context.Context, i int) error {
		r, err := mapFunc(ctx, items[i])
		if err != nil {
			return err
		}
		mu.Lock()
		results[i] = r
		mu.Unlock()
		return nil
	})
	errs = append(errs, poolErrs...)

	return results, errs
}
