package pool_test

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/decoutkhanqindev/motelctl/pkg/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Run(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	var count atomic.Int64

	workerFunc := func(ctx context.Context, item int) error {
		count.Add(1)
		time.Sleep(10 * time.Millisecond) // Simulate work
		return nil
	}

	errs := pool.Run(context.Background(), items, 3, workerFunc)

	assert.Empty(t, errs)
	assert.Equal(t, int64(len(items)), count.Load())
}

func TestPool_CollectsErrors(t *testing.T) {
	items := []int{1, 2, 3, 4}
	expectedErr := errors.New("worker failed")

	workerFunc := func(ctx context.Context, item int) error {
		if item%2 == 0 {
			return expectedErr
		}
		return nil
	}

	errs := pool.Run(context.Background(), items, 2, workerFunc)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], expectedErr)
	assert.ErrorIs(t, errs[1], expectedErr)
}

func TestPool_ContextCancellation(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}
	var processedCount atomic.Int64

	ctx, cancel := context.WithCancel(context.Background())

	workerFunc := func(ctx context.Context, item int) error {
		if processedCount.Add(1) == 1 {
			cancel()
		}
		time.Sleep(5 * time.Millisecond)
		return nil
	}

	pool.Run(ctx, items, 2, workerFunc)

	assert.Less(t, processedCount.Load(), int64(len(items)), "cancellation should stop the pool before all items are processed")
}

func TestMap_PreservesOrder(t *testing.T) {
	items := []int{3, 1, 4, 1, 5}

	results, errs := pool.Map(context.Background(), items, 3, func(ctx context.Context, item int) (string, error) {
		time.Sleep(time.Duration(item) * time.Millisecond)
		return strconv.Itoa(item * 10), nil
	})

	require.Empty(t, errs)
	assert.Equal(t, []string{"30", "10", "40", "10", "50"}, results)
}

func TestMap_FailedItemsAreZeroValued(t *testing.T) {
	items := []int{1, 2, 3}
	expectedErr := errors.New("bad item")

	results, errs := pool.Map(context.Background(), items, 2, func(ctx context.Context, item int) (string, error) {
		if item == 2 {
			return "", expectedErr
		}
		return strconv.Itoa(item), nil
	})

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], expectedErr)
	assert.Equal(t, []string{"1", "", "3"}, results)
}
