package parallel

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_Execute(t *testing.T) {
	pool := NewWorkerPool[int, string](DefaultPoolConfig().WithWorkers(4))

	inputs := []int{1, 2, 3, 4, 5}
	results := pool.Execute(context.Background(), inputs, func(ctx context.Context, in int) (string, error) {
		return strconv.Itoa(in * 10), nil
	})

	if len(results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(results))
	}
	for i, r := range results {
		if r.Error != nil {
			t.Errorf("task %d failed: %v", i, r.Error)
		}
		if want := strconv.Itoa(inputs[i] * 10); r.Result != want {
			t.Errorf("result %d: expected %s, got %s (order must be preserved)", i, want, r.Result)
		}
	}
}

func TestWorkerPool_Errors(t *testing.T) {
	pool := NewWorkerPool[int, int](DefaultPoolConfig())
	boom := errors.New("boom")

	results := pool.Execute(context.Background(), []int{1, 2}, func(ctx context.Context, in int) (int, error) {
		if in == 2 {
			return 0, boom
		}
		return in, nil
	})

	if results[0].Error != nil {
		t.Error("task 1 should succeed")
	}
	if !errors.Is(results[1].Error, boom) {
		t.Errorf("task 2 should fail with boom, got %v", results[1].Error)
	}
}

func TestWorkerPool_BoundedConcurrency(t *testing.T) {
	pool := NewWorkerPool[int, int](PoolConfig{MaxWorkers: 2})

	var active, peak int64
	results := pool.Execute(context.Background(), []int{1, 2, 3, 4, 5, 6}, func(ctx context.Context, in int) (int, error) {
		n := atomic.AddInt64(&active, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&active, -1)
		return in, nil
	})

	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	if atomic.LoadInt64(&peak) > 2 {
		t.Errorf("expected at most 2 concurrent workers, saw %d", peak)
	}
}

func TestWorkerPool_EmptyInput(t *testing.T) {
	pool := NewWorkerPool[int, int](DefaultPoolConfig())
	if results := pool.Execute(context.Background(), nil, nil); results != nil {
		t.Error("expected nil results for empty input")
	}
}

func TestWorkerPool_CancelledContext(t *testing.T) {
	pool := NewWorkerPool[int, int](PoolConfig{MaxWorkers: 1})
	ctx, cancel := context.WithCancel(context.Background())

	var ran int64
	results := pool.Execute(ctx, []int{1, 2, 3, 4, 5, 6, 7, 8}, func(ctx context.Context, in int) (int, error) {
		if atomic.AddInt64(&ran, 1) == 1 {
			cancel()
		}
		time.Sleep(time.Millisecond)
		return in, nil
	})

	var skipped int
	for _, r := range results {
		if errors.Is(r.Error, context.Canceled) {
			skipped++
		}
	}
	if skipped == 0 {
		t.Error("expected some tasks to be skipped after cancellation")
	}
}
