package scde

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolParallelForCoversRange(t *testing.T) {
	pool := newWorkerPool(4)
	defer pool.Close()

	const n = 97
	var mu sync.Mutex
	seen := make([]bool, n)

	pool.ParallelFor(n, func(start, end int) {
		mu.Lock()
		for i := start; i < end; i++ {
			seen[i] = true
		}
		mu.Unlock()
	})

	for i, v := range seen {
		if !v {
			t.Fatalf("index %d not covered", i)
		}
	}
}

func TestWorkerPoolParallelForZeroN(t *testing.T) {
	pool := newWorkerPool(2)
	defer pool.Close()
	called := false
	pool.ParallelFor(0, func(start, end int) { called = true })
	if called {
		t.Fatal("ParallelFor(0, ...) should not invoke fn")
	}
}

func TestWorkerPoolFallsBackWhenClosed(t *testing.T) {
	pool := newWorkerPool(2)
	pool.Close()

	var count int32
	pool.ParallelFor(10, func(start, end int) {
		atomic.AddInt32(&count, int32(end-start))
	})
	if count != 10 {
		t.Fatalf("got %d, want 10 (sequential fallback after Close)", count)
	}
}

func TestWorkerPoolCloseIsIdempotent(t *testing.T) {
	pool := newWorkerPool(2)
	pool.Close()
	pool.Close() // must not panic
}

func TestNewWorkerPoolNonPositiveFallsBackToGOMAXPROCS(t *testing.T) {
	pool := newWorkerPool(0)
	defer pool.Close()
	if pool.workers <= 0 {
		t.Fatalf("workers = %d, want > 0", pool.workers)
	}
}
