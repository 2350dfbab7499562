package fetch

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Workers != 10 {
		t.Errorf("Workers = %d, want 10", cfg.Workers)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Timeout)
	}
}

func TestNewPool_NormalizesWorkers(t *testing.T) {
	pool := NewPool(&stubFetcher{}, Config{Workers: 0})

	if pool.config.Workers != 10 {
		t.Errorf("Workers = %d, want 10", pool.config.Workers)
	}
}

func TestPool_Order(t *testing.T) {
	fetcher := &stubFetcher{}
	pool := NewPool(fetcher, DefaultConfig())

	result, err := pool.Collect(context.Background(), 10)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	checkOrdered(t, result.Records, 10, nil)

	if result.Fetched != 10 {
		t.Errorf("Fetched = %d, want 10", result.Fetched)
	}
	if fetcher.Calls() != 10 {
		t.Errorf("fetcher calls = %d, want 10", fetcher.Calls())
	}
}

func TestPool_OrderIndependentOfCompletion(t *testing.T) {
	// Higher identifiers finish first, inverting completion order
	// relative to submission order.
	fetcher := &stubFetcher{
		delayFn: func(id int) time.Duration {
			return time.Duration(8-id) * 10 * time.Millisecond
		},
	}
	pool := NewPool(fetcher, Config{Workers: 8})

	result, err := pool.Collect(context.Background(), 8)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	checkOrdered(t, result.Records, 8, nil)
}

func TestPool_MatchesSequential(t *testing.T) {
	absent := map[int]bool{2: true, 5: true}

	seq, err := Sequential(context.Background(), &stubFetcher{absent: absent}, 6)
	if err != nil {
		t.Fatalf("Sequential failed: %v", err)
	}

	pooled, err := NewPool(&stubFetcher{absent: absent}, DefaultConfig()).Collect(context.Background(), 6)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if !reflect.DeepEqual(seq.Records, pooled.Records) {
		t.Errorf("pooled records = %v, want %v", pooled.Records, seq.Records)
	}
}

func TestPool_AbsentSubset(t *testing.T) {
	absent := map[int]bool{1: true, 3: true}
	pool := NewPool(&stubFetcher{absent: absent}, DefaultConfig())

	result, err := pool.Collect(context.Background(), 3)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	checkOrdered(t, result.Records, 3, absent)

	if result.Fetched != 1 {
		t.Errorf("Fetched = %d, want 1", result.Fetched)
	}
}

func TestPool_BoundedConcurrency(t *testing.T) {
	fetcher := &stubFetcher{delay: 20 * time.Millisecond}
	pool := NewPool(fetcher, Config{Workers: 2})

	result, err := pool.Collect(context.Background(), 8)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if fetcher.Calls() != 8 {
		t.Errorf("fetcher calls = %d, want 8 (no operation dropped)", fetcher.Calls())
	}
	if fetcher.MaxInFlight() > 2 {
		t.Errorf("max in-flight = %d, want <= 2", fetcher.MaxInFlight())
	}

	checkOrdered(t, result.Records, 8, nil)
}

func TestPool_SingleWorkerMatchesSequential(t *testing.T) {
	absent := map[int]bool{2: true}

	seq, err := Sequential(context.Background(), &stubFetcher{absent: absent}, 4)
	if err != nil {
		t.Fatalf("Sequential failed: %v", err)
	}

	fetcher := &stubFetcher{absent: absent}
	pooled, err := NewPool(fetcher, Config{Workers: 1}).Collect(context.Background(), 4)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if fetcher.MaxInFlight() != 1 {
		t.Errorf("max in-flight = %d, want 1", fetcher.MaxInFlight())
	}
	if !reflect.DeepEqual(seq.Records, pooled.Records) {
		t.Errorf("pooled records = %v, want %v", pooled.Records, seq.Records)
	}
}

func TestPool_Empty(t *testing.T) {
	fetcher := &stubFetcher{}
	pool := NewPool(fetcher, DefaultConfig())

	result, err := pool.Collect(context.Background(), 0)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(result.Records) != 0 {
		t.Errorf("len(Records) = %d, want 0", len(result.Records))
	}
	if fetcher.Calls() != 0 {
		t.Errorf("fetcher calls = %d, want 0", fetcher.Calls())
	}
}

func TestPool_NegativeCount(t *testing.T) {
	if _, err := NewPool(&stubFetcher{}, DefaultConfig()).Collect(context.Background(), -1); err == nil {
		t.Error("Expected error for negative count")
	}
}

func TestPool_FetchErrorLeavesAbsence(t *testing.T) {
	fetcher := &stubFetcher{
		fail: map[int]error{2: errors.New("connection refused")},
	}
	pool := NewPool(fetcher, DefaultConfig())

	result, err := pool.Collect(context.Background(), 3)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	checkOrdered(t, result.Records, 3, map[int]bool{2: true})

	if result.Fetched != 2 {
		t.Errorf("Fetched = %d, want 2", result.Fetched)
	}
}

func TestPool_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &stubFetcher{delay: 10 * time.Millisecond}
	if _, err := NewPool(fetcher, DefaultConfig()).Collect(ctx, 5); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
