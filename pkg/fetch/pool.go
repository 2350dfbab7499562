package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds pooled collector configuration.
type Config struct {
	// Workers is the maximum number of fetches in flight at once.
	// Configurable independently of the record count.
	Workers int

	// Timeout per record fetch. Zero disables the per-fetch deadline.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		Workers: 10,
		Timeout: 15 * time.Second,
	}
}

// Pool collects records concurrently with a fixed-size worker pool.
type Pool struct {
	fetcher RecordFetcher
	config  Config
}

// NewPool creates a pooled collector.
func NewPool(fetcher RecordFetcher, config Config) *Pool {
	if config.Workers <= 0 {
		config.Workers = 10
	}

	return &Pool{
		fetcher: fetcher,
		config:  config,
	}
}

// job binds an identifier to its output slot. The binding is complete
// before any worker starts, so each slot is written by exactly one
// worker and no lock is needed on the output sequence.
type job struct {
	index int
	id    int
}

type jobResult struct {
	index  int
	record Record
}

// Collect fetches identifiers 1..n concurrently and returns the results
// in identifier order. Up to Workers fetches run in parallel; the rest
// queue until a worker frees up. Collect blocks until every fetch has
// completed and all workers have exited.
func (p *Pool) Collect(ctx context.Context, n int) (*Result, error) {
	if n < 0 {
		return nil, fmt.Errorf("record count must be >= 0 (got %d)", n)
	}

	start := time.Now()
	records := make([]Record, n)

	if n == 0 {
		return &Result{Records: records}, nil
	}

	workers := p.config.Workers
	if workers > n {
		workers = n
	}

	log.Info().
		Int("count", n).
		Int("workers", workers).
		Msg("Starting pooled fetch")

	queue := make(chan job, n)
	results := make(chan jobResult, n)

	for i := 0; i < n; i++ {
		queue <- job{index: i, id: i + 1}
	}
	close(queue)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go p.worker(ctx, queue, results, &wg, w)
	}

	// Close results once all workers have drained the queue.
	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		records[res.index] = res.record
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Records: records,
		Fetched: countFetched(records),
		Elapsed: time.Since(start),
	}

	log.Info().
		Int("fetched", result.Fetched).
		Int("count", n).
		Dur("duration", result.Elapsed).
		Msg("Pooled fetch complete")

	return result, nil
}

// worker processes jobs from the queue until it is drained or the
// context is cancelled.
func (p *Pool) worker(ctx context.Context, queue <-chan job, results chan<- jobResult, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()

	for j := range queue {
		select {
		case <-ctx.Done():
			log.Debug().
				Int("worker_id", workerID).
				Msg("Worker stopping (context cancelled)")
			return
		default:
		}

		fetchCtx := ctx
		cancel := context.CancelFunc(func() {})
		if p.config.Timeout > 0 {
			fetchCtx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		}

		record, err := p.fetcher.FetchRecord(fetchCtx, j.id)
		cancel()

		if err != nil {
			// The slot keeps its absence marker; siblings keep running.
			log.Warn().
				Err(err).
				Int("worker_id", workerID).
				Int("id", j.id).
				Msg("Record fetch failed")
			continue
		}

		// Buffered to capacity n, so the send never blocks.
		results <- jobResult{index: j.index, record: record}
	}
}
