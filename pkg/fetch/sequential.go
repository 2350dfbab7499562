package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Sequential fetches identifiers 1..n one at a time, in order.
// An unsuccessful fetch leaves the absence marker in its slot; an error
// from the fetcher is logged and treated the same way.
func Sequential(ctx context.Context, fetcher RecordFetcher, n int) (*Result, error) {
	if n < 0 {
		return nil, fmt.Errorf("record count must be >= 0 (got %d)", n)
	}

	start := time.Now()
	records := make([]Record, n)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := fetcher.FetchRecord(ctx, i+1)
		if err != nil {
			log.Warn().
				Err(err).
				Int("id", i+1).
				Msg("Record fetch failed")
			continue
		}
		records[i] = record
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
		Msg("Sequential fetch complete")

	return result, nil
}
