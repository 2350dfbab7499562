package fetch

import (
	"context"
	"time"
)

// Record is the parsed JSON object returned by a successful fetch.
// A nil Record is the absence marker for an identifier whose fetch
// did not succeed.
type Record map[string]any

// RecordFetcher is the interface the collectors drive for single-record
// fetching.
type RecordFetcher interface {
	// FetchRecord performs one fetch for the given identifier.
	// A (nil, nil) return means the server answered with a non-success
	// status; an error return means the fetch itself failed.
	FetchRecord(ctx context.Context, id int) (Record, error)
}

// Result is the outcome of one collection run.
type Result struct {
	// Records holds one slot per identifier: index i for identifier i+1.
	// Slots of unsuccessful fetches stay nil.
	Records []Record

	// Fetched is the number of non-nil records.
	Fetched int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

func countFetched(records []Record) int {
	n := 0
	for _, r := range records {
		if r != nil {
			n++
		}
	}
	return n
}
