// Package fetch implements ordered collection of user records, either
// sequentially or through a bounded worker pool.
//
// Both collectors produce a result sequence in identifier order: slot i
// holds the record for identifier i+1, or nil when that fetch did not
// succeed. The pooled collector decouples completion order from output
// order by binding every job to its output index before any worker runs.
//
// Example usage:
//
//	pool := fetch.NewPool(usersClient, fetch.DefaultConfig())
//	result, err := pool.Collect(ctx, 10)
//
// The pooled collector:
//   - Pre-allocates one output slot per identifier
//   - Spawns a fixed-size worker pool (default 10 workers)
//   - Distributes identifiers across workers via a job queue
//   - Writes each completion into its pre-assigned slot
//   - Joins all workers before returning
//
// A fetch that fails with an error (network fault, decode failure,
// per-fetch timeout) leaves the absence marker in its slot and is logged
// at warn level; it never aborts the rest of the batch.
package fetch
