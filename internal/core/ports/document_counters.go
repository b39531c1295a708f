package ports

import "context"

// DocumentCounters allocates yearly-scoped sequence numbers for generated
// documents. Next must be atomic: two orders reaching a generation edge
// concurrently must never receive the same sequence number for the same
// (kind, year) pair.
type DocumentCounters interface {
	Next(ctx context.Context, kind string, year int) (int64, error)
}
