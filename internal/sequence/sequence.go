package sequence

import "context"

// Sequence hands out strictly increasing values. Implementations are atomic
// across every process sharing the same backing store.
type Sequence interface {
	Next(ctx context.Context) (int64, error)
	// AdvanceTo makes the following Next return at least floor. It never
	// moves the counter backwards.
	AdvanceTo(ctx context.Context, floor int64) error
}

// SeedFunc returns the first value a fresh sequence should hand out.
type SeedFunc func(ctx context.Context) (int64, error)
