package leaderboard

import (
	"context"
	"time"
)

// Cache stores computed boards so reads do not recompute the aggregates.
// A miss returns ErrSnapshotNotFound; callers fall back to computing.
type Cache interface {
	// Get returns the cached board for the category and period.
	Get(ctx context.Context, category Category, period Period) (*Board, error)

	// Set stores a board with a TTL.
	Set(ctx context.Context, board *Board, ttl time.Duration) error

	// Invalidate drops the cached board for the category and period.
	Invalidate(ctx context.Context, category Category, period Period) error
}
