package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studio-hub/studio-hub-elite/internal/domain/leaderboard"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/circuitbreaker"
	"github.com/studio-hub/studio-hub-elite/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD SNAPSHOT CACHE
// ══════════════════════════════════════════════════════════════════════════════

// keyBoard is the key pattern for cached boards.
const keyBoard = "leaderboard:%s:%s"

// DefaultBoardTTL bounds how stale a served board can be.
const DefaultBoardTTL = 5 * time.Minute

// BoardCache stores computed leaderboards in Redis. A circuit breaker
// shields reads and writes so a Redis outage degrades to recomputation
// instead of request failures.
type BoardCache struct {
	cache   *Cache
	breaker *circuitbreaker.CircuitBreaker
	log     *logger.Logger
}

var _ leaderboard.Cache = (*BoardCache)(nil)

// NewBoardCache creates the snapshot cache.
func NewBoardCache(cache *Cache, log *logger.Logger) *BoardCache {
	bc := &BoardCache{
		cache: cache,
		log:   log.With(logger.Component("board-cache")),
	}
	bc.breaker = circuitbreaker.CacheBreaker(func(name string, from, to circuitbreaker.State) {
		bc.log.Warn("cache breaker state change",
			logger.String("breaker", name),
			logger.String("from", from.String()),
			logger.String("to", to.String()),
		)
	})
	return bc
}

// Get returns the cached board for the category and period, or
// ErrSnapshotNotFound on a miss or an open breaker.
func (bc *BoardCache) Get(ctx context.Context, category leaderboard.Category, period leaderboard.Period) (*leaderboard.Board, error) {
	var board leaderboard.Board

	err := bc.breaker.Execute(ctx, func(ctx context.Context) error {
		return bc.cache.Get(ctx, boardKey(category, period), &board)
	})
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, shared.ErrSnapshotNotFound
		}
		if circuitbreaker.IsCircuitError(err) {
			return nil, shared.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("board cache get: %w", err)
	}
	return &board, nil
}

// Set stores a board with a TTL.
func (bc *BoardCache) Set(ctx context.Context, board *leaderboard.Board, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultBoardTTL
	}

	err := bc.breaker.Execute(ctx, func(ctx context.Context) error {
		return bc.cache.Set(ctx, boardKey(board.Category, board.Period), board, ttl)
	})
	if err != nil {
		if circuitbreaker.IsCircuitError(err) {
			return nil
		}
		return fmt.Errorf("board cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached board for the category and period.
func (bc *BoardCache) Invalidate(ctx context.Context, category leaderboard.Category, period leaderboard.Period) error {
	err := bc.breaker.Execute(ctx, func(ctx context.Context) error {
		return bc.cache.Delete(ctx, boardKey(category, period))
	})
	if err != nil && !circuitbreaker.IsCircuitError(err) {
		return fmt.Errorf("board cache invalidate: %w", err)
	}
	return nil
}

func boardKey(category leaderboard.Category, period leaderboard.Period) string {
	return fmt.Sprintf(keyBoard, category.String(), period.String())
}
