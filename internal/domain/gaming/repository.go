package gaming

import (
	"context"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// Repository defines persistence for matches and scores.
type Repository interface {
	// CreateMatch inserts a match.
	CreateMatch(ctx context.Context, match *Match) error

	// FindMatch returns a match by id, or ErrMatchNotFound.
	FindMatch(ctx context.Context, matchID string) (*Match, error)

	// UpdateMatch persists status, winner, and timestamps.
	UpdateMatch(ctx context.Context, match *Match) error

	// ListMatches returns matches, newest first, optionally filtered by
	// status (empty status means all).
	ListMatches(ctx context.Context, status MatchStatus, limit int) ([]*Match, error)

	// CreateScore inserts a score row.
	CreateScore(ctx context.Context, score *Score) error

	// ListScores returns a match's scores, highest first.
	ListScores(ctx context.Context, matchID string) ([]*Score, error)

	// CountWinsByUser returns how many completed matches the member won.
	CountWinsByUser(ctx context.Context, userID shared.UserID) (int, error)

	// CountScoresByUser returns how many score rows the member submitted.
	CountScoresByUser(ctx context.Context, userID shared.UserID) (int, error)

	// AggregateInRange folds scores submitted within the window into
	// per-member totals. A win is a score row with rank position 1.
	AggregateInRange(ctx context.Context, rng shared.TimeRange) (map[shared.UserID]Totals, error)

	// SumScoresByUser folds every score row into lifetime per-member sums.
	SumScoresByUser(ctx context.Context) (map[shared.UserID]int, error)
}

// Totals summarizes a member's gaming results for leaderboard scoring.
type Totals struct {
	Wins       int
	TotalScore int
	TotalKills int
	Deaths     int
	Matches    int
}

// KDRatio returns kills per death, treating zero deaths as the kill count.
func (t Totals) KDRatio() float64 {
	if t.Deaths == 0 {
		return float64(t.TotalKills)
	}
	return float64(t.TotalKills) / float64(t.Deaths)
}
