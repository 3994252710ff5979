package music

import (
	"context"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// Repository defines persistence for tracks and contributions.
type Repository interface {
	// CreateTrack inserts a track.
	CreateTrack(ctx context.Context, track *Track) error

	// FindTrack returns a track by id, or ErrTrackNotFound.
	FindTrack(ctx context.Context, trackID string) (*Track, error)

	// ListTracks returns tracks, newest first.
	ListTracks(ctx context.Context, p shared.Pagination) ([]*Track, error)

	// AddContributor appends the member to the track's contributor set.
	AddContributor(ctx context.Context, trackID string, userID shared.UserID) error

	// IncrementListens bumps the listen counter.
	IncrementListens(ctx context.Context, trackID string) error

	// IncrementLikes bumps the like counter.
	IncrementLikes(ctx context.Context, trackID string) error

	// CreateContribution inserts a contribution record.
	CreateContribution(ctx context.Context, contribution *Contribution) error

	// ListContributions returns a track's contributions, oldest first.
	ListContributions(ctx context.Context, trackID string) ([]*Contribution, error)

	// CountTracksByUser returns how many tracks the member created.
	CountTracksByUser(ctx context.Context, userID shared.UserID) (int, error)

	// AggregateTracksByCreator folds every track into per-creator totals.
	// Track stats are lifetime values, so this aggregate is not windowed.
	AggregateTracksByCreator(ctx context.Context) (map[shared.UserID]TrackTotals, error)

	// CountContributionsByUser folds contributions into per-member counts.
	CountContributionsByUser(ctx context.Context) (map[shared.UserID]int, error)
}

// TrackTotals summarizes a creator's tracks for leaderboard scoring.
type TrackTotals struct {
	Tracks  int
	Listens int
	Likes   int
}
