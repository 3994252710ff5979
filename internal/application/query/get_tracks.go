package query

import (
	"context"
	"fmt"

	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/music"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// TRACK QUERY
// Track listings and details enriched with contributor profiles.
// ══════════════════════════════════════════════════════════════════════════════

// ContributorDetail is the public profile of a contributor.
type ContributorDetail struct {
	UserID  shared.UserID `json:"user_id"`
	Name    string        `json:"name"`
	Picture string        `json:"picture,omitempty"`
}

// TrackView is a track with its contribution breakdown.
type TrackView struct {
	Track         *music.Track          `json:"track"`
	Contributions []*music.Contribution `json:"contributions"`
	Contributors  []ContributorDetail   `json:"contributor_details"`
}

// TrackQuery serves music reads.
type TrackQuery struct {
	music   music.Repository
	members member.Repository
}

// NewTrackQuery creates the query service.
func NewTrackQuery(musicRepo music.Repository, members member.Repository) *TrackQuery {
	return &TrackQuery{music: musicRepo, members: members}
}

// List returns tracks with contributor enrichment, newest first.
func (q *TrackQuery) List(ctx context.Context, p shared.Pagination) ([]TrackView, error) {
	tracks, err := q.music.ListTracks(ctx, p)
	if err != nil {
		return nil, err
	}

	views := make([]TrackView, 0, len(tracks))
	for _, track := range tracks {
		view, err := q.buildView(ctx, track)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Get returns one track with its contributions and contributor details.
func (q *TrackQuery) Get(ctx context.Context, trackID string) (*TrackView, error) {
	track, err := q.music.FindTrack(ctx, trackID)
	if err != nil {
		return nil, err
	}
	return q.buildView(ctx, track)
}

func (q *TrackQuery) buildView(ctx context.Context, track *music.Track) (*TrackView, error) {
	contributions, err := q.music.ListContributions(ctx, track.TrackID)
	if err != nil {
		return nil, fmt.Errorf("track view: contributions: %w", err)
	}

	seen := make(map[shared.UserID]struct{})
	ids := make([]shared.UserID, 0, len(contributions))
	for _, c := range contributions {
		if _, ok := seen[c.UserID]; !ok {
			seen[c.UserID] = struct{}{}
			ids = append(ids, c.UserID)
		}
	}

	users, err := q.members.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("track view: contributors: %w", err)
	}

	details := make([]ContributorDetail, 0, len(ids))
	for _, id := range ids {
		if u, ok := users[id]; ok {
			details = append(details, ContributorDetail{UserID: id, Name: u.Name, Picture: u.Picture})
		}
	}

	return &TrackView{Track: track, Contributions: contributions, Contributors: details}, nil
}
