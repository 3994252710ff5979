package query

import (
	"context"
	"fmt"

	"github.com/studio-hub/studio-hub-elite/internal/domain/gaming"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MATCH QUERY
// Match listings and details enriched with participant profiles and scores.
// ══════════════════════════════════════════════════════════════════════════════

// ParticipantDetail is the public profile of a match participant.
type ParticipantDetail struct {
	UserID  shared.UserID `json:"user_id"`
	Name    string        `json:"name"`
	Picture string        `json:"picture,omitempty"`
	Level   int           `json:"level"`
}

// MatchView is a match with participants and submitted scores.
type MatchView struct {
	Match        *gaming.Match       `json:"match"`
	Participants []ParticipantDetail `json:"participant_details"`
	Scores       []*gaming.Score     `json:"scores"`
}

// MatchQuery serves gaming reads.
type MatchQuery struct {
	gaming  gaming.Repository
	members member.Repository
}

// NewMatchQuery creates the query service.
func NewMatchQuery(gamingRepo gaming.Repository, members member.Repository) *MatchQuery {
	return &MatchQuery{gaming: gamingRepo, members: members}
}

// List returns matches, newest first, optionally filtered by status.
func (q *MatchQuery) List(ctx context.Context, status gaming.MatchStatus, limit int) ([]MatchView, error) {
	if limit <= 0 {
		limit = 20
	}
	matches, err := q.gaming.ListMatches(ctx, status, limit)
	if err != nil {
		return nil, err
	}

	views := make([]MatchView, 0, len(matches))
	for _, match := range matches {
		view, err := q.buildView(ctx, match)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Get returns one match with its participants and scores.
func (q *MatchQuery) Get(ctx context.Context, matchID string) (*MatchView, error) {
	match, err := q.gaming.FindMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return q.buildView(ctx, match)
}

func (q *MatchQuery) buildView(ctx context.Context, match *gaming.Match) (*MatchView, error) {
	users, err := q.members.FindByIDs(ctx, match.Participants)
	if err != nil {
		return nil, fmt.Errorf("match view: participants: %w", err)
	}

	participants := make([]ParticipantDetail, 0, len(match.Participants))
	for _, id := range match.Participants {
		if u, ok := users[id]; ok {
			participants = append(participants, ParticipantDetail{
				UserID:  id,
				Name:    u.Name,
				Picture: u.Picture,
				Level:   u.Level.Int(),
			})
		}
	}

	scores, err := q.gaming.ListScores(ctx, match.MatchID)
	if err != nil {
		return nil, fmt.Errorf("match view: scores: %w", err)
	}

	return &MatchView{Match: match, Participants: participants, Scores: scores}, nil
}
