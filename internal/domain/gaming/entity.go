// Package gaming holds the competition domain: matches, their lifecycle,
// and submitted scores.
package gaming

import (
	"time"

	"github.com/google/uuid"

	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// GameType classifies a match.
type GameType string

const (
	GameFPS          GameType = "fps"
	GameFighting     GameType = "fighting"
	GameRacing       GameType = "racing"
	GameSports       GameType = "sports"
	GameStrategy     GameType = "strategy"
	GameBattleRoyale GameType = "battle_royale"
)

// IsValid checks that the game type is known.
func (g GameType) IsValid() bool {
	switch g {
	case GameFPS, GameFighting, GameRacing, GameSports, GameStrategy, GameBattleRoyale:
		return true
	}
	return false
}

// String returns the string representation.
func (g GameType) String() string {
	return string(g)
}

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchPending    MatchStatus = "pending"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
)

// Match is a competitive session between members.
// Lifecycle: pending -> in_progress -> completed.
type Match struct {
	MatchID      string          `json:"match_id"`
	Title        string          `json:"title"`
	GameType     GameType        `json:"game_type"`
	GameName     string          `json:"game_name,omitempty"`
	Participants []shared.UserID `json:"participants"`
	WinnerID     *shared.UserID  `json:"winner_id,omitempty"`
	Status       MatchStatus     `json:"status"`
	CreatedBy    shared.UserID   `json:"created_by"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`
	EndedAt      *time.Time      `json:"ended_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewMatch creates a pending match. The creator joins the participant
// list automatically.
func NewMatch(title string, gameType GameType, gameName string, participants []shared.UserID, createdBy shared.UserID) (*Match, error) {
	if title == "" {
		return nil, shared.NewDomainError("gaming", "NewMatch", shared.ErrEmptyValue, "title cannot be empty")
	}
	if !gameType.IsValid() {
		return nil, shared.NewDomainError("gaming", "NewMatch", shared.ErrInvalidInput, "unknown game type: "+gameType.String())
	}

	m := &Match{
		MatchID:      "match_" + uuid.NewString()[:12],
		Title:        title,
		GameType:     gameType,
		GameName:     gameName,
		Participants: participants,
		Status:       MatchPending,
		CreatedBy:    createdBy,
		CreatedAt:    timeutil.Now(),
	}
	if !m.HasParticipant(createdBy) {
		m.Participants = append(m.Participants, createdBy)
	}
	return m, nil
}

// HasParticipant reports whether the member is in the match.
func (m *Match) HasParticipant(userID shared.UserID) bool {
	for _, p := range m.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// CanManage reports whether the member may start or complete the match.
func (m *Match) CanManage(userID shared.UserID, isAdmin bool) bool {
	return m.CreatedBy == userID || isAdmin
}

// Start moves the match to in_progress.
func (m *Match) Start(at time.Time) error {
	if m.Status != MatchPending {
		return shared.ErrMatchNotPending
	}
	m.Status = MatchInProgress
	t := at
	m.StartedAt = &t
	return nil
}

// Complete ends the match, recording the winner derived from scores.
// A match with no scores completes with no winner.
func (m *Match) Complete(at time.Time, winnerID *shared.UserID) error {
	if m.Status == MatchCompleted {
		return shared.NewDomainError("gaming", "Complete", shared.ErrStateTransition, "match already completed")
	}
	m.Status = MatchCompleted
	t := at
	m.EndedAt = &t
	m.WinnerID = winnerID
	return nil
}

// Score is one member's result in a match.
type Score struct {
	ScoreID      string        `json:"score_id"`
	MatchID      string        `json:"match_id"`
	UserID       shared.UserID `json:"user_id"`
	Score        int           `json:"score"`
	Kills        int           `json:"kills"`
	Deaths       int           `json:"deaths"`
	Assists      int           `json:"assists"`
	RankPosition int           `json:"rank_position"`
	XPEarned     int           `json:"xp_earned"`
	CreatedAt    time.Time     `json:"created_at"`
}

// NewScore validates and records a match result, computing the XP reward
// from the performance formula.
func NewScore(matchID string, userID shared.UserID, score, kills, deaths, assists, rankPosition int) (*Score, error) {
	if !gamification.IsValidScore(score) {
		return nil, shared.ErrInvalidScore
	}
	return &Score{
		ScoreID:      "score_" + uuid.NewString()[:12],
		MatchID:      matchID,
		UserID:       userID,
		Score:        score,
		Kills:        kills,
		Deaths:       deaths,
		Assists:      assists,
		RankPosition: rankPosition,
		XPEarned:     gamification.ScoreXP(score, kills, rankPosition),
		CreatedAt:    timeutil.Now(),
	}, nil
}

// Winner picks the highest score in the slice, breaking ties by the
// earlier submission. Returns nil when the slice is empty.
func Winner(scores []*Score) *shared.UserID {
	var best *Score
	for _, s := range scores {
		if best == nil || s.Score > best.Score {
			best = s
		}
	}
	if best == nil {
		return nil
	}
	id := best.UserID
	return &id
}
