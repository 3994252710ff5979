package command

import (
	"context"
	"fmt"

	"github.com/studio-hub/studio-hub-elite/internal/domain/activity"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gaming"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE MATCH COMMAND
// Ends the match: the highest submitted score wins, the winner gets the
// victory bonus, and the feed announces the result. A match with no scores
// completes with no winner.
// ══════════════════════════════════════════════════════════════════════════════

// CompleteMatchCommand contains the data to complete a match.
type CompleteMatchCommand struct {
	UserID  shared.UserID
	MatchID string
}

// CompleteMatchResult reports the outcome.
type CompleteMatchResult struct {
	WinnerID *shared.UserID
}

// CompleteMatchHandler handles the CompleteMatchCommand.
type CompleteMatchHandler struct {
	gaming    gaming.Repository
	members   member.Repository
	engine    *GamificationEngine
	recorder  *ActivityRecorder
	publisher shared.EventPublisher
}

// NewCompleteMatchHandler creates a new CompleteMatchHandler.
func NewCompleteMatchHandler(
	gamingRepo gaming.Repository,
	members member.Repository,
	engine *GamificationEngine,
	recorder *ActivityRecorder,
	publisher shared.EventPublisher,
) *CompleteMatchHandler {
	return &CompleteMatchHandler{
		gaming:    gamingRepo,
		members:   members,
		engine:    engine,
		recorder:  recorder,
		publisher: publisher,
	}
}

// Handle executes the complete match command.
func (h *CompleteMatchHandler) Handle(ctx context.Context, cmd CompleteMatchCommand) (*CompleteMatchResult, error) {
	user, err := h.members.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("complete_match: %w", err)
	}

	match, err := h.gaming.FindMatch(ctx, cmd.MatchID)
	if err != nil {
		return nil, err
	}
	if !match.CanManage(cmd.UserID, user.IsAdmin) {
		return nil, shared.ErrNotMatchOwner
	}

	scores, err := h.gaming.ListScores(ctx, cmd.MatchID)
	if err != nil {
		return nil, fmt.Errorf("complete_match: list scores: %w", err)
	}
	winnerID := gaming.Winner(scores)

	if err := match.Complete(timeutil.Now(), winnerID); err != nil {
		return nil, err
	}
	if err := h.gaming.UpdateMatch(ctx, match); err != nil {
		return nil, fmt.Errorf("complete_match: persist: %w", err)
	}

	if winnerID != nil {
		if _, err := h.engine.GrantXP(ctx, *winnerID, gamification.MatchVictoryXP, gamification.CategoryGaming, "Match victory!"); err != nil {
			return nil, fmt.Errorf("complete_match: victory bonus: %w", err)
		}

		if winner, err := h.members.FindByID(ctx, *winnerID); err == nil {
			h.recorder.RecordFeed(ctx, *winnerID, winner.Name, activity.TypeMatchWon,
				fmt.Sprintf("%s won the match!", winner.Name), nil)

			// Win-count badges use completed-match wins.
			if wins, err := h.gaming.CountWinsByUser(ctx, *winnerID); err == nil {
				for _, badgeID := range gamification.WinBadgesUpTo(wins) {
					if _, err := h.engine.AwardBadge(ctx, *winnerID, badgeID); err != nil {
						return nil, fmt.Errorf("complete_match: award badge: %w", err)
					}
				}
			}
		}
	}

	winner := ""
	if winnerID != nil {
		winner = winnerID.String()
	}
	if h.publisher != nil {
		_ = h.publisher.Publish(shared.NewMatchCompletedEvent(cmd.MatchID, winner))
	}

	return &CompleteMatchResult{WinnerID: winnerID}, nil
}
