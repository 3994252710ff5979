package command

import (
	"context"
	"fmt"

	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gaming"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBMIT SCORE COMMAND
// Validates the raw score, records it, and grants the performance reward.
// ══════════════════════════════════════════════════════════════════════════════

// SubmitScoreCommand contains one member's match result.
type SubmitScoreCommand struct {
	MatchID      string
	UserID       shared.UserID
	Score        int
	Kills        int
	Deaths       int
	Assists      int
	RankPosition int
}

// Validate validates the command.
func (c SubmitScoreCommand) Validate() error {
	if c.MatchID == "" {
		return shared.NewDomainError("gaming", "SubmitScore", shared.ErrEmptyValue, "match id is required")
	}
	if !c.UserID.IsValid() {
		return shared.NewDomainError("gaming", "SubmitScore", shared.ErrInvalidID, "user id is required")
	}
	if !gamification.IsValidScore(c.Score) {
		return shared.ErrInvalidScore
	}
	return nil
}

// SubmitScoreHandler handles the SubmitScoreCommand.
type SubmitScoreHandler struct {
	gaming gaming.Repository
	engine *GamificationEngine
}

// NewSubmitScoreHandler creates a new SubmitScoreHandler.
func NewSubmitScoreHandler(gamingRepo gaming.Repository, engine *GamificationEngine) *SubmitScoreHandler {
	return &SubmitScoreHandler{gaming: gamingRepo, engine: engine}
}

// Handle executes the submit score command.
func (h *SubmitScoreHandler) Handle(ctx context.Context, cmd SubmitScoreCommand) (*gaming.Score, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.gaming.FindMatch(ctx, cmd.MatchID); err != nil {
		return nil, err
	}

	score, err := gaming.NewScore(cmd.MatchID, cmd.UserID, cmd.Score, cmd.Kills, cmd.Deaths, cmd.Assists, cmd.RankPosition)
	if err != nil {
		return nil, err
	}
	if err := h.gaming.CreateScore(ctx, score); err != nil {
		return nil, fmt.Errorf("submit_score: persist: %w", err)
	}

	if score.XPEarned > 0 {
		if _, err := h.engine.GrantXP(ctx, cmd.UserID, score.XPEarned, gamification.CategoryGaming,
			fmt.Sprintf("Match score: %d", cmd.Score)); err != nil {
			return nil, fmt.Errorf("submit_score: grant xp: %w", err)
		}
	}

	return score, nil
}
