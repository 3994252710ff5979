package command

import (
	"context"
	"fmt"

	"github.com/studio-hub/studio-hub-elite/internal/domain/activity"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gaming"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE / START MATCH COMMANDS
// A match moves pending -> in_progress -> completed. Only the creator or
// an admin may drive the lifecycle.
// ══════════════════════════════════════════════════════════════════════════════

// CreateMatchCommand contains the data to create a match.
type CreateMatchCommand struct {
	UserID       shared.UserID
	Title        string
	GameType     gaming.GameType
	GameName     string
	Participants []shared.UserID
}

// Validate validates the command.
func (c CreateMatchCommand) Validate() error {
	if !c.UserID.IsValid() {
		return shared.NewDomainError("gaming", "CreateMatch", shared.ErrInvalidID, "user id is required")
	}
	if c.Title == "" {
		return shared.NewDomainError("gaming", "CreateMatch", shared.ErrEmptyValue, "title is required")
	}
	if !c.GameType.IsValid() {
		return shared.NewDomainError("gaming", "CreateMatch", shared.ErrInvalidInput, "unknown game type: "+c.GameType.String())
	}
	return nil
}

// CreateMatchHandler handles the CreateMatchCommand.
type CreateMatchHandler struct {
	gaming   gaming.Repository
	members  member.Repository
	recorder *ActivityRecorder
}

// NewCreateMatchHandler creates a new CreateMatchHandler.
func NewCreateMatchHandler(gamingRepo gaming.Repository, members member.Repository, recorder *ActivityRecorder) *CreateMatchHandler {
	return &CreateMatchHandler{gaming: gamingRepo, members: members, recorder: recorder}
}

// Handle executes the create match command.
func (h *CreateMatchHandler) Handle(ctx context.Context, cmd CreateMatchCommand) (*gaming.Match, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	user, err := h.members.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("create_match: %w", err)
	}

	match, err := gaming.NewMatch(cmd.Title, cmd.GameType, cmd.GameName, cmd.Participants, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := h.gaming.CreateMatch(ctx, match); err != nil {
		return nil, fmt.Errorf("create_match: persist: %w", err)
	}

	h.recorder.RecordFeed(ctx, cmd.UserID, user.Name, activity.TypeMatchCreated,
		fmt.Sprintf("%s created a %s match: %s", user.Name, cmd.GameType, match.Title), nil)

	return match, nil
}

// StartMatchCommand moves a pending match to in_progress.
type StartMatchCommand struct {
	UserID  shared.UserID
	MatchID string
}

// StartMatchHandler handles the StartMatchCommand.
type StartMatchHandler struct {
	gaming  gaming.Repository
	members member.Repository
}

// NewStartMatchHandler creates a new StartMatchHandler.
func NewStartMatchHandler(gamingRepo gaming.Repository, members member.Repository) *StartMatchHandler {
	return &StartMatchHandler{gaming: gamingRepo, members: members}
}

// Handle executes the start match command.
func (h *StartMatchHandler) Handle(ctx context.Context, cmd StartMatchCommand) error {
	user, err := h.members.FindByID(ctx, cmd.UserID)
	if err != nil {
		return fmt.Errorf("start_match: %w", err)
	}

	match, err := h.gaming.FindMatch(ctx, cmd.MatchID)
	if err != nil {
		return err
	}
	if !match.CanManage(cmd.UserID, user.IsAdmin) {
		return shared.ErrNotMatchOwner
	}

	if err := match.Start(timeutil.Now()); err != nil {
		return err
	}
	if err := h.gaming.UpdateMatch(ctx, match); err != nil {
		return fmt.Errorf("start_match: persist: %w", err)
	}
	return nil
}
