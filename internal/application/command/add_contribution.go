package command

import (
	"context"
	"fmt"

	"github.com/studio-hub/studio-hub-elite/internal/domain/activity"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/music"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD CONTRIBUTION COMMAND
// Records work on a track, joins the contributor set, and grants the fixed
// contribution reward.
// ══════════════════════════════════════════════════════════════════════════════

// AddContributionCommand contains the data to record a contribution.
type AddContributionCommand struct {
	UserID  shared.UserID
	TrackID string
	Type    music.ContributionType
	Notes   string
}

// Validate validates the command.
func (c AddContributionCommand) Validate() error {
	if !c.UserID.IsValid() {
		return shared.NewDomainError("music", "AddContribution", shared.ErrInvalidID, "user id is required")
	}
	if c.TrackID == "" {
		return shared.NewDomainError("music", "AddContribution", shared.ErrEmptyValue, "track id is required")
	}
	if !c.Type.IsValid() {
		return shared.NewDomainError("music", "AddContribution", shared.ErrInvalidInput, "unknown contribution type: "+c.Type.String())
	}
	return nil
}

// AddContributionHandler handles the AddContributionCommand.
type AddContributionHandler struct {
	music    music.Repository
	members  member.Repository
	engine   *GamificationEngine
	recorder *ActivityRecorder
}

// NewAddContributionHandler creates a new AddContributionHandler.
func NewAddContributionHandler(
	musicRepo music.Repository,
	members member.Repository,
	engine *GamificationEngine,
	recorder *ActivityRecorder,
) *AddContributionHandler {
	return &AddContributionHandler{
		music:    musicRepo,
		members:  members,
		engine:   engine,
		recorder: recorder,
	}
}

// Handle executes the add contribution command.
func (h *AddContributionHandler) Handle(ctx context.Context, cmd AddContributionCommand) (*music.Contribution, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	user, err := h.members.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("add_contribution: %w", err)
	}
	if _, err := h.music.FindTrack(ctx, cmd.TrackID); err != nil {
		return nil, err
	}

	contribution, err := music.NewContribution(cmd.TrackID, cmd.UserID, cmd.Type, cmd.Notes, gamification.ContributionXP)
	if err != nil {
		return nil, err
	}
	if err := h.music.CreateContribution(ctx, contribution); err != nil {
		return nil, fmt.Errorf("add_contribution: persist: %w", err)
	}
	if err := h.music.AddContributor(ctx, cmd.TrackID, cmd.UserID); err != nil {
		return nil, fmt.Errorf("add_contribution: join contributors: %w", err)
	}

	if _, err := h.engine.GrantXP(ctx, cmd.UserID, gamification.ContributionXP, gamification.CategoryMusic,
		fmt.Sprintf("Contributed %s to track", cmd.Type)); err != nil {
		return nil, fmt.Errorf("add_contribution: grant xp: %w", err)
	}

	h.recorder.RecordFeed(ctx, cmd.UserID, user.Name, activity.TypeContribution,
		fmt.Sprintf("%s contributed %s to a track", user.Name, cmd.Type), nil)

	return contribution, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ENGAGEMENT COMMANDS
// Listens and likes are plain counters with no XP attached.
// ══════════════════════════════════════════════════════════════════════════════

// EngagementHandler bumps track engagement counters.
type EngagementHandler struct {
	music music.Repository
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(musicRepo music.Repository) *EngagementHandler {
	return &EngagementHandler{music: musicRepo}
}

// RecordListen bumps the listen counter.
func (h *EngagementHandler) RecordListen(ctx context.Context, trackID string) error {
	return h.music.IncrementListens(ctx, trackID)
}

// RecordLike bumps the like counter.
func (h *EngagementHandler) RecordLike(ctx context.Context, trackID string) error {
	return h.music.IncrementLikes(ctx, trackID)
}
