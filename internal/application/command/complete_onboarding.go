package command

import (
	"context"
	"fmt"

	"github.com/studio-hub/studio-hub-elite/internal/domain/activity"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE ONBOARDING COMMAND
// Saves the member's chosen name, roles, and goals, and awards the
// first_steps badge (whose XP reward flows through the effect queue).
// ══════════════════════════════════════════════════════════════════════════════

// CompleteOnboardingCommand contains the onboarding form.
type CompleteOnboardingCommand struct {
	UserID shared.UserID
	Name   string
	Roles  []string
	Goals  []string
}

// Validate validates the command.
func (c CompleteOnboardingCommand) Validate() error {
	if !c.UserID.IsValid() {
		return shared.NewDomainError("member", "CompleteOnboarding", shared.ErrInvalidID, "user id is required")
	}
	if c.Name == "" {
		return shared.NewDomainError("member", "CompleteOnboarding", shared.ErrEmptyValue, "name is required")
	}
	return nil
}

// CompleteOnboardingHandler handles the CompleteOnboardingCommand.
type CompleteOnboardingHandler struct {
	members   member.Repository
	engine    *GamificationEngine
	recorder  *ActivityRecorder
	publisher shared.EventPublisher
}

// NewCompleteOnboardingHandler creates a new CompleteOnboardingHandler.
func NewCompleteOnboardingHandler(
	members member.Repository,
	engine *GamificationEngine,
	recorder *ActivityRecorder,
	publisher shared.EventPublisher,
) *CompleteOnboardingHandler {
	return &CompleteOnboardingHandler{
		members:   members,
		engine:    engine,
		recorder:  recorder,
		publisher: publisher,
	}
}

// Handle executes the complete onboarding command.
func (h *CompleteOnboardingHandler) Handle(ctx context.Context, cmd CompleteOnboardingCommand) (*member.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	user, err := h.members.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("complete_onboarding: %w", err)
	}

	user.CompleteOnboarding(cmd.Name, cmd.Roles, cmd.Goals)
	if err := h.members.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("complete_onboarding: persist: %w", err)
	}

	if _, err := h.engine.AwardBadge(ctx, cmd.UserID, gamification.BadgeFirstSteps); err != nil {
		return nil, fmt.Errorf("complete_onboarding: award badge: %w", err)
	}

	h.recorder.RecordFeed(ctx, cmd.UserID, user.Name, activity.TypeOnboarding,
		fmt.Sprintf("%s joined the studio", user.Name), nil)
	if h.publisher != nil {
		_ = h.publisher.Publish(shared.NewGenericEvent(shared.EventMemberOnboarded, user.ID.String()))
	}

	return h.members.FindByID(ctx, cmd.UserID)
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE PROFILE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateProfileCommand contains optional profile changes.
type UpdateProfileCommand struct {
	UserID shared.UserID
	Name   *string
	Roles  []string
	Goals  []string
}

// UpdateProfileHandler handles the UpdateProfileCommand.
type UpdateProfileHandler struct {
	members member.Repository
}

// NewUpdateProfileHandler creates a new UpdateProfileHandler.
func NewUpdateProfileHandler(members member.Repository) *UpdateProfileHandler {
	return &UpdateProfileHandler{members: members}
}

// Handle executes the update profile command.
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*member.User, error) {
	user, err := h.members.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("update_profile: %w", err)
	}

	user.UpdateProfile(cmd.Name, cmd.Roles, cmd.Goals)
	if err := h.members.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("update_profile: persist: %w", err)
	}
	return user, nil
}
