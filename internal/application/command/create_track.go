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
// CREATE TRACK COMMAND
// Publishes a track with the creator as first contributor and grants the
// fixed creation reward.
// ══════════════════════════════════════════════════════════════════════════════

// CreateTrackCommand contains the data to publish a track.
type CreateTrackCommand struct {
	UserID          shared.UserID
	Title           string
	Description     string
	Genre           string
	DurationSeconds int
	CoverImage      string
}

// Validate validates the command.
func (c CreateTrackCommand) Validate() error {
	if !c.UserID.IsValid() {
		return shared.NewDomainError("music", "CreateTrack", shared.ErrInvalidID, "user id is required")
	}
	if c.Title == "" {
		return shared.NewDomainError("music", "CreateTrack", shared.ErrEmptyValue, "title is required")
	}
	return nil
}

// CreateTrackHandler handles the CreateTrackCommand.
type CreateTrackHandler struct {
	music    music.Repository
	members  member.Repository
	engine   *GamificationEngine
	recorder *ActivityRecorder
}

// NewCreateTrackHandler creates a new CreateTrackHandler.
func NewCreateTrackHandler(
	musicRepo music.Repository,
	members member.Repository,
	engine *GamificationEngine,
	recorder *ActivityRecorder,
) *CreateTrackHandler {
	return &CreateTrackHandler{
		music:    musicRepo,
		members:  members,
		engine:   engine,
		recorder: recorder,
	}
}

// Handle executes the create track command.
func (h *CreateTrackHandler) Handle(ctx context.Context, cmd CreateTrackCommand) (*music.Track, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	user, err := h.members.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("create_track: %w", err)
	}

	track, err := music.NewTrack(cmd.Title, cmd.Description, cmd.Genre, cmd.DurationSeconds, cmd.CoverImage, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := h.music.CreateTrack(ctx, track); err != nil {
		return nil, fmt.Errorf("create_track: persist: %w", err)
	}

	if _, err := h.engine.GrantXP(ctx, cmd.UserID, gamification.TrackCreationXP, gamification.CategoryMusic, "Created a new track"); err != nil {
		return nil, fmt.Errorf("create_track: grant xp: %w", err)
	}

	// Track-count badges check after the grant so the new track counts.
	if count, err := h.music.CountTracksByUser(ctx, cmd.UserID); err == nil {
		for _, badgeID := range gamification.TrackBadgesUpTo(count) {
			if _, err := h.engine.AwardBadge(ctx, cmd.UserID, badgeID); err != nil {
				return nil, fmt.Errorf("create_track: award badge: %w", err)
			}
		}
	}

	h.recorder.RecordFeed(ctx, cmd.UserID, user.Name, activity.TypeTrackCreated,
		fmt.Sprintf("%s created track: %s", user.Name, track.Title), nil)

	return track, nil
}
