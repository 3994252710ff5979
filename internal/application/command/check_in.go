package command

import (
	"context"
	"fmt"

	"github.com/studio-hub/studio-hub-elite/internal/domain/activity"
	"github.com/studio-hub/studio-hub-elite/internal/domain/attendance"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// CHECK IN COMMAND
// Opens a studio visit. A member has at most one open visit; the streak
// advances on check-in, not on check-out.
// ══════════════════════════════════════════════════════════════════════════════

// CheckInCommand contains the data to open a visit.
type CheckInCommand struct {
	UserID shared.UserID

	// SessionID optionally links the visit to a scheduled studio session.
	SessionID string
}

// Validate validates the command.
func (c CheckInCommand) Validate() error {
	if !c.UserID.IsValid() {
		return shared.NewDomainError("attendance", "CheckIn", shared.ErrInvalidID, "user id is required")
	}
	return nil
}

// CheckInResult contains the opened visit and the updated streak.
type CheckInResult struct {
	Record     *attendance.Record
	StreakDays int
}

// CheckInHandler handles the CheckInCommand.
type CheckInHandler struct {
	attendance attendance.Repository
	members    member.Repository
	engine     *GamificationEngine
	recorder   *ActivityRecorder
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(
	attendanceRepo attendance.Repository,
	members member.Repository,
	engine *GamificationEngine,
	recorder *ActivityRecorder,
) *CheckInHandler {
	return &CheckInHandler{
		attendance: attendanceRepo,
		members:    members,
		engine:     engine,
		recorder:   recorder,
	}
}

// Handle executes the check-in command.
func (h *CheckInHandler) Handle(ctx context.Context, cmd CheckInCommand) (*CheckInResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	user, err := h.members.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("check_in: %w", err)
	}

	if _, err := h.attendance.FindOpen(ctx, cmd.UserID); err == nil {
		return nil, shared.ErrAlreadyCheckedIn
	} else if !shared.IsNotFound(err) {
		return nil, fmt.Errorf("check_in: find open visit: %w", err)
	}

	now := timeutil.Now()
	record := attendance.NewRecord(cmd.UserID, cmd.SessionID, now)
	if err := h.attendance.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("check_in: create record: %w", err)
	}

	streak, err := h.engine.RecordStreak(ctx, cmd.UserID, now)
	if err != nil {
		return nil, fmt.Errorf("check_in: update streak: %w", err)
	}

	h.recorder.RecordFeed(ctx, cmd.UserID, user.Name, activity.TypeCheckIn,
		fmt.Sprintf("%s checked in to the studio", user.Name), nil)

	return &CheckInResult{Record: record, StreakDays: streak}, nil
}
