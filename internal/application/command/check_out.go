package command

import (
	"context"
	"fmt"

	"github.com/studio-hub/studio-hub-elite/internal/domain/activity"
	"github.com/studio-hub/studio-hub-elite/internal/domain/attendance"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// CHECK OUT COMMAND
// Closes the open visit, fixes the duration, and grants the capped
// attendance XP (one per minute, at most 120).
// ══════════════════════════════════════════════════════════════════════════════

// CheckOutCommand contains the data to close a visit.
type CheckOutCommand struct {
	UserID shared.UserID
}

// Validate validates the command.
func (c CheckOutCommand) Validate() error {
	if !c.UserID.IsValid() {
		return shared.NewDomainError("attendance", "CheckOut", shared.ErrInvalidID, "user id is required")
	}
	return nil
}

// CheckOutResult contains the closed visit.
type CheckOutResult struct {
	AttendanceID    string
	DurationMinutes int
	XPEarned        int
}

// CheckOutHandler handles the CheckOutCommand.
type CheckOutHandler struct {
	attendance attendance.Repository
	members    member.Repository
	engine     *GamificationEngine
	recorder   *ActivityRecorder
}

// NewCheckOutHandler creates a new CheckOutHandler.
func NewCheckOutHandler(
	attendanceRepo attendance.Repository,
	members member.Repository,
	engine *GamificationEngine,
	recorder *ActivityRecorder,
) *CheckOutHandler {
	return &CheckOutHandler{
		attendance: attendanceRepo,
		members:    members,
		engine:     engine,
		recorder:   recorder,
	}
}

// Handle executes the check-out command.
func (h *CheckOutHandler) Handle(ctx context.Context, cmd CheckOutCommand) (*CheckOutResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	user, err := h.members.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("check_out: %w", err)
	}

	record, err := h.attendance.FindOpen(ctx, cmd.UserID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrNotCheckedIn
		}
		return nil, fmt.Errorf("check_out: find open visit: %w", err)
	}

	if err := record.Close(timeutil.Now()); err != nil {
		return nil, err
	}
	if err := h.attendance.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("check_out: close record: %w", err)
	}

	if record.XPEarned > 0 {
		if _, err := h.engine.GrantXP(ctx, cmd.UserID, record.XPEarned, gamification.CategoryAttendance, record.Description()); err != nil {
			return nil, fmt.Errorf("check_out: grant xp: %w", err)
		}
	}

	h.recorder.RecordFeed(ctx, cmd.UserID, user.Name, activity.TypeCheckOut,
		fmt.Sprintf("%s checked out after %d minutes", user.Name, record.DurationMinutes), nil)

	return &CheckOutResult{
		AttendanceID:    record.AttendanceID,
		DurationMinutes: record.DurationMinutes,
		XPEarned:        record.XPEarned,
	}, nil
}
