package command

import (
	"context"
	"fmt"

	"github.com/studio-hub/studio-hub-elite/internal/domain/attendance"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADMIN: FLAG EVENT COMMAND
// Marks an XP ledger entry for moderation review and records the action in
// the audit trail.
// ══════════════════════════════════════════════════════════════════════════════

// FlagEventCommand contains the data to flag a ledger entry.
type FlagEventCommand struct {
	AdminID shared.UserID
	EventID string
	Reason  string
}

// Validate validates the command.
func (c FlagEventCommand) Validate() error {
	if c.EventID == "" {
		return shared.NewDomainError("gamification", "FlagEvent", shared.ErrEmptyValue, "event id is required")
	}
	if c.Reason == "" {
		return shared.NewDomainError("gamification", "FlagEvent", shared.ErrEmptyValue, "reason is required")
	}
	return nil
}

// FlagEventHandler handles the FlagEventCommand. Authorization (admin-only)
// is enforced at the transport layer before the command runs.
type FlagEventHandler struct {
	ledger   gamification.XPEventRepository
	recorder *ActivityRecorder
}

// NewFlagEventHandler creates a new FlagEventHandler.
func NewFlagEventHandler(ledger gamification.XPEventRepository, recorder *ActivityRecorder) *FlagEventHandler {
	return &FlagEventHandler{ledger: ledger, recorder: recorder}
}

// Handle executes the flag event command.
func (h *FlagEventHandler) Handle(ctx context.Context, cmd FlagEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	event, err := h.ledger.FindByID(ctx, cmd.EventID)
	if err != nil {
		return err
	}

	event.Flag(cmd.Reason, cmd.AdminID)
	if err := h.ledger.UpdateFlag(ctx, event); err != nil {
		return fmt.Errorf("flag_event: persist: %w", err)
	}

	h.recorder.RecordAudit(ctx, cmd.AdminID, "flag_event", "gamification_event", cmd.EventID,
		map[string]any{"reason": cmd.Reason})
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// CREATE STUDIO SESSION COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// CreateStudioSessionHandler schedules studio sessions. Validation happens
// in the attendance.NewStudioSession constructor.
type CreateStudioSessionHandler struct {
	sessions attendance.SessionRepository
}

// NewCreateStudioSessionHandler creates a new CreateStudioSessionHandler.
func NewCreateStudioSessionHandler(sessions attendance.SessionRepository) *CreateStudioSessionHandler {
	return &CreateStudioSessionHandler{sessions: sessions}
}

// Handle schedules the session.
func (h *CreateStudioSessionHandler) Handle(ctx context.Context, session *attendance.StudioSession) error {
	if err := h.sessions.Create(ctx, session); err != nil {
		return fmt.Errorf("create_studio_session: persist: %w", err)
	}
	return nil
}
