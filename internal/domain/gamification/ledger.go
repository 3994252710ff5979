package gamification

import (
	"time"

	"github.com/google/uuid"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// XPEvent is one entry in the append-only XP ledger. The ledger is the
// source of truth for XP history; the member aggregate caches the folded
// xp/level so reads stay cheap.
type XPEvent struct {
	ID          string        `json:"id"`
	UserID      shared.UserID `json:"user_id"`
	Amount      int           `json:"amount"`
	Category    Category      `json:"category"`
	Description string        `json:"description"`
	LevelAfter  shared.Level  `json:"level_after"`
	CreatedAt   time.Time     `json:"created_at"`

	// Moderation fields set when an admin flags the entry for review.
	Flagged    bool          `json:"flagged,omitempty"`
	FlagReason string        `json:"flag_reason,omitempty"`
	FlaggedBy  shared.UserID `json:"flagged_by,omitempty"`
}

// Flag marks the ledger entry for moderation review.
func (e *XPEvent) Flag(reason string, adminID shared.UserID) {
	e.Flagged = true
	e.FlagReason = reason
	e.FlaggedBy = adminID
}

// NewXPEvent creates a ledger entry. Amount must be positive and the
// category must be known; callers validate before reaching here, so
// violations surface as domain errors rather than silent writes.
func NewXPEvent(userID shared.UserID, amount int, category Category, description string, levelAfter shared.Level) (*XPEvent, error) {
	if amount <= 0 {
		return nil, shared.ErrInvalidXPAmount
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("gamification", "NewXPEvent", shared.ErrInvalidInput, "unknown xp category: "+category.String())
	}
	return &XPEvent{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		LevelAfter:  levelAfter,
		CreatedAt:   timeutil.Now(),
	}, nil
}

// CategoryTotal is an aggregate of ledger amounts per category.
type CategoryTotal struct {
	Category Category `json:"category"`
	Total    int      `json:"total"`
	Events   int      `json:"events"`
}
