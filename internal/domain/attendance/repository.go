package attendance

import (
	"context"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// Repository defines persistence for attendance records.
type Repository interface {
	// Create inserts a new visit record.
	Create(ctx context.Context, record *Record) error

	// FindOpen returns the member's open visit, or ErrNotCheckedIn.
	FindOpen(ctx context.Context, userID shared.UserID) (*Record, error)

	// Update persists the closed fields of a visit.
	Update(ctx context.Context, record *Record) error

	// ListByUser returns the member's visits, newest first.
	ListByUser(ctx context.Context, userID shared.UserID, limit int) ([]*Record, error)

	// ListInRange returns the member's visits starting within the window.
	ListInRange(ctx context.Context, userID shared.UserID, rng shared.TimeRange) ([]*Record, error)

	// CountByUser returns the member's total visit count.
	CountByUser(ctx context.Context, userID shared.UserID) (int, error)

	// AggregateInRange folds visits per member within the window: session
	// count and total duration in minutes. Open visits count as sessions
	// with zero duration.
	AggregateInRange(ctx context.Context, rng shared.TimeRange) (map[shared.UserID]Totals, error)
}

// Totals summarizes a member's visits for leaderboard scoring.
type Totals struct {
	Sessions        int
	DurationMinutes int
}

// SessionRepository defines persistence for scheduled studio sessions.
type SessionRepository interface {
	// Create inserts a scheduled session.
	Create(ctx context.Context, session *StudioSession) error

	// FindByID returns the session, or a not-found error.
	FindByID(ctx context.Context, sessionID string) (*StudioSession, error)

	// ListUpcoming returns sessions starting after now, soonest first.
	ListUpcoming(ctx context.Context, limit int) ([]*StudioSession, error)
}
