package member

import (
	"context"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// Repository defines persistence for the member aggregate.
type Repository interface {
	// Create inserts a new member.
	Create(ctx context.Context, user *User) error

	// FindByID returns the member by id, or ErrMemberNotFound.
	FindByID(ctx context.Context, id shared.UserID) (*User, error)

	// FindByEmail returns the member by email, or ErrMemberNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByIDs returns the members whose ids are in the given set,
	// keyed by id. Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []shared.UserID) (map[shared.UserID]*User, error)

	// UpdateProgress persists xp, level, and streak fields with a
	// compare-and-swap on Version. Returns ErrOptimisticLock when the
	// stored version differs, in which case the caller reloads and retries.
	UpdateProgress(ctx context.Context, user *User) error

	// UpdateProfile persists name, roles, goals, onboarding, and
	// moderation fields.
	UpdateProfile(ctx context.Context, user *User) error

	// List returns members ordered by creation time, newest first.
	List(ctx context.Context, p shared.Pagination) ([]*User, error)

	// Count returns the total number of members.
	Count(ctx context.Context) (int, error)
}

// SessionRepository defines persistence for member sessions.
type SessionRepository interface {
	// Create stores a session, replacing any previous sessions of the member.
	Create(ctx context.Context, session *Session) error

	// FindByToken returns the session, or ErrSessionNotFound.
	FindByToken(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token.
	Delete(ctx context.Context, token string) error

	// DeleteByUser removes all sessions of a member.
	DeleteByUser(ctx context.Context, userID shared.UserID) error

	// DeleteExpired removes sessions past their expiry and returns how
	// many were removed.
	DeleteExpired(ctx context.Context) (int, error)
}
