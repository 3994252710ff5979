package gamification

import (
	"context"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// XPEventRepository is the append-only XP ledger.
type XPEventRepository interface {
	// Append writes a ledger entry.
	Append(ctx context.Context, event *XPEvent) error

	// ListByUser returns a member's ledger entries, newest first.
	ListByUser(ctx context.Context, userID shared.UserID, p shared.Pagination) ([]*XPEvent, error)

	// TotalsByCategory folds a member's ledger into per-category totals.
	TotalsByCategory(ctx context.Context, userID shared.UserID) ([]CategoryTotal, error)

	// FindByID returns a ledger entry, or a not-found error.
	FindByID(ctx context.Context, eventID string) (*XPEvent, error)

	// UpdateFlag persists the moderation fields of an entry.
	UpdateFlag(ctx context.Context, event *XPEvent) error
}

// BadgeRepository stores the badge catalog and member awards.
type BadgeRepository interface {
	// SeedCatalog upserts the catalog entries. Idempotent.
	SeedCatalog(ctx context.Context, badges []Badge) error

	// ListBadges returns the full catalog.
	ListBadges(ctx context.Context) ([]Badge, error)

	// FindBadge returns a catalog entry, or ErrBadgeNotFound.
	FindBadge(ctx context.Context, badgeID string) (*Badge, error)

	// ListUserBadges returns a member's awards, newest first.
	ListUserBadges(ctx context.Context, userID shared.UserID) ([]*UserBadge, error)

	// HasBadge reports whether the member already holds the badge.
	HasBadge(ctx context.Context, userID shared.UserID, badgeID string) (bool, error)

	// Award inserts an award record. Returns (false, nil) without writing
	// when the member already holds the badge.
	Award(ctx context.Context, award *UserBadge) (bool, error)
}
