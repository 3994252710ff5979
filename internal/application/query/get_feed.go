package query

import (
	"context"

	"github.com/studio-hub/studio-hub-elite/internal/domain/activity"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// FEED AND ADMIN QUERIES
// ══════════════════════════════════════════════════════════════════════════════

// FeedQuery serves the community activity feed.
type FeedQuery struct {
	feed activity.FeedRepository
}

// NewFeedQuery creates the query service.
func NewFeedQuery(feed activity.FeedRepository) *FeedQuery {
	return &FeedQuery{feed: feed}
}

// Recent returns the latest feed items, newest first.
func (q *FeedQuery) Recent(ctx context.Context, limit int) ([]*activity.FeedItem, error) {
	if limit <= 0 {
		limit = 30
	}
	return q.feed.ListRecent(ctx, limit)
}

// AdminQuery serves the admin-only listings. Authorization is enforced at
// the transport layer.
type AdminQuery struct {
	audit   activity.AuditRepository
	members member.Repository
}

// NewAdminQuery creates the query service.
func NewAdminQuery(audit activity.AuditRepository, members member.Repository) *AdminQuery {
	return &AdminQuery{audit: audit, members: members}
}

// AuditLogs returns the latest audit entries, newest first.
func (q *AdminQuery) AuditLogs(ctx context.Context, limit int) ([]*activity.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	return q.audit.ListRecent(ctx, limit)
}

// Users lists members, newest first.
func (q *AdminQuery) Users(ctx context.Context, p shared.Pagination) ([]*member.User, error) {
	return q.members.List(ctx, p)
}
