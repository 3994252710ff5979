package activity

import "context"

// FeedRepository stores community feed items.
type FeedRepository interface {
	// Create appends a feed item.
	Create(ctx context.Context, item *FeedItem) error

	// ListRecent returns the latest feed items, newest first.
	ListRecent(ctx context.Context, limit int) ([]*FeedItem, error)
}

// AuditRepository stores admin audit entries.
type AuditRepository interface {
	// Create appends an audit entry.
	Create(ctx context.Context, log *AuditLog) error

	// ListRecent returns the latest audit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]*AuditLog, error)
}
