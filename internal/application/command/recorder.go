package command

import (
	"context"

	"github.com/studio-hub/studio-hub-elite/internal/domain/activity"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/logger"
)

// ActivityRecorder writes feed items and audit entries on a best-effort
// basis. A failed write is logged and swallowed, so recording never fails
// the operation being recorded.
type ActivityRecorder struct {
	feed  activity.FeedRepository
	audit activity.AuditRepository
	log   *logger.Logger
}

// NewActivityRecorder creates the recorder.
func NewActivityRecorder(feed activity.FeedRepository, audit activity.AuditRepository, log *logger.Logger) *ActivityRecorder {
	return &ActivityRecorder{
		feed:  feed,
		audit: audit,
		log:   log.With(logger.Component("activity-recorder")),
	}
}

// RecordFeed appends a community feed item.
func (r *ActivityRecorder) RecordFeed(ctx context.Context, userID shared.UserID, userName string, typ activity.Type, description string, metadata map[string]any) {
	item := activity.NewFeedItem(userID, userName, typ, description, metadata)
	if err := r.feed.Create(ctx, item); err != nil {
		r.log.Warn("feed write failed",
			logger.UserID(userID.String()),
			logger.F("activity_type", typ),
			logger.Err(err))
	}
}

// RecordAudit appends an admin audit entry.
func (r *ActivityRecorder) RecordAudit(ctx context.Context, adminID shared.UserID, action, resourceType, resourceID string, details map[string]any) {
	entry := activity.NewAuditLog(adminID, action, resourceType, resourceID, details)
	if err := r.audit.Create(ctx, entry); err != nil {
		r.log.Warn("audit write failed",
			logger.UserID(adminID.String()),
			logger.F("action", action),
			logger.Err(err))
	}
}
