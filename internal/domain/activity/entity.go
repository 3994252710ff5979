// Package activity holds the community feed and the admin audit trail.
// Both are append-only and best-effort: a failed write is logged and
// never fails the operation that triggered it.
package activity

import (
	"time"

	"github.com/google/uuid"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// Type classifies a feed item.
type Type string

const (
	TypeCheckIn      Type = "check_in"
	TypeCheckOut     Type = "check_out"
	TypeTrackCreated Type = "track_created"
	TypeContribution Type = "contribution"
	TypeMatchCreated Type = "match_created"
	TypeMatchWon     Type = "match_won"
	TypeLevelUp      Type = "level_up"
	TypeBadgeEarned  Type = "badge_earned"
	TypeOnboarding   Type = "onboarding"
)

// FeedItem is one entry in the community activity feed. The member's
// display name is denormalized at write time, matching what the feed
// shows even if the member later renames.
type FeedItem struct {
	ActivityID  string         `json:"activity_id"`
	UserID      shared.UserID  `json:"user_id"`
	UserName    string         `json:"user_name"`
	Type        Type           `json:"activity_type"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewFeedItem creates a feed entry.
func NewFeedItem(userID shared.UserID, userName string, typ Type, description string, metadata map[string]any) *FeedItem {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &FeedItem{
		ActivityID:  "act_" + uuid.NewString()[:12],
		UserID:      userID,
		UserName:    userName,
		Type:        typ,
		Description: description,
		Metadata:    metadata,
		CreatedAt:   timeutil.Now(),
	}
}

// AuditLog records an admin action against a resource.
type AuditLog struct {
	LogID        string         `json:"log_id"`
	UserID       shared.UserID  `json:"user_id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	Details      map[string]any `json:"details,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewAuditLog creates an audit entry.
func NewAuditLog(adminID shared.UserID, action, resourceType, resourceID string, details map[string]any) *AuditLog {
	if details == nil {
		details = map[string]any{}
	}
	return &AuditLog{
		LogID:        "audit_" + uuid.NewString()[:12],
		UserID:       adminID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		CreatedAt:    timeutil.Now(),
	}
}
