package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/studio-hub/studio-hub-elite/internal/domain/activity"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACTIVITY FEED REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// FeedRepository implements activity.FeedRepository on PostgreSQL.
type FeedRepository struct {
	conn *Connection
}

// NewFeedRepository creates the repository.
func NewFeedRepository(conn *Connection) *FeedRepository {
	return &FeedRepository{conn: conn}
}

// Create appends a feed item.
func (r *FeedRepository) Create(ctx context.Context, item *activity.FeedItem) error {
	metadata, err := marshalJSONMap(item.Metadata)
	if err != nil {
		return fmt.Errorf("marshal feed metadata: %w", err)
	}

	query := `
		INSERT INTO activity_feed (
			id, user_id, user_name, activity_type, description, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.conn.Exec(ctx, query,
		item.ActivityID,
		string(item.UserID),
		item.UserName,
		string(item.Type),
		item.Description,
		metadata,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create feed item: %w", err)
	}
	return nil
}

// ListRecent returns the latest feed items, newest first.
func (r *FeedRepository) ListRecent(ctx context.Context, limit int) ([]*activity.FeedItem, error) {
	query := `
		SELECT id, user_id, user_name, activity_type, description, metadata, created_at
		FROM activity_feed ORDER BY created_at DESC LIMIT $1`

	rows, err := r.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	defer rows.Close()

	var items []*activity.FeedItem
	for rows.Next() {
		var (
			item     activity.FeedItem
			userID   string
			itemType string
			metadata []byte
		)
		err := rows.Scan(&item.ActivityID, &userID, &item.UserName,
			&itemType, &item.Description, &metadata, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan feed item: %w", err)
		}

		item.UserID = shared.UserID(userID)
		item.Type = activity.Type(itemType)
		if item.Metadata, err = unmarshalJSONMap(metadata); err != nil {
			return nil, fmt.Errorf("unmarshal feed metadata: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// AUDIT REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// AuditRepository implements activity.AuditRepository on PostgreSQL.
type AuditRepository struct {
	conn *Connection
}

// NewAuditRepository creates the repository.
func NewAuditRepository(conn *Connection) *AuditRepository {
	return &AuditRepository{conn: conn}
}

// Create appends an audit entry.
func (r *AuditRepository) Create(ctx context.Context, log *activity.AuditLog) error {
	details, err := marshalJSONMap(log.Details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}

	query := `
		INSERT INTO audit_logs (
			id, user_id, action, resource_type, resource_id, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.conn.Exec(ctx, query,
		log.LogID,
		string(log.UserID),
		log.Action,
		log.ResourceType,
		log.ResourceID,
		details,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// ListRecent returns the latest audit entries, newest first.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]*activity.AuditLog, error) {
	query := `
		SELECT id, user_id, action, resource_type, resource_id, details, created_at
		FROM audit_logs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []*activity.AuditLog
	for rows.Next() {
		var (
			log     activity.AuditLog
			userID  string
			details []byte
		)
		err := rows.Scan(&log.LogID, &userID, &log.Action,
			&log.ResourceType, &log.ResourceID, &details, &log.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}

		log.UserID = shared.UserID(userID)
		if log.Details, err = unmarshalJSONMap(details); err != nil {
			return nil, fmt.Errorf("unmarshal audit details: %w", err)
		}
		logs = append(logs, &log)
	}
	return logs, rows.Err()
}

func marshalJSONMap(m map[string]any) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func unmarshalJSONMap(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
