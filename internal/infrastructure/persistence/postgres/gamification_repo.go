package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// XP LEDGER REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

const xpEventColumns = `
	id, user_id, amount, category, description, level_after,
	flagged, flag_reason, flagged_by, created_at`

// XPEventRepository implements gamification.XPEventRepository on PostgreSQL.
type XPEventRepository struct {
	conn *Connection
}

// NewXPEventRepository creates the repository.
func NewXPEventRepository(conn *Connection) *XPEventRepository {
	return &XPEventRepository{conn: conn}
}

// Append writes a ledger entry.
func (r *XPEventRepository) Append(ctx context.Context, event *gamification.XPEvent) error {
	query := `
		INSERT INTO xp_events (
			id, user_id, amount, category, description, level_after,
			flagged, flag_reason, flagged_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.conn.Exec(ctx, query,
		event.ID,
		string(event.UserID),
		event.Amount,
		event.Category.String(),
		event.Description,
		event.LevelAfter.Int(),
		event.Flagged,
		event.FlagReason,
		string(event.FlaggedBy),
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append xp event: %w", err)
	}
	return nil
}

// ListByUser returns a member's ledger entries, newest first.
func (r *XPEventRepository) ListByUser(ctx context.Context, userID shared.UserID, p shared.Pagination) ([]*gamification.XPEvent, error) {
	query := `SELECT` + xpEventColumns + `
		FROM xp_events WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.conn.Query(ctx, query, string(userID), p.Limit(), p.Offset())
	if err != nil {
		return nil, fmt.Errorf("list xp events: %w", err)
	}
	defer rows.Close()

	var events []*gamification.XPEvent
	for rows.Next() {
		event, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// TotalsByCategory folds a member's ledger into per-category totals.
func (r *XPEventRepository) TotalsByCategory(ctx context.Context, userID shared.UserID) ([]gamification.CategoryTotal, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0), COUNT(*)
		FROM xp_events WHERE user_id = $1
		GROUP BY category ORDER BY category`

	rows, err := r.conn.Query(ctx, query, string(userID))
	if err != nil {
		return nil, fmt.Errorf("xp totals by category: %w", err)
	}
	defer rows.Close()

	var totals []gamification.CategoryTotal
	for rows.Next() {
		var (
			category string
			t        gamification.CategoryTotal
		)
		if err := rows.Scan(&category, &t.Total, &t.Events); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		t.Category = gamification.Category(category)
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// FindByID returns a ledger entry.
func (r *XPEventRepository) FindByID(ctx context.Context, eventID string) (*gamification.XPEvent, error) {
	query := `SELECT` + xpEventColumns + ` FROM xp_events WHERE id = $1`
	return r.scanEvent(r.conn.QueryRow(ctx, query, eventID))
}

// UpdateFlag persists the moderation fields of an entry.
func (r *XPEventRepository) UpdateFlag(ctx context.Context, event *gamification.XPEvent) error {
	query := `
		UPDATE xp_events
		SET flagged = $1, flag_reason = $2, flagged_by = $3
		WHERE id = $4`

	tag, err := r.conn.Exec(ctx, query,
		event.Flagged,
		event.FlagReason,
		string(event.FlaggedBy),
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("update xp event flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NewDomainError("gamification", "UpdateFlag", shared.ErrNotFound,
			fmt.Sprintf("xp event %s not found", event.ID))
	}
	return nil
}

func (r *XPEventRepository) scanEvent(row pgx.Row) (*gamification.XPEvent, error) {
	var (
		e          gamification.XPEvent
		userID     string
		category   string
		levelAfter int
		flaggedBy  string
	)

	err := row.Scan(
		&e.ID,
		&userID,
		&e.Amount,
		&category,
		&e.Description,
		&levelAfter,
		&e.Flagged,
		&e.FlagReason,
		&flaggedBy,
		&e.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.NewDomainError("gamification", "scan", shared.ErrNotFound,
				"xp event not found")
		}
		return nil, fmt.Errorf("scan xp event: %w", err)
	}

	e.UserID = shared.UserID(userID)
	e.Category = gamification.Category(category)
	e.LevelAfter = shared.Level(levelAfter)
	e.FlaggedBy = shared.UserID(flaggedBy)
	return &e, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// BADGE REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

const badgeColumns = `
	id, name, description, icon, category, requirement_type, requirement_value,
	xp_reward, rarity`

// BadgeRepository implements gamification.BadgeRepository on PostgreSQL.
type BadgeRepository struct {
	conn *Connection
}

// NewBadgeRepository creates the repository.
func NewBadgeRepository(conn *Connection) *BadgeRepository {
	return &BadgeRepository{conn: conn}
}

// SeedCatalog upserts the catalog entries. Idempotent.
func (r *BadgeRepository) SeedCatalog(ctx context.Context, badges []gamification.Badge) error {
	query := `
		INSERT INTO badges (
			id, name, description, icon, category, requirement_type,
			requirement_value, xp_reward, rarity
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			icon = EXCLUDED.icon,
			category = EXCLUDED.category,
			requirement_type = EXCLUDED.requirement_type,
			requirement_value = EXCLUDED.requirement_value,
			xp_reward = EXCLUDED.xp_reward,
			rarity = EXCLUDED.rarity`

	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		for _, b := range badges {
			_, err := tx.Exec(ctx, query,
				b.BadgeID,
				b.Name,
				b.Description,
				b.Icon,
				b.Category,
				string(b.RequirementType),
				b.RequirementValue,
				b.XPReward,
				string(b.Rarity),
			)
			if err != nil {
				return fmt.Errorf("seed badge %s: %w", b.BadgeID, err)
			}
		}
		return nil
	})
}

// ListBadges returns the full catalog.
func (r *BadgeRepository) ListBadges(ctx context.Context) ([]gamification.Badge, error) {
	query := `SELECT` + badgeColumns + ` FROM badges ORDER BY requirement_value, id`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	defer rows.Close()

	var badges []gamification.Badge
	for rows.Next() {
		badge, err := r.scanBadge(rows)
		if err != nil {
			return nil, err
		}
		badges = append(badges, *badge)
	}
	return badges, rows.Err()
}

// FindBadge returns a catalog entry.
func (r *BadgeRepository) FindBadge(ctx context.Context, badgeID string) (*gamification.Badge, error) {
	query := `SELECT` + badgeColumns + ` FROM badges WHERE id = $1`
	return r.scanBadge(r.conn.QueryRow(ctx, query, badgeID))
}

// ListUserBadges returns a member's awards, newest first.
func (r *BadgeRepository) ListUserBadges(ctx context.Context, userID shared.UserID) ([]*gamification.UserBadge, error) {
	query := `
		SELECT user_id, badge_id, awarded_at
		FROM user_badges WHERE user_id = $1 ORDER BY awarded_at DESC`

	rows, err := r.conn.Query(ctx, query, string(userID))
	if err != nil {
		return nil, fmt.Errorf("list user badges: %w", err)
	}
	defer rows.Close()

	var awards []*gamification.UserBadge
	for rows.Next() {
		var (
			award gamification.UserBadge
			uid   string
		)
		if err := rows.Scan(&uid, &award.BadgeID, &award.AwardedAt); err != nil {
			return nil, fmt.Errorf("scan user badge: %w", err)
		}
		award.UserID = shared.UserID(uid)
		awards = append(awards, &award)
	}
	return awards, rows.Err()
}

// HasBadge reports whether the member already holds the badge.
func (r *BadgeRepository) HasBadge(ctx context.Context, userID shared.UserID, badgeID string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_badges WHERE user_id = $1 AND badge_id = $2)`,
		string(userID), badgeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has badge: %w", err)
	}
	return exists, nil
}

// Award inserts an award record. ON CONFLICT DO NOTHING makes repeat
// awards a no-op reported through the return value.
func (r *BadgeRepository) Award(ctx context.Context, award *gamification.UserBadge) (bool, error) {
	query := `
		INSERT INTO user_badges (user_id, badge_id, awarded_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, badge_id) DO NOTHING`

	tag, err := r.conn.Exec(ctx, query,
		string(award.UserID),
		award.BadgeID,
		award.AwardedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return false, shared.ErrBadgeNotFound
		}
		return false, fmt.Errorf("award badge: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BadgeRepository) scanBadge(row pgx.Row) (*gamification.Badge, error) {
	var (
		b               gamification.Badge
		requirementType string
		rarity          string
	)

	err := row.Scan(
		&b.BadgeID,
		&b.Name,
		&b.Description,
		&b.Icon,
		&b.Category,
		&requirementType,
		&b.RequirementValue,
		&b.XPReward,
		&rarity,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrBadgeNotFound
		}
		return nil, fmt.Errorf("scan badge: %w", err)
	}

	b.RequirementType = gamification.RequirementType(requirementType)
	b.Rarity = gamification.Rarity(rarity)
	return &b, nil
}
