package query

import (
	"context"
	"fmt"
	"time"

	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GAMIFICATION QUERY
// Level progress, recent ledger entries, and badge views.
// ══════════════════════════════════════════════════════════════════════════════

// Stats is the member's gamification snapshot.
type Stats struct {
	Level           int                     `json:"level"`
	XP              int                     `json:"xp"`
	XPForNextLevel  int                     `json:"xp_for_next_level"`
	ProgressPercent float64                 `json:"progress_percent"`
	StreakDays      int                     `json:"streak_days"`
	RecentEvents    []*gamification.XPEvent `json:"recent_events"`

	// CategoryTotals folds the full ledger per category, so the client
	// can show where the XP came from without paging the history.
	CategoryTotals []gamification.CategoryTotal `json:"category_totals"`
}

// BadgeView is a catalog entry with the member's earned state.
type BadgeView struct {
	gamification.Badge
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// GamificationQuery serves gamification reads.
type GamificationQuery struct {
	members member.Repository
	ledger  gamification.XPEventRepository
	badges  gamification.BadgeRepository
}

// NewGamificationQuery creates the query service.
func NewGamificationQuery(
	members member.Repository,
	ledger gamification.XPEventRepository,
	badges gamification.BadgeRepository,
) *GamificationQuery {
	return &GamificationQuery{members: members, ledger: ledger, badges: badges}
}

// GetStats returns the member's level progress and latest ledger entries.
// Progress is relative to the current level's advancement cost, so it
// stays within 0..100 at every level.
func (q *GamificationQuery) GetStats(ctx context.Context, userID shared.UserID) (*Stats, error) {
	user, err := q.members.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := q.ledger.ListByUser(ctx, userID, shared.NewPagination(1, 20))
	if err != nil {
		return nil, fmt.Errorf("gamification stats: ledger: %w", err)
	}

	totals, err := q.ledger.TotalsByCategory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("gamification stats: totals: %w", err)
	}

	return &Stats{
		Level:           user.Level.Int(),
		XP:              user.XP.Int(),
		XPForNextLevel:  user.Level.XPToAdvance().Int(),
		ProgressPercent: user.LevelProgressPercent(),
		StreakDays:      user.StreakDays,
		RecentEvents:    events,
		CategoryTotals:  totals,
	}, nil
}

// ListBadges returns the full catalog with earned flags for the member.
func (q *GamificationQuery) ListBadges(ctx context.Context, userID shared.UserID) ([]BadgeView, error) {
	catalog, err := q.badges.ListBadges(ctx)
	if err != nil {
		return nil, err
	}
	awards, err := q.badges.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, err
	}

	earnedAt := make(map[string]time.Time, len(awards))
	for _, a := range awards {
		earnedAt[a.BadgeID] = a.AwardedAt
	}

	views := make([]BadgeView, 0, len(catalog))
	for _, b := range catalog {
		view := BadgeView{Badge: b}
		if at, ok := earnedAt[b.BadgeID]; ok {
			view.Earned = true
			t := at
			view.EarnedAt = &t
		}
		views = append(views, view)
	}
	return views, nil
}

// ListEarnedBadges returns only the member's earned badges with award times.
func (q *GamificationQuery) ListEarnedBadges(ctx context.Context, userID shared.UserID) ([]BadgeView, error) {
	all, err := q.ListBadges(ctx, userID)
	if err != nil {
		return nil, err
	}
	earned := make([]BadgeView, 0, len(all))
	for _, v := range all {
		if v.Earned {
			earned = append(earned, v)
		}
	}
	return earned, nil
}
