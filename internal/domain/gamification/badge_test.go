package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	assert.Len(t, catalog, 13)

	seen := make(map[string]bool)
	for _, b := range catalog {
		assert.False(t, seen[b.BadgeID], "duplicate badge id %s", b.BadgeID)
		seen[b.BadgeID] = true

		assert.NotEmpty(t, b.Name)
		assert.NotEmpty(t, b.Description)
		assert.Positive(t, b.RequirementValue)
		assert.Positive(t, b.XPReward)
	}

	assert.True(t, seen[BadgeFirstSteps])
	assert.True(t, seen[BadgeHybridHero])
}

func TestStreakBadgesUpTo(t *testing.T) {
	assert.Empty(t, StreakBadgesUpTo(0))
	assert.Empty(t, StreakBadgesUpTo(6))
	assert.Equal(t, []string{"week_warrior"}, StreakBadgesUpTo(7))
	assert.Equal(t, []string{"week_warrior", "monthly_legend"}, StreakBadgesUpTo(30))
	assert.Equal(t, []string{"week_warrior", "monthly_legend", "century_club"}, StreakBadgesUpTo(365))
}

func TestLevelBadgesUpTo(t *testing.T) {
	assert.Empty(t, LevelBadgesUpTo(shared.Level(4)))
	assert.Equal(t, []string{"rising_star"}, LevelBadgesUpTo(shared.Level(5)))
	assert.Equal(t, []string{"rising_star", "veteran"}, LevelBadgesUpTo(shared.Level(12)))
	assert.Equal(t,
		[]string{"rising_star", "veteran", "elite_member", "legend"},
		LevelBadgesUpTo(shared.Level(50)),
	)
}

func TestWinBadgesUpTo(t *testing.T) {
	assert.Empty(t, WinBadgesUpTo(0))
	assert.Equal(t, []string{"gamer"}, WinBadgesUpTo(1))
	assert.Equal(t, []string{"gamer"}, WinBadgesUpTo(24))
	assert.Equal(t, []string{"gamer", "champion"}, WinBadgesUpTo(25))
}

func TestTrackBadgesUpTo(t *testing.T) {
	assert.Empty(t, TrackBadgesUpTo(0))
	assert.Equal(t, []string{"track_creator"}, TrackBadgesUpTo(1))
	assert.Equal(t, []string{"track_creator", "producer"}, TrackBadgesUpTo(10))
}

func TestNewUserBadge(t *testing.T) {
	ub := NewUserBadge(shared.UserID("user_abc"), "week_warrior")
	assert.Equal(t, shared.UserID("user_abc"), ub.UserID)
	assert.Equal(t, "week_warrior", ub.BadgeID)
	assert.False(t, ub.AwardedAt.IsZero())
}
