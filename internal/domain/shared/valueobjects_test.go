package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLevelXPToAdvance(t *testing.T) {
	assert.Equal(t, XP(1000), Level(1).XPToAdvance())
	assert.Equal(t, XP(2000), Level(2).XPToAdvance())
	assert.Equal(t, XP(5000), Level(5).XPToAdvance())

	// Below the minimum falls back to the level-1 cost.
	assert.Equal(t, XP(1000), Level(0).XPToAdvance())
}

func TestLevelLifetimeXP(t *testing.T) {
	assert.Equal(t, 0, Level(1).LifetimeXP())
	assert.Equal(t, 1000, Level(2).LifetimeXP())
	assert.Equal(t, 3000, Level(3).LifetimeXP())
	assert.Equal(t, 10000, Level(5).LifetimeXP())
}

func TestRankIsTop(t *testing.T) {
	assert.True(t, Rank(1).IsTop(3))
	assert.True(t, Rank(3).IsTop(3))
	assert.False(t, Rank(4).IsTop(3))
	assert.False(t, Unranked.IsTop(3))
}

func TestTimeRange(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	r := LastNDays(7, now)

	assert.True(t, r.IsValid())
	assert.Equal(t, now.AddDate(0, 0, -7), r.From)
	assert.Equal(t, now, r.To)
	assert.True(t, r.Contains(now.AddDate(0, 0, -3)))
	assert.False(t, r.Contains(now.AddDate(0, 0, -8)))
	assert.Equal(t, 7*24*time.Hour, r.Duration())
}

func TestTimeRangeInvalid(t *testing.T) {
	r := TimeRange{From: time.Now(), To: time.Now().Add(-time.Hour)}
	assert.False(t, r.IsValid())
	assert.False(t, TimeRange{}.IsValid())
}

func TestPaginationDefaults(t *testing.T) {
	p := NewPagination(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	p = NewPagination(3, 10)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 10, p.Limit())
}

func TestPaginationClampsPageSize(t *testing.T) {
	p := NewPagination(1, 500)
	assert.Equal(t, MaxPageSize, p.PageSize)
	assert.Equal(t, MaxPageSize, p.Limit())
}

func TestNewUserID(t *testing.T) {
	id, err := NewUserID("  user_abc123  ")
	assert.NoError(t, err)
	assert.Equal(t, UserID("user_abc123"), id)

	_, err = NewUserID("   ")
	assert.Error(t, err)
	assert.True(t, IsValidation(err))
}
