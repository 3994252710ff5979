package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryIsValid(t *testing.T) {
	assert.True(t, CategoryAttendance.IsValid())
	assert.True(t, CategoryMusic.IsValid())
	assert.True(t, CategoryGaming.IsValid())
	assert.True(t, CategoryBadge.IsValid())
	assert.False(t, Category("social").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestAttendanceXP(t *testing.T) {
	tests := []struct {
		minutes int
		want    int
	}{
		{-10, 0},
		{0, 0},
		{1, 1},
		{45, 45},
		{120, 120},
		{121, 120},
		{600, 120},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AttendanceXP(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestScoreXP(t *testing.T) {
	// score part: 2500/100 = 25, kills: 3*5 = 15, first place: +100
	assert.Equal(t, 140, ScoreXP(2500, 3, 1))

	// second and third place get the smaller podium bonus
	assert.Equal(t, 75, ScoreXP(2500, 0, 2))
	assert.Equal(t, 75, ScoreXP(2500, 0, 3))

	// off the podium, no bonus
	assert.Equal(t, 25, ScoreXP(2500, 0, 4))
	assert.Equal(t, 25, ScoreXP(2500, 0, 0))
}

func TestScoreXPCapsScorePart(t *testing.T) {
	// 999999/100 = 9999, capped at 50
	assert.Equal(t, 50, ScoreXP(999999, 0, 0))
	assert.Equal(t, 150, ScoreXP(999999, 0, 1))
}

func TestIsValidScore(t *testing.T) {
	assert.True(t, IsValidScore(0))
	assert.True(t, IsValidScore(999999))
	assert.False(t, IsValidScore(-1))
	assert.False(t, IsValidScore(1000000))
}
