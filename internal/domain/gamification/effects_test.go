package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

func TestEffectQueueFIFO(t *testing.T) {
	var q EffectQueue
	userID := shared.UserID("user_abc")

	q.Push(GrantXPEffect(userID, 50, CategoryMusic, "Created track"))
	q.Push(AwardBadgeEffect(userID, "track_creator"))
	assert.Equal(t, 2, q.Len())

	first, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, EffectGrantXP, first.Kind)
	assert.Equal(t, 50, first.Amount)
	assert.Equal(t, CategoryMusic, first.Category)

	second, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, EffectAwardBadge, second.Kind)
	assert.Equal(t, "track_creator", second.BadgeID)

	_, ok = q.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestEffectQueuePushDuringDrain(t *testing.T) {
	var q EffectQueue
	userID := shared.UserID("user_abc")

	// A badge award pushed while draining lands behind existing work,
	// the way the engine chains level-up rewards.
	q.Push(GrantXPEffect(userID, 1200, CategoryAttendance, "Studio session"))

	var drained []EffectKind
	for {
		effect, ok := q.Pop()
		if !ok {
			break
		}
		drained = append(drained, effect.Kind)

		if effect.Kind == EffectGrantXP && effect.Amount == 1200 {
			q.Push(AwardBadgeEffect(userID, "rising_star"))
			q.Push(GrantXPEffect(userID, 100, CategoryBadge, "Badge reward"))
		}
	}

	assert.Equal(t, []EffectKind{EffectGrantXP, EffectAwardBadge, EffectGrantXP}, drained)
}
