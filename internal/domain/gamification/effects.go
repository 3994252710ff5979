package gamification

import "github.com/studio-hub/studio-hub-elite/internal/domain/shared"

// The reward chain is cyclical: granting XP can level a member up, a
// level-up can earn a badge, and a badge can carry an XP reward. Instead
// of recursing, the engine drains an explicit FIFO queue of effects, so
// the chain is bounded and each step is observable.

// EffectKind discriminates queued effects.
type EffectKind string

const (
	EffectGrantXP    EffectKind = "grant_xp"
	EffectAwardBadge EffectKind = "award_badge"
)

// Effect is one pending step in the reward chain.
type Effect struct {
	Kind        EffectKind
	UserID      shared.UserID
	Amount      int
	Category    Category
	Description string
	BadgeID     string
}

// GrantXPEffect enqueues an XP grant.
func GrantXPEffect(userID shared.UserID, amount int, category Category, description string) Effect {
	return Effect{
		Kind:        EffectGrantXP,
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
	}
}

// AwardBadgeEffect enqueues a badge award.
func AwardBadgeEffect(userID shared.UserID, badgeID string) Effect {
	return Effect{
		Kind:    EffectAwardBadge,
		UserID:  userID,
		BadgeID: badgeID,
	}
}

// EffectQueue is a simple FIFO of pending effects.
type EffectQueue struct {
	items []Effect
}

// Push appends effects to the tail of the queue.
func (q *EffectQueue) Push(effects ...Effect) {
	q.items = append(q.items, effects...)
}

// Pop removes and returns the head of the queue.
func (q *EffectQueue) Pop() (Effect, bool) {
	if len(q.items) == 0 {
		return Effect{}, false
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head, true
}

// Len returns the number of pending effects.
func (q *EffectQueue) Len() int {
	return len(q.items)
}
