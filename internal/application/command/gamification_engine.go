// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/logger"
	"github.com/studio-hub/studio-hub-elite/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// GAMIFICATION ENGINE
// Drains the reward chain (XP grant -> level-up -> badge -> badge XP) as an
// explicit FIFO of effects. Missing users and unknown badges make the
// affected effect a silent no-op so a broken reward never fails the
// triggering request.
// ══════════════════════════════════════════════════════════════════════════════

// GamificationEngine applies XP grants, streak updates, and badge awards.
type GamificationEngine struct {
	members   member.Repository
	ledger    gamification.XPEventRepository
	badges    gamification.BadgeRepository
	publisher shared.EventPublisher
	retrier   *retry.Retrier
	log       *logger.Logger
}

// NewGamificationEngine creates the engine.
func NewGamificationEngine(
	members member.Repository,
	ledger gamification.XPEventRepository,
	badges gamification.BadgeRepository,
	publisher shared.EventPublisher,
	log *logger.Logger,
) *GamificationEngine {
	return &GamificationEngine{
		members:   members,
		ledger:    ledger,
		badges:    badges,
		publisher: publisher,
		retrier:   retry.DatabaseRetrier(),
		log:       log.With(logger.Component("gamification-engine")),
	}
}

// GrantResult reports what a grant (and its follow-on effects) did.
type GrantResult struct {
	LevelsGained  int
	NewLevel      shared.Level
	BadgesAwarded []string
}

// GrantXP credits XP to a member and drains every follow-on effect.
// A non-positive amount is rejected; a missing member is a silent no-op.
func (e *GamificationEngine) GrantXP(ctx context.Context, userID shared.UserID, amount int, category gamification.Category, description string) (*GrantResult, error) {
	if amount <= 0 {
		return nil, shared.ErrInvalidXPAmount
	}

	var queue gamification.EffectQueue
	queue.Push(gamification.GrantXPEffect(userID, amount, category, description))
	return e.drain(ctx, &queue)
}

// AwardBadge grants a badge (idempotently) and drains its XP reward chain.
func (e *GamificationEngine) AwardBadge(ctx context.Context, userID shared.UserID, badgeID string) (*GrantResult, error) {
	var queue gamification.EffectQueue
	queue.Push(gamification.AwardBadgeEffect(userID, badgeID))
	return e.drain(ctx, &queue)
}

// RecordStreak advances the member's attendance streak for an activity at
// the given time and awards any streak badges crossed.
func (e *GamificationEngine) RecordStreak(ctx context.Context, userID shared.UserID, at time.Time) (streakDays int, err error) {
	var wasReset bool

	err = e.updateProgress(ctx, userID, func(u *member.User) {
		streakDays, wasReset = u.RecordActivity(at)
	})
	if err != nil {
		if shared.IsNotFound(err) {
			e.log.Warn("streak update for unknown member skipped", logger.UserID(userID.String()))
			return 0, nil
		}
		return 0, err
	}

	e.publish(shared.NewStreakUpdatedEvent(userID.String(), streakDays, wasReset))

	var queue gamification.EffectQueue
	for _, badgeID := range gamification.StreakBadgesUpTo(streakDays) {
		queue.Push(gamification.AwardBadgeEffect(userID, badgeID))
	}
	if queue.Len() > 0 {
		if _, err := e.drain(ctx, &queue); err != nil {
			return streakDays, err
		}
	}
	return streakDays, nil
}

// drain processes queued effects in FIFO order until none remain.
func (e *GamificationEngine) drain(ctx context.Context, queue *gamification.EffectQueue) (*GrantResult, error) {
	result := &GrantResult{}

	for {
		effect, ok := queue.Pop()
		if !ok {
			return result, nil
		}

		switch effect.Kind {
		case gamification.EffectGrantXP:
			if err := e.applyGrant(ctx, effect, queue, result); err != nil {
				return result, err
			}
		case gamification.EffectAwardBadge:
			if err := e.applyAward(ctx, effect, queue, result); err != nil {
				return result, err
			}
		}
	}
}

// applyGrant credits one XP effect: fold into the member aggregate under
// optimistic concurrency, append the ledger entry, and enqueue level badges.
func (e *GamificationEngine) applyGrant(ctx context.Context, effect gamification.Effect, queue *gamification.EffectQueue, result *GrantResult) error {
	var (
		levelsGained int
		newLevel     shared.Level
	)

	err := e.updateProgress(ctx, effect.UserID, func(u *member.User) {
		levelsGained = u.AddXP(shared.XP(effect.Amount))
		newLevel = u.Level
	})
	if err != nil {
		if shared.IsNotFound(err) {
			e.log.Warn("xp grant for unknown member skipped",
				logger.UserID(effect.UserID.String()), logger.XPAmount(effect.Amount))
			return nil
		}
		return fmt.Errorf("gamification: apply grant: %w", err)
	}

	event, err := gamification.NewXPEvent(effect.UserID, effect.Amount, effect.Category, effect.Description, newLevel)
	if err != nil {
		return err
	}
	if err := e.ledger.Append(ctx, event); err != nil {
		return fmt.Errorf("gamification: append ledger: %w", err)
	}

	e.publish(shared.NewXPGrantedEvent(effect.UserID.String(), effect.Amount, effect.Category.String(), newLevel.Int()))

	result.NewLevel = newLevel
	if levelsGained > 0 {
		result.LevelsGained += levelsGained
		e.publish(shared.NewLevelUpEvent(effect.UserID.String(), newLevel.Int()-levelsGained, newLevel.Int()))

		for _, badgeID := range gamification.LevelBadgesUpTo(newLevel) {
			queue.Push(gamification.AwardBadgeEffect(effect.UserID, badgeID))
		}
	}
	return nil
}

// applyAward grants one badge effect. Already-held badges and unknown
// badge ids are no-ops; a fresh award enqueues its XP reward.
func (e *GamificationEngine) applyAward(ctx context.Context, effect gamification.Effect, queue *gamification.EffectQueue, result *GrantResult) error {
	badge, err := e.badges.FindBadge(ctx, effect.BadgeID)
	if err != nil {
		if shared.IsNotFound(err) {
			e.log.Warn("award of unknown badge skipped", logger.BadgeID(effect.BadgeID))
			return nil
		}
		return fmt.Errorf("gamification: find badge: %w", err)
	}

	awarded, err := e.badges.Award(ctx, gamification.NewUserBadge(effect.UserID, badge.BadgeID))
	if err != nil {
		return fmt.Errorf("gamification: award badge: %w", err)
	}
	if !awarded {
		return nil
	}

	result.BadgesAwarded = append(result.BadgesAwarded, badge.BadgeID)
	e.publish(shared.NewBadgeAwardedEvent(effect.UserID.String(), badge.BadgeID, badge.XPReward))
	e.log.Info("badge awarded",
		logger.UserID(effect.UserID.String()), logger.BadgeID(badge.BadgeID))

	if badge.XPReward > 0 {
		queue.Push(gamification.GrantXPEffect(effect.UserID, badge.XPReward, gamification.CategoryBadge,
			"Earned badge: "+badge.Name))
	}
	return nil
}

// updateProgress loads the member, applies the mutation, and persists with
// a compare-and-swap on the aggregate version, retrying on lock conflicts.
func (e *GamificationEngine) updateProgress(ctx context.Context, userID shared.UserID, mutate func(*member.User)) error {
	return e.retrier.Do(ctx, func(ctx context.Context) error {
		user, err := e.members.FindByID(ctx, userID)
		if err != nil {
			return retry.Permanent(err)
		}
		mutate(user)
		if err := e.members.UpdateProgress(ctx, user); err != nil {
			if shared.IsRetryable(err) {
				return retry.Retryable(err)
			}
			return retry.Permanent(err)
		}
		return nil
	})
}

func (e *GamificationEngine) publish(event shared.Event) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(event); err != nil {
		e.log.Warn("event publish failed", logger.F("event_type", event.EventType()), logger.Err(err))
	}
}
