// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"encoding/json"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types - these drive the event-driven architecture.
// Each event represents something significant that happened in the domain.
const (
	// Member events
	EventMemberRegistered EventType = "member.registered"
	EventMemberOnboarded  EventType = "member.onboarded"

	// Gamification events
	EventXPGranted     EventType = "gamification.xp_granted"
	EventLevelUp       EventType = "gamification.level_up"
	EventStreakUpdated EventType = "gamification.streak_updated"
	EventBadgeAwarded  EventType = "gamification.badge_awarded"

	// Attendance events
	EventCheckedIn  EventType = "attendance.checked_in"
	EventCheckedOut EventType = "attendance.checked_out"

	// Music events
	EventTrackCreated      EventType = "music.track_created"
	EventContributionAdded EventType = "music.contribution_added"

	// Gaming events
	EventMatchCreated   EventType = "gaming.match_created"
	EventMatchStarted   EventType = "gaming.match_started"
	EventMatchCompleted EventType = "gaming.match_completed"
	EventScoreSubmitted EventType = "gaming.score_submitted"

	// Leaderboard events
	EventLeaderboardRefreshed EventType = "leaderboard.refreshed"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
	Version     int       `json:"version"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// GenericEvent is an event with no payload beyond the envelope, used for
// lifecycle notifications like member.onboarded.
type GenericEvent struct {
	BaseEvent
}

// Payload implements Event interface.
func (e GenericEvent) Payload() map[string]interface{} {
	return map[string]interface{}{}
}

// NewGenericEvent creates an envelope-only event.
func NewGenericEvent(eventType EventType, aggregateID string) GenericEvent {
	return GenericEvent{BaseEvent: NewBaseEvent(eventType, aggregateID)}
}

// XPGrantedEvent is emitted when a member gains XP.
type XPGrantedEvent struct {
	BaseEvent
	UserID   string `json:"user_id"`
	Amount   int    `json:"amount"`
	Category string `json:"category"` // attendance, music, gaming, badge
	NewLevel int    `json:"new_level"`
}

// Payload implements Event interface.
func (e XPGrantedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":   e.UserID,
		"amount":    e.Amount,
		"category":  e.Category,
		"new_level": e.NewLevel,
	}
}

// NewXPGrantedEvent creates a new XPGrantedEvent.
func NewXPGrantedEvent(userID string, amount int, category string, newLevel int) XPGrantedEvent {
	return XPGrantedEvent{
		BaseEvent: NewBaseEvent(EventXPGranted, userID),
		UserID:    userID,
		Amount:    amount,
		Category:  category,
		NewLevel:  newLevel,
	}
}

// LevelUpEvent is emitted when a member's level increases.
type LevelUpEvent struct {
	BaseEvent
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
}

// Payload implements Event interface.
func (e LevelUpEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":   e.UserID,
		"old_level": e.OldLevel,
		"new_level": e.NewLevel,
	}
}

// NewLevelUpEvent creates a new LevelUpEvent.
func NewLevelUpEvent(userID string, oldLevel, newLevel int) LevelUpEvent {
	return LevelUpEvent{
		BaseEvent: NewBaseEvent(EventLevelUp, userID),
		UserID:    userID,
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
	}
}

// StreakUpdatedEvent is emitted when a member's attendance streak changes.
type StreakUpdatedEvent struct {
	BaseEvent
	UserID     string `json:"user_id"`
	StreakDays int    `json:"streak_days"`
	WasReset   bool   `json:"was_reset"`
}

// Payload implements Event interface.
func (e StreakUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":     e.UserID,
		"streak_days": e.StreakDays,
		"was_reset":   e.WasReset,
	}
}

// NewStreakUpdatedEvent creates a new StreakUpdatedEvent.
func NewStreakUpdatedEvent(userID string, streakDays int, wasReset bool) StreakUpdatedEvent {
	return StreakUpdatedEvent{
		BaseEvent:  NewBaseEvent(EventStreakUpdated, userID),
		UserID:     userID,
		StreakDays: streakDays,
		WasReset:   wasReset,
	}
}

// BadgeAwardedEvent is emitted when a member earns a badge.
type BadgeAwardedEvent struct {
	BaseEvent
	UserID   string `json:"user_id"`
	BadgeID  string `json:"badge_id"`
	XPReward int    `json:"xp_reward"`
}

// Payload implements Event interface.
func (e BadgeAwardedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":   e.UserID,
		"badge_id":  e.BadgeID,
		"xp_reward": e.XPReward,
	}
}

// NewBadgeAwardedEvent creates a new BadgeAwardedEvent.
func NewBadgeAwardedEvent(userID, badgeID string, xpReward int) BadgeAwardedEvent {
	return BadgeAwardedEvent{
		BaseEvent: NewBaseEvent(EventBadgeAwarded, userID),
		UserID:    userID,
		BadgeID:   badgeID,
		XPReward:  xpReward,
	}
}

// MatchCompletedEvent is emitted when a match finishes and a winner is decided.
type MatchCompletedEvent struct {
	BaseEvent
	MatchID  string `json:"match_id"`
	WinnerID string `json:"winner_id,omitempty"`
}

// Payload implements Event interface.
func (e MatchCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"match_id":  e.MatchID,
		"winner_id": e.WinnerID,
	}
}

// NewMatchCompletedEvent creates a new MatchCompletedEvent.
func NewMatchCompletedEvent(matchID, winnerID string) MatchCompletedEvent {
	return MatchCompletedEvent{
		BaseEvent: NewBaseEvent(EventMatchCompleted, matchID),
		MatchID:   matchID,
		WinnerID:  winnerID,
	}
}

// EventEnvelope wraps an event for transport/storage.
type EventEnvelope struct {
	ID          string          `json:"id"`
	Type        EventType       `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Version     int             `json:"version"`
	Payload     json.RawMessage `json:"payload"`
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
