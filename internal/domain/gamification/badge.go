package gamification

import (
	"time"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// RequirementType classifies what a badge measures.
type RequirementType string

const (
	RequirementOnboarding RequirementType = "onboarding"
	RequirementStreak     RequirementType = "streak"
	RequirementLevel      RequirementType = "level"
	RequirementTracks     RequirementType = "tracks"
	RequirementWins       RequirementType = "wins"
	RequirementHybrid     RequirementType = "hybrid"
)

// Rarity of a badge, purely cosmetic.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Badge is a catalog entry. The catalog is seeded at startup and badges
// are referenced by their stable BadgeID.
type Badge struct {
	BadgeID          string          `json:"badge_id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Icon             string          `json:"icon"`
	Category         string          `json:"category"`
	RequirementType  RequirementType `json:"requirement_type"`
	RequirementValue int             `json:"requirement_value"`
	XPReward         int             `json:"xp_reward"`
	Rarity           Rarity          `json:"rarity"`
}

// UserBadge records that a member earned a badge. At most one row exists
// per (user, badge) pair.
type UserBadge struct {
	UserID    shared.UserID
	BadgeID   string
	AwardedAt time.Time
}

// NewUserBadge creates an award record.
func NewUserBadge(userID shared.UserID, badgeID string) *UserBadge {
	return &UserBadge{
		UserID:    userID,
		BadgeID:   badgeID,
		AwardedAt: timeutil.Now(),
	}
}

// Catalog returns the full badge catalog in seed order.
func Catalog() []Badge {
	return []Badge{
		{BadgeID: "first_steps", Name: "First Steps", Description: "Completed onboarding", Icon: "rocket", Category: "general", RequirementType: RequirementOnboarding, RequirementValue: 1, XPReward: 100, Rarity: RarityCommon},
		{BadgeID: "week_warrior", Name: "Week Warrior", Description: "7-day attendance streak", Icon: "flame", Category: "attendance", RequirementType: RequirementStreak, RequirementValue: 7, XPReward: 200, Rarity: RarityRare},
		{BadgeID: "monthly_legend", Name: "Monthly Legend", Description: "30-day attendance streak", Icon: "trophy", Category: "attendance", RequirementType: RequirementStreak, RequirementValue: 30, XPReward: 500, Rarity: RarityEpic},
		{BadgeID: "century_club", Name: "Century Club", Description: "100-day attendance streak", Icon: "crown", Category: "attendance", RequirementType: RequirementStreak, RequirementValue: 100, XPReward: 1000, Rarity: RarityLegendary},
		{BadgeID: "rising_star", Name: "Rising Star", Description: "Reached level 5", Icon: "star", Category: "level", RequirementType: RequirementLevel, RequirementValue: 5, XPReward: 100, Rarity: RarityCommon},
		{BadgeID: "veteran", Name: "Veteran", Description: "Reached level 10", Icon: "medal", Category: "level", RequirementType: RequirementLevel, RequirementValue: 10, XPReward: 250, Rarity: RarityRare},
		{BadgeID: "elite_member", Name: "Elite Member", Description: "Reached level 25", Icon: "gem", Category: "level", RequirementType: RequirementLevel, RequirementValue: 25, XPReward: 500, Rarity: RarityEpic},
		{BadgeID: "legend", Name: "Legend", Description: "Reached level 50", Icon: "crown", Category: "level", RequirementType: RequirementLevel, RequirementValue: 50, XPReward: 1000, Rarity: RarityLegendary},
		{BadgeID: "track_creator", Name: "Track Creator", Description: "Created your first track", Icon: "music", Category: "music", RequirementType: RequirementTracks, RequirementValue: 1, XPReward: 150, Rarity: RarityCommon},
		{BadgeID: "producer", Name: "Producer", Description: "Created 10 tracks", Icon: "headphones", Category: "music", RequirementType: RequirementTracks, RequirementValue: 10, XPReward: 500, Rarity: RarityRare},
		{BadgeID: "gamer", Name: "Gamer", Description: "Won your first match", Icon: "gamepad", Category: "gaming", RequirementType: RequirementWins, RequirementValue: 1, XPReward: 150, Rarity: RarityCommon},
		{BadgeID: "champion", Name: "Champion", Description: "Won 25 matches", Icon: "trophy", Category: "gaming", RequirementType: RequirementWins, RequirementValue: 25, XPReward: 500, Rarity: RarityEpic},
		{BadgeID: "hybrid_hero", Name: "Hybrid Hero", Description: "Active in music, gaming, and attendance", Icon: "star", Category: "hybrid", RequirementType: RequirementHybrid, RequirementValue: 1, XPReward: 300, Rarity: RarityRare},
	}
}

// Badge ids referenced directly by the engine.
const (
	BadgeFirstSteps = "first_steps"
	BadgeHybridHero = "hybrid_hero"
)

// levelBadges maps levels to the badge earned on reaching that level.
var levelBadges = map[shared.Level]string{
	5:  "rising_star",
	10: "veteran",
	25: "elite_member",
	50: "legend",
}

// StreakBadgesUpTo returns the badges earned by holding the given streak,
// in ascending threshold order. Awards are idempotent downstream, so
// re-reporting already-earned thresholds is harmless.
func StreakBadgesUpTo(days int) []string {
	var out []string
	if days >= 7 {
		out = append(out, "week_warrior")
	}
	if days >= 30 {
		out = append(out, "monthly_legend")
	}
	if days >= 100 {
		out = append(out, "century_club")
	}
	return out
}

// LevelBadgesUpTo returns the badges earned by holding the given level,
// in ascending threshold order. Crossing several thresholds in one grant
// still awards every badge passed.
func LevelBadgesUpTo(level shared.Level) []string {
	var out []string
	for _, l := range []shared.Level{5, 10, 25, 50} {
		if level >= l {
			out = append(out, levelBadges[l])
		}
	}
	return out
}

// WinBadgesUpTo returns the badges earned by the given win count.
func WinBadgesUpTo(wins int) []string {
	var out []string
	if wins >= 1 {
		out = append(out, "gamer")
	}
	if wins >= 25 {
		out = append(out, "champion")
	}
	return out
}

// TrackBadgesUpTo returns the badges earned by the given track count.
func TrackBadgesUpTo(tracks int) []string {
	var out []string
	if tracks >= 1 {
		out = append(out, "track_creator")
	}
	if tracks >= 10 {
		out = append(out, "producer")
	}
	return out
}
