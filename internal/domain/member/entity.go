// Package member contains the member aggregate: the studio user with their
// gamification progress (xp, level, streak), profile, and sessions.
package member

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// User aggregate
// ══════════════════════════════════════════════════════════════════════════════

// User is the member aggregate root. XP holds the remainder within the current
// level; the cost of advancing from level L is L*1000, so lifetime XP grows
// triangularly. Version supports optimistic concurrency on progress updates.
type User struct {
	ID                  shared.UserID `json:"id"`
	Email               string        `json:"email"`
	Name                string        `json:"name"`
	Picture             string        `json:"picture,omitempty"`
	Roles               []string      `json:"roles"`
	Goals               []string      `json:"goals"`
	OnboardingCompleted bool          `json:"onboarding_completed"`
	IsAdmin             bool          `json:"is_admin"`

	XP             shared.XP    `json:"xp"`
	Level          shared.Level `json:"level"`
	StreakDays     int          `json:"streak_days"`
	LastActiveDate *time.Time   `json:"last_active_date,omitempty"`

	Version   int       `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a fresh member from an identity provider profile.
func NewUser(email, name, picture string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, shared.NewDomainError("member", "NewUser", shared.ErrEmptyValue, "email cannot be empty")
	}
	if name == "" {
		name = email
	}

	now := timeutil.Now()
	return &User{
		ID:        NewUserID(),
		Email:     email,
		Name:      name,
		Picture:   picture,
		Roles:     []string{},
		Goals:     []string{},
		XP:        0,
		Level:     shared.MinLevel,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewUserID generates a member identifier: "user_" plus 12 hex characters.
func NewUserID() shared.UserID {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble,
		// fall back to a time-derived id rather than panic.
		return shared.UserID(fmt.Sprintf("user_%012x", time.Now().UnixNano()&0xffffffffffff))
	}
	return shared.UserID("user_" + hex.EncodeToString(buf))
}

// ══════════════════════════════════════════════════════════════════════════════
// Gamification progress
// ══════════════════════════════════════════════════════════════════════════════

// AddXP credits xp to the member, carrying overflow into level-ups.
// Returns the number of levels gained. Non-positive amounts are rejected
// at the service layer; here they are a no-op.
func (u *User) AddXP(amount shared.XP) int {
	if amount <= 0 {
		return 0
	}

	newXP := u.XP + amount
	newLevel := u.Level
	levelsGained := 0

	for newXP >= newLevel.XPToAdvance() {
		newXP -= newLevel.XPToAdvance()
		newLevel++
		levelsGained++
	}

	u.XP = newXP
	u.Level = newLevel
	u.touch()
	return levelsGained
}

// XPToNextLevel returns how much more XP the member needs to level up.
func (u *User) XPToNextLevel() shared.XP {
	return u.Level.XPToAdvance() - u.XP
}

// LevelProgressPercent returns how far the member is through the current
// level, 0..100, relative to the current level's advancement cost.
func (u *User) LevelProgressPercent() float64 {
	cost := u.Level.XPToAdvance()
	if cost <= 0 {
		return 0
	}
	return float64(u.XP) / float64(cost) * 100
}

// TotalXP returns the member's lifetime XP: the cost of all completed levels
// plus the remainder within the current one.
func (u *User) TotalXP() int {
	return u.Level.LifetimeXP() + u.XP.Int()
}

// RecordActivity advances the attendance streak for an activity at the given
// time. Same calendar day leaves the streak unchanged; the next day extends
// it; any gap (or a clock moving backward) resets it to 1.
// Returns the new streak length and whether it was reset.
func (u *User) RecordActivity(at time.Time) (days int, reset bool) {
	defer func() {
		t := at
		u.LastActiveDate = &t
		u.StreakDays = days
		u.touch()
	}()

	if u.LastActiveDate == nil {
		return 1, false
	}

	switch diff := timeutil.CalendarDaysBetween(*u.LastActiveDate, at); {
	case diff == 0:
		return u.StreakDays, false
	case diff == 1:
		return u.StreakDays + 1, false
	default:
		return 1, u.StreakDays > 1
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// Profile
// ══════════════════════════════════════════════════════════════════════════════

// CompleteOnboarding records the member's chosen name, roles, and goals.
func (u *User) CompleteOnboarding(name string, roles, goals []string) {
	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
	}
	if roles == nil {
		roles = []string{}
	}
	if goals == nil {
		goals = []string{}
	}
	u.Roles = roles
	u.Goals = goals
	u.OnboardingCompleted = true
	u.touch()
}

// UpdateProfile applies optional profile changes from a settings form.
func (u *User) UpdateProfile(name *string, roles, goals []string) {
	if name != nil && strings.TrimSpace(*name) != "" {
		u.Name = strings.TrimSpace(*name)
	}
	if roles != nil {
		u.Roles = roles
	}
	if goals != nil {
		u.Goals = goals
	}
	u.touch()
}

func (u *User) touch() {
	u.UpdatedAt = timeutil.Now()
}
