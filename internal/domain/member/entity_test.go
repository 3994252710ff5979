package member

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

func newTestUser(t *testing.T) *User {
	t.Helper()
	user, err := NewUser("Alice@Example.COM", "Alice", "")
	assert.NoError(t, err)
	return user
}

func TestNewUser(t *testing.T) {
	user := newTestUser(t)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, shared.MinLevel, user.Level)
	assert.Equal(t, shared.XP(0), user.XP)
	assert.Equal(t, 1, user.Version)
	assert.False(t, user.OnboardingCompleted)
	assert.NotEmpty(t, user.ID)
}

func TestNewUserEmptyEmail(t *testing.T) {
	_, err := NewUser("   ", "Alice", "")
	assert.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestNewUserNameDefaultsToEmail(t *testing.T) {
	user, err := NewUser("bob@example.com", "", "")
	assert.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Name)
}

func TestAddXPWithinLevel(t *testing.T) {
	user := newTestUser(t)

	gained := user.AddXP(500)
	assert.Equal(t, 0, gained)
	assert.Equal(t, shared.XP(500), user.XP)
	assert.Equal(t, shared.Level(1), user.Level)
}

func TestAddXPCarriesOverflow(t *testing.T) {
	user := newTestUser(t)

	// Level 1 costs 1000, so 1200 leaves 200 inside level 2.
	gained := user.AddXP(1200)
	assert.Equal(t, 1, gained)
	assert.Equal(t, shared.Level(2), user.Level)
	assert.Equal(t, shared.XP(200), user.XP)
	assert.Equal(t, shared.XP(1800), user.XPToNextLevel())
}

func TestAddXPMultipleLevels(t *testing.T) {
	user := newTestUser(t)

	// 1000 + 2000 + 3000 = 6000 to reach level 4; 6500 leaves 500.
	gained := user.AddXP(6500)
	assert.Equal(t, 3, gained)
	assert.Equal(t, shared.Level(4), user.Level)
	assert.Equal(t, shared.XP(500), user.XP)
	assert.Equal(t, 6500, user.TotalXP())
}

func TestAddXPNonPositive(t *testing.T) {
	user := newTestUser(t)
	assert.Equal(t, 0, user.AddXP(0))
	assert.Equal(t, 0, user.AddXP(-50))
	assert.Equal(t, shared.XP(0), user.XP)
}

func TestLevelProgressPercent(t *testing.T) {
	user := newTestUser(t)
	assert.Equal(t, 0.0, user.LevelProgressPercent())

	user.AddXP(250)
	assert.InDelta(t, 25.0, user.LevelProgressPercent(), 0.001)

	user.AddXP(1250) // now level 2 with 500 of 2000
	assert.InDelta(t, 25.0, user.LevelProgressPercent(), 0.001)
}

func TestRecordActivityStreak(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 10, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		lastActive *time.Time
		streak     int
		at         time.Time
		wantDays   int
		wantReset  bool
	}{
		{"first activity", nil, 0, day(1), 1, false},
		{"same day keeps streak", ptr(day(5)), 3, day(5), 3, false},
		{"next day extends", ptr(day(5)), 3, day(6), 4, false},
		{"gap resets", ptr(day(5)), 3, day(9), 1, true},
		{"gap with streak of one", ptr(day(5)), 1, day(9), 1, false},
		{"clock moved backward resets", ptr(day(5)), 3, day(2), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := newTestUser(t)
			user.LastActiveDate = tt.lastActive
			user.StreakDays = tt.streak

			days, reset := user.RecordActivity(tt.at)
			assert.Equal(t, tt.wantDays, days)
			assert.Equal(t, tt.wantReset, reset)
			assert.Equal(t, tt.wantDays, user.StreakDays)
			assert.NotNil(t, user.LastActiveDate)
			assert.Equal(t, tt.at, *user.LastActiveDate)
		})
	}
}

func TestRecordActivityLateNightToEarlyMorning(t *testing.T) {
	user := newTestUser(t)
	late := time.Date(2025, 3, 5, 23, 50, 0, 0, time.UTC)
	early := time.Date(2025, 3, 6, 0, 10, 0, 0, time.UTC)

	user.RecordActivity(late)
	days, reset := user.RecordActivity(early)

	assert.Equal(t, 2, days)
	assert.False(t, reset)
}

func TestCompleteOnboarding(t *testing.T) {
	user := newTestUser(t)

	user.CompleteOnboarding("  Alice Cooper  ", []string{"producer"}, []string{"release an EP"})
	assert.True(t, user.OnboardingCompleted)
	assert.Equal(t, "Alice Cooper", user.Name)
	assert.Equal(t, []string{"producer"}, user.Roles)
	assert.Equal(t, []string{"release an EP"}, user.Goals)
}

func TestCompleteOnboardingKeepsNameWhenBlank(t *testing.T) {
	user := newTestUser(t)
	user.CompleteOnboarding("   ", nil, nil)

	assert.Equal(t, "Alice", user.Name)
	assert.NotNil(t, user.Roles)
	assert.NotNil(t, user.Goals)
}

func TestUpdateProfilePartial(t *testing.T) {
	user := newTestUser(t)
	user.Roles = []string{"vocalist"}

	name := "New Name"
	user.UpdateProfile(&name, nil, []string{"collaborate"})

	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, []string{"vocalist"}, user.Roles)
	assert.Equal(t, []string{"collaborate"}, user.Goals)
}

func ptr(t time.Time) *time.Time { return &t }
