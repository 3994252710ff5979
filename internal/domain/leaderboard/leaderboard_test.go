package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

func TestCategoryIsValid(t *testing.T) {
	for _, c := range AllCategories() {
		assert.True(t, c.IsValid(), "category %s", c)
	}
	assert.False(t, Category("xp_total").IsValid())
}

func TestPeriodWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	weekly := PeriodWeekly.Window(now)
	assert.Equal(t, now.AddDate(0, 0, -7), weekly.From)
	assert.Equal(t, now, weekly.To)

	monthly := PeriodMonthly.Window(now)
	assert.Equal(t, now.AddDate(0, 0, -30), monthly.From)

	seasonal := PeriodSeasonal.Window(now)
	assert.Equal(t, now.AddDate(0, 0, -90), seasonal.From)

	allTime := PeriodAllTime.Window(now)
	assert.Equal(t, 2020, allTime.From.Year())
	assert.Equal(t, now, allTime.To)
}

func TestCatalogInfoCoversAllCategories(t *testing.T) {
	catalog := CatalogInfo()
	assert.Len(t, catalog, len(AllCategories()))
	for i, info := range catalog {
		assert.Equal(t, AllCategories()[i], info.ID)
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.Formula)
	}
}

func TestAttendanceScores(t *testing.T) {
	scores := AttendanceScores([]AttendanceInput{
		{UserID: "user_a", Sessions: 10, DurationMinutes: 600}, // 10 + 10h*2 = 30
		{UserID: "user_b", Sessions: 5, DurationMinutes: 90},   // 5 + 1.5h*2 = 8
	})

	assert.Len(t, scores, 2)
	assert.InDelta(t, 30.0, scores[0].Score, 0.001)
	assert.InDelta(t, 8.0, scores[1].Score, 0.001)
	assert.Equal(t, 10, scores[0].Details["total_sessions"])
	assert.Equal(t, 600, scores[0].Details["total_duration"])
}

func TestAttendanceScoresCountsOpenVisits(t *testing.T) {
	// A visit without a check-out yet still counts as a session; it just
	// contributes no duration until it is closed.
	scores := AttendanceScores([]AttendanceInput{
		{UserID: "user_a", Sessions: 3, DurationMinutes: 0},
	})

	assert.Len(t, scores, 1)
	assert.InDelta(t, 3.0, scores[0].Score, 0.001)
	assert.Equal(t, 3, scores[0].Details["total_sessions"])
	assert.Equal(t, 0, scores[0].Details["total_duration"])
}

func TestMusicScores(t *testing.T) {
	scores := MusicScores([]MusicInput{
		{UserID: "user_a", Tracks: 2, Listens: 100, Likes: 4, Contributions: 3},
	})

	// 2*50 + 100/10 + 4*5 + 3*30 = 100 + 10 + 20 + 90 = 220
	assert.InDelta(t, 220.0, scores[0].Score, 0.001)
	assert.Equal(t, 2, scores[0].Details["tracks_created"])
}

func TestGamingScores(t *testing.T) {
	scores := GamingScores([]GamingInput{
		{UserID: "user_a", Wins: 3, TotalScore: 5000, TotalKills: 20, Deaths: 10, Matches: 8},
	})

	// 3*100 + 5000/1000 + 20*2 = 300 + 5 + 40 = 345
	assert.InDelta(t, 345.0, scores[0].Score, 0.001)
	assert.InDelta(t, 2.0, scores[0].Details["kd_ratio"], 0.001)
	assert.Equal(t, 8, scores[0].Details["matches"])
}

func TestGamingScoresZeroDeaths(t *testing.T) {
	scores := GamingScores([]GamingInput{
		{UserID: "user_a", TotalKills: 7, Deaths: 0},
	})
	// With zero deaths the ratio reports raw kills.
	assert.InDelta(t, 7.0, scores[0].Details["kd_ratio"], 0.001)
}

func TestHybridScores(t *testing.T) {
	scores := HybridScores([]HybridInput{
		{UserID: "user_a", Attendance: 10, Tracks: 2, Contributions: 1, ScoreSum: 2000},
		{UserID: "user_idle"},
	})

	// att = 100, music = 130, gaming = 20
	// 100*0.3 + 130*0.35 + 20*0.35 = 30 + 45.5 + 7 = 82.5
	assert.Len(t, scores, 1, "zero-composite members are dropped")
	assert.InDelta(t, 82.5, scores[0].Score, 0.001)
	assert.InDelta(t, 100.0, scores[0].Details["att_score"], 0.001)
	assert.InDelta(t, 130.0, scores[0].Details["music_score"], 0.001)
	assert.InDelta(t, 20.0, scores[0].Details["gaming_score"], 0.001)
}

func TestSortAndTruncate(t *testing.T) {
	scores := []RawScore{
		{UserID: "user_c", Score: 10},
		{UserID: "user_a", Score: 30},
		{UserID: "user_b", Score: 20},
	}

	top := SortAndTruncate(scores, 2)
	assert.Len(t, top, 2)
	assert.Equal(t, shared.UserID("user_a"), top[0].UserID)
	assert.Equal(t, shared.UserID("user_b"), top[1].UserID)
}

func TestSortAndTruncateTieBreaksByUserID(t *testing.T) {
	scores := []RawScore{
		{UserID: "user_b", Score: 50},
		{UserID: "user_a", Score: 50},
		{UserID: "user_c", Score: 50},
	}

	sorted := SortAndTruncate(scores, 0)
	assert.Equal(t, shared.UserID("user_a"), sorted[0].UserID)
	assert.Equal(t, shared.UserID("user_b"), sorted[1].UserID)
	assert.Equal(t, shared.UserID("user_c"), sorted[2].UserID)
}

func TestSortAndTruncateNoLimit(t *testing.T) {
	scores := []RawScore{{UserID: "user_a", Score: 1}, {UserID: "user_b", Score: 2}}
	assert.Len(t, SortAndTruncate(scores, 0), 2)
	assert.Len(t, SortAndTruncate(scores, 10), 2)
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 82.5, RoundScore(82.5))
	assert.Equal(t, 82.46, RoundScore(82.456))
	assert.Equal(t, 0.0, RoundScore(0.0049))
}
