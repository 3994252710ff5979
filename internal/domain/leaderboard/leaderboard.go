// Package leaderboard computes the four studio rankings. Each category has
// a pure scoring function over raw aggregates, so the formulas are testable
// without a database, and a sort that is deterministic under score ties.
package leaderboard

import (
	"math"
	"sort"
	"time"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// Category and period
// ══════════════════════════════════════════════════════════════════════════════

// Category identifies one of the four rankings.
type Category string

const (
	CategoryAttendance Category = "attendance_monthly"
	CategoryMusic      Category = "music_impact"
	CategoryGaming     Category = "gaming_ranked"
	CategoryHybrid     Category = "hybrid_master"
)

// AllCategories lists the rankings in display order.
func AllCategories() []Category {
	return []Category{CategoryAttendance, CategoryMusic, CategoryGaming, CategoryHybrid}
}

// IsValid checks that the category is known.
func (c Category) IsValid() bool {
	switch c {
	case CategoryAttendance, CategoryMusic, CategoryGaming, CategoryHybrid:
		return true
	}
	return false
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Period is the lookback window of a ranking.
type Period string

const (
	PeriodWeekly   Period = "weekly"
	PeriodMonthly  Period = "monthly"
	PeriodSeasonal Period = "seasonal"
	PeriodAllTime  Period = "all_time"
)

// allTimeEpoch anchors the all_time window at the platform launch.
var allTimeEpoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// IsValid checks that the period is known.
func (p Period) IsValid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodSeasonal, PeriodAllTime:
		return true
	}
	return false
}

// String returns the string representation.
func (p Period) String() string {
	return string(p)
}

// Window returns the time range the period covers, ending at now.
func (p Period) Window(now time.Time) shared.TimeRange {
	switch p {
	case PeriodWeekly:
		return shared.LastNDays(7, now)
	case PeriodMonthly:
		return shared.LastNDays(30, now)
	case PeriodSeasonal:
		return shared.LastNDays(90, now)
	default:
		return shared.TimeRange{From: allTimeEpoch, To: now}
	}
}

// CategoryInfo describes a ranking for the catalog endpoint.
type CategoryInfo struct {
	ID          Category `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Formula     string   `json:"formula"`
}

// CatalogInfo returns the display catalog of the four rankings.
func CatalogInfo() []CategoryInfo {
	return []CategoryInfo{
		{ID: CategoryAttendance, Name: "Attendance Champions", Description: "Top members by monthly studio attendance", Icon: "calendar", Formula: "Total check-ins + (duration_hours * 2)"},
		{ID: CategoryMusic, Name: "Music Impact", Description: "Members with highest music contributions", Icon: "music", Formula: "(tracks * 50) + (contributions * 30) + (listens/100)"},
		{ID: CategoryGaming, Name: "Gaming Elite", Description: "Top gamers by score and wins", Icon: "gamepad", Formula: "(wins * 100) + (total_score/1000) + (kd_ratio * 50)"},
		{ID: CategoryHybrid, Name: "Hybrid Masters", Description: "Members excelling across all activities", Icon: "star", Formula: "(attendance_score * 0.3) + (music_score * 0.35) + (gaming_score * 0.35)"},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// Scores and formulas
// ══════════════════════════════════════════════════════════════════════════════

// RawScore is one member's unranked result with the per-category breakdown
// shown as details in the final board.
type RawScore struct {
	UserID  shared.UserID
	Score   float64
	Details map[string]any
}

// AttendanceInput feeds the attendance formula.
type AttendanceInput struct {
	UserID          shared.UserID
	Sessions        int
	DurationMinutes int
}

// AttendanceScores scores windowed studio attendance:
// score = sessions + duration_hours * 2.
func AttendanceScores(inputs []AttendanceInput) []RawScore {
	out := make([]RawScore, 0, len(inputs))
	for _, in := range inputs {
		score := float64(in.Sessions) + float64(in.DurationMinutes)/60*2
		out = append(out, RawScore{
			UserID: in.UserID,
			Score:  score,
			Details: map[string]any{
				"total_sessions": in.Sessions,
				"total_duration": in.DurationMinutes,
			},
		})
	}
	return out
}

// MusicInput feeds the music formula. Track stats are grouped by creator;
// all counts are lifetime regardless of the requested window, matching
// the reference behavior.
type MusicInput struct {
	UserID        shared.UserID
	Tracks        int
	Listens       int
	Likes         int
	Contributions int
}

// MusicScores scores music impact:
// score = tracks*50 + listens/10 + likes*5 + contributions*30.
func MusicScores(inputs []MusicInput) []RawScore {
	out := make([]RawScore, 0, len(inputs))
	for _, in := range inputs {
		score := float64(in.Tracks)*50 + float64(in.Listens)/10 + float64(in.Likes)*5 + float64(in.Contributions)*30
		out = append(out, RawScore{
			UserID: in.UserID,
			Score:  score,
			Details: map[string]any{
				"tracks_created": in.Tracks,
				"total_listens":  in.Listens,
				"total_likes":    in.Likes,
				"contributions":  in.Contributions,
			},
		})
	}
	return out
}

// GamingInput feeds the gaming formula. A win is a score row submitted
// with rank position 1.
type GamingInput struct {
	UserID     shared.UserID
	Wins       int
	TotalScore int
	TotalKills int
	Deaths     int
	Matches    int
}

// GamingScores scores ranked gaming:
// score = wins*100 + total_score/1000 + total_kills*2.
// The K/D ratio is reported in the details but does not affect the score.
func GamingScores(inputs []GamingInput) []RawScore {
	out := make([]RawScore, 0, len(inputs))
	for _, in := range inputs {
		kd := float64(in.TotalKills)
		if in.Deaths > 0 {
			kd = float64(in.TotalKills) / float64(in.Deaths)
		}
		score := float64(in.Wins)*100 + float64(in.TotalScore)/1000 + float64(in.TotalKills)*2
		out = append(out, RawScore{
			UserID: in.UserID,
			Score:  score,
			Details: map[string]any{
				"wins":         in.Wins,
				"total_score":  in.TotalScore,
				"total_kills":  in.TotalKills,
				"total_deaths": in.Deaths,
				"matches":      in.Matches,
				"kd_ratio":     kd,
			},
		})
	}
	return out
}

// HybridInput feeds the hybrid formula with lifetime counts.
type HybridInput struct {
	UserID        shared.UserID
	Attendance    int
	Tracks        int
	Contributions int
	ScoreSum      int
}

// HybridScores scores cross-activity mastery from lifetime sub-scores:
// att = attendance*10, music = tracks*50 + contributions*30,
// gaming = score_sum/100, score = att*0.3 + music*0.35 + gaming*0.35.
// Members with a zero composite are dropped.
func HybridScores(inputs []HybridInput) []RawScore {
	out := make([]RawScore, 0, len(inputs))
	for _, in := range inputs {
		att := float64(in.Attendance * 10)
		music := float64(in.Tracks*50 + in.Contributions*30)
		gaming := float64(in.ScoreSum) / 100
		score := att*0.3 + music*0.35 + gaming*0.35
		if score <= 0 {
			continue
		}
		out = append(out, RawScore{
			UserID: in.UserID,
			Score:  score,
			Details: map[string]any{
				"att_score":    att,
				"music_score":  music,
				"gaming_score": gaming,
			},
		})
	}
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// Ranking
// ══════════════════════════════════════════════════════════════════════════════

// Entry is one ranked row of a board, enriched with member details.
type Entry struct {
	Rank    shared.Rank    `json:"rank"`
	UserID  shared.UserID  `json:"user_id"`
	Name    string         `json:"name"`
	Picture string         `json:"picture,omitempty"`
	Level   int            `json:"level"`
	Score   float64        `json:"score"`
	Details map[string]any `json:"details,omitempty"`
}

// Board is a computed leaderboard.
type Board struct {
	Category  Category  `json:"category"`
	Period    Period    `json:"period"`
	Entries   []Entry   `json:"entries"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SortAndTruncate orders raw scores descending and keeps the top limit.
// Ties break by user id so repeated computations agree.
func SortAndTruncate(scores []RawScore, limit int) []RawScore {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].UserID < scores[j].UserID
	})
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}

// RoundScore rounds to two decimals for presentation.
func RoundScore(s float64) float64 {
	return math.Round(s*100) / 100
}
