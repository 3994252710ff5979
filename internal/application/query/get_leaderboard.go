// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/studio-hub/studio-hub-elite/internal/domain/attendance"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gaming"
	"github.com/studio-hub/studio-hub-elite/internal/domain/leaderboard"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/music"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/logger"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD QUERY
// Computes the four boards from raw activity aggregates, never from the
// cached member xp/level, so admin corrections to raw records show up on
// the next computation. Computed boards are cached with a TTL.
// ══════════════════════════════════════════════════════════════════════════════

// DefaultBoardLimit bounds a board when the caller does not specify one.
const DefaultBoardLimit = 50

// LeaderboardQuery computes and serves the rankings.
type LeaderboardQuery struct {
	attendance attendance.Repository
	music      music.Repository
	gaming     gaming.Repository
	members    member.Repository
	cache      leaderboard.Cache
	cacheTTL   time.Duration
	log        *logger.Logger
}

// NewLeaderboardQuery creates the query service. cache may be nil, in which
// case every call recomputes.
func NewLeaderboardQuery(
	attendanceRepo attendance.Repository,
	musicRepo music.Repository,
	gamingRepo gaming.Repository,
	members member.Repository,
	cache leaderboard.Cache,
	cacheTTL time.Duration,
	log *logger.Logger,
) *LeaderboardQuery {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &LeaderboardQuery{
		attendance: attendanceRepo,
		music:      musicRepo,
		gaming:     gamingRepo,
		members:    members,
		cache:      cache,
		cacheTTL:   cacheTTL,
		log:        log.With(logger.Component("leaderboard-query")),
	}
}

// Catalog returns the display catalog of the four rankings.
func (q *LeaderboardQuery) Catalog() []leaderboard.CategoryInfo {
	return leaderboard.CatalogInfo()
}

// Get returns the board, served from cache when fresh.
func (q *LeaderboardQuery) Get(ctx context.Context, category leaderboard.Category, period leaderboard.Period, limit int) (*leaderboard.Board, error) {
	if !category.IsValid() {
		return nil, shared.ErrUnknownCategory
	}
	if !period.IsValid() {
		return nil, shared.ErrUnknownPeriod
	}
	if limit <= 0 {
		limit = DefaultBoardLimit
	}

	if q.cache != nil {
		if board, err := q.cache.Get(ctx, category, period); err == nil && len(board.Entries) >= limit {
			board.Entries = board.Entries[:limit]
			return board, nil
		}
	}

	board, err := q.Compute(ctx, category, period, limit)
	if err != nil {
		return nil, err
	}

	if q.cache != nil {
		if err := q.cache.Set(ctx, board, q.cacheTTL); err != nil {
			q.log.Warn("board cache write failed",
				logger.F("category", category), logger.F("period", period), logger.Err(err))
		}
	}
	return board, nil
}

// Compute builds the board from raw aggregates, bypassing the cache.
func (q *LeaderboardQuery) Compute(ctx context.Context, category leaderboard.Category, period leaderboard.Period, limit int) (*leaderboard.Board, error) {
	now := timeutil.Now()
	window := period.Window(now)

	var (
		raw []leaderboard.RawScore
		err error
	)
	switch category {
	case leaderboard.CategoryAttendance:
		raw, err = q.attendanceScores(ctx, window)
	case leaderboard.CategoryMusic:
		raw, err = q.musicScores(ctx)
	case leaderboard.CategoryGaming:
		raw, err = q.gamingScores(ctx, window)
	case leaderboard.CategoryHybrid:
		raw, err = q.hybridScores(ctx)
	default:
		return nil, shared.ErrUnknownCategory
	}
	if err != nil {
		return nil, fmt.Errorf("leaderboard %s/%s: %w", category, period, err)
	}

	raw = leaderboard.SortAndTruncate(raw, limit)
	entries, err := q.enrich(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("leaderboard %s/%s: enrich: %w", category, period, err)
	}

	return &leaderboard.Board{
		Category:  category,
		Period:    period,
		Entries:   entries,
		UpdatedAt: now,
	}, nil
}

func (q *LeaderboardQuery) attendanceScores(ctx context.Context, window shared.TimeRange) ([]leaderboard.RawScore, error) {
	totals, err := q.attendance.AggregateInRange(ctx, window)
	if err != nil {
		return nil, err
	}
	inputs := make([]leaderboard.AttendanceInput, 0, len(totals))
	for userID, t := range totals {
		inputs = append(inputs, leaderboard.AttendanceInput{
			UserID:          userID,
			Sessions:        t.Sessions,
			DurationMinutes: t.DurationMinutes,
		})
	}
	return leaderboard.AttendanceScores(inputs), nil
}

// musicScores uses lifetime track stats and lifetime contribution counts,
// matching the reference formula that ignores the window for this board.
func (q *LeaderboardQuery) musicScores(ctx context.Context) ([]leaderboard.RawScore, error) {
	tracks, err := q.music.AggregateTracksByCreator(ctx)
	if err != nil {
		return nil, err
	}
	contribs, err := q.music.CountContributionsByUser(ctx)
	if err != nil {
		return nil, err
	}

	inputs := make([]leaderboard.MusicInput, 0, len(tracks))
	for userID, t := range tracks {
		inputs = append(inputs, leaderboard.MusicInput{
			UserID:        userID,
			Tracks:        t.Tracks,
			Listens:       t.Listens,
			Likes:         t.Likes,
			Contributions: contribs[userID],
		})
	}
	return leaderboard.MusicScores(inputs), nil
}

func (q *LeaderboardQuery) gamingScores(ctx context.Context, window shared.TimeRange) ([]leaderboard.RawScore, error) {
	totals, err := q.gaming.AggregateInRange(ctx, window)
	if err != nil {
		return nil, err
	}
	inputs := make([]leaderboard.GamingInput, 0, len(totals))
	for userID, t := range totals {
		inputs = append(inputs, leaderboard.GamingInput{
			UserID:     userID,
			Wins:       t.Wins,
			TotalScore: t.TotalScore,
			TotalKills: t.TotalKills,
			Deaths:     t.Deaths,
			Matches:    t.Matches,
		})
	}
	return leaderboard.GamingScores(inputs), nil
}

// hybridScores composes lifetime sub-scores across all three activities.
func (q *LeaderboardQuery) hybridScores(ctx context.Context) ([]leaderboard.RawScore, error) {
	attendanceTotals, err := q.attendance.AggregateInRange(ctx, leaderboard.PeriodAllTime.Window(timeutil.Now()))
	if err != nil {
		return nil, err
	}
	tracks, err := q.music.AggregateTracksByCreator(ctx)
	if err != nil {
		return nil, err
	}
	contribs, err := q.music.CountContributionsByUser(ctx)
	if err != nil {
		return nil, err
	}
	scoreSums, err := q.gaming.SumScoresByUser(ctx)
	if err != nil {
		return nil, err
	}

	users := make(map[shared.UserID]struct{})
	for id := range attendanceTotals {
		users[id] = struct{}{}
	}
	for id := range tracks {
		users[id] = struct{}{}
	}
	for id := range contribs {
		users[id] = struct{}{}
	}
	for id := range scoreSums {
		users[id] = struct{}{}
	}

	inputs := make([]leaderboard.HybridInput, 0, len(users))
	for id := range users {
		inputs = append(inputs, leaderboard.HybridInput{
			UserID:        id,
			Attendance:    attendanceTotals[id].Sessions,
			Tracks:        tracks[id].Tracks,
			Contributions: contribs[id],
			ScoreSum:      scoreSums[id],
		})
	}
	return leaderboard.HybridScores(inputs), nil
}

// enrich joins member details onto ranked scores. Members deleted between
// aggregation and enrichment are dropped without disturbing the ranks of
// the remaining entries.
func (q *LeaderboardQuery) enrich(ctx context.Context, raw []leaderboard.RawScore) ([]leaderboard.Entry, error) {
	ids := make([]shared.UserID, 0, len(raw))
	for _, r := range raw {
		ids = append(ids, r.UserID)
	}
	users, err := q.members.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]leaderboard.Entry, 0, len(raw))
	for _, r := range raw {
		user, ok := users[r.UserID]
		if !ok {
			continue
		}
		entries = append(entries, leaderboard.Entry{
			Rank:    shared.Rank(len(entries) + 1),
			UserID:  r.UserID,
			Name:    user.Name,
			Picture: user.Picture,
			Level:   user.Level.Int(),
			Score:   leaderboard.RoundScore(r.Score),
			Details: r.Details,
		})
	}
	return entries, nil
}

// RefreshAll recomputes and caches every category for the given period.
// Used by the background refresh job.
func (q *LeaderboardQuery) RefreshAll(ctx context.Context, period leaderboard.Period, limit int) error {
	if limit <= 0 {
		limit = DefaultBoardLimit
	}
	for _, category := range leaderboard.AllCategories() {
		board, err := q.Compute(ctx, category, period, limit)
		if err != nil {
			return err
		}
		if q.cache != nil {
			if err := q.cache.Set(ctx, board, q.cacheTTL); err != nil {
				q.log.Warn("board cache refresh failed",
					logger.F("category", category), logger.F("period", period), logger.Err(err))
			}
		}
	}
	return nil
}
