// Package jobs contains the scheduled background jobs.
package jobs

import (
	"context"
	"time"

	"github.com/studio-hub/studio-hub-elite/internal/application/query"
	"github.com/studio-hub/studio-hub-elite/internal/domain/leaderboard"
	"github.com/studio-hub/studio-hub-elite/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// REFRESH LEADERBOARDS JOB
// ══════════════════════════════════════════════════════════════════════════════

// RefreshLeaderboardsJob recomputes every category board for the
// configured periods so reads are served warm from the cache.
type RefreshLeaderboardsJob struct {
	boards  *query.LeaderboardQuery
	periods []leaderboard.Period
	limit   int
	timeout time.Duration
	log     *logger.Logger
}

// NewRefreshLeaderboardsJob creates the job. Empty periods default to
// monthly, the period shown on the dashboard.
func NewRefreshLeaderboardsJob(boards *query.LeaderboardQuery, periods []leaderboard.Period, log *logger.Logger) *RefreshLeaderboardsJob {
	if len(periods) == 0 {
		periods = []leaderboard.Period{leaderboard.PeriodMonthly}
	}
	return &RefreshLeaderboardsJob{
		boards:  boards,
		periods: periods,
		limit:   query.DefaultBoardLimit,
		timeout: 2 * time.Minute,
		log:     log.With(logger.Component("refresh-leaderboards-job")),
	}
}

// Name returns the unique name of the job.
func (j *RefreshLeaderboardsJob) Name() string { return "refresh_leaderboards" }

// Description returns a human-readable description of the job.
func (j *RefreshLeaderboardsJob) Description() string {
	return "Recomputes and caches all leaderboard categories"
}

// Run refreshes each configured period. A failing period is logged and
// the rest still refresh.
func (j *RefreshLeaderboardsJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	var lastErr error
	for _, period := range j.periods {
		if err := j.boards.RefreshAll(ctx, period, j.limit); err != nil {
			j.log.Warn("leaderboard refresh failed",
				logger.String("period", period.String()),
				logger.Err(err),
			)
			lastErr = err
		}
	}
	return lastErr
}
