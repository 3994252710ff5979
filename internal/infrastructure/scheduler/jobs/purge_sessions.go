package jobs

import (
	"context"
	"time"

	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// PURGE SESSIONS JOB
// ══════════════════════════════════════════════════════════════════════════════

// PurgeSessionsJob deletes expired login sessions.
type PurgeSessionsJob struct {
	sessions member.SessionRepository
	timeout  time.Duration
	log      *logger.Logger
}

// NewPurgeSessionsJob creates the job.
func NewPurgeSessionsJob(sessions member.SessionRepository, log *logger.Logger) *PurgeSessionsJob {
	return &PurgeSessionsJob{
		sessions: sessions,
		timeout:  30 * time.Second,
		log:      log.With(logger.Component("purge-sessions-job")),
	}
}

// Name returns the unique name of the job.
func (j *PurgeSessionsJob) Name() string { return "purge_sessions" }

// Description returns a human-readable description of the job.
func (j *PurgeSessionsJob) Description() string {
	return "Deletes login sessions past their expiry"
}

// Run removes expired sessions.
func (j *PurgeSessionsJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	removed, err := j.sessions.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		j.log.Info("expired sessions purged", logger.Int("count", removed))
	}
	return nil
}
