package query

import (
	"context"

	"github.com/studio-hub/studio-hub-elite/internal/domain/attendance"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE QUERY
// Visit history, the 90-day heatmap, live status, and scheduled sessions.
// ══════════════════════════════════════════════════════════════════════════════

// HeatmapDays is the lookback of the attendance heatmap.
const HeatmapDays = 90

// AttendanceStatus reports whether the member is currently checked in.
type AttendanceStatus struct {
	IsCheckedIn bool               `json:"is_checked_in"`
	Record      *attendance.Record `json:"attendance,omitempty"`
}

// AttendanceQuery serves attendance reads.
type AttendanceQuery struct {
	records  attendance.Repository
	sessions attendance.SessionRepository
}

// NewAttendanceQuery creates the query service.
func NewAttendanceQuery(records attendance.Repository, sessions attendance.SessionRepository) *AttendanceQuery {
	return &AttendanceQuery{records: records, sessions: sessions}
}

// History returns the member's visits, newest first.
func (q *AttendanceQuery) History(ctx context.Context, userID shared.UserID, limit int) ([]*attendance.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.records.ListByUser(ctx, userID, limit)
}

// Heatmap buckets the member's last 90 days of visits by calendar day.
func (q *AttendanceQuery) Heatmap(ctx context.Context, userID shared.UserID) (map[string]attendance.HeatmapCell, error) {
	window := shared.LastNDays(HeatmapDays, timeutil.Now())
	records, err := q.records.ListInRange(ctx, userID, window)
	if err != nil {
		return nil, err
	}
	return attendance.BuildHeatmap(records), nil
}

// Status returns the member's current check-in state.
func (q *AttendanceQuery) Status(ctx context.Context, userID shared.UserID) (*AttendanceStatus, error) {
	record, err := q.records.FindOpen(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return &AttendanceStatus{IsCheckedIn: false}, nil
		}
		return nil, err
	}
	return &AttendanceStatus{IsCheckedIn: true, Record: record}, nil
}

// UpcomingSessions lists scheduled studio sessions, soonest first.
func (q *AttendanceQuery) UpcomingSessions(ctx context.Context, limit int) ([]*attendance.StudioSession, error) {
	if limit <= 0 {
		limit = 10
	}
	return q.sessions.ListUpcoming(ctx, limit)
}
