// Package attendance tracks studio presence: check-in/check-out records,
// the scheduled studio sessions members can attend, and the heatmap view.
package attendance

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// Record is one studio visit. A member has at most one open record
// (CheckOut == nil) at a time; checking out closes it and fixes the
// earned XP.
type Record struct {
	AttendanceID    string        `json:"attendance_id"`
	UserID          shared.UserID `json:"user_id"`
	SessionID       string        `json:"session_id,omitempty"`
	CheckIn         time.Time     `json:"check_in"`
	CheckOut        *time.Time    `json:"check_out,omitempty"`
	DurationMinutes int           `json:"duration_minutes"`
	XPEarned        int           `json:"xp_earned"`
}

// NewRecord opens a visit at the given time. sessionID is optional and
// links the visit to a scheduled studio session.
func NewRecord(userID shared.UserID, sessionID string, at time.Time) *Record {
	return &Record{
		AttendanceID: newAttendanceID(),
		UserID:       userID,
		SessionID:    sessionID,
		CheckIn:      at,
	}
}

func newAttendanceID() string {
	return "att_" + uuid.NewString()[:12]
}

// IsOpen reports whether the visit is still in progress.
func (r *Record) IsOpen() bool {
	return r.CheckOut == nil
}

// Close ends the visit, computing the duration and the capped XP reward.
// Returns ErrRecordClosed if the visit already ended.
func (r *Record) Close(at time.Time) error {
	if !r.IsOpen() {
		return shared.ErrRecordClosed
	}
	t := at
	r.CheckOut = &t
	r.DurationMinutes = timeutil.MinutesBetween(r.CheckIn, at)
	r.XPEarned = gamification.AttendanceXP(r.DurationMinutes)
	return nil
}

// Description returns the ledger description for the closed visit.
func (r *Record) Description() string {
	return fmt.Sprintf("Studio session (%d mins)", r.DurationMinutes)
}

// StudioSession is a scheduled session members can sign up to attend.
type StudioSession struct {
	SessionID       string        `json:"session_id"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	StartTime       time.Time     `json:"start_time"`
	EndTime         time.Time     `json:"end_time"`
	MaxParticipants int           `json:"max_participants"`
	SessionType     string        `json:"session_type"` // music, gaming, hybrid
	CreatedBy       shared.UserID `json:"created_by"`
	CreatedAt       time.Time     `json:"created_at"`
}

// NewStudioSession creates a scheduled session.
func NewStudioSession(title, description string, start, end time.Time, maxParticipants int, sessionType string, createdBy shared.UserID) (*StudioSession, error) {
	if title == "" {
		return nil, shared.NewDomainError("attendance", "NewStudioSession", shared.ErrEmptyValue, "title cannot be empty")
	}
	if !end.After(start) {
		return nil, shared.NewDomainError("attendance", "NewStudioSession", shared.ErrInvalidInput, "end time must be after start time")
	}
	if maxParticipants <= 0 {
		maxParticipants = 10
	}
	return &StudioSession{
		SessionID:       "sess_" + uuid.NewString()[:12],
		Title:           title,
		Description:     description,
		StartTime:       start,
		EndTime:         end,
		MaxParticipants: maxParticipants,
		SessionType:     sessionType,
		CreatedBy:       createdBy,
		CreatedAt:       timeutil.Now(),
	}, nil
}

// HeatmapCell aggregates visits on one calendar day.
type HeatmapCell struct {
	Count           int `json:"count"`
	DurationMinutes int `json:"duration"`
}

// BuildHeatmap buckets records by UTC calendar day.
func BuildHeatmap(records []*Record) map[string]HeatmapCell {
	heatmap := make(map[string]HeatmapCell, len(records))
	for _, r := range records {
		key := timeutil.DateKey(r.CheckIn)
		cell := heatmap[key]
		cell.Count++
		cell.DurationMinutes += r.DurationMinutes
		heatmap[key] = cell
	}
	return heatmap
}
