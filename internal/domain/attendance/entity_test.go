package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

func TestNewRecordIsOpen(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	r := NewRecord("user_abc", "sess_123", now)

	assert.True(t, r.IsOpen())
	assert.Equal(t, shared.UserID("user_abc"), r.UserID)
	assert.Equal(t, "sess_123", r.SessionID)
	assert.Equal(t, now, r.CheckIn)
	assert.Zero(t, r.DurationMinutes)
	assert.NotEmpty(t, r.AttendanceID)
}

func TestRecordClose(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	r := NewRecord("user_abc", "", checkIn)

	err := r.Close(checkIn.Add(45 * time.Minute))
	assert.NoError(t, err)
	assert.False(t, r.IsOpen())
	assert.Equal(t, 45, r.DurationMinutes)
	assert.Equal(t, 45, r.XPEarned)
}

func TestRecordCloseCapsXP(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	r := NewRecord("user_abc", "", checkIn)

	err := r.Close(checkIn.Add(5 * time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, 300, r.DurationMinutes)
	assert.Equal(t, 120, r.XPEarned)
}

func TestRecordCloseTwice(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	r := NewRecord("user_abc", "", checkIn)

	assert.NoError(t, r.Close(checkIn.Add(time.Hour)))
	assert.ErrorIs(t, r.Close(checkIn.Add(2*time.Hour)), shared.ErrRecordClosed)
}

func TestRecordCloseClockSkew(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	r := NewRecord("user_abc", "", checkIn)

	err := r.Close(checkIn.Add(-time.Minute))
	assert.NoError(t, err)
	assert.Zero(t, r.DurationMinutes)
	assert.Zero(t, r.XPEarned)
}

func TestRecordDescription(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	r := NewRecord("user_abc", "", checkIn)
	assert.NoError(t, r.Close(checkIn.Add(90*time.Minute)))

	assert.Equal(t, "Studio session (90 mins)", r.Description())
}

func TestNewStudioSession(t *testing.T) {
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	s, err := NewStudioSession("Jam Night", "Open jam", start, end, 15, "music", "user_admin")
	assert.NoError(t, err)
	assert.Equal(t, "Jam Night", s.Title)
	assert.Equal(t, 15, s.MaxParticipants)
	assert.NotEmpty(t, s.SessionID)
}

func TestNewStudioSessionDefaultsMaxParticipants(t *testing.T) {
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	s, err := NewStudioSession("Jam Night", "", start, start.Add(time.Hour), 0, "hybrid", "user_admin")
	assert.NoError(t, err)
	assert.Equal(t, 10, s.MaxParticipants)
}

func TestNewStudioSessionValidation(t *testing.T) {
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	_, err := NewStudioSession("", "", start, start.Add(time.Hour), 10, "music", "user_admin")
	assert.True(t, shared.IsValidation(err))

	_, err = NewStudioSession("Jam Night", "", start, start, 10, "music", "user_admin")
	assert.True(t, shared.IsValidation(err))

	_, err = NewStudioSession("Jam Night", "", start, start.Add(-time.Hour), 10, "music", "user_admin")
	assert.True(t, shared.IsValidation(err))
}

func TestBuildHeatmap(t *testing.T) {
	day1 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	day1Later := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	records := []*Record{
		{CheckIn: day1, DurationMinutes: 60},
		{CheckIn: day1Later, DurationMinutes: 30},
		{CheckIn: day2, DurationMinutes: 45},
	}

	heatmap := BuildHeatmap(records)
	assert.Len(t, heatmap, 2)
	assert.Equal(t, HeatmapCell{Count: 2, DurationMinutes: 90}, heatmap["2025-06-01"])
	assert.Equal(t, HeatmapCell{Count: 1, DurationMinutes: 45}, heatmap["2025-06-02"])
}

func TestBuildHeatmapEmpty(t *testing.T) {
	assert.Empty(t, BuildHeatmap(nil))
}
