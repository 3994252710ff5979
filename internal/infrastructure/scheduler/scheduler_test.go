package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubJob struct {
	name string
	runs int
}

func (j *stubJob) Name() string        { return j.name }
func (j *stubJob) Description() string { return "stub job for tests" }
func (j *stubJob) Run(ctx context.Context) error {
	j.runs++
	return nil
}

func TestIntervalScheduleNext(t *testing.T) {
	s := NewIntervalSchedule(5 * time.Minute)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, base.Add(5*time.Minute), s.Next(base))
	assert.Equal(t, "@every 5m0s", s.String())
}

func TestRegister(t *testing.T) {
	s := NewScheduler(nil)

	err := s.Register(&stubJob{name: "refresh"}, NewIntervalSchedule(time.Minute))
	assert.NoError(t, err)
}

func TestRegisterValidation(t *testing.T) {
	s := NewScheduler(nil)

	assert.ErrorIs(t, s.Register(nil, NewIntervalSchedule(time.Minute)), ErrNilJob)
	assert.ErrorIs(t, s.Register(&stubJob{name: "refresh"}, nil), ErrNilSchedule)
}

func TestRegisterDuplicateName(t *testing.T) {
	s := NewScheduler(nil)

	assert.NoError(t, s.Register(&stubJob{name: "refresh"}, NewIntervalSchedule(time.Minute)))
	err := s.Register(&stubJob{name: "refresh"}, NewIntervalSchedule(time.Hour))
	assert.ErrorIs(t, err, ErrJobAlreadyExists)
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(nil)
	assert.False(t, s.IsRunning())

	assert.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	assert.ErrorIs(t, s.Start(context.Background()), ErrSchedulerAlreadyRunning)

	assert.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.ErrorIs(t, s.Stop(), ErrSchedulerNotRunning)
}

func TestLastRunNilBeforeFirstRun(t *testing.T) {
	s := NewScheduler(nil)
	assert.NoError(t, s.Register(&stubJob{name: "refresh"}, NewIntervalSchedule(time.Hour)))

	assert.Nil(t, s.LastRun("refresh"))
	assert.Nil(t, s.LastRun("unknown"))
}
