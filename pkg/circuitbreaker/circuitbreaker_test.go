package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func failing(ctx context.Context) error { return errBoom }
func succeeding(ctx context.Context) error { return nil }

func TestClosedAllowsRequests(t *testing.T) {
	cb := New("test")

	err := cb.Execute(context.Background(), succeeding)
	assert.NoError(t, err)
	assert.True(t, cb.IsClosed())
	assert.Equal(t, 1, cb.Counts().TotalSuccesses)
}

func TestOpensAfterFailureThreshold(t *testing.T) {
	cb := New("test", WithFailureThreshold(3))

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(context.Background(), failing), errBoom)
	}

	assert.True(t, cb.IsOpen())
	assert.ErrorIs(t, cb.Execute(context.Background(), succeeding), ErrCircuitOpen)
}

func TestFailureCountResetsOnSuccess(t *testing.T) {
	cb := New("test", WithFailureThreshold(3))

	_ = cb.Execute(context.Background(), failing)
	_ = cb.Execute(context.Background(), failing)
	_ = cb.Execute(context.Background(), succeeding)
	_ = cb.Execute(context.Background(), failing)
	_ = cb.Execute(context.Background(), failing)

	assert.True(t, cb.IsClosed())
}

func TestHalfOpenAfterTimeout(t *testing.T) {
	cb := New("test",
		WithFailureThreshold(1),
		WithTimeout(10*time.Millisecond),
		WithSuccessThreshold(1),
	)

	_ = cb.Execute(context.Background(), failing)
	assert.True(t, cb.IsOpen())

	time.Sleep(15 * time.Millisecond)

	err := cb.Execute(context.Background(), succeeding)
	assert.NoError(t, err)
	assert.True(t, cb.IsClosed())
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := New("test",
		WithFailureThreshold(1),
		WithTimeout(10*time.Millisecond),
	)

	_ = cb.Execute(context.Background(), failing)
	time.Sleep(15 * time.Millisecond)

	assert.ErrorIs(t, cb.Execute(context.Background(), failing), errBoom)
	assert.True(t, cb.IsOpen())
	assert.ErrorIs(t, cb.Execute(context.Background(), succeeding), ErrCircuitOpen)
}

func TestHalfOpenNeedsSuccessThreshold(t *testing.T) {
	cb := New("test",
		WithFailureThreshold(1),
		WithTimeout(10*time.Millisecond),
		WithSuccessThreshold(2),
		WithMaxHalfOpenRequests(3),
	)

	_ = cb.Execute(context.Background(), failing)
	time.Sleep(15 * time.Millisecond)

	assert.NoError(t, cb.Execute(context.Background(), succeeding))
	assert.Equal(t, StateHalfOpen, cb.State())

	assert.NoError(t, cb.Execute(context.Background(), succeeding))
	assert.True(t, cb.IsClosed())
}

func TestHalfOpenLimitsProbes(t *testing.T) {
	cb := New("test",
		WithFailureThreshold(1),
		WithTimeout(10*time.Millisecond),
		WithSuccessThreshold(3),
		WithMaxHalfOpenRequests(1),
	)

	_ = cb.Execute(context.Background(), failing)
	time.Sleep(15 * time.Millisecond)

	assert.NoError(t, cb.Execute(context.Background(), succeeding))
	assert.ErrorIs(t, cb.Execute(context.Background(), succeeding), ErrTooManyRequests)
}

func TestExecuteWithFallback(t *testing.T) {
	cb := New("test", WithFailureThreshold(1))
	_ = cb.Execute(context.Background(), failing)

	fallbackCalled := false
	err := cb.ExecuteWithFallback(context.Background(), succeeding, func(err error) error {
		fallbackCalled = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, fallbackCalled)
}

func TestExecuteWithFallbackPassesThroughOperationError(t *testing.T) {
	cb := New("test", WithFailureThreshold(5))

	err := cb.ExecuteWithFallback(context.Background(), failing, func(err error) error {
		t.Fatal("fallback should not run for operation errors")
		return nil
	})

	assert.ErrorIs(t, err, errBoom)
}

func TestIsCircuitError(t *testing.T) {
	assert.True(t, IsCircuitError(ErrCircuitOpen))
	assert.True(t, IsCircuitError(ErrTooManyRequests))
	assert.False(t, IsCircuitError(errBoom))
	assert.False(t, IsCircuitError(nil))
}

func TestWithIsFailure(t *testing.T) {
	cb := New("test",
		WithFailureThreshold(1),
		WithIsFailure(func(err error) bool { return !errors.Is(err, errBoom) }),
	)

	// errBoom is classified as a non-failure, so the circuit stays closed.
	_ = cb.Execute(context.Background(), failing)
	assert.True(t, cb.IsClosed())
}

func TestOnStateChange(t *testing.T) {
	var transitions []string
	cb := New("test",
		WithFailureThreshold(1),
		WithOnStateChange(func(name string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		}),
	)

	_ = cb.Execute(context.Background(), failing)
	assert.Equal(t, []string{"closed->open"}, transitions)
}

func TestReset(t *testing.T) {
	cb := New("test", WithFailureThreshold(1))
	_ = cb.Execute(context.Background(), failing)
	assert.True(t, cb.IsOpen())

	cb.Reset()
	assert.True(t, cb.IsClosed())
	assert.Equal(t, Counts{}, cb.Counts())
}

func TestCounts(t *testing.T) {
	cb := New("test", WithFailureThreshold(10))

	_ = cb.Execute(context.Background(), succeeding)
	_ = cb.Execute(context.Background(), failing)
	_ = cb.Execute(context.Background(), failing)

	counts := cb.Counts()
	assert.Equal(t, 3, counts.Requests)
	assert.Equal(t, 1, counts.TotalSuccesses)
	assert.Equal(t, 2, counts.TotalFailures)
	assert.Equal(t, 2, counts.ConsecutiveFailures)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
}
