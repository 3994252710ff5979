package messaging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// syncBus builds a bus in synchronous mode so handler effects are visible
// as soon as Publish returns.
func syncBus() *InMemoryEventBus {
	return NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode:     false,
		EnableMetrics: true,
	})
}

func TestPublishDeliversToSubscriber(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	var received []shared.Event
	err := bus.Subscribe(shared.EventXPGranted, func(event shared.Event) error {
		received = append(received, event)
		return nil
	})
	assert.NoError(t, err)

	event := shared.NewXPGrantedEvent("user_abc", 50, "music", 2)
	assert.NoError(t, bus.Publish(event))

	assert.Len(t, received, 1)
	assert.Equal(t, shared.EventXPGranted, received[0].EventType())
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	calls := 0
	_ = bus.Subscribe(shared.EventBadgeAwarded, func(event shared.Event) error {
		calls++
		return nil
	})

	assert.NoError(t, bus.Publish(shared.NewXPGrantedEvent("user_abc", 50, "music", 2)))
	assert.Zero(t, calls)
}

func TestSubscribeAllReceivesEverything(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	var types []shared.EventType
	_ = bus.SubscribeAll(func(event shared.Event) error {
		types = append(types, event.EventType())
		return nil
	})

	_ = bus.Publish(shared.NewXPGrantedEvent("user_abc", 50, "music", 2))
	_ = bus.Publish(shared.NewBadgeAwardedEvent("user_abc", "track_creator", 25))

	assert.Equal(t, []shared.EventType{shared.EventXPGranted, shared.EventBadgeAwarded}, types)
}

func TestMultipleSubscribersSameType(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	calls := 0
	handler := func(event shared.Event) error {
		calls++
		return nil
	}
	_ = bus.Subscribe(shared.EventXPGranted, handler)
	_ = bus.Subscribe(shared.EventXPGranted, handler)

	_ = bus.Publish(shared.NewXPGrantedEvent("user_abc", 50, "music", 2))
	assert.Equal(t, 2, calls)
}

func TestSubscribeNilHandler(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	assert.ErrorIs(t, bus.Subscribe(shared.EventXPGranted, nil), ErrNilHandler)
	assert.ErrorIs(t, bus.SubscribeAll(nil), ErrNilHandler)
}

func TestPublishNilEvent(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	assert.ErrorIs(t, bus.Publish(nil), ErrNilEvent)
}

func TestPublishAfterClose(t *testing.T) {
	bus := syncBus()
	assert.NoError(t, bus.Close())

	err := bus.Publish(shared.NewXPGrantedEvent("user_abc", 50, "music", 2))
	assert.ErrorIs(t, err, ErrEventBusClosed)

	err = bus.Subscribe(shared.EventXPGranted, func(event shared.Event) error { return nil })
	assert.ErrorIs(t, err, ErrEventBusClosed)
}

func TestCloseIsIdempotent(t *testing.T) {
	bus := syncBus()
	assert.NoError(t, bus.Close())
	assert.NoError(t, bus.Close())
}

func TestHandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	secondCalled := false
	_ = bus.Subscribe(shared.EventXPGranted, func(event shared.Event) error {
		return errors.New("handler failed")
	})
	_ = bus.Subscribe(shared.EventXPGranted, func(event shared.Event) error {
		secondCalled = true
		return nil
	})

	assert.NoError(t, bus.Publish(shared.NewXPGrantedEvent("user_abc", 50, "music", 2)))
	assert.True(t, secondCalled)
}

func TestMetrics(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	_ = bus.Subscribe(shared.EventXPGranted, func(event shared.Event) error {
		return errors.New("handler failed")
	})

	_ = bus.Publish(shared.NewXPGrantedEvent("user_abc", 50, "music", 2))
	_ = bus.Publish(shared.NewXPGrantedEvent("user_abc", 30, "music", 2))

	metrics := bus.Metrics()
	assert.NotNil(t, metrics)
	assert.Equal(t, int64(2), metrics.Published(shared.EventXPGranted))
	assert.Equal(t, int64(2), metrics.Failed(shared.EventXPGranted))
}

func TestMetricsDisabled(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{AsyncMode: false})
	defer bus.Close()

	assert.Nil(t, bus.Metrics())
}

func TestAsyncDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode:      true,
		WorkerPoolSize: 2,
	})
	defer bus.Close()

	done := make(chan struct{}, 10)
	_ = bus.Subscribe(shared.EventXPGranted, func(event shared.Event) error {
		done <- struct{}{}
		return nil
	})

	for i := 0; i < 5; i++ {
		assert.NoError(t, bus.Publish(shared.NewXPGrantedEvent("user_abc", 10, "music", 1)))
	}

	for i := 0; i < 5; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("handler %d did not run", i)
		}
	}
}
