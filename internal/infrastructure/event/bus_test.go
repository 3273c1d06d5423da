package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Test", uuid.New())}
}

type testHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panicWith  any
}

func (h *testHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	h.handled = append(h.handled, evt)
	return h.err
}

func (h *testHandler) EventTypes() []string { return h.eventTypes }

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	typed := &testHandler{eventTypes: []string{"a.created"}}
	wildcard := &testHandler{}
	bus.Subscribe(typed)
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("a.created"), newTestEvent("b.created")))

	assert.Equal(t, 1, typed.count())
	assert.Equal(t, 2, wildcard.count())
}

func TestInMemoryEventBus_FailuresAreIsolated(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	var failures []string
	bus.OnHandlerFailure(func(eventType string) { failures = append(failures, eventType) })

	boom := errors.New("boom")
	bus.Subscribe(&testHandler{err: boom}, "evt")
	bus.Subscribe(&testHandler{panicWith: "kaboom"}, "evt")
	ok := &testHandler{}
	bus.Subscribe(ok, "evt")

	err := bus.Publish(context.Background(), newTestEvent("evt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "handler panicked: kaboom")
	assert.Equal(t, 1, ok.count())
	assert.Equal(t, []string{"evt", "evt"}, failures)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &testHandler{}
	bus.Subscribe(h, "evt", "other")
	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("evt")))
	assert.Zero(t, h.count())
	assert.Empty(t, bus.registry.GetHandlers("other"))
}
