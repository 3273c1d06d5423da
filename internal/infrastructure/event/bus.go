package event

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/opstracker/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// FailureHook is told about every handler that failed or panicked
type FailureHook func(eventType string)

// InMemoryEventBus dispatches events synchronously to in-process handlers.
// A failing handler does not stop the others; Publish returns every failure.
type InMemoryEventBus struct {
	registry  *HandlerRegistry
	logger    *zap.Logger
	onFailure FailureHook
	running   atomic.Bool
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// OnHandlerFailure installs a hook, typically a metrics counter
func (b *InMemoryEventBus) OnHandlerFailure(hook FailureHook) {
	b.onFailure = hook
}

// Publish delivers each event to its handlers in registration order and
// joins the handler errors
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	var errs []error
	for _, evt := range events {
		for _, handler := range b.registry.GetHandlers(evt.EventType()) {
			if err := b.dispatch(ctx, handler, evt); err != nil {
				b.logger.Error("handler failed to process event",
					zap.String("event_type", evt.EventType()),
					zap.String("event_id", evt.EventID().String()),
					zap.Error(err),
				)
				if b.onFailure != nil {
					b.onFailure(evt.EventType())
				}
				errs = append(errs, fmt.Errorf("%s: %w", evt.EventType(), err))
			}
		}
	}
	return errors.Join(errs...)
}

// Subscribe registers a handler; without explicit types the handler's own
// EventTypes are used
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start marks the bus as running
func (b *InMemoryEventBus) Start(_ context.Context) error {
	b.running.Store(true)
	b.logger.Info("event bus started")
	return nil
}

// Stop marks the bus as stopped
func (b *InMemoryEventBus) Stop(_ context.Context) error {
	b.running.Store(false)
	b.logger.Info("event bus stopped")
	return nil
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, evt)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
