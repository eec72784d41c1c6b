package event

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkthread/backend/internal/domain/shared"
)

// recordingHandler captures the events it receives
type recordingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	received   []shared.DomainEvent
	err        error
	panics     bool
}

func (h *recordingHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	if h.panics {
		panic("handler blew up")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.received = append(h.received, evt)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.received)
}

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "test", uuid.New()),
	}
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	t.Run("delivers events to handlers of the matching type", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		created := &recordingHandler{eventTypes: []string{"order.created"}}
		cancelled := &recordingHandler{eventTypes: []string{"order.cancelled"}}
		bus.Subscribe(created)
		bus.Subscribe(cancelled)

		err := bus.Publish(context.Background(), newTestEvent("order.created"))

		require.NoError(t, err)
		assert.Equal(t, 1, created.count())
		assert.Equal(t, 0, cancelled.count())
	})

	t.Run("catch-all handlers receive every event", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		audit := &recordingHandler{}
		bus.Subscribe(audit)

		err := bus.Publish(context.Background(),
			newTestEvent("order.created"),
			newTestEvent("order.status_changed"),
		)

		require.NoError(t, err)
		assert.Equal(t, 2, audit.count())
	})

	t.Run("a failing handler does not block the others", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{eventTypes: []string{"order.created"}, err: assert.AnError}
		healthy := &recordingHandler{eventTypes: []string{"order.created"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		err := bus.Publish(context.Background(), newTestEvent("order.created"))

		require.NoError(t, err)
		assert.Equal(t, 1, healthy.count())
	})

	t.Run("a panicking handler is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{eventTypes: []string{"order.created"}, panics: true}
		healthy := &recordingHandler{eventTypes: []string{"order.created"}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		assert.NotPanics(t, func() {
			_ = bus.Publish(context.Background(), newTestEvent("order.created"))
		})
		assert.Equal(t, 1, healthy.count())
	})

	t.Run("publishing with no handlers is a no-op", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())

		assert.NoError(t, bus.Publish(context.Background(), newTestEvent("order.created")))
	})
}

func TestAuditLogHandler(t *testing.T) {
	handler := NewAuditLogHandler(zap.NewNop())

	assert.Empty(t, handler.EventTypes())
	assert.NoError(t, handler.Handle(context.Background(), newTestEvent("order.created")))
}
