package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []Event
	only   EventType
}

func (h *recordingHandler) CanHandle(t EventType) bool {
	return h.only == "" || h.only == t
}

func (h *recordingHandler) Handle(e Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
	return nil
}

func (h *recordingHandler) received() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Event, len(h.events))
	copy(out, h.events)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryEventBus(10)
	require.NoError(t, bus.Start())
	defer func() { require.NoError(t, bus.Stop()) }()

	h := &recordingHandler{}
	require.NoError(t, bus.Subscribe(h))

	require.NoError(t, bus.Publish(Event{Type: DeploymentCreated, DeploymentID: "d1"}))

	waitFor(t, func() bool { return len(h.received()) == 1 })

	got := h.received()[0]
	require.Equal(t, DeploymentCreated, got.Type)
	require.Equal(t, "d1", got.DeploymentID)
	require.NotEmpty(t, got.ID)
	require.False(t, got.Timestamp.IsZero())
}

func TestHandlerTypeFiltering(t *testing.T) {
	bus := NewInMemoryEventBus(10)
	require.NoError(t, bus.Start())
	defer func() { require.NoError(t, bus.Stop()) }()

	starts := &recordingHandler{only: ContainerStart}
	all := &recordingHandler{}
	require.NoError(t, bus.Subscribe(starts))
	require.NoError(t, bus.Subscribe(all))

	require.NoError(t, bus.Publish(Event{Type: ContainerStop}))
	require.NoError(t, bus.Publish(Event{Type: ContainerStart}))

	waitFor(t, func() bool { return len(all.received()) == 2 })
	waitFor(t, func() bool { return len(starts.received()) == 1 })
	require.Equal(t, ContainerStart, starts.received()[0].Type)
}

func TestPublishAfterStop(t *testing.T) {
	bus := NewInMemoryEventBus(1)
	require.NoError(t, bus.Start())
	require.NoError(t, bus.Stop())

	// The buffered channel may still accept one event; fill it, then the
	// next publish must fail rather than block.
	_ = bus.Publish(Event{Type: DeploymentRemoved})
	err := bus.Publish(Event{Type: DeploymentRemoved})
	require.Error(t, err)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(10)
	h := &recordingHandler{}
	require.NoError(t, bus.Subscribe(h))
	require.NoError(t, bus.Unsubscribe(h))
	require.Error(t, bus.Unsubscribe(h))
}
