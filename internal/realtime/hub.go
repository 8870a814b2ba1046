// Package realtime implements the fan-out broadcaster that pushes
// "test published" events to connected student sessions.
package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const EventTestPublished = "test_published"

// Event is the push payload. It is purely informational: clients must still
// query availability, which re-applies every attempt-state-machine guard.
type Event struct {
	Type          string `json:"type"`
	TestName      string `json:"testName"`
	Company       string `json:"company"`
	AssignedCount int    `json:"assignedCount"`
}

// Hub is a concurrency-safe registry of per-connection event channels.
// Delivery is at-most-once and best-effort: nothing is queued or retried,
// because a reconnecting client reconciles with a full data fetch anyway.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]chan Event
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[uuid.UUID]chan Event)}
}

// Subscribe registers a new connection and returns its identity plus the
// channel events arrive on. The channel is buffered so one slow reader
// cannot stall the publisher.
func (h *Hub) Subscribe() (uuid.UUID, <-chan Event) {
	id := uuid.New()
	ch := make(chan Event, 8)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	log.Debug().Str("subscriberID", id.String()).Msg("Realtime subscriber connected")
	return id, ch
}

// Unsubscribe must be wired to the connection-close event, not a timeout;
// that is what keeps the registry from accumulating stale entries.
func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	ch, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
		close(ch)
	}
	h.mu.Unlock()

	if ok {
		log.Debug().Str("subscriberID", id.String()).Msg("Realtime subscriber disconnected")
	}
}

// Publish fans the event out to every live subscriber. A subscriber whose
// buffer is full simply misses the event.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, ch := range h.subscribers {
		select {
		case ch <- event:
			delivered++
		default:
		}
	}
	log.Info().
		Str("type", event.Type).
		Str("testName", event.TestName).
		Int("subscribers", len(h.subscribers)).
		Int("delivered", delivered).
		Msg("Realtime event published")
}

// SubscriberCount reports the number of live connections.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
