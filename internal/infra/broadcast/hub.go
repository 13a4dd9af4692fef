// Package broadcast implements the in-process fan-out of status events to
// live subscribers, keyed by tracking code.
package broadcast

import (
	"log/slog"
	"sync"

	"parceltrack/internal/domain/service"
)

const subscriberBufferSize = 16

// Hub implements service.Broadcaster. Delivery is best-effort: a
// subscriber whose buffer is full misses the event rather than blocking
// the publisher.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*subscription]struct{}
	logger *slog.Logger
}

// NewHub creates an empty broadcast hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[*subscription]struct{}),
		logger: logger,
	}
}

type subscription struct {
	hub    *Hub
	topic  string
	events chan *service.StatusEvent
	once   sync.Once
}

func (s *subscription) Events() <-chan *service.StatusEvent {
	return s.events
}

// Close leaves the topic. Safe to call more than once.
func (s *subscription) Close() {
	s.once.Do(func() {
		s.hub.leave(s)
		close(s.events)
	})
}

// Join subscribes to a topic. Late joiners only see events published
// after the join.
func (h *Hub) Join(topic string) service.TopicSubscription {
	sub := &subscription{
		hub:    h,
		topic:  topic,
		events: make(chan *service.StatusEvent, subscriberBufferSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.topics[topic]
	if !ok {
		members = make(map[*subscription]struct{})
		h.topics[topic] = members
	}
	members[sub] = struct{}{}

	return sub
}

// Publish delivers an event to the topic's current subscribers without
// ever blocking on a slow one.
func (h *Hub) Publish(topic string, event *service.StatusEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.topics[topic] {
		select {
		case sub.events <- event:
		default:
			if h.logger != nil {
				h.logger.Warn("Broadcast subscriber buffer full, dropping event",
					slog.String("topic", topic),
					slog.String("status", event.Status),
				)
			}
		}
	}
}

func (h *Hub) leave(sub *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.topics[sub.topic]
	if !ok {
		return
	}

	delete(members, sub)
	if len(members) == 0 {
		delete(h.topics, sub.topic)
	}
}
