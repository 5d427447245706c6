package realtime

import (
	"sync"
)

// Hub fans events out to subscribers by topic. Subscriptions are
// refcounted per topic; the topic's bookkeeping is dropped when the last
// subscriber leaves.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]struct{}
}

type Event struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

type Subscription struct {
	hub    *Hub
	topic  string
	C      chan Event
	closed bool
}

func NewHub() *Hub {
	return &Hub{topics: map[string]map[*Subscription]struct{}{}}
}

func (h *Hub) Subscribe(topic string) *Subscription {
	sub := &Subscription{hub: h, topic: topic, C: make(chan Event, 16)}
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[topic]
	if !ok {
		subs = map[*Subscription]struct{}{}
		h.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	return sub
}

// Publish delivers to every current subscriber of the topic. A slow
// subscriber with a full buffer misses the event rather than blocking the
// publisher.
func (h *Hub) Publish(topic string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.topics[topic] {
		select {
		case sub.C <- Event{Topic: topic, Payload: payload}:
		default:
		}
	}
}

// SubscriberCount reports how many subscriptions a topic currently has.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Close detaches the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	subs := s.hub.topics[s.topic]
	delete(subs, s)
	if len(subs) == 0 {
		delete(s.hub.topics, s.topic)
	}
	close(s.C)
}
