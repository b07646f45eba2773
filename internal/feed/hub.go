// Package feed fans broadcast messages out to connected sessions. Delivery
// is at-least-once per subscription; consumers deduplicate by message id.
package feed

import (
	"sync"

	"gatekeeper/internal/entity"
)

const subscriptionBuffer = 16

// Subscription is a live handle on the broadcast feed. The owner must call
// Close when done or the hub leaks an entry per abandoned client.
type Subscription struct {
	C chan entity.BroadcastMessage

	hub  *Hub
	once sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

type Hub struct {
	mutex       sync.Mutex
	subscribers map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[*Subscription]struct{})}
}

func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{
		C:   make(chan entity.BroadcastMessage, subscriptionBuffer),
		hub: h,
	}
	h.mutex.Lock()
	h.subscribers[sub] = struct{}{}
	h.mutex.Unlock()
	return sub
}

// Publish delivers to every live subscription without blocking: a subscriber
// whose buffer is full misses the event and catches up from message history.
func (h *Hub) Publish(message entity.BroadcastMessage) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for sub := range h.subscribers {
		select {
		case sub.C <- message:
		default:
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.subscribers)
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mutex.Lock()
	delete(h.subscribers, sub)
	h.mutex.Unlock()
	close(sub.C)
}
