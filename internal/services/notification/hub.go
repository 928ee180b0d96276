package notification

import (
	"sync"

	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// subscriberBuffer is the channel capacity per stream subscriber. A
// subscriber that falls behind loses events instead of blocking the
// publisher.
const subscriberBuffer = 16

// Hub fans freshly created notifications out to live stream subscribers.
// A user may hold several subscriptions (several open tabs).
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscription]struct{}
}

// Subscription is one live stream of a user's notifications.
type Subscription struct {
	userUID string
	ch      chan *models.Notification
}

// C returns the channel the subscriber reads notifications from. It is
// closed when the subscription is cancelled.
func (s *Subscription) C() <-chan *models.Notification {
	return s.ch
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe registers a new live stream for userUID. The caller must
// call Unsubscribe when done.
func (h *Hub) Subscribe(userUID string) *Subscription {
	sub := &Subscription{
		userUID: userUID,
		ch:      make(chan *models.Notification, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[userUID] == nil {
		h.subscribers[userUID] = make(map[*Subscription]struct{})
	}
	h.subscribers[userUID][sub] = struct{}{}
	return sub
}

// Unsubscribe removes the subscription and closes its channel. Safe to
// call once per subscription.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.subscribers[sub.userUID]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subscribers, sub.userUID)
	}
	close(sub.ch)
}

// Publish delivers a notification to every live subscription of its user.
// Slow subscribers are skipped.
func (h *Hub) Publish(n *models.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers[n.UserUID] {
		select {
		case sub.ch <- n:
		default:
		}
	}
}
