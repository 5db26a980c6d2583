package event

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Handler receives payloads published on a subscribed topic.
type Handler func(topic string, payload any)

// Subscription is a handle for one registered handler.
type Subscription struct {
	id        string
	topic     string
	handler   Handler
	cancelled atomic.Bool
}

// newSubscription creates a subscription with a fresh unique ID.
func newSubscription(topic string, handler Handler) *Subscription {
	return &Subscription{
		id:      uuid.NewString(),
		topic:   topic,
		handler: handler,
	}
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() string {
	return s.topic
}

// Cancel marks the subscription inactive. A cancelled subscription receives
// no further deliveries even before it is removed from the bus.
func (s *Subscription) Cancel() {
	s.cancelled.Store(true)
}

// Active reports whether the subscription still receives deliveries.
func (s *Subscription) Active() bool {
	return !s.cancelled.Load()
}
