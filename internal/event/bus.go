package event

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Bus delivers published payloads to topic subscribers synchronously.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]*Subscription
	byID   map[string]*Subscription
	closed bool

	logger zerolog.Logger

	// Stats
	published atomic.Uint64
	delivered atomic.Uint64
	panicked  atomic.Uint64
}

// Stats holds bus delivery counters.
type Stats struct {
	// Published is the number of Publish calls on the bus.
	Published uint64

	// Delivered is the number of handler invocations that completed.
	Delivered uint64

	// Panicked is the number of handler invocations that panicked.
	Panicked uint64

	// Subscriptions is the current number of active subscriptions.
	Subscriptions int
}

// NewBus creates an empty bus logging through the given logger.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		subs:   make(map[string][]*Subscription),
		byID:   make(map[string]*Subscription),
		logger: logger,
	}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic string, handler Handler) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if topic == "" {
		return nil, ErrInvalidTopic
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	sub := newSubscription(topic, handler)
	b.subs[topic] = append(b.subs[topic], sub)
	b.byID[sub.id] = sub
	return sub, nil
}

// Unsubscribe removes a subscription from the bus.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	sub.Cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.byID[sub.id]; !ok {
		return ErrSubscriptionNotFound
	}
	delete(b.byID, sub.id)

	list := b.subs[sub.topic]
	for i, s := range list {
		if s.id == sub.id {
			b.subs[sub.topic] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(b.subs[sub.topic]) == 0 {
		delete(b.subs, sub.topic)
	}
	return nil
}

// Publish delivers a payload to every active subscriber of the topic, in
// subscription order, on the calling goroutine. A panicking handler is
// recovered, logged, and counted; later subscribers still run.
func (b *Bus) Publish(topic string, payload any) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	// Snapshot so handlers may subscribe/unsubscribe during delivery.
	list := b.subs[topic]
	snapshot := make([]*Subscription, len(list))
	copy(snapshot, list)
	b.mu.RUnlock()

	b.published.Add(1)

	for _, sub := range snapshot {
		if !sub.Active() {
			continue
		}
		b.deliver(topic, payload, sub)
	}
}

// deliver invokes one handler with panic recovery.
func (b *Bus) deliver(topic string, payload any, sub *Subscription) {
	defer func() {
		if r := recover(); r != nil {
			b.panicked.Add(1)
			serr := &SubscriberError{
				Topic:          topic,
				SubscriptionID: sub.id,
				Recovered:      r,
			}
			b.logger.Warn().
				Str("topic", topic).
				Str("subscription", sub.id).
				Msg(serr.Error())
		}
	}()

	sub.handler(topic, payload)
	b.delivered.Add(1)
}

// Stats returns current delivery counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		Panicked:      b.panicked.Load(),
		Subscriptions: len(b.byID),
	}
}

// Close cancels every subscription and rejects further use. Idempotent.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, sub := range b.byID {
		sub.Cancel()
	}
	b.subs = make(map[string][]*Subscription)
	b.byID = make(map[string]*Subscription)
}
