package event

import (
	"errors"
	"fmt"
)

// Package errors.
var (
	// ErrClosed is returned when operating on a closed bus.
	ErrClosed = errors.New("event bus closed")

	// ErrNilHandler is returned when subscribing with a nil handler.
	ErrNilHandler = errors.New("nil handler")

	// ErrInvalidTopic is returned when subscribing to an empty topic.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrSubscriptionNotFound is returned when unsubscribing an unknown
	// subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// SubscriberError records a panic recovered inside a subscriber handler.
// It is logged and counted; it never propagates to the dispatcher.
type SubscriberError struct {
	// Topic is the topic being delivered when the handler panicked.
	Topic string

	// SubscriptionID identifies the offending subscription.
	SubscriptionID string

	// Recovered is the recovered panic value.
	Recovered any
}

// Error implements the error interface.
func (e *SubscriberError) Error() string {
	return fmt.Sprintf("subscriber %s panicked on topic %q: %v",
		e.SubscriptionID, e.Topic, e.Recovered)
}
