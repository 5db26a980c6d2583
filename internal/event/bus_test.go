package event

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestBusPublishSubscribe(t *testing.T) {
	b := NewBus(zerolog.Nop())

	var got []any
	sub, err := b.Subscribe("action", func(_ string, payload any) {
		got = append(got, payload)
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer b.Unsubscribe(sub)

	b.Publish("action", 1)
	b.Publish("other", 2)
	b.Publish("action", 3)

	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("got %v, want [1 3]", got)
	}
}

func TestBusDeliveryOrder(t *testing.T) {
	b := NewBus(zerolog.Nop())

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		if _, err := b.Subscribe("t", func(_ string, _ any) {
			order = append(order, i)
		}); err != nil {
			t.Fatalf("Subscribe: %v", err)
		}
	}

	b.Publish("t", nil)
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("delivery order = %v, want [0 1 2]", order)
	}
}

func TestBusPanicIsolation(t *testing.T) {
	b := NewBus(zerolog.Nop())

	if _, err := b.Subscribe("t", func(_ string, _ any) {
		panic("subscriber failure")
	}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	delivered := false
	if _, err := b.Subscribe("t", func(_ string, _ any) {
		delivered = true
	}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	b.Publish("t", nil)

	if !delivered {
		t.Error("later subscriber must still run after a panic")
	}
	stats := b.Stats()
	if stats.Panicked != 1 {
		t.Errorf("Panicked = %d, want 1", stats.Panicked)
	}
	if stats.Delivered != 1 {
		t.Errorf("Delivered = %d, want 1", stats.Delivered)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	b := NewBus(zerolog.Nop())

	calls := 0
	sub, err := b.Subscribe("t", func(_ string, _ any) { calls++ })
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	b.Publish("t", nil)
	if err := b.Unsubscribe(sub); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
	b.Publish("t", nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if err := b.Unsubscribe(sub); err != ErrSubscriptionNotFound {
		t.Errorf("second Unsubscribe = %v, want ErrSubscriptionNotFound", err)
	}
}

func TestBusSubscribeValidation(t *testing.T) {
	b := NewBus(zerolog.Nop())

	if _, err := b.Subscribe("t", nil); err != ErrNilHandler {
		t.Errorf("nil handler: got %v", err)
	}
	if _, err := b.Subscribe("", func(_ string, _ any) {}); err != ErrInvalidTopic {
		t.Errorf("empty topic: got %v", err)
	}
}

func TestBusClose(t *testing.T) {
	b := NewBus(zerolog.Nop())

	calls := 0
	if _, err := b.Subscribe("t", func(_ string, _ any) { calls++ }); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	b.Close()
	b.Close() // idempotent

	b.Publish("t", nil)
	if calls != 0 {
		t.Error("closed bus must not deliver")
	}
	if _, err := b.Subscribe("t", func(_ string, _ any) {}); err != ErrClosed {
		t.Errorf("Subscribe after Close = %v, want ErrClosed", err)
	}
}

func TestActionTopic(t *testing.T) {
	if got := ActionTopic("select"); got != "action:select" {
		t.Errorf("ActionTopic = %q", got)
	}
}
