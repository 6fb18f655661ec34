package events

import (
	"testing"
	"time"
)

func TestPublishReachesSubscribers(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe()
	defer cancel()

	n.Publish(Event{Type: EventDataChanged, GroupID: "g1"})

	select {
	case ev := <-ch:
		if ev.Type != EventDataChanged || ev.GroupID != "g1" {
			t.Errorf("Unexpected event: %+v", ev)
		}
		if ev.Timestamp.IsZero() {
			t.Error("Expected timestamp to be stamped on publish")
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for event")
	}
}

func TestCancelClosesChannel(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe()

	cancel()

	if _, ok := <-ch; ok {
		t.Error("Expected channel closed after cancel")
	}
	// Publishing after cancel must not panic or deliver.
	n.Publish(Event{Type: EventDataChanged})
}

func TestCancelIsIdempotent(t *testing.T) {
	n := NewNotifier()
	_, cancel := n.Subscribe()
	cancel()
	cancel()
}

func TestPublishDropsWhenFull(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe()
	defer cancel()

	// Overfill the buffer; the extra events are dropped, not blocked on.
	for i := 0; i < 40; i++ {
		n.Publish(Event{Type: EventDataChanged})
	}

	drained := 0
	for {
		select {
		case <-ch:
			drained++
		default:
			if drained == 0 || drained > 16 {
				t.Errorf("Expected between 1 and 16 buffered events, got %d", drained)
			}
			return
		}
	}
}

func TestMultipleSubscribers(t *testing.T) {
	n := NewNotifier()
	a, cancelA := n.Subscribe()
	defer cancelA()
	b, cancelB := n.Subscribe()
	defer cancelB()

	n.Publish(Event{Type: EventAuthChanged, UserID: "u1"})

	for _, ch := range []<-chan Event{a, b} {
		select {
		case ev := <-ch:
			if ev.UserID != "u1" {
				t.Errorf("Unexpected event: %+v", ev)
			}
		case <-time.After(time.Second):
			t.Fatal("Timed out waiting for fan-out")
		}
	}
}
