// Package events delivers change notifications between the auth service,
// the synchronization store and the UI.
package events

import (
	"sync"
	"time"
)

// Publisher is the write side of the notification bus. A nil-safe
// fire-and-forget contract: publishing never blocks and never fails.
type Publisher interface {
	Publish(event Event)
}

// Notifier is an in-process publish/subscribe bus. Subscribers receive
// events on buffered channels; a subscriber that stops draining loses
// events rather than blocking publishers.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

var _ Publisher = (*Notifier)(nil)

// NewNotifier creates an empty notification bus.
func NewNotifier() *Notifier {
	return &Notifier{subs: map[int]chan Event{}}
}

// Subscribe registers a new subscriber. The returned cancel func removes it.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan Event, 16)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if ch, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking.
func (n *Notifier) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- event:
		default:
			// Subscriber is not draining; drop rather than block.
		}
	}
}
