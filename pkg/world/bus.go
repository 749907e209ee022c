package world

import "sync"

// Subscriber receives the events addressed to the object it listens for.
type Subscriber interface {
	Receive(ev Event)
}

// Bus routes each rendered string to the subscribers of its recipient.
// Objects nobody listens for are skipped.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[*Object][]Subscriber
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[*Object][]Subscriber),
	}
}

// Subscribe starts delivering obj's events to sub.
func (b *Bus) Subscribe(obj *Object, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[obj] = append(b.subscribers[obj], sub)
}

// Unsubscribe stops delivering obj's events to sub. It reports whether sub
// was subscribed.
func (b *Bus) Unsubscribe(obj *Object, sub Subscriber) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subscribers[obj]
	for i, s := range subs {
		if s == sub {
			subs = append(subs[:i:i], subs[i+1:]...)
			if len(subs) == 0 {
				delete(b.subscribers, obj)
			} else {
				b.subscribers[obj] = subs
			}
			return true
		}
	}
	return false
}

// Emit hands ev to every subscriber of ev.Recipient and returns how many
// received it.
func (b *Bus) Emit(ev Event) int {
	b.mu.RLock()
	subs := b.subscribers[ev.Recipient]
	b.mu.RUnlock()

	for _, s := range subs {
		s.Receive(ev)
	}
	return len(subs)
}

// Subscribers returns the number of subscribers for an object.
func (b *Bus) Subscribers(obj *Object) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[obj])
}
