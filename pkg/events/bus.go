// Package events carries dismissal signals from the race board to any open
// warning display.
package events

import (
	"sync"

	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/google/uuid"
)

const subBufferSize = 16

// Dismissal tells subscribers that the race is no longer on the board and
// any warning shown for it should close.
type Dismissal struct {
	RaceID models.RaceID
}

// Bus is a non-blocking publish-subscribe bus for dismissals. A subscriber
// that stops draining its channel has further signals dropped rather than
// stalling the clock tick that publishes them.
type Bus struct {
	mu   sync.Mutex
	subs map[string]chan Dismissal
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]chan Dismissal)}
}

// Subscription is one consumer's view of the bus.
type Subscription struct {
	ID  string
	bus *Bus
	c   chan Dismissal
}

// C returns the channel dismissals arrive on. It is closed by Close.
func (s *Subscription) C() <-chan Dismissal {
	return s.c
}

// Close unsubscribes. Safe to call more than once.
func (s *Subscription) Close() {
	s.bus.unsubscribe(s.ID)
}

// Subscribe registers a new subscriber.
func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := &Subscription{
		ID:  uuid.NewString(),
		bus: b,
		c:   make(chan Dismissal, subBufferSize),
	}
	b.subs[sub.ID] = sub.c
	return sub
}

func (b *Bus) unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish sends d to every subscriber without blocking.
func (b *Bus) Publish(d Dismissal) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- d:
		default:
		}
	}
}

// SubscriberCount returns the number of live subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
