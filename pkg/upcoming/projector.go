// Package upcoming projects the race catalog onto the races still to run and
// signals dismissal for races that drop off the board.
package upcoming

import (
	"sync"
	"time"

	"github.com/borgmon/race-alarm/pkg/events"
	"github.com/borgmon/race-alarm/pkg/models"
)

// Publisher receives dismissal signals.
type Publisher interface {
	Publish(events.Dismissal)
}

// Projector recomputes the upcoming set on every clock tick. It never touches
// alarm state.
type Projector struct {
	pub Publisher

	mu      sync.Mutex
	catalog []models.Race
	shown   []models.Race
}

// New returns a Projector over catalog. The board is empty until the first Tick.
func New(catalog []models.Race, pub Publisher) *Projector {
	return &Projector{
		pub:     pub,
		catalog: append([]models.Race(nil), catalog...),
	}
}

// Tick recomputes the upcoming set at now, preserving catalog order, and
// publishes one dismissal for every race on the previous board that is
// missing from the new one.
func (p *Projector) Tick(now time.Time) []models.Race {
	p.mu.Lock()
	next := Filter(p.catalog, now)
	dropped := removed(p.shown, next)
	p.shown = next
	p.mu.Unlock()

	for _, id := range dropped {
		p.pub.Publish(events.Dismissal{RaceID: id})
	}
	return append([]models.Race(nil), next...)
}

// Upcoming returns the board as of the last Tick.
func (p *Projector) Upcoming() []models.Race {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Race(nil), p.shown...)
}

// SetCatalog replaces the catalog. Races that vanish are dismissed on the
// next Tick.
func (p *Projector) SetCatalog(catalog []models.Race) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.catalog = append([]models.Race(nil), catalog...)
}

// Filter returns the races whose start, resolved on now's day, is not before now.
func Filter(catalog []models.Race, now time.Time) []models.Race {
	out := make([]models.Race, 0, len(catalog))
	for _, race := range catalog {
		if !race.StartOn(now).Before(now) {
			out = append(out, race)
		}
	}
	return out
}

func removed(prev, next []models.Race) []models.RaceID {
	keep := make(map[models.RaceID]struct{}, len(next))
	for _, race := range next {
		keep[race.ID()] = struct{}{}
	}
	var out []models.RaceID
	for _, race := range prev {
		if _, ok := keep[race.ID()]; !ok {
			out = append(out, race.ID())
		}
	}
	return out
}
