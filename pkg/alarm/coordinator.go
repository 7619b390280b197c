// Package alarm owns the per-race two-minute warnings: which races are armed,
// which have entered their warning window, and the pending trigger timers.
package alarm

import (
	"sync"
	"time"

	"github.com/borgmon/race-alarm/pkg/clock"
	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/google/uuid"
)

// Gateway performs the platform side of a warning. Calls are fire-and-forget:
// implementations log their own failures.
//
// The coordinator calls the gateway while holding its lock so that a Cancel
// can never overtake the Deliver it cancels. Implementations must not call
// back into the Coordinator.
type Gateway interface {
	Deliver(d models.Delivery)
	Cancel(id models.RaceID)
	CancelAll()
}

// pending is a scheduled, not yet fired, warning trigger.
type pending struct {
	race    models.Race
	trigger time.Time
	timer   clock.Timer
}

// Coordinator tracks armed and warning races for one catalog. All methods are
// safe for concurrent use; timer callbacks arrive on clock goroutines.
type Coordinator struct {
	clock   clock.Clock
	gateway Gateway
	melody  func() models.Melody
	log     logger.Logger

	mu      sync.Mutex
	catalog []models.Race
	armed   Set
	warning Set
	timers  map[models.RaceID]*pending
	closed  bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithMelody sets the preference lookup consulted once per delivery.
func WithMelody(f func() models.Melody) Option {
	return func(c *Coordinator) { c.melody = f }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l logger.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// New creates a Coordinator for catalog.
func New(clk clock.Clock, catalog []models.Race, gw Gateway, opts ...Option) *Coordinator {
	c := &Coordinator{
		clock:   clk,
		gateway: gw,
		melody:  func() models.Melody { return models.DefaultMelody },
		log:     logger.Nop{},
		catalog: append([]models.Race(nil), catalog...),
		armed:   make(Set),
		warning: make(Set),
		timers:  make(map[models.RaceID]*pending),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Arm requests a warning for race. Arming an armed race is a no-op.
//
// A timer is scheduled only if the trigger (start minus two minutes) is still
// in the future. Inside the final two minutes, or once the race is off, the
// race is recorded as armed but no warning will ever fire for it.
func (c *Coordinator) Arm(race models.Race) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armLocked(race, c.clock.Now())
}

func (c *Coordinator) armLocked(race models.Race, now time.Time) {
	if c.closed {
		c.log.Warning("ignoring arm for %s after teardown", race.ID())
		return
	}
	id := race.ID()
	if c.armed.Has(id) {
		return
	}
	c.armed.Add(id)

	trigger := race.TriggerOn(now)
	if !trigger.After(now) {
		c.log.Info("armed %s inside its warning window, no warning will fire", id)
		return
	}

	p := &pending{race: race, trigger: trigger}
	p.timer = c.clock.AfterFunc(trigger.Sub(now), func() { c.fire(p) })
	c.timers[id] = p
	c.log.Info("armed %s, warning at %s", id, trigger.Format(time.TimeOnly))
}

// Disarm cancels race's pending trigger, clears its armed and warning state,
// and asks the gateway to withdraw anything already delivered for it.
func (c *Coordinator) Disarm(race models.Race) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disarmLocked(race.ID())
}

func (c *Coordinator) disarmLocked(id models.RaceID) {
	c.stopTimerLocked(id)
	c.armed.Remove(id)
	c.warning.Remove(id)
	c.gateway.Cancel(id)
	c.log.Info("disarmed %s", id)
}

// Toggle arms race if it is not armed and disarms it otherwise. The decision
// and the action happen under one lock hold.
func (c *Coordinator) Toggle(race models.Race) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id := race.ID(); c.armed.Has(id) {
		c.disarmLocked(id)
	} else {
		c.armLocked(race, c.clock.Now())
	}
}

// ArmAll arms every catalog race that has not started yet.
func (c *Coordinator) ArmAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.armAllLocked(c.clock.Now())
}

func (c *Coordinator) armAllLocked(now time.Time) {
	for _, race := range c.catalog {
		if race.StartOn(now).After(now) {
			c.armLocked(race, now)
		}
	}
}

// DisarmAll cancels every pending trigger, clears the armed and warning sets,
// and issues one bulk cancellation to the gateway.
func (c *Coordinator) DisarmAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	c.log.Info("disarmed all races")
}

// ToggleAll disarms everything when any race is armed, otherwise arms all
// upcoming races.
func (c *Coordinator) ToggleAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.armed) > 0 {
		c.resetLocked()
		c.log.Info("disarmed all races")
		return
	}
	c.armAllLocked(c.clock.Now())
}

// Close tears the coordinator down: all timers are cancelled and the gateway
// receives one bulk cancellation. Later arms are ignored until Reload.
// Close is idempotent.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.resetLocked()
	c.closed = true
}

// Reload replaces the catalog. Existing alarm state is discarded because it
// was keyed to the previous catalog. A closed coordinator is reopened.
func (c *Coordinator) Reload(catalog []models.Race) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.resetLocked()
	}
	c.closed = false
	c.catalog = append([]models.Race(nil), catalog...)
	c.log.Info("catalog reloaded with %d races", len(catalog))
}

func (c *Coordinator) resetLocked() {
	for id := range c.timers {
		c.stopTimerLocked(id)
	}
	c.armed = make(Set)
	c.warning = make(Set)
	c.gateway.CancelAll()
}

func (c *Coordinator) stopTimerLocked(id models.RaceID) {
	if p, ok := c.timers[id]; ok {
		p.timer.Stop()
		delete(c.timers, id)
	}
}

// fire runs when p's trigger elapses. The timer may have been stopped after
// the clock committed to running it, so the entry is rechecked: a fire whose
// timer is no longer the one on record is stale and ignored.
//
// Timers can run late, for instance after the machine sleeps through the
// trigger. The off is taken from the trigger rather than the fire time, and a
// fire that arrives once the race is off is dropped without a delivery.
func (c *Coordinator) fire(p *pending) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := p.race.ID()
	if current, ok := c.timers[id]; !ok || current != p {
		c.log.Warning("ignoring stale warning for %s", id)
		return
	}
	delete(c.timers, id)
	if !c.armed.Has(id) {
		return
	}

	now := c.clock.Now()
	start := p.trigger.Add(models.WarningLead)
	if !start.After(now) {
		c.log.Warning("dropping late warning for %s, off was at %s", id, start.Format(time.DateTime))
		return
	}
	c.warning.Add(id)

	d := models.Delivery{
		ID:      uuid.NewString(),
		RaceID:  id,
		Race:    p.race,
		StartAt: start,
		FiredAt: now,
		Melody:  c.melody(),
	}
	c.log.Info("two minute warning for %s (delivery %s)", id, d.ID)
	c.gateway.Deliver(d)
}

// Catalog returns a copy of the current catalog.
func (c *Coordinator) Catalog() []models.Race {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Race(nil), c.catalog...)
}

// ArmedCount returns the number of armed races.
func (c *Coordinator) ArmedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.armed)
}

// IsArmed reports whether id is armed.
func (c *Coordinator) IsArmed(id models.RaceID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed.Has(id)
}

// IsWarning reports whether id's warning has fired.
func (c *Coordinator) IsWarning(id models.RaceID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.warning.Has(id)
}

// Pending returns the trigger time of id's pending timer, if any.
func (c *Coordinator) Pending(id models.RaceID) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.timers[id]
	if !ok {
		return time.Time{}, false
	}
	return p.trigger, true
}

// PendingCount returns the number of pending timers.
func (c *Coordinator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Snapshot is a consistent copy of the armed and warning sets.
type Snapshot struct {
	Armed   Set
	Warning Set
}

// Snapshot copies the current alarm state for rendering.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Armed: c.armed.Clone(), Warning: c.warning.Clone()}
}

// Status reports race's status at now from the live state.
func (c *Coordinator) Status(race models.Race, now time.Time) Status {
	s := c.Snapshot()
	return StatusOf(race, now, s.Armed, s.Warning)
}
