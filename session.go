package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/borgmon/race-alarm/pkg/alarm"
	"github.com/borgmon/race-alarm/pkg/catalog"
	"github.com/borgmon/race-alarm/pkg/clock"
	"github.com/borgmon/race-alarm/pkg/events"
	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/borgmon/race-alarm/pkg/upcoming"
)

// session ties one catalog source to the alarm engine, the board and the
// 1 Hz clock. Both the tray and the headless watcher run on a session.
type session struct {
	clock       clock.Clock
	loader      *catalog.Loader
	coordinator *alarm.Coordinator
	projector   *upcoming.Projector
	bus         *events.Bus
	source      *clock.Source
	refresher   *catalog.Refresher
	log         logger.Logger

	onTick   func(now time.Time, board []boardRow)
	onReload func(res catalog.Result)

	mu     sync.Mutex
	origin catalog.Origin
	day    time.Time // midnight of the last tick
}

func newSession(cfg *models.Config, clk clock.Clock, gw alarm.Gateway, melody func() models.Melody, log logger.Logger) *session {
	bus := events.NewBus()
	loader := catalog.NewLoader(cfg, log)
	loader.Now = clk.Now
	return &session{
		clock:       clk,
		loader:      loader,
		coordinator: alarm.New(clk, nil, gw, alarm.WithMelody(melody), alarm.WithLogger(log)),
		projector:   upcoming.New(nil, bus),
		bus:         bus,
		source:      clock.NewSource(clk, time.Second),
		log:         log,
	}
}

// start loads the catalog, begins ticking and schedules the reload when the
// config asks for one.
func (s *session) start(ctx context.Context, reloadCron string) error {
	s.apply(s.loader.Load(ctx))

	if reloadCron != "-" {
		r, err := catalog.NewRefresher(reloadCron, s.loader.Load, s.apply, s.log)
		if err != nil {
			return err
		}
		s.refresher = r
		s.refresher.Start()
	}

	s.source.Start(s.tick)
	return nil
}

// reload fetches the catalog now, outside the schedule.
func (s *session) reload(ctx context.Context) {
	if s.refresher != nil {
		s.refresher.RunNow(ctx)
		return
	}
	s.apply(s.loader.Load(ctx))
}

// apply swaps in a freshly loaded catalog. Alarm state is discarded and
// races that vanished are dismissed on the tick that follows.
func (s *session) apply(res catalog.Result) {
	s.mu.Lock()
	s.origin = res.Origin
	onReload := s.onReload
	s.mu.Unlock()

	s.coordinator.Reload(res.Races)
	s.projector.SetCatalog(res.Races)
	s.tick(s.clock.Now())

	if onReload != nil {
		onReload(res)
	}
}

func (s *session) tick(now time.Time) {
	// Races are times of day, so yesterday's armed and warning state would
	// otherwise show against today's card.
	if s.rolledOver(now) {
		s.log.Info("new day, resetting alarms")
		s.apply(catalog.Result{Races: s.coordinator.Catalog(), Origin: s.catalogOrigin()})
		return
	}

	board := s.projector.Tick(now)
	rows := makeBoard(board, now, s.coordinator.Snapshot())

	s.mu.Lock()
	onTick := s.onTick
	s.mu.Unlock()
	if onTick != nil {
		onTick(now, rows)
	}
}

func (s *session) rolledOver(now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.day
	s.day = today
	return !prev.IsZero() && today.After(prev)
}

// board renders the current upcoming set without advancing the projector.
func (s *session) board() []boardRow {
	return makeBoard(s.projector.Upcoming(), s.clock.Now(), s.coordinator.Snapshot())
}

func (s *session) catalogOrigin() catalog.Origin {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.origin
}

// find returns the catalog race with id.
func (s *session) find(id models.RaceID) (models.Race, bool) {
	for _, race := range s.coordinator.Catalog() {
		if race.ID() == id {
			return race, true
		}
	}
	return models.Race{}, false
}

func (s *session) stop() {
	s.source.Stop()
	if s.refresher != nil {
		s.refresher.Stop()
	}
	s.coordinator.Close()
}

// boardRow is one line of the race board.
type boardRow struct {
	Race      models.Race
	Status    alarm.Status
	Armed     bool
	Countdown string // empty once the race is off
}

func makeBoard(races []models.Race, now time.Time, snap alarm.Snapshot) []boardRow {
	rows := make([]boardRow, len(races))
	for i, race := range races {
		countdown, _ := alarm.Countdown(race.Time, now)
		rows[i] = boardRow{
			Race:      race,
			Status:    alarm.StatusOf(race, now, snap.Armed, snap.Warning),
			Armed:     snap.Armed.Has(race.ID()),
			Countdown: countdown,
		}
	}
	return rows
}

// label is the tray text for the row: "HH:MM Place - Status", followed by
// the countdown while the race is armed.
func (r boardRow) label() string {
	text := fmt.Sprintf("%s %s - %s", r.Race.Time, r.Race.Place, r.Status.Label)
	if r.Armed && r.Countdown != "" {
		text += " [" + r.Countdown + "]"
	}
	return text
}
