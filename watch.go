package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/borgmon/race-alarm/pkg/alarm"
	"github.com/borgmon/race-alarm/pkg/audio"
	"github.com/borgmon/race-alarm/pkg/catalog"
	"github.com/borgmon/race-alarm/pkg/clock"
	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/borgmon/race-alarm/pkg/notify"
	"github.com/urfave/cli"
)

var (
	watchAll   bool
	watchRaces cli.StringSlice
	watchMute  bool
	watchVol   float64

	watchFlags = []cli.Flag{
		cli.BoolFlag{
			Name:        "all, a",
			Usage:       "arm every race that has not started",
			Destination: &watchAll,
		},
		cli.StringSliceFlag{
			Name:  "race, r",
			Usage: "arm one race by id, e.g. 14:30-York (repeatable)",
			Value: &watchRaces,
		},
		cli.BoolFlag{
			Name:        "mute",
			Usage:       "log warnings without playing the melody",
			Destination: &watchMute,
		},
		cli.Float64Flag{
			Name:        "volume",
			Usage:       "melody volume from 0 to 1",
			Value:       1,
			Destination: &watchVol,
		},
	}
)

func runWatch(c *cli.Context) error {
	lg := logger.NewStandardLogger(nil)
	if !watchAll && len(watchRaces) == 0 {
		return cli.NewExitError(errNoRaces.Error(), 2)
	}
	cfg, _, err := loadSettings(lg)
	if err != nil {
		return err
	}
	melody := models.DefaultMelody
	if m, ok, err := overrideMelody(); err != nil {
		return err
	} else if ok {
		melody = m
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw := watchGateway(cfg, lg)
	s := newSession(cfg, clock.Real(), gw, func() models.Melody { return melody }, lg)
	s.onReload = func(catalog.Result) { armSelected(s, watchAll, watchRaces, lg) }
	s.onTick = func(now time.Time, board []boardRow) {
		if len(board) == 0 && now.Second() == 0 {
			lg.Info(noRacesText)
		}
	}

	if err := s.start(ctx, cfg.ReloadCron); err != nil {
		return err
	}
	lg.Info("Watching %d armed races, press Ctrl+C to stop", s.coordinator.ArmedCount())

	<-ctx.Done()
	lg.Info("Shutting down")
	s.stop()
	return nil
}

func watchGateway(cfg *models.Config, lg logger.Logger) alarm.Gateway {
	gws := notify.Multi{notify.Log{Logger: lg}}
	if cfg.PlaySound && !watchMute {
		engine := audio.NewEngine(func() float64 { return watchVol }, lg)
		gws = append(gws, notify.NewDesktop(lg, notify.WithSound(func(m models.Melody) func() {
			return engine.Play(m).Stop
		})))
	}
	return gws
}

// armSelected arms the requested races on the current catalog. Unknown ids
// are reported and skipped.
func armSelected(s *session, all bool, ids []string, lg logger.Logger) {
	if all {
		s.coordinator.ArmAll()
		return
	}
	for _, id := range ids {
		race, ok := s.find(models.RaceID(id))
		if !ok {
			lg.Warning("no race %q on today's card", id)
			continue
		}
		s.coordinator.Arm(race)
	}
}
