package notify

import (
	"time"

	"github.com/borgmon/race-alarm/pkg/alarm"
	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/borgmon/race-alarm/pkg/models"
)

// Log is a gateway that only writes deliveries and cancellations to a logger.
type Log struct {
	Logger logger.Logger
}

func (l Log) Deliver(d models.Delivery) {
	l.Logger.Info("%s | %s | starts %s | fired %s", d.AlertTitle(), d.Title(),
		d.StartAt.Format(time.TimeOnly), d.FiredAt.Format(time.TimeOnly))
}

func (l Log) Cancel(id models.RaceID) {
	l.Logger.Info("Warning cancelled for %s", id)
}

func (l Log) CancelAll() {
	l.Logger.Info("All warnings cancelled")
}

// Multi fans every call out to each gateway in order.
type Multi []alarm.Gateway

func (m Multi) Deliver(d models.Delivery) {
	for _, g := range m {
		g.Deliver(d)
	}
}

func (m Multi) Cancel(id models.RaceID) {
	for _, g := range m {
		g.Cancel(id)
	}
}

func (m Multi) CancelAll() {
	for _, g := range m {
		g.CancelAll()
	}
}

var (
	_ alarm.Gateway = (*Desktop)(nil)
	_ alarm.Gateway = Log{}
	_ alarm.Gateway = Multi(nil)
)
