// Package notify implements the delivery gateways that turn a fired warning
// into something the user sees or hears.
package notify

import (
	"sync"

	"fyne.io/fyne/v2"
	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/borgmon/race-alarm/pkg/platform"
)

// Notifier sends OS notifications. fyne.App satisfies it.
type Notifier interface {
	SendNotification(n *fyne.Notification)
}

// SoundFunc starts the melody and returns a function that stops it.
type SoundFunc func(m models.Melody) (stop func())

// AlertFunc shows the in-app warning and returns a function that closes it.
type AlertFunc func(d models.Delivery) (dismiss func())

// Desktop delivers warnings as an in-app alert while the application is in
// the foreground and as an OS notification otherwise, with an optional tone.
type Desktop struct {
	notifier   Notifier
	sound      SoundFunc
	alert      AlertFunc
	foreground func() bool
	log        logger.Logger

	mu     sync.Mutex
	active map[models.RaceID][]func()
}

// DesktopOption configures a Desktop gateway.
type DesktopOption func(*Desktop)

// WithNotifier enables OS notifications.
func WithNotifier(n Notifier) DesktopOption {
	return func(d *Desktop) { d.notifier = n }
}

// WithSound enables the warning tone.
func WithSound(f SoundFunc) DesktopOption {
	return func(d *Desktop) { d.sound = f }
}

// WithAlert enables the in-app alert.
func WithAlert(f AlertFunc) DesktopOption {
	return func(d *Desktop) { d.alert = f }
}

// WithForeground replaces the platform focus check.
func WithForeground(f func() bool) DesktopOption {
	return func(d *Desktop) { d.foreground = f }
}

// NewDesktop builds a Desktop gateway. With no options it does nothing but log.
func NewDesktop(log logger.Logger, opts ...DesktopOption) *Desktop {
	d := &Desktop{
		foreground: platform.IsAppActive,
		log:        log,
		active:     make(map[models.RaceID][]func()),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Desktop) Deliver(dl models.Delivery) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked(dl.RaceID)

	var stops []func()
	switch {
	case d.alert != nil && (d.notifier == nil || d.foreground()):
		if dismiss := d.alert(dl); dismiss != nil {
			stops = append(stops, dismiss)
		}
	case d.notifier != nil:
		d.notifier.SendNotification(fyne.NewNotification(dl.Title(), dl.Body()))
	}
	if d.sound != nil {
		if stop := d.sound(dl.Melody); stop != nil {
			stops = append(stops, stop)
		}
	}
	if len(stops) > 0 {
		d.active[dl.RaceID] = stops
	}
	d.log.Info("Delivered warning for %s (%s)", dl.RaceID, dl.Melody)
}

func (d *Desktop) Cancel(id models.RaceID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked(id)
}

func (d *Desktop) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id := range d.active {
		d.stopLocked(id)
	}
}

// Active reports how many races have a warning still showing or sounding.
func (d *Desktop) Active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.active)
}

func (d *Desktop) stopLocked(id models.RaceID) {
	for _, stop := range d.active[id] {
		stop()
	}
	delete(d.active, id)
}
