package main

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/race-alarm/pkg/events"
	"github.com/borgmon/race-alarm/pkg/models"
)

var warningColor = color.NRGBA{R: 0xFF, G: 0xA5, B: 0x00, A: 0xFF}

// AlertWindow is the in-app two minute warning. It closes on Dismiss or when
// the race drops off the board.
type AlertWindow struct {
	window    fyne.Window
	app       fyne.App
	delivery  models.Delivery
	sub       *events.Subscription
	onDismiss func()

	closeOnce sync.Once
	closed    chan struct{}
}

func NewAlertWindow(app fyne.App, d models.Delivery, bus *events.Bus, onDismiss func()) *AlertWindow {
	aw := &AlertWindow{
		app:       app,
		delivery:  d,
		sub:       bus.Subscribe(),
		onDismiss: onDismiss,
		closed:    make(chan struct{}),
	}

	go aw.watchDismissals()

	// Create window and build UI on the main Fyne thread
	fyne.Do(func() {
		aw.window = app.NewWindow(d.AlertTitle())
		aw.buildUI()
		aw.window.SetOnClosed(aw.finish)
	})

	return aw
}

func (aw *AlertWindow) buildUI() {
	title := canvas.NewText(aw.delivery.AlertTitle(), warningColor)
	title.TextSize = 28
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	message := widget.NewLabel(aw.delivery.AlertMessage())
	message.Wrapping = fyne.TextWrapWord
	message.Alignment = fyne.TextAlignCenter

	dismissButton := widget.NewButton("Dismiss", func() {
		aw.window.Close()
	})
	dismissButton.Importance = widget.HighImportance

	content := container.NewVBox(
		container.NewPadded(title),
		widget.NewSeparator(),
		container.NewPadded(message),
		container.NewCenter(dismissButton),
	)

	aw.window.SetContent(container.NewPadded(content))
	aw.window.Resize(fyne.NewSize(420, 220))
	aw.window.CenterOnScreen()
}

// watchDismissals closes the window when its race is dismissed.
func (aw *AlertWindow) watchDismissals() {
	for {
		select {
		case <-aw.closed:
			return
		case d, ok := <-aw.sub.C():
			if !ok {
				return
			}
			if d.RaceID == aw.delivery.RaceID {
				aw.Close()
				return
			}
		}
	}
}

func (aw *AlertWindow) Show() {
	fyne.Do(func() {
		if aw.window != nil {
			aw.window.Show()
		}
	})
}

// Close closes the window from any goroutine.
func (aw *AlertWindow) Close() {
	fyne.Do(func() {
		select {
		case <-aw.closed:
			return
		default:
		}
		if aw.window != nil {
			aw.window.Close()
		}
	})
}

func (aw *AlertWindow) finish() {
	aw.closeOnce.Do(func() {
		close(aw.closed)
		aw.sub.Close()
		if aw.onDismiss != nil {
			aw.onDismiss()
		}
	})
}
