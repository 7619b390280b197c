package main

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/race-alarm/pkg/audio"
	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/borgmon/race-alarm/pkg/store"
)

type SettingsWindow struct {
	window fyne.Window
	app    fyne.App
	config *models.Config
	prefs  *store.PreferenceStore
	audio  *audio.Engine
	log    logger.Logger
	onSave func(*models.Config)

	// onClosed runs after the window closes
	onClosed func()

	// Warning tab
	melodyRadio  *widget.RadioGroup
	volumeSlider *widget.Slider
	testPlayer   *audio.Player

	// General tab
	autoStartCheck     *widget.Check
	catalogEntry       *widget.Entry
	notificationsCheck *widget.Check
	soundCheck         *widget.Check

	saveStatusLabel *widget.Label
	saveButton      *widget.Button
}

func NewSettingsWindow(app fyne.App, config *models.Config, prefs *store.PreferenceStore, engine *audio.Engine, log logger.Logger, onSave func(*models.Config)) *SettingsWindow {
	sw := &SettingsWindow{
		app:    app,
		config: config,
		prefs:  prefs,
		audio:  engine,
		log:    log,
		onSave: onSave,
	}

	sw.window = app.NewWindow("Race Alarm - Settings")
	sw.buildUI()

	return sw
}

func (sw *SettingsWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("Warning", sw.buildWarningTab()),
		container.NewTabItem("General", sw.buildGeneralTab()),
	)

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveStatusLabel.Importance = widget.SuccessImportance

	sw.saveButton = widget.NewButton("Save", sw.save)
	sw.saveButton.Importance = widget.HighImportance

	closeButton := widget.NewButton("Close", func() {
		sw.window.Close()
	})

	buttonRow := container.NewBorder(
		nil,
		nil,
		container.NewHBox(sw.saveButton, sw.saveStatusLabel),
		closeButton,
		container.NewHBox(),
	)

	content := container.NewBorder(
		nil,
		container.NewPadded(buttonRow),
		nil,
		nil,
		tabs,
	)

	sw.window.SetContent(content)
	sw.window.Resize(fyne.NewSize(560, 380))
	sw.window.CenterOnScreen()

	sw.window.SetOnClosed(func() {
		sw.testPlayer.Stop()
		if sw.onClosed != nil {
			sw.onClosed()
		}
	})
}

// buildWarningTab holds the preferences that apply immediately: the next
// warning reads them when it fires.
func (sw *SettingsWindow) buildWarningTab() fyne.CanvasObject {
	sw.melodyRadio = widget.NewRadioGroup(models.MelodyNames(), func(selected string) {
		if selected == "" {
			return
		}
		sw.prefs.SetMelody(models.ParseMelody(selected))
	})
	sw.melodyRadio.Horizontal = true
	sw.melodyRadio.Required = true
	sw.melodyRadio.SetSelected(string(sw.prefs.Melody()))

	volumeValue := widget.NewLabel("")
	sw.volumeSlider = widget.NewSlider(0, 100)
	sw.volumeSlider.Step = 5
	sw.volumeSlider.OnChanged = func(v float64) {
		volumeValue.SetText(fmt.Sprintf("%.0f%%", v))
	}
	sw.volumeSlider.OnChangeEnded = func(v float64) {
		sw.prefs.SetVolume(v / 100)
	}
	sw.volumeSlider.SetValue(sw.prefs.Volume() * 100)

	testButton := widget.NewButton("Test Melody", func() {
		sw.testPlayer.Stop()
		sw.testPlayer = sw.audio.Play(models.ParseMelody(sw.melodyRadio.Selected))
		go func() {
			if err := sw.audio.Init(); err != nil {
				fyne.Do(func() {
					dialog.ShowInformation("No Audio", "No audio output device is available.", sw.window)
				})
			}
		}()
	})

	melodyHelp := widget.NewLabel("Played when a race reaches its two minute warning")
	melodyHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(widget.NewLabel("Melody:"), melodyHelp),
		sw.melodyRadio,

		widget.NewLabel("Volume:"),
		container.NewBorder(nil, nil, nil, volumeValue, sw.volumeSlider),
	)

	content := container.NewVBox(
		widget.NewLabel("Warning Settings"),
		widget.NewSeparator(),
		form,
		container.NewHBox(layout.NewSpacer(), testButton),
	)

	return container.NewPadded(container.NewVScroll(content))
}

func (sw *SettingsWindow) buildGeneralTab() fyne.CanvasObject {
	sw.autoStartCheck = widget.NewCheck("Auto Start on System Boot", nil)
	sw.autoStartCheck.SetChecked(sw.config.AutoStart)

	sw.notificationsCheck = widget.NewCheck("Desktop notifications when in the background", nil)
	sw.notificationsCheck.SetChecked(sw.config.DesktopNotifications)

	sw.soundCheck = widget.NewCheck("Play the warning melody", nil)
	sw.soundCheck.SetChecked(sw.config.PlaySound)

	sw.catalogEntry = widget.NewEntry()
	sw.catalogEntry.SetText(sw.config.CatalogURL)
	sw.catalogEntry.SetPlaceHolder(models.DefaultCatalogURL)

	catalogHelp := widget.NewLabel("JSON race feed, iCalendar (.ics) URL, or a local file")
	catalogHelp.Wrapping = fyne.TextWrapWord
	catalogHelp.Importance = widget.MediumImportance

	restartHelp := widget.NewLabel("Notification and sound changes apply after restart")
	restartHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(widget.NewLabel("Race Catalog:"), catalogHelp),
		sw.catalogEntry,

		widget.NewLabel("Auto Start:"),
		sw.autoStartCheck,

		container.NewVBox(widget.NewLabel("Delivery:"), restartHelp),
		container.NewVBox(sw.notificationsCheck, sw.soundCheck),
	)

	content := container.NewVBox(
		widget.NewLabel("General Settings"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}

func (sw *SettingsWindow) configFromUI() *models.Config {
	cfg := *sw.config
	cfg.CatalogURL = strings.TrimSpace(sw.catalogEntry.Text)
	if cfg.CatalogURL != sw.config.CatalogURL {
		cfg.CatalogFormat = ""
	}
	cfg.AutoStart = sw.autoStartCheck.Checked
	cfg.DesktopNotifications = sw.notificationsCheck.Checked
	cfg.PlaySound = sw.soundCheck.Checked
	cfg.Normalize()
	return &cfg
}

func (sw *SettingsWindow) save() {
	sw.saveButton.Disable()
	sw.setStatus("Saving...", widget.MediumImportance)

	newConfig := sw.configFromUI()
	go func() {
		if err := setupAutostart(newConfig.AutoStart, sw.log); err != nil {
			fyne.Do(func() {
				sw.setStatus("Error: Failed to set autostart", widget.DangerImportance)
				sw.saveButton.Enable()
			})
			return
		}
		sw.prefs.SetAutoStart(newConfig.AutoStart)

		if sw.onSave != nil {
			sw.onSave(newConfig)
		}
		sw.config = newConfig

		fyne.Do(func() {
			sw.setStatus("Settings saved successfully", widget.SuccessImportance)
			sw.saveButton.Enable()

			// Clear success message after 3 seconds
			go func() {
				time.Sleep(3 * time.Second)
				fyne.Do(func() {
					if sw.saveStatusLabel.Text == "Settings saved successfully" {
						sw.setStatus("", widget.SuccessImportance)
					}
				})
			}()
		})
	}()
}

func (sw *SettingsWindow) setStatus(text string, importance widget.Importance) {
	sw.saveStatusLabel.SetText(text)
	sw.saveStatusLabel.Importance = importance
	sw.saveStatusLabel.Refresh()
}

func (sw *SettingsWindow) Show() {
	sw.window.Show()
}
