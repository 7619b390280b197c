package main

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/borgmon/race-alarm/pkg/audio"
	"github.com/borgmon/race-alarm/pkg/catalog"
	"github.com/borgmon/race-alarm/pkg/clock"
	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/borgmon/race-alarm/pkg/notify"
	"github.com/borgmon/race-alarm/pkg/platform"
	"github.com/borgmon/race-alarm/pkg/store"
	"github.com/urfave/cli"
)

const appID = "uk.co.pluckier.race-alarm"

type RaceAlarm struct {
	app            fyne.App
	config         *models.Config
	configPath     string
	prefs          *store.PreferenceStore
	audio          *audio.Engine
	gateway        *notify.Desktop
	session        *session
	log            logger.Logger
	settingsWindow *SettingsWindow

	menuMu sync.Mutex
	menu   *fyne.Menu
}

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runTray(c *cli.Context) error {
	lg := logger.NewStandardLogger(nil)
	cfg, path, err := loadSettings(lg)
	if err != nil {
		return err
	}

	ra := &RaceAlarm{
		app:        app.NewWithID(appID),
		config:     cfg,
		configPath: path,
		log:        lg,
	}
	if err := ra.initialize(); err != nil {
		return err
	}

	ra.run()
	return nil
}

func (ra *RaceAlarm) initialize() error {
	ra.prefs = store.NewPreferenceStore(ra.app)
	if m, ok, err := overrideMelody(); err != nil {
		return err
	} else if ok {
		ra.prefs.SetMelody(m)
	}
	ra.audio = audio.NewEngine(ra.prefs.Volume, ra.log)
	if ra.config.PlaySound {
		go func() {
			if err := ra.audio.Init(); err != nil {
				ra.log.Warning("audio unavailable, warnings will be silent: %v", err)
			}
		}()
	}

	// Sync autostart state with config on startup
	if err := setupAutostart(ra.config.AutoStart, ra.log); err != nil {
		ra.log.Warning("failed to setup autostart: %v", err)
	}
	ra.prefs.SetAutoStart(ra.config.AutoStart)

	ra.gateway = notify.NewDesktop(ra.log, ra.gatewayOptions()...)
	ra.session = newSession(ra.config, clock.Real(), ra.gateway, ra.prefs.Melody, ra.log)
	ra.session.onTick = func(time.Time, []boardRow) {
		fyne.Do(ra.updateSystemTrayMenu)
	}
	ra.session.onReload = func(res catalog.Result) {
		if res.Err != nil {
			ra.log.Warning("showing bundled race card: %v", res.Err)
		}
	}

	ra.setupSystemTray()
	return ra.session.start(context.Background(), ra.config.ReloadCron)
}

func (ra *RaceAlarm) gatewayOptions() []notify.DesktopOption {
	opts := []notify.DesktopOption{notify.WithAlert(ra.showAlert)}
	if ra.config.DesktopNotifications {
		opts = append(opts, notify.WithNotifier(ra.app))
	}
	if ra.config.PlaySound {
		opts = append(opts, notify.WithSound(ra.playMelody))
	}
	return opts
}

func (ra *RaceAlarm) run() {
	ra.app.Lifecycle().SetOnStarted(func() {
		platform.SetActivationPolicy()
	})
	ra.app.Lifecycle().SetOnStopped(func() {
		ra.session.stop()
	})
	ra.app.Run()
}

func (ra *RaceAlarm) playMelody(m models.Melody) func() {
	return ra.audio.Play(m).Stop
}

// showAlert runs under the coordinator lock, so it only schedules UI work.
func (ra *RaceAlarm) showAlert(d models.Delivery) func() {
	aw := NewAlertWindow(ra.app, d, ra.session.bus, func() {
		go ra.gateway.Cancel(d.RaceID)
	})
	aw.Show()
	platform.ActivateApp()
	return aw.Close
}

func (ra *RaceAlarm) showSettingsWindow() {
	// If settings window already exists, just bring it to front
	if ra.settingsWindow != nil {
		ra.settingsWindow.window.RequestFocus()
		ra.settingsWindow.window.Show()
		return
	}

	ra.settingsWindow = NewSettingsWindow(ra.app, ra.config, ra.prefs, ra.audio, ra.log, func(newConfig *models.Config) {
		sourceChanged := newConfig.CatalogURL != ra.config.CatalogURL || newConfig.CatalogFormat != ra.config.CatalogFormat
		ra.config = newConfig
		if err := store.SaveConfig(ra.configPath, ra.config); err != nil {
			ra.log.Error("failed to save config: %v", err)
		}
		if sourceChanged {
			ra.session.loader.SetSource(newConfig.CatalogURL, newConfig.Format())
			go ra.session.reload(context.Background())
		}
	})
	ra.settingsWindow.onClosed = func() {
		ra.settingsWindow = nil
	}
	ra.settingsWindow.Show()
}

func (ra *RaceAlarm) quit() {
	ra.app.Quit()
}
