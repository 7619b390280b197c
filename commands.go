package main

import (
	"errors"
	"fmt"

	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/borgmon/race-alarm/pkg/store"
	"github.com/urfave/cli"
)

var version = "dev"

var (
	configPath     string
	catalogSource  string
	melodyOverride string

	globalFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "path to the YAML config file (default: user config dir)",
			Destination: &configPath,
		},
		cli.StringFlag{
			Name:        "catalog",
			Usage:       "race catalog URL or file, overrides catalog_url",
			Destination: &catalogSource,
		},
		cli.StringFlag{
			Name:        "melody, m",
			Usage:       "warning melody: Call, Bugle or Hawaii",
			Destination: &melodyOverride,
		},
	}
)

func newCLI() *cli.App {
	app := cli.NewApp()
	app.Name = "race-alarm"
	app.HelpName = "race-alarm"
	app.Usage = "two minute warnings for today's races"
	app.UsageText = "race-alarm [global options] [command] [arguments...]"
	app.Version = version
	app.Flags = globalFlags
	app.Commands = []cli.Command{
		{
			Name:   "tray",
			Usage:  "run the system tray race board (default)",
			Action: runTray,
		},
		{
			Name:      "watch",
			Aliases:   []string{"w"},
			Usage:     "arm races and sound warnings without a UI",
			UsageText: "race-alarm watch [--all] [--race HH:MM-Place ...]",
			Action:    runWatch,
			Flags:     watchFlags,
		},
		{
			Name:    "list",
			Aliases: []string{"l"},
			Usage:   "print today's remaining races",
			Action:  runList,
		},
	}
	app.Action = runTray
	return app
}

// loadSettings reads the config file and applies the global flag overrides.
func loadSettings(log logger.Logger) (*models.Config, string, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = store.DefaultConfigPath(); err != nil {
			return nil, "", err
		}
	}
	cfg, err := store.LoadConfig(path)
	if err != nil {
		return nil, "", err
	}
	if catalogSource != "" {
		cfg.CatalogURL = catalogSource
		cfg.CatalogFormat = ""
	}
	log.Info("Using config %s, catalog %s (%s)", path, cfg.CatalogURL, cfg.Format())
	return cfg, path, nil
}

// overrideMelody returns the melody named by --melody, if any.
func overrideMelody() (models.Melody, bool, error) {
	if melodyOverride == "" {
		return "", false, nil
	}
	m := models.Melody(melodyOverride)
	if !m.Valid() {
		return "", false, cli.NewExitError(fmt.Sprintf("unknown melody %q, want one of %v", melodyOverride, models.MelodyNames()), 2)
	}
	return m, true, nil
}

var errNoRaces = errors.New("no races selected, use --all or --race")
