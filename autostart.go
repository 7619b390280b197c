package main

import (
	"os"
	"path/filepath"

	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/emersion/go-autostart"
)

func autostartApp() (*autostart.App, error) {
	// Get the executable path
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve symlinks if any
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	return &autostart.App{
		Name:        "race-alarm",
		DisplayName: "Race Alarm",
		Exec:        []string{execPath, "tray"},
	}, nil
}

func setupAutostart(enable bool, log logger.Logger) error {
	app, err := autostartApp()
	if err != nil {
		return err
	}

	switch {
	case enable && !app.IsEnabled():
		if err := app.Enable(); err != nil {
			log.Error("Failed to enable autostart: %v", err)
			return err
		}
		log.Info("Autostart enabled")
	case !enable && app.IsEnabled():
		if err := app.Disable(); err != nil {
			log.Error("Failed to disable autostart: %v", err)
			return err
		}
		log.Info("Autostart disabled")
	}
	return nil
}
