package main

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/borgmon/race-alarm/pkg/catalog"
)

const noRacesText = "There are no races left today to set alarms for, please come back tomorrow."

func (ra *RaceAlarm) setupSystemTray() {
	if desk, ok := ra.app.(desktop.App); ok {
		ra.menuMu.Lock()
		ra.menu = fyne.NewMenu("Race Alarm")
		ra.menuMu.Unlock()
		ra.updateSystemTrayMenu()
		desk.SetSystemTrayMenu(ra.menu)
		desk.SetSystemTrayIcon(resourceIconPng)
	}
}

// updateSystemTrayMenu rebuilds the board. Must run on the fyne thread.
func (ra *RaceAlarm) updateSystemTrayMenu() {
	ra.menuMu.Lock()
	defer ra.menuMu.Unlock()
	if ra.menu == nil {
		return
	}

	ra.menu.Items = trayMenuItems(ra.session.board(), ra.session.coordinator.ArmedCount(), ra.session.catalogOrigin(), trayActions{
		toggle:    func(row boardRow) { go ra.toggle(row) },
		toggleAll: func() { go ra.toggleAll() },
		settings:  ra.showSettingsWindow,
		reload:    func() { go ra.session.reload(context.Background()) },
		quit:      ra.quit,
	})
	ra.menu.Refresh()
}

func (ra *RaceAlarm) toggle(row boardRow) {
	ra.session.coordinator.Toggle(row.Race)
	fyne.Do(ra.updateSystemTrayMenu)
}

func (ra *RaceAlarm) toggleAll() {
	ra.session.coordinator.ToggleAll()
	fyne.Do(ra.updateSystemTrayMenu)
}

type trayActions struct {
	toggle    func(boardRow)
	toggleAll func()
	settings  func()
	reload    func()
	quit      func()
}

func trayMenuItems(rows []boardRow, armedCount int, origin catalog.Origin, act trayActions) []*fyne.MenuItem {
	menuItems := []*fyne.MenuItem{}

	if len(rows) == 0 {
		emptyItem := fyne.NewMenuItem(noRacesText, nil)
		emptyItem.Disabled = true
		menuItems = append(menuItems, emptyItem)
	} else {
		menuItems = append(menuItems, fyne.NewMenuItem(toggleAllLabel(armedCount), act.toggleAll))
		menuItems = append(menuItems, fyne.NewMenuItemSeparator())

		for _, row := range rows {
			row := row
			item := fyne.NewMenuItem(row.label(), func() { act.toggle(row) })
			item.Checked = row.Armed
			item.Disabled = row.Status.Finished
			menuItems = append(menuItems, item)
		}
	}

	if origin == catalog.OriginFallback {
		offlineItem := fyne.NewMenuItem("Showing bundled race card (feed unavailable)", nil)
		offlineItem.Disabled = true
		menuItems = append(menuItems, fyne.NewMenuItemSeparator(), offlineItem)
	}

	menuItems = append(menuItems,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings", act.settings),
		fyne.NewMenuItem("Reload Races", act.reload),
	)

	menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	menuItems = append(menuItems, fyne.NewMenuItem("Quit", act.quit))
	return menuItems
}

// toggleAllLabel matches ToggleAll: with any race armed it stops them all.
func toggleAllLabel(armedCount int) string {
	if armedCount > 0 {
		return "Stop All Alarms"
	}
	return "Start All Alarms"
}
