package tray

import (
	"fmt"

	"workouttimer/internal/core/timekeeper"
	"workouttimer/internal/i18n"

	"fyne.io/fyne/v2"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnTogglePause func()
	OnStop        func()
	OnPreferences func()
	OnQuit        func()
}

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Icons holds the tray icons per state. Nil icons are not applied.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app         App
	icons       Icons
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	stopItem    *fyne.MenuItem
	status      timekeeper.Status
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		icons:     icons,
		callbacks: callbacks,
		status:    timekeeper.StatusIdle,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem(i18n.T("Start"), func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})

	manager.stopItem = fyne.NewMenuItem(i18n.T("Stop"), func() {
		if manager.callbacks.OnStop != nil {
			manager.callbacks.OnStop()
		}
	})

	manager.SetState(timekeeper.StatusIdle, "")
	return manager
}

// SetState updates menu labels and the icon for status. detail is shown
// next to the status, typically the phase label and remaining time.
func (manager *Manager) SetState(status timekeeper.Status, detail string) {
	iconChanged := manager.status != status || manager.statusLabel == ""
	manager.status = status
	manager.statusLabel = statusText(status)
	if detail != "" {
		manager.statusLabel = fmt.Sprintf("%s: %s", manager.statusLabel, detail)
	}

	switch status {
	case timekeeper.StatusRunning:
		manager.toggleItem.Label = i18n.T("Pause")
	case timekeeper.StatusPaused:
		manager.toggleItem.Label = i18n.T("Resume")
	default:
		manager.toggleItem.Label = i18n.T("Start")
	}
	manager.stopItem.Disabled = status == timekeeper.StatusIdle

	if iconChanged {
		manager.refreshIcon()
	}
	manager.refreshMenu()
}

// Status returns the status line shown in the menu.
func (manager *Manager) Status() string {
	return manager.statusLabel
}

func (manager *Manager) refreshIcon() {
	icon := manager.icons.Active
	if manager.status == timekeeper.StatusPaused {
		icon = manager.icons.Paused
	}
	if manager.app != nil && icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	manager.statusItem.Label = manager.statusLabel
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(fyne.NewMenu("Workout Timer",
			manager.statusItem,
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem(i18n.T("Show"), func() {
				if manager.callbacks.OnShow != nil {
					manager.callbacks.OnShow()
				}
			}),
			manager.toggleItem,
			manager.stopItem,
			fyne.NewMenuItem(i18n.T("Preferences"), func() {
				if manager.callbacks.OnPreferences != nil {
					manager.callbacks.OnPreferences()
				}
			}),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem(i18n.T("Quit"), func() {
				if manager.callbacks.OnQuit != nil {
					manager.callbacks.OnQuit()
				}
			}),
		))
	}
}

func statusText(status timekeeper.Status) string {
	switch status {
	case timekeeper.StatusRunning:
		return i18n.T("Running")
	case timekeeper.StatusPaused:
		return i18n.T("Paused")
	case timekeeper.StatusFinished:
		return i18n.T("Workout complete!")
	default:
		return i18n.T("Idle")
	}
}
