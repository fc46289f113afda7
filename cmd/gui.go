package main

import (
	"errors"
	"fmt"
	"log/slog"

	"workouttimer/internal/core/timekeeper"
	"workouttimer/internal/platform"
	"workouttimer/internal/sound"
	"workouttimer/internal/storage"
	"workouttimer/internal/ui/animation"
	"workouttimer/internal/ui/preferences"
	"workouttimer/internal/ui/tray"
	"workouttimer/internal/ui/workout"
	"workouttimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
)

type guiDeps struct {
	logger   *slog.Logger
	settings preferences.Settings
	history  *storage.HistoryRepo
	player   *sound.BeepPlayer
}

func launchGUI(deps guiDeps) error {
	logger := deps.logger
	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("already running, asked the open window to come forward")
		return nil
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon("active.svg"))

	notifier := sound.NewNotifier(deps.player, logger, sound.NotifierConfig{})
	runner := timekeeper.NewRunner(timekeeper.Config{}, notifier)
	defer runner.Close()

	settings := deps.settings.Clone()
	saveSettings := func(updated preferences.Settings) {
		settings = updated.Clone()
		if err := storage.SaveSettings(appName, settings); err != nil {
			logger.Error("save settings", "error", err)
		}
	}

	var history workout.HistoryStore
	if deps.history != nil {
		history = deps.history
	}

	desktopApp, hasTray := fyneApp.(desktop.App)
	var trayManager *tray.Manager
	var prefsWindow *preferences.Window

	mainWindow := workout.New(fyneApp, workout.Config{
		Settings:          settings,
		Runner:            runner,
		History:           history,
		Logger:            logger,
		Animation:         animation.DefaultConfig(),
		HideOnClose:       hasTray,
		OnSettingsChanged: saveSettings,
		OnStatus: func(status timekeeper.Status, detail string) {
			if trayManager != nil {
				trayManager.SetState(status, detail)
			}
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
	})

	prefsWindow = preferences.New(fyneApp, settings, preferences.Callbacks{
		OnSave: func(updated preferences.Settings) {
			// Form values live in the main window; only take the preference fields.
			merged := settings.Clone()
			merged.Theme = updated.Theme
			merged.FontScale = updated.FontScale
			merged.Volume = updated.Volume
			merged.Sounds = updated.Sounds
			saveSettings(merged)
			deps.player.Configure(merged.SoundOptions())
			mainWindow.ApplySettings(merged)
		},
		OnTest: func(cue sound.Cue, path string, volume float64) {
			if err := deps.player.Preview(cue, path, volume); err != nil {
				logger.Warn("sound preview", "cue", cue, "path", path, "error", err)
				dialog.ShowError(err, mainWindow.Window())
			}
		},
	})

	if hasTray {
		trayManager = tray.New(desktopApp, tray.Icons{
			Active: resources.MustIcon("active.svg"),
			Paused: resources.MustIcon("paused.svg"),
		}, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnTogglePause: mainWindow.TogglePause,
			OnStop:        mainWindow.Stop,
			OnPreferences: prefsWindow.Show,
			OnQuit: func() {
				runner.Stop()
				fyneApp.Quit()
			},
		})
	}

	go guard.Serve(func() {
		fyne.Do(mainWindow.Show)
	})
	mainWindow.Listen(runner.Subscribe(32))
	mainWindow.Show()
	fyneApp.Run()
	return nil
}
