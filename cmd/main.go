package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"workouttimer/internal/cli"
	"workouttimer/internal/i18n"
	"workouttimer/internal/sound"
	"workouttimer/internal/storage"

	"github.com/mattn/go-isatty"
)

const (
	appName     = "WorkoutTimer"
	appID       = "com.workouttimer.app"
	logLevelEnv = "WORKOUT_LOG_LEVEL"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := newLogger(os.Getenv(logLevelEnv))
	slog.SetDefault(logger)
	i18n.SetLang(i18n.Detect(logger))

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn("load settings, using defaults", "error", err)
	}

	app := &cli.App{
		Logger:   logger,
		Settings: settings,
		IsInteractive: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}

	var repo *storage.HistoryRepo
	dbPath, err := storage.ResolveDBPath(appName)
	if err == nil {
		db, openErr := storage.OpenDB(dbPath)
		if openErr != nil {
			err = openErr
		} else {
			defer db.Close()
			repo = storage.NewHistoryRepo(db)
			app.History = repo
		}
	}
	if err != nil {
		logger.Warn("history disabled", "path", dbPath, "error", err)
	}

	player := sound.NewBeepPlayer(logger, settings.SoundOptions())
	app.Player = player
	app.LaunchGUI = func() error {
		return launchGUI(guiDeps{
			logger:   logger,
			settings: settings,
			history:  repo,
			player:   player,
		})
	}

	if err := cli.NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
}
