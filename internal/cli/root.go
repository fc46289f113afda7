// Package cli implements the workout command line.
package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"workouttimer/internal/core/model"
	"workouttimer/internal/sound"
	"workouttimer/internal/ui/preferences"
)

// ErrHistoryUnavailable is returned by history commands when no store is configured.
var ErrHistoryUnavailable = errors.New("history database is not available")

// HistoryStore persists finished sessions.
type HistoryStore interface {
	Create(ctx context.Context, record *model.SessionRecord) error
	List(ctx context.Context, limit int) ([]*model.SessionRecord, error)
}

// App holds the collaborators used by CLI commands.
type App struct {
	Logger   *slog.Logger
	Settings preferences.Settings
	History  HistoryStore
	Player   sound.Player

	// LaunchGUI opens the desktop window; it runs when no subcommand is given.
	LaunchGUI func() error
	// IsInteractive reports whether stdout is a terminal.
	IsInteractive func() bool
	// TickInterval paces plain countdown output. Defaults to one second.
	TickInterval time.Duration
	// RunProgram runs a bubbletea model. Defaults to tea.NewProgram.
	RunProgram func(m tea.Model, in io.Reader, out io.Writer) (tea.Model, error)
	Now        func() time.Time
}

// NewRootCmd creates the top-level "workout" command.
func NewRootCmd(app *App) *cobra.Command {
	app.applyDefaults()
	root := &cobra.Command{
		Use:           "workout",
		Short:         "Interval timer for Tabata, boxing and custom workouts",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.LaunchGUI == nil {
				return cmd.Help()
			}
			return app.LaunchGUI()
		},
	}

	root.AddCommand(
		newCountdownCmd(app),
		newRunCmd(app),
		newHistoryCmd(app),
	)
	return root
}

func (app *App) applyDefaults() {
	if app.Logger == nil {
		app.Logger = slog.Default()
	}
	if app.IsInteractive == nil {
		app.IsInteractive = func() bool { return false }
	}
	if app.TickInterval <= 0 {
		app.TickInterval = time.Second
	}
	if app.RunProgram == nil {
		app.RunProgram = func(m tea.Model, in io.Reader, out io.Writer) (tea.Model, error) {
			return tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run()
		}
	}
	if app.Now == nil {
		app.Now = time.Now
	}
	if app.Settings.Sounds == nil {
		app.Settings = preferences.DefaultSettings()
	}
}

func (app *App) notifier() *sound.Notifier {
	return sound.NewNotifier(app.Player, app.Logger, sound.NotifierConfig{})
}
