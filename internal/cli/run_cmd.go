package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"workouttimer/internal/core/duration"
	"workouttimer/internal/core/model"
	"workouttimer/internal/core/plan"
	"workouttimer/internal/core/timekeeper"
	"workouttimer/internal/i18n"
	"workouttimer/internal/storage"
	"workouttimer/internal/ui/terminal"
)

type runOptions struct {
	save bool
}

func newRunCmd(app *App) *cobra.Command {
	options := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a workout in the terminal",
	}
	cmd.PersistentFlags().BoolVar(&options.save, "save", false, "Save the session to history when it finishes")

	cmd.AddCommand(
		newRunTabataCmd(app, options),
		newRunBoxingCmd(app, options),
		newRunCustomCmd(app, options),
	)
	return cmd
}

func newRunTabataCmd(app *App, options *runOptions) *cobra.Command {
	config := app.Settings.Tabata

	cmd := &cobra.Command{
		Use:   "tabata",
		Short: "Preparation, work/rest rounds repeated for cycles, cooldown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plan.BuildTabata(config)
			if err != nil {
				return err
			}
			return app.runPlan(cmd, p, options)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&config.Prep, "prep", config.Prep, "Preparation time")
	flags.StringVar(&config.Work, "work", config.Work, "Work time per round")
	flags.StringVar(&config.Rest, "rest", config.Rest, "Rest time between rounds")
	flags.IntVar(&config.Rounds, "rounds", config.Rounds, "Rounds per cycle")
	flags.IntVar(&config.Cycles, "cycles", config.Cycles, "Number of cycles")
	flags.StringVar(&config.Cooldown, "cooldown", config.Cooldown, "Cooldown time")
	flags.BoolVar(&config.KeepFinalRest, "keep-final-rest", config.KeepFinalRest, "Keep the rest after the last round")
	return cmd
}

func newRunBoxingCmd(app *App, options *runOptions) *cobra.Command {
	config := app.Settings.Boxing

	cmd := &cobra.Command{
		Use:   "boxing",
		Short: "Fixed rounds separated by rests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plan.BuildBoxing(config)
			if err != nil {
				return err
			}
			return app.runPlan(cmd, p, options)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&config.Work, "work", config.Work, "Round length")
	flags.StringVar(&config.Rest, "rest", config.Rest, "Rest between rounds")
	flags.IntVar(&config.Rounds, "rounds", config.Rounds, "Number of rounds")
	flags.BoolVar(&config.KeepFinalRest, "keep-final-rest", config.KeepFinalRest, "Keep the rest after the last round")
	return cmd
}

func newRunCustomCmd(app *App, options *runOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "custom [\"work, rest\"...]",
		Short: "Run custom intervals, one \"work, rest\" pair per argument or file line",
		Example: `  workout run custom "1:00, 0:30" "45, 15" "60"
  workout run custom --file intervals.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := customText(cmd.InOrStdin(), file, args, app.Settings.CustomText)
			if err != nil {
				return err
			}
			p, err := plan.FromCustomText(text)
			if err != nil {
				return err
			}
			return app.runPlan(cmd, p, options)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read intervals from a file (- for stdin)")
	return cmd
}

func customText(stdin io.Reader, file string, args []string, fallback string) (string, error) {
	switch {
	case file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading intervals: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading intervals: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, "\n"), nil
	default:
		return fallback, nil
	}
}

func (app *App) runPlan(cmd *cobra.Command, p plan.Plan, options *runOptions) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d phases, %s total\n",
		p.Mode, p.Len(), duration.Format(p.Totals().Session()))

	notifier := app.notifier()
	defer notifier.Wait()

	outcome, err := app.play(cmd, p, notifier)
	if err != nil {
		return err
	}
	if !outcome.Finished {
		return nil
	}
	if !app.IsInteractive() {
		fmt.Fprintln(out, i18n.T("Workout complete!"))
	}
	if options.save {
		return app.saveOutcome(cmd.Context(), out, p.Mode, outcome)
	}
	return nil
}

func (app *App) play(cmd *cobra.Command, p plan.Plan, listener timekeeper.Listener) (terminal.Outcome, error) {
	if !app.IsInteractive() {
		var outcome terminal.Outcome
		printer := newLinePrinter(cmd.OutOrStdout(), false)
		outcome.StartedAt = app.Now()
		finished, err := app.playPlain(cmd.Context(), p, printer, listener)
		if err != nil {
			return outcome, err
		}
		outcome.Finished = finished
		outcome.FinishedAt = app.Now()
		outcome.Summary = printer.summary
		return outcome, nil
	}

	m, err := terminal.New(p, terminal.Options{Listener: listener, Now: app.Now})
	if err != nil {
		return terminal.Outcome{}, err
	}
	final, err := app.RunProgram(m, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return terminal.Outcome{}, fmt.Errorf("terminal runner: %w", err)
	}
	if finalModel, ok := final.(terminal.Model); ok {
		return finalModel.Outcome(), nil
	}
	return m.Outcome(), nil
}

func (app *App) saveOutcome(ctx context.Context, out io.Writer, mode model.Mode, outcome terminal.Outcome) error {
	if app.History == nil {
		return ErrHistoryUnavailable
	}
	if ctx == nil {
		ctx = context.Background()
	}
	record := storage.RecordFromSummary(mode, outcome.StartedAt, outcome.FinishedAt, outcome.Summary)
	if err := app.History.Create(ctx, record); err != nil {
		app.Logger.Error("saving session failed", "error", err)
		return fmt.Errorf("saving session: %w", err)
	}
	fmt.Fprintf(out, "%s (%s)\n", i18n.T("Session saved"), record.ID)
	return nil
}
