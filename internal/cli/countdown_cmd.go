package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"workouttimer/internal/core/duration"
	"workouttimer/internal/core/model"
	"workouttimer/internal/core/plan"
	"workouttimer/internal/core/timekeeper"
	"workouttimer/internal/i18n"
	"workouttimer/internal/ui/terminal"
)

func newCountdownCmd(app *App) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "countdown [duration]",
		Short: "Count down a single duration (seconds, mm:ss, h:mm:ss, 45s, 2m)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := "30"
			if len(args) == 1 {
				value = args[0]
			}
			seconds, err := duration.Parse(value)
			if err != nil {
				return err
			}
			printer := newLinePrinter(cmd.OutOrStdout(), app.IsInteractive())
			if seconds == 0 {
				printer.Done(i18n.T("Timer complete!"))
				return nil
			}
			p := plan.Plan{
				Mode:   model.ModeCustom,
				Rounds: 1,
				Phases: []plan.Phase{{Label: label, Kind: plan.KindWork, Seconds: seconds}},
			}

			notifier := app.notifier()
			defer notifier.Wait()
			if _, err := app.playPlain(cmd.Context(), p, printer, notifier); err != nil {
				return err
			}
			printer.Done(i18n.T("Timer complete!"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Label shown before the remaining time")
	return cmd
}

// playPlain walks p one second per TickInterval and prints every second.
// It returns false if ctx was cancelled before the plan finished.
func (app *App) playPlain(ctx context.Context, p plan.Plan, printer *linePrinter, listener timekeeper.Listener) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	keeper := timekeeper.New(timekeeper.Listeners{printer, listener})
	if err := keeper.Start(p); err != nil {
		return false, err
	}
	printer.Show(keeper.Snapshot())

	ticker := time.NewTicker(app.TickInterval)
	defer ticker.Stop()
	for keeper.Status() == timekeeper.StatusRunning {
		select {
		case <-ctx.Done():
			keeper.Stop()
			printer.Done("")
			return false, ctx.Err()
		case <-ticker.C:
			keeper.Tick(1)
			if keeper.Status() == timekeeper.StatusRunning {
				printer.Show(keeper.Snapshot())
			}
		}
	}
	return true, nil
}

// linePrinter prints "[label] mm:ss" updates. On a terminal the line is
// redrawn in place and coloured by phase kind.
type linePrinter struct {
	out         io.Writer
	interactive bool
	summary     timekeeper.Summary
}

func newLinePrinter(out io.Writer, interactive bool) *linePrinter {
	return &linePrinter{out: out, interactive: interactive}
}

func (printer *linePrinter) OnPhaseChange(label string, kind plan.Kind, seconds int) {
	if printer.interactive {
		fmt.Fprint(printer.out, "\r\033[K")
	}
}

func (printer *linePrinter) OnFinish(summary timekeeper.Summary) {
	printer.summary = summary
}

func (printer *linePrinter) Show(snapshot timekeeper.Snapshot) {
	prefix := ""
	if snapshot.Phase.Label != "" {
		prefix = fmt.Sprintf("[%s] ", snapshot.Phase.Label)
	}
	remaining := duration.Format(snapshot.Remaining)
	if !printer.interactive {
		fmt.Fprintln(printer.out, prefix+remaining)
		return
	}
	if prefix != "" {
		prefix = terminal.KindStyle(snapshot.Phase.Kind).Render(prefix)
	}
	fmt.Fprintf(printer.out, "\r\033[K%s%s", prefix, remaining)
}

func (printer *linePrinter) Done(message string) {
	if printer.interactive {
		fmt.Fprint(printer.out, "\r\033[K")
	}
	if message != "" {
		fmt.Fprintln(printer.out, message)
	}
}
