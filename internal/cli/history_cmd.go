package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"workouttimer/internal/core/duration"
	"workouttimer/internal/core/model"
	"workouttimer/internal/i18n"
	"workouttimer/internal/report"
	"workouttimer/internal/ui/terminal"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or export saved sessions",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryExportCmd(app),
	)
	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.listHistory(cmd.Context(), limit)
			if err != nil {
				return err
			}
			writeHistoryTable(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum sessions to show (0 for all)")
	return cmd
}

func newHistoryExportCmd(app *App) *cobra.Command {
	var out string
	var limit int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sessions as a PDF report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.listHistory(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if err := report.WriteHistoryFile(out, records, app.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sessions to %s\n", len(records), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "workout-history.pdf", "Output PDF path")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum sessions to include (0 for all)")
	return cmd
}

func (app *App) listHistory(ctx context.Context, limit int) ([]*model.SessionRecord, error) {
	if app.History == nil {
		return nil, ErrHistoryUnavailable
	}
	if ctx == nil {
		ctx = context.Background()
	}
	records, err := app.History.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return records, nil
}

func writeHistoryTable(w io.Writer, records []*model.SessionRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, terminal.StyleDim.Render(i18n.T("No sessions recorded yet.")))
		return
	}
	header := fmt.Sprintf("%-16s  %-7s  %6s  %8s  %8s  %8s", "FINISHED", "MODE", "ROUNDS", "WORK", "RECOVERY", "TOTAL")
	fmt.Fprintln(w, terminal.StyleTitle.Render(header))
	for _, record := range records {
		mode := fmt.Sprintf("%-7s", record.Mode)
		fmt.Fprintf(w, "%-16s  %s  %6d  %8s  %8s  %8s\n",
			record.FinishedAt.Local().Format("2006-01-02 15:04"),
			terminal.ModeStyle(record.Mode).Render(mode),
			record.RoundsCompleted,
			duration.Format(record.WorkSeconds),
			duration.Format(record.RecoverySeconds()),
			duration.Format(record.TotalSeconds),
		)
	}
}

