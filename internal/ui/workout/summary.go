package workout

import (
	"context"
	"errors"
	"strconv"
	"time"

	"workouttimer/internal/core/duration"
	"workouttimer/internal/core/model"
	"workouttimer/internal/core/timekeeper"
	"workouttimer/internal/i18n"
	"workouttimer/internal/storage"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var errHistoryUnavailable = errors.New("history is not available")

const saveTimeout = 5 * time.Second

// summaryRows lists the label/value pairs of the summary dialog.
func summaryRows(summary timekeeper.Summary) [][2]string {
	return [][2]string{
		{i18n.T("Total work"), duration.Format(summary.Totals.Work)},
		{i18n.T("Total recovery"), duration.Format(summary.Totals.Recovery())},
		{i18n.T("Rounds completed"), strconv.Itoa(summary.Rounds)},
		{i18n.T("Session length"), duration.Format(summary.Totals.Session())},
	}
}

func (w *Window) showSummary(summary timekeeper.Summary, finishedAt time.Time) {
	grid := container.New(layout.NewFormLayout())
	for _, row := range summaryRows(summary) {
		grid.Add(widget.NewLabelWithStyle(row[0], fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		grid.Add(widget.NewLabelWithStyle(row[1], fyne.TextAlignTrailing, fyne.TextStyle{}))
	}

	if w.history == nil {
		dialog.ShowCustom(i18n.T("Session summary"), i18n.T("Close"), grid, w.window)
		return
	}
	mode, startedAt := w.mode, w.startedAt
	dialog.ShowCustomConfirm(i18n.T("Session summary"), i18n.T("Save Session"), i18n.T("Close"), grid, func(save bool) {
		if !save {
			return
		}
		if _, err := w.saveSession(mode, startedAt, finishedAt, summary); err != nil {
			dialog.ShowError(errors.New(i18n.T("Could not save session")), w.window)
			return
		}
		dialog.ShowInformation(i18n.T("Session summary"), i18n.T("Session saved"), w.window)
	}, w.window)
}

// saveSession writes the finished session to the history store.
func (w *Window) saveSession(mode model.Mode, startedAt, finishedAt time.Time, summary timekeeper.Summary) (*model.SessionRecord, error) {
	if w.history == nil {
		return nil, errHistoryUnavailable
	}
	record := storage.RecordFromSummary(mode, startedAt, finishedAt, summary)

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := w.history.Create(ctx, record); err != nil {
		w.logger.Error("save session", "mode", mode, "error", err)
		return nil, err
	}
	w.logger.Info("session saved", "id", record.ID, "mode", mode)
	w.reloadHistory()
	return record, nil
}
