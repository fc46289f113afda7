package workout

import (
	"context"
	"fmt"

	"workouttimer/internal/core/duration"
	"workouttimer/internal/core/model"
	"workouttimer/internal/i18n"
	"workouttimer/internal/report"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

func (w *Window) historyTab() fyne.CanvasObject {
	w.historyStatus = widget.NewLabel("")
	w.historyList = widget.NewList(
		func() int { return len(w.records) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < 0 || id >= len(w.records) {
				return
			}
			item.(*widget.Label).SetText(historyLine(w.records[id]))
		},
	)

	refresh := widget.NewButton(i18n.T("Refresh"), w.reloadHistory)
	export := widget.NewButton(i18n.T("Export PDF"), w.exportHistory)
	if w.history == nil {
		refresh.Disable()
		export.Disable()
		w.historyStatus.SetText(i18n.T("History is not available"))
	}

	top := container.NewHBox(refresh, export, w.historyStatus)
	return container.NewBorder(top, nil, nil, nil, w.historyList)
}

func (w *Window) reloadHistory() {
	if w.history == nil {
		return
	}
	records, err := w.history.List(context.Background(), historyLimit)
	if err != nil {
		w.logger.Error("load history", "error", err)
		w.historyStatus.SetText(i18n.T("History is not available"))
		return
	}
	w.records = records
	if len(records) == 0 {
		w.historyStatus.SetText(i18n.T("No sessions recorded yet."))
	} else {
		w.historyStatus.SetText("")
	}
	w.historyList.Refresh()
}

func (w *Window) exportHistory() {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		if err := report.WriteHistory(writer, w.records, w.now()); err != nil {
			w.logger.Error("export history", "path", writer.URI().Path(), "error", err)
			dialog.ShowError(err, w.window)
			return
		}
		w.historyStatus.SetText(i18n.T("Report exported"))
	}, w.window)
	save.SetFileName("workout-history.pdf")
	save.Show()
}

func historyLine(record *model.SessionRecord) string {
	return fmt.Sprintf("%s  %s  %s %d  %s %s  %s %s",
		record.FinishedAt.Local().Format("2006-01-02 15:04"),
		modeName(record.Mode),
		i18n.T("Rounds"), record.RoundsCompleted,
		i18n.T("Work"), duration.Format(record.WorkSeconds),
		i18n.T("Session length"), duration.Format(record.TotalSeconds),
	)
}
