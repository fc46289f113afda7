// Package forms holds the Tabata, Boxing and Custom input forms. Each form
// rebuilds its plan on every edit and shows the resulting totals, or the
// validation error, underneath.
package forms

import (
	"fmt"
	"strconv"
	"strings"

	"workouttimer/internal/core/duration"
	"workouttimer/internal/core/model"
	"workouttimer/internal/core/plan"
	"workouttimer/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// Form is one workout mode tab.
type Form interface {
	Mode() model.Mode
	Object() fyne.CanvasObject
	Build() (plan.Plan, error)
	Summary() string
	SetEnabled(enabled bool)
}

// Forms returns the three mode forms in tab order.
func Forms(tabata model.TabataConfig, boxing model.BoxingConfig, custom string) []Form {
	return []Form{NewTabataForm(tabata), NewBoxingForm(boxing), NewCustomForm(custom)}
}

// summaryText renders the totals for p, or err.
func summaryText(p plan.Plan, err error) string {
	if err != nil {
		return err.Error()
	}
	totals := p.Totals()
	return fmt.Sprintf("%s %s · %s %s · %s %s",
		i18n.T("Total work"), duration.Format(totals.Work),
		i18n.T("Total recovery"), duration.Format(totals.Recovery()),
		i18n.T("Session length"), duration.Format(totals.Session()),
	)
}

func newDurationEntry(value string, onChanged func(string)) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(i18n.T("mm:ss or seconds"))
	entry.SetText(value)
	entry.OnChanged = onChanged
	return entry
}

func newCountEntry(value int, onChanged func(string)) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetText(strconv.Itoa(value))
	entry.OnChanged = onChanged
	return entry
}

// parseCount returns 0 for anything that is not an integer so the plan
// builder reports the field as out of range.
func parseCount(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return parsed
}

type enabler interface {
	Enable()
	Disable()
}

func setEnabled(enabled bool, widgets ...enabler) {
	for _, item := range widgets {
		if enabled {
			item.Enable()
		} else {
			item.Disable()
		}
	}
}

func newSummaryLabel() *widget.Label {
	label := widget.NewLabel("")
	label.Wrapping = fyne.TextWrapWord
	return label
}
