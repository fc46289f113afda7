package forms

import (
	"strconv"

	"workouttimer/internal/core/model"
	"workouttimer/internal/core/plan"
	"workouttimer/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// BoxingForm edits a model.BoxingConfig.
type BoxingForm struct {
	root      fyne.CanvasObject
	work      *widget.Entry
	rest      *widget.Entry
	rounds    *widget.Entry
	keepFinal *widget.Check
	summary   *widget.Label
}

// NewBoxingForm creates the form filled with config.
func NewBoxingForm(config model.BoxingConfig) *BoxingForm {
	form := &BoxingForm{summary: newSummaryLabel()}
	changed := func(string) { form.refresh() }

	form.work = newDurationEntry(config.Work, changed)
	form.rest = newDurationEntry(config.Rest, changed)
	form.rounds = newCountEntry(config.Rounds, changed)
	form.keepFinal = widget.NewCheck(i18n.T("Keep final rest"), func(bool) { form.refresh() })
	form.keepFinal.SetChecked(config.KeepFinalRest)

	fields := widget.NewForm(
		widget.NewFormItem(i18n.T("Work"), form.work),
		widget.NewFormItem(i18n.T("Rest"), form.rest),
		widget.NewFormItem(i18n.T("Rounds"), form.rounds),
	)
	form.root = container.NewVBox(fields, form.keepFinal, form.summary)
	form.refresh()
	return form
}

func (form *BoxingForm) Mode() model.Mode          { return model.ModeBoxing }
func (form *BoxingForm) Object() fyne.CanvasObject { return form.root }

// Config returns the values as entered.
func (form *BoxingForm) Config() model.BoxingConfig {
	return model.BoxingConfig{
		Work:          form.work.Text,
		Rest:          form.rest.Text,
		Rounds:        parseCount(form.rounds.Text),
		KeepFinalRest: form.keepFinal.Checked,
	}
}

// SetConfig replaces the entered values.
func (form *BoxingForm) SetConfig(config model.BoxingConfig) {
	form.work.SetText(config.Work)
	form.rest.SetText(config.Rest)
	form.rounds.SetText(strconv.Itoa(config.Rounds))
	form.keepFinal.SetChecked(config.KeepFinalRest)
	form.refresh()
}

func (form *BoxingForm) Build() (plan.Plan, error) {
	return plan.BuildBoxing(form.Config())
}

func (form *BoxingForm) Summary() string {
	return summaryText(form.Build())
}

func (form *BoxingForm) SetEnabled(enabled bool) {
	setEnabled(enabled, form.work, form.rest, form.rounds, form.keepFinal)
}

func (form *BoxingForm) refresh() {
	if form.summary == nil || form.keepFinal == nil {
		return
	}
	form.summary.SetText(form.Summary())
}
