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

// TabataForm edits a model.TabataConfig.
type TabataForm struct {
	root      fyne.CanvasObject
	prep      *widget.Entry
	work      *widget.Entry
	rest      *widget.Entry
	rounds    *widget.Entry
	cycles    *widget.Entry
	cooldown  *widget.Entry
	keepFinal *widget.Check
	summary   *widget.Label
}

// NewTabataForm creates the form filled with config.
func NewTabataForm(config model.TabataConfig) *TabataForm {
	form := &TabataForm{summary: newSummaryLabel()}
	changed := func(string) { form.refresh() }

	form.prep = newDurationEntry(config.Prep, changed)
	form.work = newDurationEntry(config.Work, changed)
	form.rest = newDurationEntry(config.Rest, changed)
	form.rounds = newCountEntry(config.Rounds, changed)
	form.cycles = newCountEntry(config.Cycles, changed)
	form.cooldown = newDurationEntry(config.Cooldown, changed)
	form.keepFinal = widget.NewCheck(i18n.T("Keep final rest"), func(bool) { form.refresh() })
	form.keepFinal.SetChecked(config.KeepFinalRest)

	fields := widget.NewForm(
		widget.NewFormItem(i18n.T("Prep"), form.prep),
		widget.NewFormItem(i18n.T("Work"), form.work),
		widget.NewFormItem(i18n.T("Rest"), form.rest),
		widget.NewFormItem(i18n.T("Rounds"), form.rounds),
		widget.NewFormItem(i18n.T("Cycles"), form.cycles),
		widget.NewFormItem(i18n.T("Cooldown"), form.cooldown),
	)
	form.root = container.NewVBox(fields, form.keepFinal, form.summary)
	form.refresh()
	return form
}

func (form *TabataForm) Mode() model.Mode          { return model.ModeTabata }
func (form *TabataForm) Object() fyne.CanvasObject { return form.root }

// Config returns the values as entered.
func (form *TabataForm) Config() model.TabataConfig {
	return model.TabataConfig{
		Prep:          form.prep.Text,
		Work:          form.work.Text,
		Rest:          form.rest.Text,
		Rounds:        parseCount(form.rounds.Text),
		Cycles:        parseCount(form.cycles.Text),
		Cooldown:      form.cooldown.Text,
		KeepFinalRest: form.keepFinal.Checked,
	}
}

// SetConfig replaces the entered values.
func (form *TabataForm) SetConfig(config model.TabataConfig) {
	form.prep.SetText(config.Prep)
	form.work.SetText(config.Work)
	form.rest.SetText(config.Rest)
	form.rounds.SetText(strconv.Itoa(config.Rounds))
	form.cycles.SetText(strconv.Itoa(config.Cycles))
	form.cooldown.SetText(config.Cooldown)
	form.keepFinal.SetChecked(config.KeepFinalRest)
	form.refresh()
}

func (form *TabataForm) Build() (plan.Plan, error) {
	return plan.BuildTabata(form.Config())
}

func (form *TabataForm) Summary() string {
	return summaryText(form.Build())
}

func (form *TabataForm) SetEnabled(enabled bool) {
	setEnabled(enabled, form.prep, form.work, form.rest, form.rounds, form.cycles, form.cooldown, form.keepFinal)
}

func (form *TabataForm) refresh() {
	if form.summary == nil || form.keepFinal == nil {
		return
	}
	form.summary.SetText(form.Summary())
}
