package forms

import (
	"workouttimer/internal/core/model"
	"workouttimer/internal/core/plan"
	"workouttimer/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// CustomForm edits a free-form list of intervals, one per line.
type CustomForm struct {
	root    fyne.CanvasObject
	editor  *widget.Entry
	summary *widget.Label
}

// NewCustomForm creates the editor with text.
func NewCustomForm(text string) *CustomForm {
	form := &CustomForm{summary: newSummaryLabel()}

	form.editor = widget.NewMultiLineEntry()
	form.editor.SetPlaceHolder("1:00, 0:30")
	form.editor.SetMinRowsVisible(8)
	form.editor.SetText(text)
	form.editor.OnChanged = func(string) { form.refresh() }

	hint := widget.NewLabel(i18n.T("One interval per line: work, rest"))
	form.root = container.NewBorder(hint, form.summary, nil, nil, form.editor)
	form.refresh()
	return form
}

func (form *CustomForm) Mode() model.Mode          { return model.ModeCustom }
func (form *CustomForm) Object() fyne.CanvasObject { return form.root }

// Text returns the editor content.
func (form *CustomForm) Text() string {
	return form.editor.Text
}

// SetText replaces the editor content.
func (form *CustomForm) SetText(text string) {
	form.editor.SetText(text)
	form.refresh()
}

func (form *CustomForm) Build() (plan.Plan, error) {
	return plan.FromCustomText(form.editor.Text)
}

func (form *CustomForm) Summary() string {
	return summaryText(form.Build())
}

func (form *CustomForm) SetEnabled(enabled bool) {
	setEnabled(enabled, form.editor)
}

func (form *CustomForm) refresh() {
	form.summary.SetText(form.Summary())
}
