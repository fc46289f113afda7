// Package display renders the running timer: a large clock, the phase label
// and a background in the phase colour that flashes on every phase change.
package display

import (
	"context"
	"fmt"
	"image/color"

	"workouttimer/internal/core/duration"
	"workouttimer/internal/core/model"
	"workouttimer/internal/core/plan"
	"workouttimer/internal/core/timekeeper"
	"workouttimer/internal/i18n"
	"workouttimer/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	titleSize = float32(20)
	phaseSize = float32(28)
	timerSize = float32(96)
	nextSize  = float32(16)
)

// Display is the timer panel shared by the main window and the pop-out window.
type Display struct {
	root       *fyne.Container
	background *canvas.Rectangle
	titleText  *canvas.Text
	phaseText  *canvas.Text
	timerText  *canvas.Text
	nextText   *canvas.Text
	bar        *widget.ProgressBar
	engine     *animation.Engine
	scale      float32
	base       color.Color
}

// New creates a display. A zero animation config disables flashing.
func New(config animation.Config) *Display {
	background := canvas.NewRectangle(ColorIdle)

	titleText := canvas.NewText("", ColorText)
	titleText.Alignment = fyne.TextAlignCenter
	titleText.TextStyle = fyne.TextStyle{Bold: true}

	phaseText := canvas.NewText(i18n.T("Ready"), ColorText)
	phaseText.Alignment = fyne.TextAlignCenter
	phaseText.TextStyle = fyne.TextStyle{Bold: true}

	timerText := canvas.NewText("00:00", ColorText)
	timerText.Alignment = fyne.TextAlignCenter
	timerText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}

	nextText := canvas.NewText("", ColorText)
	nextText.Alignment = fyne.TextAlignCenter

	bar := widget.NewProgressBar()
	bar.TextFormatter = func() string { return "" }

	panel := container.New(&panelLayout{}, titleText, phaseText, timerText, bar, nextText)
	display := &Display{
		root:       container.NewStack(background, panel),
		background: background,
		titleText:  titleText,
		phaseText:  phaseText,
		timerText:  timerText,
		nextText:   nextText,
		bar:        bar,
		scale:      1,
		base:       ColorIdle,
	}
	display.engine = animation.New(config, display.paint)
	display.applyScale()
	return display
}

// Object returns the canvas object to embed in a window.
func (display *Display) Object() fyne.CanvasObject {
	return display.root
}

// Render draws snapshot. next is the label of the following phase, if any.
// Must be called on the UI goroutine.
func (display *Display) Render(mode model.Mode, snapshot timekeeper.Snapshot, next string) {
	display.titleText.Text = modeTitle(mode)
	switch snapshot.Status {
	case timekeeper.StatusIdle:
		display.ShowMessage(i18n.T("Ready"))
		return
	case timekeeper.StatusFinished:
		display.phaseText.Text = i18n.T("Workout complete!")
		display.timerText.Text = duration.Format(0)
		display.nextText.Text = ""
		display.bar.SetValue(1)
		display.refreshText()
		return
	}

	label := snapshot.Phase.Label
	if snapshot.Status == timekeeper.StatusPaused {
		label = fmt.Sprintf("%s (%s)", label, i18n.T("Paused"))
	}
	display.phaseText.Text = label
	display.timerText.Text = duration.Format(snapshot.Remaining)
	display.nextText.Text = ""
	if next != "" {
		display.nextText.Text = fmt.Sprintf("→ %s", next)
	}
	display.bar.SetValue(snapshot.Progress())
	display.refreshText()

	kindColor := KindColor(snapshot.Phase.Kind)
	if !sameColor(display.base, kindColor) {
		display.setBase(kindColor)
	}
}

// Flash blinks the background and settles on the colour for kind.
func (display *Display) Flash(kind plan.Kind) {
	base := KindColor(kind)
	display.base = base
	display.engine.Flash(context.Background(), base, ColorHighlight)
}

// Celebrate cycles the finish palette a few times and settles on the finish colour.
func (display *Display) Celebrate() {
	display.base = ColorFinish
	display.engine.Celebrate(context.Background(), celebratePalette())
}

// ShowMessage resets the panel to idle and shows text in the phase label.
// Validation errors are reported this way.
func (display *Display) ShowMessage(text string) {
	display.phaseText.Text = text
	display.timerText.Text = duration.Format(0)
	display.nextText.Text = ""
	display.bar.SetValue(0)
	display.refreshText()
	display.setBase(ColorIdle)
}

// SetScale multiplies every text size.
func (display *Display) SetScale(scale float32) {
	if scale <= 0 {
		scale = 1
	}
	display.scale = scale
	display.applyScale()
	display.refreshText()
}

// Label returns the text in the phase label.
func (display *Display) Label() string {
	return display.phaseText.Text
}

// Stop halts any running animation.
func (display *Display) Stop() {
	display.engine.Stop()
}

func (display *Display) setBase(base color.NRGBA) {
	display.engine.Stop()
	display.base = base
	display.background.FillColor = base
	display.background.Refresh()
}

func (display *Display) paint(fill color.Color) {
	fyne.Do(func() {
		display.background.FillColor = fill
		display.background.Refresh()
	})
}

func (display *Display) applyScale() {
	display.titleText.TextSize = titleSize * display.scale
	display.phaseText.TextSize = phaseSize * display.scale
	display.timerText.TextSize = timerSize * display.scale
	display.nextText.TextSize = nextSize * display.scale
}

func (display *Display) refreshText() {
	display.titleText.Refresh()
	display.phaseText.Refresh()
	display.timerText.Refresh()
	display.nextText.Refresh()
}

func modeTitle(mode model.Mode) string {
	switch mode {
	case model.ModeTabata:
		return i18n.T("Tabata")
	case model.ModeBoxing:
		return i18n.T("Boxing")
	case model.ModeCustom:
		return i18n.T("Custom")
	default:
		return ""
	}
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return color.NRGBAModel.Convert(a) == color.NRGBAModel.Convert(b)
}

// panelLayout stacks title and phase at the top, the clock in the middle and
// the progress bar with the next-phase hint at the bottom.
type panelLayout struct{}

func (layout *panelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 5 {
		return
	}
	title, phase, timer, bar, next := objects[0], objects[1], objects[2], objects[3], objects[4]

	pad := size.Height * 0.05
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(pad, pad))
	title.Resize(fyne.NewSize(availableWidth, titleSize.Height))

	phaseSize := phase.MinSize()
	phaseY := pad + titleSize.Height + 6
	phase.Move(fyne.NewPos(pad, phaseY))
	phase.Resize(fyne.NewSize(availableWidth, phaseSize.Height))

	nextSize := next.MinSize()
	nextY := size.Height - pad - nextSize.Height
	next.Move(fyne.NewPos(pad, nextY))
	next.Resize(fyne.NewSize(availableWidth, nextSize.Height))

	barSize := bar.MinSize()
	barY := nextY - 8 - barSize.Height
	bar.Move(fyne.NewPos(pad, barY))
	bar.Resize(fyne.NewSize(availableWidth, barSize.Height))

	timerSize := timer.MinSize()
	top := phaseY + phaseSize.Height
	timerY := top + (barY-top-timerSize.Height)/2
	if timerY < top {
		timerY = top
	}
	timer.Move(fyne.NewPos(pad, timerY))
	timer.Resize(fyne.NewSize(availableWidth, timerSize.Height))
}

func (layout *panelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 5 {
		return fyne.NewSize(0, 0)
	}
	width := float32(0)
	height := float32(0)
	for _, object := range objects {
		size := object.MinSize()
		if size.Width > width {
			width = size.Width
		}
		height += size.Height
	}
	return fyne.NewSize(width+20, height+40)
}
