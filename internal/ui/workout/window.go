// Package workout is the main application window: the timer display, the
// mode forms, run controls, the session summary and the history tab.
package workout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"workouttimer/internal/core/duration"
	"workouttimer/internal/core/model"
	"workouttimer/internal/core/plan"
	"workouttimer/internal/core/timekeeper"
	"workouttimer/internal/i18n"
	"workouttimer/internal/ui/animation"
	"workouttimer/internal/ui/display"
	"workouttimer/internal/ui/forms"
	"workouttimer/internal/ui/preferences"
	"workouttimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// HistoryStore persists finished sessions.
type HistoryStore interface {
	Create(ctx context.Context, record *model.SessionRecord) error
	List(ctx context.Context, limit int) ([]*model.SessionRecord, error)
}

// Config wires the window to the rest of the application.
type Config struct {
	Settings  preferences.Settings
	Runner    *timekeeper.Runner
	History   HistoryStore
	Logger    *slog.Logger
	Animation animation.Config
	Now       func() time.Time

	// HideOnClose hides the window instead of quitting, for use with a tray.
	HideOnClose bool

	OnSettingsChanged func(preferences.Settings)
	OnStatus          func(status timekeeper.Status, detail string)
	OnPreferences     func()
}

// historyLimit caps the rows shown in the history tab.
const historyLimit = 50

// Window is the main window.
type Window struct {
	app       fyne.App
	window    fyne.Window
	config    Config
	logger    *slog.Logger
	runner    *timekeeper.Runner
	history   HistoryStore
	settings  preferences.Settings
	now       func() time.Time
	display   *display.Display
	popout    *display.Window
	forms     []forms.Form
	tabs      *container.AppTabs
	formTabs  int
	lockedTab int

	startButton  *widget.Button
	stopButton   *widget.Button
	popoutButton *widget.Button

	historyList   *widget.List
	historyStatus *widget.Label
	records       []*model.SessionRecord

	status    timekeeper.Status
	mode      model.Mode
	plan      plan.Plan
	startedAt time.Time
}

// New creates the main window. It does not listen to the runner until
// Listen is called.
func New(app fyne.App, config Config) *Window {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	w := &Window{
		app:      app,
		window:   app.NewWindow("Workout Timer"),
		config:   config,
		logger:   config.Logger,
		runner:   config.Runner,
		history:  config.History,
		settings: config.Settings.Clone(),
		now:      config.Now,
		status:   timekeeper.StatusIdle,
		display:  display.New(config.Animation),
		popout:   display.NewWindow(app, display.WindowConfig{Title: "Workout Timer"}, config.Animation),
		forms:    forms.Forms(config.Settings.Tabata, config.Settings.Boxing, config.Settings.CustomText),
	}
	w.formTabs = len(w.forms)
	w.popout.SetOnClose(w.updateControls)

	w.tabs = container.NewAppTabs()
	for _, form := range w.forms {
		w.tabs.Append(container.NewTabItem(modeName(form.Mode()), container.NewVScroll(form.Object())))
	}
	w.tabs.Append(container.NewTabItem(i18n.T("Topics"), w.topicsTab()))
	w.tabs.Append(container.NewTabItem(i18n.T("History"), w.historyTab()))
	w.tabs.SelectIndex(w.formIndex(config.Settings.LastMode))
	w.lockedTab = w.tabs.SelectedIndex()
	w.mode = w.forms[w.lockedTab].Mode()
	w.tabs.OnSelected = func(*container.TabItem) { w.handleTabSelected() }

	w.startButton = widget.NewButton(i18n.T("Start"), w.TogglePause)
	w.startButton.Importance = widget.HighImportance
	w.stopButton = widget.NewButton(i18n.T("Stop"), w.Stop)
	w.popoutButton = widget.NewButton(i18n.T("Pop out"), w.togglePopout)
	preferencesButton := widget.NewButton(i18n.T("Preferences"), func() {
		if w.config.OnPreferences != nil {
			w.config.OnPreferences()
		}
	})
	controls := container.NewHBox(w.startButton, w.stopButton, layout.NewSpacer(), w.popoutButton, preferencesButton)

	w.window.SetContent(container.NewBorder(w.display.Object(), controls, nil, nil, w.tabs))
	w.window.Resize(fyne.NewSize(720, 760))
	w.window.SetCloseIntercept(func() {
		if w.config.HideOnClose {
			w.window.Hide()
			return
		}
		w.app.Quit()
	})

	w.ApplySettings(config.Settings)
	w.updateControls()
	return w
}

// Window returns the underlying Fyne window.
func (w *Window) Window() fyne.Window {
	return w.window
}

// Show displays the window and brings it to the front.
func (w *Window) Show() {
	w.window.Show()
	w.window.RequestFocus()
}

// Listen renders runner events until events is closed.
func (w *Window) Listen(events <-chan timekeeper.Event) {
	go func() {
		for event := range events {
			fyne.Do(func() {
				w.handleEvent(event)
			})
		}
	}()
}

// Start builds a plan from the selected form and runs it. A paused session
// is resumed instead. Validation errors are shown on the display and leave
// the engine untouched.
func (w *Window) Start() {
	switch w.status {
	case timekeeper.StatusRunning:
		return
	case timekeeper.StatusPaused:
		w.runner.Resume()
		return
	}

	index := w.tabs.SelectedIndex()
	if index < 0 || index >= w.formTabs {
		return
	}
	form := w.forms[index]
	p, err := form.Build()
	if err != nil {
		w.display.ShowMessage(err.Error())
		return
	}
	w.rememberForms(form.Mode())

	if err := w.runner.Start(p); err != nil {
		w.logger.Debug("start rejected", "mode", form.Mode(), "error", err)
		w.display.ShowMessage(i18n.T("Nothing to run"))
		return
	}
	w.mode = form.Mode()
	w.plan = p
	w.startedAt = w.now()
	w.lockedTab = index
	// Render now so the first phase is visible before the first event arrives.
	w.status = timekeeper.StatusRunning
	w.render(w.runner.Snapshot())
	w.updateControls()
}

// TogglePause starts, pauses or resumes depending on the current state.
func (w *Window) TogglePause() {
	switch w.status {
	case timekeeper.StatusRunning:
		w.runner.Pause()
	case timekeeper.StatusPaused:
		w.runner.Resume()
	default:
		w.Start()
	}
}

// Stop abandons the session.
func (w *Window) Stop() {
	w.runner.Stop()
}

// ApplySettings switches theme, font scale and the form defaults shown for
// the next session.
func (w *Window) ApplySettings(settings preferences.Settings) {
	w.settings = settings.Clone()
	w.app.Settings().SetTheme(preferences.NewTheme(settings))
	scale := float32(settings.FontScale)
	w.display.SetScale(scale)
	w.popout.Display().SetScale(scale)
}

func (w *Window) handleEvent(event timekeeper.Event) {
	w.status = event.Snapshot.Status
	switch event.Type {
	case timekeeper.EventPhaseChange:
		w.render(event.Snapshot)
		w.display.Flash(event.Snapshot.Phase.Kind)
		w.popout.Display().Flash(event.Snapshot.Phase.Kind)
	case timekeeper.EventFinish:
		w.render(event.Snapshot)
		w.display.Celebrate()
		w.popout.Display().Celebrate()
		w.showSummary(event.Summary, event.At)
	default:
		w.render(event.Snapshot)
	}
	w.updateControls()
}

func (w *Window) render(snapshot timekeeper.Snapshot) {
	next := w.nextLabel(snapshot)
	w.display.Render(w.mode, snapshot, next)
	if w.popout.Visible() {
		w.popout.Display().Render(w.mode, snapshot, next)
	}
	if w.config.OnStatus != nil {
		w.config.OnStatus(snapshot.Status, statusDetail(snapshot))
	}
}

func (w *Window) nextLabel(snapshot timekeeper.Snapshot) string {
	if snapshot.Status != timekeeper.StatusRunning && snapshot.Status != timekeeper.StatusPaused {
		return ""
	}
	for index := snapshot.Index + 1; index < w.plan.Len(); index++ {
		if phase := w.plan.Phases[index]; phase.Seconds > 0 {
			return phase.Label
		}
	}
	return ""
}

func (w *Window) updateControls() {
	switch w.status {
	case timekeeper.StatusRunning:
		w.startButton.SetText(i18n.T("Pause"))
	case timekeeper.StatusPaused:
		w.startButton.SetText(i18n.T("Resume"))
	default:
		w.startButton.SetText(i18n.T("Start"))
	}

	if w.status == timekeeper.StatusIdle {
		w.stopButton.Disable()
	} else {
		w.stopButton.Enable()
	}

	active := w.sessionActive()
	for _, form := range w.forms {
		form.SetEnabled(!active)
	}
	if active {
		w.window.SetTitle(fmt.Sprintf("Workout Timer · %s", modeName(w.mode)))
	} else {
		w.window.SetTitle("Workout Timer")
	}
}

func (w *Window) sessionActive() bool {
	return w.status == timekeeper.StatusRunning || w.status == timekeeper.StatusPaused
}

// handleTabSelected enforces the mode lock: while a session runs, the
// selection snaps back to the running mode.
func (w *Window) handleTabSelected() {
	index := w.tabs.SelectedIndex()
	if w.sessionActive() {
		if index != w.lockedTab {
			w.tabs.SelectIndex(w.lockedTab)
		}
		return
	}
	w.lockedTab = index
	if index < w.formTabs {
		w.mode = w.forms[index].Mode()
		w.display.ShowMessage(i18n.T("Ready"))
		return
	}
	if index == w.formTabs+1 {
		w.reloadHistory()
	}
}

func (w *Window) togglePopout() {
	w.popout.Toggle()
	if w.popout.Visible() {
		w.popout.Display().Render(w.mode, w.runner.Snapshot(), w.nextLabel(w.runner.Snapshot()))
	}
}

// rememberForms stores the entered values so the next launch starts with them.
func (w *Window) rememberForms(mode model.Mode) {
	for _, form := range w.forms {
		switch typed := form.(type) {
		case *forms.TabataForm:
			w.settings.Tabata = typed.Config()
		case *forms.BoxingForm:
			w.settings.Boxing = typed.Config()
		case *forms.CustomForm:
			w.settings.CustomText = typed.Text()
		}
	}
	w.settings.LastMode = mode
	if w.config.OnSettingsChanged != nil {
		w.config.OnSettingsChanged(w.settings.Clone())
	}
}

func (w *Window) formIndex(mode model.Mode) int {
	for index, form := range w.forms {
		if form.Mode() == mode {
			return index
		}
	}
	return 0
}

func (w *Window) topicsTab() fyne.CanvasObject {
	topics := widget.NewRichTextFromMarkdown(resources.Topics(i18n.Lang()))
	topics.Wrapping = fyne.TextWrapWord
	return container.NewVScroll(topics)
}

func statusDetail(snapshot timekeeper.Snapshot) string {
	if snapshot.Status != timekeeper.StatusRunning && snapshot.Status != timekeeper.StatusPaused {
		return ""
	}
	return fmt.Sprintf("%s %s", snapshot.Phase.Label, duration.Format(snapshot.Remaining))
}

func modeName(mode model.Mode) string {
	switch mode {
	case model.ModeTabata:
		return i18n.T("Tabata")
	case model.ModeBoxing:
		return i18n.T("Boxing")
	default:
		return i18n.T("Custom")
	}
}
