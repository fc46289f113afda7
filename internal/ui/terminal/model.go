// Package terminal runs a workout plan as a bubbletea program.
package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"workouttimer/internal/core/duration"
	"workouttimer/internal/core/plan"
	"workouttimer/internal/core/timekeeper"
	"workouttimer/internal/i18n"
)

const (
	defaultTickInterval = 200 * time.Millisecond
	maxBarWidth         = 60
)

// TickMsg advances the model to the given wall-clock time.
type TickMsg time.Time

type keyMap struct {
	Pause key.Binding
	Stop  key.Binding
	Quit  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Pause: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause/resume")),
		Stop:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Options configures a Model.
type Options struct {
	// Listener also receives the engine callbacks, typically a sound notifier.
	Listener     timekeeper.Listener
	TickInterval time.Duration
	Now          func() time.Time
}

// Outcome reports how a session ended.
type Outcome struct {
	Finished   bool
	Summary    timekeeper.Summary
	StartedAt  time.Time
	FinishedAt time.Time
}

// session receives engine callbacks for the model. It is shared by every copy
// of the Model value bubbletea passes around.
type session struct {
	extra   timekeeper.Listener
	outcome Outcome
}

func (s *session) OnPhaseChange(label string, kind plan.Kind, seconds int) {
	if s.extra != nil {
		s.extra.OnPhaseChange(label, kind, seconds)
	}
}

func (s *session) OnFinish(summary timekeeper.Summary) {
	s.outcome.Finished = true
	s.outcome.Summary = summary
	if s.extra != nil {
		s.extra.OnFinish(summary)
	}
}

// Model drives a TimeKeeper from bubbletea ticks. The engine is only touched
// from Update, so it never sees concurrent calls.
type Model struct {
	plan     plan.Plan
	keeper   *timekeeper.TimeKeeper
	session  *session
	progress progress.Model
	keys     keyMap
	interval time.Duration
	now      func() time.Time
	last     time.Time
	carry    time.Duration
	quitting bool
}

// New starts p and returns the model that renders it.
func New(p plan.Plan, options Options) (Model, error) {
	if options.TickInterval <= 0 {
		options.TickInterval = defaultTickInterval
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	s := &session{extra: options.Listener}
	keeper := timekeeper.New(s)
	if err := keeper.Start(p); err != nil {
		return Model{}, err
	}
	started := options.Now()
	s.outcome.StartedAt = started

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return Model{
		plan:     p,
		keeper:   keeper,
		session:  s,
		progress: bar,
		keys:     defaultKeys(),
		interval: options.TickInterval,
		now:      options.Now,
		last:     started,
	}, nil
}

// Outcome returns the result so far.
func (m Model) Outcome() Outcome {
	return m.session.outcome
}

// Snapshot returns the engine state.
func (m Model) Snapshot() timekeeper.Snapshot {
	return m.keeper.Snapshot()
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m.advance(time.Time(msg))
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Pause):
			m.togglePause()
			return m, nil
		case key.Matches(msg, m.keys.Stop), key.Matches(msg, m.keys.Quit):
			m.keeper.Stop()
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-8, 10), maxBarWidth)
		return m, nil
	case progress.FrameMsg:
		updated, cmd := m.progress.Update(msg)
		m.progress = updated.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m Model) advance(at time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if m.keeper.Status() != timekeeper.StatusRunning {
		m.last = at
		m.carry = 0
		return m, m.tick()
	}

	delta := at.Sub(m.last) + m.carry
	m.last = at
	if delta < 0 {
		delta = 0
	}
	seconds := int(delta / time.Second)
	m.carry = delta - time.Duration(seconds)*time.Second
	m.keeper.Tick(seconds)

	if m.keeper.Status() == timekeeper.StatusFinished {
		m.session.outcome.FinishedAt = at
		m.quitting = true
		return m, tea.Quit
	}
	return m, m.tick()
}

func (m *Model) togglePause() {
	switch m.keeper.Status() {
	case timekeeper.StatusRunning:
		m.keeper.Pause()
	case timekeeper.StatusPaused:
		m.keeper.Resume()
		m.last = m.now()
		m.carry = 0
	}
}

func (m Model) View() string {
	snapshot := m.keeper.Snapshot()
	if m.session.outcome.Finished {
		return m.summaryView()
	}
	if snapshot.Status == timekeeper.StatusIdle {
		return ""
	}

	phaseStyle := KindStyle(snapshot.Phase.Kind)
	var b strings.Builder
	b.WriteString(StyleTitle.Render(strings.ToUpper(string(m.plan.Mode))))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d", snapshot.Index+1, snapshot.PhaseCount)))
	b.WriteString("\n\n")
	b.WriteString(phaseStyle.Render(snapshot.Phase.Label))
	if snapshot.Status == timekeeper.StatusPaused {
		b.WriteString(StyleDim.Render("  (" + i18n.T("Paused") + ")"))
	}
	b.WriteString("\n")
	b.WriteString(StyleClock.Foreground(KindColor(snapshot.Phase.Kind)).Render(duration.Format(snapshot.Remaining)))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(snapshot.Progress()))
	b.WriteString("\n")
	if next, ok := m.nextPhase(snapshot.Index); ok {
		b.WriteString(StyleDim.Render(fmt.Sprintf("next: %s %s", next.Label, duration.Format(next.Seconds))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(helpLine(m.keys)))
	return StyleBox.BorderForeground(KindColor(snapshot.Phase.Kind)).Render(b.String()) + "\n"
}

func (m Model) summaryView() string {
	summary := m.session.outcome.Summary
	rows := [][2]string{
		{i18n.T("Total work"), duration.Format(summary.Totals.Work)},
		{i18n.T("Total recovery"), duration.Format(summary.Totals.Recovery())},
		{i18n.T("Rounds"), fmt.Sprintf("%d", summary.Rounds)},
		{i18n.T("Session length"), duration.Format(summary.Totals.Session())},
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(ColorFinish).Bold(true).Render(i18n.T("Workout complete!")))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%-16s %s\n", row[0], StyleTitle.Render(row[1])))
	}
	return StyleBox.BorderForeground(ColorFinish).Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func (m Model) nextPhase(index int) (plan.Phase, bool) {
	for next := index + 1; next < m.plan.Len(); next++ {
		if m.plan.Phases[next].Seconds > 0 {
			return m.plan.Phases[next], true
		}
	}
	return plan.Phase{}, false
}

func helpLine(keys keyMap) string {
	bindings := []key.Binding{keys.Pause, keys.Stop, keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, " • ")
}
