package timekeeper

import (
	"time"

	"workouttimer/internal/core/plan"
)

// Status represents the current TimeKeeper mode.
type Status string

// Run statuses.
const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

// Summary describes a finished session.
type Summary struct {
	TotalWorkSeconds int
	TotalRestSeconds int
	PhasesCompleted  int
	Rounds           int
	Totals           plan.Totals
}

// Listener receives phase boundary notifications. Calls happen after the
// engine state has been updated.
type Listener interface {
	OnPhaseChange(label string, kind plan.Kind, seconds int)
	OnFinish(summary Summary)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	PhaseChange func(label string, kind plan.Kind, seconds int)
	Finish      func(summary Summary)
}

// OnPhaseChange calls PhaseChange if it is set.
func (funcs ListenerFuncs) OnPhaseChange(label string, kind plan.Kind, seconds int) {
	if funcs.PhaseChange != nil {
		funcs.PhaseChange(label, kind, seconds)
	}
}

// OnFinish calls Finish if it is set.
func (funcs ListenerFuncs) OnFinish(summary Summary) {
	if funcs.Finish != nil {
		funcs.Finish(summary)
	}
}

// Listeners fans a notification out to several listeners in order.
type Listeners []Listener

// OnPhaseChange forwards to every non-nil listener.
func (listeners Listeners) OnPhaseChange(label string, kind plan.Kind, seconds int) {
	for _, listener := range listeners {
		if listener != nil {
			listener.OnPhaseChange(label, kind, seconds)
		}
	}
}

// OnFinish forwards to every non-nil listener.
func (listeners Listeners) OnFinish(summary Summary) {
	for _, listener := range listeners {
		if listener != nil {
			listener.OnFinish(summary)
		}
	}
}

// Snapshot is a consistent view of the engine for renderers.
type Snapshot struct {
	Status     Status
	Index      int
	PhaseCount int
	Phase      plan.Phase
	Remaining  int
}

// Progress returns how much of the current phase has elapsed, in [0, 1].
func (snapshot Snapshot) Progress() float64 {
	if snapshot.Status == StatusFinished {
		return 1
	}
	total := snapshot.Phase.Seconds
	if total <= 0 {
		return 0
	}
	progress := float64(total-snapshot.Remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// EventType defines the type of Runner event.
type EventType string

// Runner event types.
const (
	EventPhaseChange EventType = "phase_change"
	EventProgress    EventType = "progress"
	EventStatus      EventType = "status"
	EventFinish      EventType = "finish"
)

// Event represents a Runner update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	Summary  Summary
	At       time.Time
}
