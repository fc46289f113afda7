// Package timekeeper walks a workout plan on a periodic tick.
//
// TimeKeeper is the pure state machine: it owns the current phase index,
// the remaining seconds and the run status, and reports phase boundaries to
// a Listener. It performs no I/O and starts no goroutines; callers must not
// invoke it concurrently. Runner wraps a TimeKeeper with a wall-clock ticker
// and a mutex for callers that do have several goroutines.
package timekeeper

import (
	"errors"

	"workouttimer/internal/core/plan"
)

var (
	// ErrEmptyPlan is returned when Start receives a plan with no phases.
	ErrEmptyPlan = errors.New("plan has no phases")
	// ErrNoActivePhase is returned when every phase in the plan lasts zero seconds.
	ErrNoActivePhase = errors.New("plan has no phase with a positive duration")
)

// TimeKeeper is the countdown state machine:
//
//	Idle -> Running <-> Paused
//	Running -> Finished
//	any -> Idle (Stop/Reset)
type TimeKeeper struct {
	listener  Listener
	plan      plan.Plan
	index     int
	remaining int
	status    Status
	completed int
}

// New creates an idle TimeKeeper. listener may be nil.
func New(listener Listener) *TimeKeeper {
	return &TimeKeeper{
		listener: listener,
		status:   StatusIdle,
	}
}

// Start begins walking p from its first phase with a positive duration.
// Zero-length phases are never made active. On error the previous state is
// kept untouched.
func (keeper *TimeKeeper) Start(p plan.Plan) error {
	if p.Len() == 0 {
		return ErrEmptyPlan
	}
	first := nextActive(p, 0)
	if first < 0 {
		return ErrNoActivePhase
	}

	keeper.plan = p
	keeper.completed = 0
	keeper.enterPhase(first)
	keeper.status = StatusRunning
	keeper.notifyPhase()
	return nil
}

// Tick advances time by elapsed whole seconds. It does nothing unless the
// engine is running. Time left over after a phase reaches zero is dropped:
// a phase boundary never consumes more than one tick.
func (keeper *TimeKeeper) Tick(elapsed int) {
	if keeper.status != StatusRunning || elapsed <= 0 {
		return
	}

	keeper.remaining -= elapsed
	if keeper.remaining > 0 {
		return
	}
	keeper.remaining = 0
	keeper.completed++

	next := nextActive(keeper.plan, keeper.index+1)
	if next < 0 {
		keeper.status = StatusFinished
		if keeper.listener != nil {
			keeper.listener.OnFinish(keeper.summary())
		}
		return
	}

	keeper.enterPhase(next)
	keeper.notifyPhase()
}

// Pause freezes a running countdown. Other states are left as they are.
func (keeper *TimeKeeper) Pause() {
	if keeper.status == StatusRunning {
		keeper.status = StatusPaused
	}
}

// Resume continues a paused countdown. Other states are left as they are.
func (keeper *TimeKeeper) Resume() {
	if keeper.status == StatusPaused {
		keeper.status = StatusRunning
	}
}

// Stop discards the current session and returns to Idle.
func (keeper *TimeKeeper) Stop() {
	keeper.plan = plan.Plan{}
	keeper.index = 0
	keeper.remaining = 0
	keeper.completed = 0
	keeper.status = StatusIdle
}

// Reset is Stop.
func (keeper *TimeKeeper) Reset() {
	keeper.Stop()
}

// Status returns the current run status.
func (keeper *TimeKeeper) Status() Status {
	return keeper.status
}

// Remaining returns the seconds left in the current phase.
func (keeper *TimeKeeper) Remaining() int {
	return keeper.remaining
}

// Index returns the position of the current phase in the plan.
func (keeper *TimeKeeper) Index() int {
	return keeper.index
}

// Current returns the active phase, if a session is loaded.
func (keeper *TimeKeeper) Current() (plan.Phase, bool) {
	if keeper.status == StatusIdle || keeper.index >= keeper.plan.Len() {
		return plan.Phase{}, false
	}
	return keeper.plan.Phases[keeper.index], true
}

// Snapshot returns the renderable state.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	phase, _ := keeper.Current()
	return Snapshot{
		Status:     keeper.status,
		Index:      keeper.index,
		PhaseCount: keeper.plan.Len(),
		Phase:      phase,
		Remaining:  keeper.remaining,
	}
}

func (keeper *TimeKeeper) enterPhase(index int) {
	keeper.index = index
	keeper.remaining = keeper.plan.Phases[index].Seconds
}

func (keeper *TimeKeeper) notifyPhase() {
	if keeper.listener == nil {
		return
	}
	phase := keeper.plan.Phases[keeper.index]
	keeper.listener.OnPhaseChange(phase.Label, phase.Kind, phase.Seconds)
}

func (keeper *TimeKeeper) summary() Summary {
	totals := keeper.plan.Totals()
	return Summary{
		TotalWorkSeconds: totals.Work,
		TotalRestSeconds: totals.Rest,
		PhasesCompleted:  keeper.completed,
		Rounds:           keeper.plan.Rounds,
		Totals:           totals,
	}
}

// nextActive returns the index of the first phase at or after from with a
// positive duration, or -1.
func nextActive(p plan.Plan, from int) int {
	for index := from; index < p.Len(); index++ {
		if p.Phases[index].Seconds > 0 {
			return index
		}
	}
	return -1
}
