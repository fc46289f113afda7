package timekeeper

import (
	"sync"
	"time"

	"workouttimer/internal/core/plan"
)

// Config contains runtime options for Runner.
type Config struct {
	// TickInterval is how often the wall clock is sampled. Whole seconds are
	// forwarded to the TimeKeeper; the remainder carries to the next tick.
	TickInterval time.Duration
}

// Runner drives a TimeKeeper from a wall-clock ticker and fans its updates
// out to subscribers. All TimeKeeper calls happen under one mutex.
type Runner struct {
	mu        sync.Mutex
	keeper    *TimeKeeper
	options   Config
	listeners Listeners
	events    []chan Event
	stopCh    chan struct{}
	looping   bool
	closed    bool
	carry     time.Duration
	lastTick  time.Time
	now       func() time.Time
}

// NewRunner creates a Runner. Extra listeners (for example a sound notifier)
// are called for every phase change and finish, while the Runner lock is held,
// so they must not call back into the Runner.
func NewRunner(options Config, listeners ...Listener) *Runner {
	if options.TickInterval <= 0 {
		options.TickInterval = 200 * time.Millisecond
	}
	runner := &Runner{
		options:   options,
		listeners: listeners,
		stopCh:    make(chan struct{}),
		now:       time.Now,
	}
	runner.keeper = New(runnerListener{runner})
	return runner
}

// Subscribe registers a new observer channel. Events are dropped for
// observers whose buffer is full.
func (runner *Runner) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	runner.mu.Lock()
	if runner.closed {
		close(ch)
	} else {
		runner.events = append(runner.events, ch)
	}
	runner.mu.Unlock()
	return ch
}

// Start begins a new session, replacing any session in progress, and
// launches the ticking loop if it is not running yet.
func (runner *Runner) Start(p plan.Plan) error {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if err := runner.keeper.Start(p); err != nil {
		return err
	}
	runner.carry = 0
	runner.lastTick = runner.now()
	runner.emitStatusLocked()

	if !runner.looping && !runner.closed {
		runner.looping = true
		go runner.run()
	}
	return nil
}

// Pause freezes the countdown.
func (runner *Runner) Pause() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.keeper.Status() != StatusRunning {
		return
	}
	runner.keeper.Pause()
	runner.emitStatusLocked()
}

// Resume continues a paused countdown.
func (runner *Runner) Resume() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.keeper.Status() != StatusPaused {
		return
	}
	runner.keeper.Resume()
	runner.lastTick = runner.now()
	runner.emitStatusLocked()
}

// Stop discards the session and returns to Idle. The ticking loop keeps
// running so a new Start takes effect immediately.
func (runner *Runner) Stop() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	runner.keeper.Stop()
	runner.carry = 0
	runner.emitStatusLocked()
}

// Snapshot returns the current engine state.
func (runner *Runner) Snapshot() Snapshot {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	return runner.keeper.Snapshot()
}

// Close terminates the ticking loop and closes observers.
func (runner *Runner) Close() {
	runner.mu.Lock()
	if runner.closed {
		runner.mu.Unlock()
		return
	}
	runner.closed = true
	close(runner.stopCh)
	events := runner.events
	runner.events = nil
	runner.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// runnerListener receives the wrapped TimeKeeper's callbacks. They only
// happen inside Runner methods, so mu is always held.
type runnerListener struct {
	runner *Runner
}

func (listener runnerListener) OnPhaseChange(label string, kind plan.Kind, seconds int) {
	runner := listener.runner
	runner.listeners.OnPhaseChange(label, kind, seconds)
	runner.emitLocked(Event{
		Type:     EventPhaseChange,
		Snapshot: runner.keeper.Snapshot(),
		At:       runner.now(),
	})
}

func (listener runnerListener) OnFinish(summary Summary) {
	runner := listener.runner
	runner.listeners.OnFinish(summary)
	runner.emitLocked(Event{
		Type:     EventFinish,
		Snapshot: runner.keeper.Snapshot(),
		Summary:  summary,
		At:       runner.now(),
	})
}

func (runner *Runner) run() {
	ticker := time.NewTicker(runner.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-runner.stopCh:
			return
		case tickTime := <-ticker.C:
			runner.tick(tickTime)
		}
	}
}

func (runner *Runner) tick(tickTime time.Time) {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.closed || runner.keeper.Status() != StatusRunning {
		return
	}

	delta := tickTime.Sub(runner.lastTick) + runner.carry
	runner.lastTick = tickTime
	if delta < 0 {
		delta = 0
	}
	seconds := int(delta / time.Second)
	runner.carry = delta - time.Duration(seconds)*time.Second

	if seconds > 0 {
		runner.keeper.Tick(seconds)
	}
	if runner.keeper.Status() == StatusRunning {
		runner.emitLocked(Event{
			Type:     EventProgress,
			Snapshot: runner.keeper.Snapshot(),
			At:       tickTime,
		})
	}
}

func (runner *Runner) emitStatusLocked() {
	runner.emitLocked(Event{
		Type:     EventStatus,
		Snapshot: runner.keeper.Snapshot(),
		At:       runner.now(),
	})
}

func (runner *Runner) emitLocked(event Event) {
	for _, ch := range runner.events {
		select {
		case ch <- event:
		default:
		}
	}
}
