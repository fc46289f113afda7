package timekeeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, listeners ...Listener) (*Runner, *time.Time) {
	t.Helper()
	runner := NewRunner(Config{TickInterval: time.Hour}, listeners...)
	clock := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	runner.now = func() time.Time { return clock }
	t.Cleanup(runner.Close)
	return runner, &clock
}

func drain(ch <-chan Event) []Event {
	var events []Event
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, event)
		default:
			return events
		}
	}
}

func TestNewRunner_DefaultTickInterval(t *testing.T) {
	runner := NewRunner(Config{})
	defer runner.Close()
	assert.Equal(t, 200*time.Millisecond, runner.options.TickInterval)
}

func TestRunner_CarriesSubSecondRemainders(t *testing.T) {
	runner, clock := newTestRunner(t)
	require.NoError(t, runner.Start(testPlan(10)))

	base := *clock
	for step := 1; step <= 4; step++ {
		runner.tick(base.Add(time.Duration(step) * 200 * time.Millisecond))
	}
	assert.Equal(t, 10, runner.Snapshot().Remaining)

	runner.tick(base.Add(time.Second))
	assert.Equal(t, 9, runner.Snapshot().Remaining)

	runner.tick(base.Add(2500 * time.Millisecond))
	assert.Equal(t, 8, runner.Snapshot().Remaining)
	runner.tick(base.Add(3 * time.Second))
	assert.Equal(t, 7, runner.Snapshot().Remaining)
}

func TestRunner_PauseDoesNotCountTime(t *testing.T) {
	runner, clock := newTestRunner(t)
	require.NoError(t, runner.Start(testPlan(10)))
	base := *clock

	runner.tick(base.Add(2 * time.Second))
	runner.Pause()
	runner.tick(base.Add(30 * time.Second))
	assert.Equal(t, 8, runner.Snapshot().Remaining)
	assert.Equal(t, StatusPaused, runner.Snapshot().Status)

	*clock = base.Add(60 * time.Second)
	runner.Resume()
	runner.tick(base.Add(61 * time.Second))
	assert.Equal(t, 7, runner.Snapshot().Remaining)
}

func TestRunner_PublishesEvents(t *testing.T) {
	var finished []Summary
	runner, clock := newTestRunner(t, ListenerFuncs{Finish: func(summary Summary) {
		finished = append(finished, summary)
	}})
	events := runner.Subscribe(32)
	require.NoError(t, runner.Start(testPlan(1, 1)))
	base := *clock

	runner.tick(base.Add(time.Second))
	runner.tick(base.Add(2 * time.Second))

	var types []EventType
	for _, event := range drain(events) {
		types = append(types, event.Type)
	}
	assert.Equal(t, []EventType{
		EventPhaseChange,
		EventStatus,
		EventPhaseChange,
		EventProgress,
		EventFinish,
	}, types)
	require.Len(t, finished, 1)
	assert.Equal(t, 2, finished[0].PhasesCompleted)
	assert.Equal(t, StatusFinished, runner.Snapshot().Status)
}

func TestRunner_FullSubscriberDropsEvents(t *testing.T) {
	runner, clock := newTestRunner(t)
	events := runner.Subscribe(1)
	require.NoError(t, runner.Start(testPlan(30)))
	base := *clock

	for step := 1; step <= 5; step++ {
		runner.tick(base.Add(time.Duration(step) * time.Second))
	}
	assert.Len(t, drain(events), 1)
	assert.Equal(t, 25, runner.Snapshot().Remaining)
}

func TestRunner_StopReturnsToIdle(t *testing.T) {
	runner, clock := newTestRunner(t)
	require.NoError(t, runner.Start(testPlan(30)))
	runner.tick(clock.Add(1500 * time.Millisecond))

	runner.Stop()
	snapshot := runner.Snapshot()
	assert.Equal(t, StatusIdle, snapshot.Status)
	assert.Equal(t, 0, snapshot.Remaining)
	assert.Zero(t, runner.carry)

	runner.tick(clock.Add(10 * time.Second))
	assert.Equal(t, StatusIdle, runner.Snapshot().Status)
}

func TestRunner_StartErrorLeavesIdle(t *testing.T) {
	runner, _ := newTestRunner(t)
	assert.ErrorIs(t, runner.Start(testPlan()), ErrEmptyPlan)
	assert.Equal(t, StatusIdle, runner.Snapshot().Status)
	assert.False(t, runner.looping)
}

func TestRunner_CloseClosesSubscribers(t *testing.T) {
	runner, _ := newTestRunner(t)
	events := runner.Subscribe(4)
	runner.Close()
	runner.Close()

	_, ok := <-events
	assert.False(t, ok)

	late := runner.Subscribe(4)
	_, ok = <-late
	assert.False(t, ok)
}

func TestRunner_KeeperCallbacksAreNotExported(t *testing.T) {
	runner, _ := newTestRunner(t)
	_, ok := any(runner).(Listener)
	assert.False(t, ok, "engine callbacks must only run under the runner lock")
}
