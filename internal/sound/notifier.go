package sound

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"workouttimer/internal/core/plan"
	"workouttimer/internal/core/timekeeper"
)

// NotifierConfig contains runtime options for Notifier.
type NotifierConfig struct {
	// Synchronous plays cues on the caller's goroutine.
	Synchronous bool
	// Bell is tried once when a cue fails to play. Defaults to writing BEL to stderr.
	Bell func() error
}

// Notifier turns engine callbacks into cues. Playback errors and panics stay
// inside the Notifier; the engine never sees them.
type Notifier struct {
	player  Player
	logger  *slog.Logger
	options NotifierConfig
	wg      sync.WaitGroup
}

var _ timekeeper.Listener = (*Notifier)(nil)

// NewNotifier creates a Notifier for player.
func NewNotifier(player Player, logger *slog.Logger, options NotifierConfig) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	if options.Bell == nil {
		options.Bell = terminalBell
	}
	return &Notifier{player: player, logger: logger, options: options}
}

func (notifier *Notifier) OnPhaseChange(label string, kind plan.Kind, seconds int) {
	notifier.logger.Debug("phase change", "label", label, "kind", kind, "seconds", seconds)
	notifier.fire(CueFor(kind))
}

func (notifier *Notifier) OnFinish(summary timekeeper.Summary) {
	notifier.logger.Debug("session finished", "phases", summary.PhasesCompleted)
	notifier.fire(CueFinish)
}

// Wait blocks until every cue started so far has been handed to the player.
func (notifier *Notifier) Wait() {
	notifier.wg.Wait()
}

func (notifier *Notifier) fire(cue Cue) {
	if notifier.options.Synchronous {
		notifier.play(cue)
		return
	}
	notifier.wg.Add(1)
	go func() {
		defer notifier.wg.Done()
		notifier.play(cue)
	}()
}

func (notifier *Notifier) play(cue Cue) {
	err := notifier.safePlay(cue)
	if err == nil {
		return
	}
	notifier.logger.Warn("cue playback failed", "cue", cue, "error", err)
	if bellErr := notifier.options.Bell(); bellErr != nil {
		notifier.logger.Error("fallback bell failed", "cue", cue, "error", bellErr)
	}
}

func (notifier *Notifier) safePlay(cue Cue) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("player panic: %v", recovered)
		}
	}()
	if notifier.player == nil {
		return ErrAudioUnavailable
	}
	return notifier.player.Play(cue)
}

func terminalBell() error {
	_, err := os.Stderr.Write([]byte("\a"))
	return err
}
