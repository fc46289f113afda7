// Package sound plays the audio cues that mark phase boundaries.
package sound

import (
	"errors"

	"workouttimer/internal/core/plan"
)

var (
	// ErrAudioUnavailable is returned when the audio device could not be opened.
	ErrAudioUnavailable = errors.New("audio output unavailable")
	// ErrUnknownCue is returned for a cue the player has no sound for.
	ErrUnknownCue = errors.New("unknown sound cue")
)

// Cue names a sound event.
type Cue string

const (
	CuePrep     Cue = "prep"
	CueWork     Cue = "work"
	CueRest     Cue = "rest"
	CueCooldown Cue = "cooldown"
	CueFinish   Cue = "finish"
)

// Cues lists every cue in session order.
var Cues = []Cue{CuePrep, CueWork, CueRest, CueCooldown, CueFinish}

// CueFor maps a phase kind to the cue played when the phase starts.
func CueFor(kind plan.Kind) Cue {
	switch kind {
	case plan.KindPrep:
		return CuePrep
	case plan.KindRest:
		return CueRest
	case plan.KindCooldown:
		return CueCooldown
	default:
		return CueWork
	}
}

// Valid reports whether cue is one of Cues.
func (cue Cue) Valid() bool {
	for _, known := range Cues {
		if cue == known {
			return true
		}
	}
	return false
}
