// Package plan expands workout mode configurations into ordered, timed phases.
package plan

import (
	"errors"
	"fmt"

	"workouttimer/internal/core/model"
)

// Kind classifies a phase.
type Kind string

const (
	KindPrep     Kind = "prep"
	KindWork     Kind = "work"
	KindRest     Kind = "rest"
	KindCooldown Kind = "cooldown"
)

// Kinds lists every phase kind in session order.
var Kinds = []Kind{KindPrep, KindWork, KindRest, KindCooldown}

// Phase is one timed segment of a workout.
type Phase struct {
	Label   string
	Kind    Kind
	Seconds int
}

// Plan is the ordered list of phases for one session.
type Plan struct {
	Mode   model.Mode
	Rounds int
	Phases []Phase
}

// Len returns the number of phases.
func (p Plan) Len() int {
	return len(p.Phases)
}

// Totals sums phase durations per kind.
func (p Plan) Totals() Totals {
	var totals Totals
	for _, phase := range p.Phases {
		totals.add(phase)
	}
	return totals
}

// Totals holds aggregate seconds per phase kind.
type Totals struct {
	Prep     int
	Work     int
	Rest     int
	Cooldown int
}

// Recovery is everything that is not work.
func (totals Totals) Recovery() int {
	return totals.Prep + totals.Rest + totals.Cooldown
}

// Session is the full session length.
func (totals Totals) Session() int {
	return totals.Work + totals.Recovery()
}

func (totals *Totals) add(phase Phase) {
	switch phase.Kind {
	case KindPrep:
		totals.Prep += phase.Seconds
	case KindWork:
		totals.Work += phase.Seconds
	case KindRest:
		totals.Rest += phase.Seconds
	case KindCooldown:
		totals.Cooldown += phase.Seconds
	}
}

// ValidationError identifies the configuration field or custom line that
// could not be used to build a plan.
type ValidationError struct {
	Field string
	Line  int
	Err   error
}

// Error formats the line number for custom text and the field name otherwise.
func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap exposes the parser or range sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// MaxRounds bounds rounds, cycles and Tabata rounds times cycles.
const MaxRounds = 1000

var (
	// ErrNoIntervals is returned for custom text without a single interval.
	ErrNoIntervals = errors.New("provide at least one interval")
	// ErrRoundsTooLow is returned when rounds or cycles is below one.
	ErrRoundsTooLow = errors.New("must be at least 1")
	// ErrRoundsTooHigh is returned when a plan would exceed MaxRounds work rounds.
	ErrRoundsTooHigh = fmt.Errorf("must be at most %d rounds in total", MaxRounds)
	// ErrWorkNotPositive is returned for a custom interval with no work time.
	ErrWorkNotPositive = errors.New("work must be greater than zero")
	// ErrLineFormat is returned for a custom line with more than two values.
	ErrLineFormat = errors.New("expected 'work, rest' or 'work rest'")
)
