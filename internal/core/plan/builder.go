package plan

import (
	"fmt"
	"strings"

	"workouttimer/internal/core/duration"
	"workouttimer/internal/core/model"
)

// BuildTabata expands a Tabata configuration: an optional preparation, then
// work/rest pairs for every round of every cycle, then an optional cooldown.
func BuildTabata(config model.TabataConfig) (Plan, error) {
	prep, err := parseField("prep", config.Prep)
	if err != nil {
		return Plan{}, err
	}
	work, err := parseField("work", config.Work)
	if err != nil {
		return Plan{}, err
	}
	rest, err := parseField("rest", config.Rest)
	if err != nil {
		return Plan{}, err
	}
	cooldown, err := parseField("cooldown", config.Cooldown)
	if err != nil {
		return Plan{}, err
	}
	if config.Rounds < 1 {
		return Plan{}, &ValidationError{Field: "rounds", Err: ErrRoundsTooLow}
	}
	if config.Rounds > MaxRounds {
		return Plan{}, &ValidationError{Field: "rounds", Err: ErrRoundsTooHigh}
	}
	if config.Cycles < 1 {
		return Plan{}, &ValidationError{Field: "cycles", Err: ErrRoundsTooLow}
	}
	if config.Cycles > MaxRounds || config.Rounds*config.Cycles > MaxRounds {
		return Plan{}, &ValidationError{Field: "cycles", Err: ErrRoundsTooHigh}
	}

	phases := make([]Phase, 0, 2+2*config.Rounds*config.Cycles)
	if prep > 0 {
		phases = append(phases, Phase{Label: "Get Ready", Kind: KindPrep, Seconds: prep})
	}
	for cycle := 1; cycle <= config.Cycles; cycle++ {
		for round := 1; round <= config.Rounds; round++ {
			prefix := ""
			if config.Cycles > 1 {
				prefix = fmt.Sprintf("Cycle %d/%d · ", cycle, config.Cycles)
			}
			phases = append(phases, Phase{
				Label:   fmt.Sprintf("%sRound %d/%d", prefix, round, config.Rounds),
				Kind:    KindWork,
				Seconds: work,
			})
			last := cycle == config.Cycles && round == config.Rounds
			if last && !config.KeepFinalRest {
				continue
			}
			phases = append(phases, Phase{
				Label:   fmt.Sprintf("%sRest %d/%d", prefix, round, config.Rounds),
				Kind:    KindRest,
				Seconds: rest,
			})
		}
	}
	if cooldown > 0 {
		phases = append(phases, Phase{Label: "Cooldown", Kind: KindCooldown, Seconds: cooldown})
	}

	return Plan{
		Mode:   model.ModeTabata,
		Rounds: config.Rounds * config.Cycles,
		Phases: phases,
	}, nil
}

// BuildBoxing expands a Boxing configuration into numbered rounds separated by rests.
func BuildBoxing(config model.BoxingConfig) (Plan, error) {
	work, err := parseField("work", config.Work)
	if err != nil {
		return Plan{}, err
	}
	rest, err := parseField("rest", config.Rest)
	if err != nil {
		return Plan{}, err
	}
	if config.Rounds < 1 {
		return Plan{}, &ValidationError{Field: "rounds", Err: ErrRoundsTooLow}
	}
	if config.Rounds > MaxRounds {
		return Plan{}, &ValidationError{Field: "rounds", Err: ErrRoundsTooHigh}
	}

	phases := make([]Phase, 0, 2*config.Rounds)
	for round := 1; round <= config.Rounds; round++ {
		phases = append(phases, Phase{Label: fmt.Sprintf("Round %d", round), Kind: KindWork, Seconds: work})
		if round == config.Rounds && !config.KeepFinalRest {
			break
		}
		phases = append(phases, Phase{Label: fmt.Sprintf("Rest %d", round), Kind: KindRest, Seconds: rest})
	}

	return Plan{
		Mode:   model.ModeBoxing,
		Rounds: config.Rounds,
		Phases: phases,
	}, nil
}

// BuildCustom emits a work phase and, when rest is positive, a rest phase for
// every interval in input order.
func BuildCustom(intervals []model.CustomInterval) (Plan, error) {
	if len(intervals) == 0 {
		return Plan{}, &ValidationError{Field: "intervals", Err: ErrNoIntervals}
	}

	phases := make([]Phase, 0, 2*len(intervals))
	for index, interval := range intervals {
		line := interval.Line
		if line == 0 {
			line = index + 1
		}
		work, err := duration.Parse(interval.Work)
		if err != nil {
			return Plan{}, &ValidationError{Field: "work", Line: line, Err: err}
		}
		if work <= 0 {
			return Plan{}, &ValidationError{Field: "work", Line: line, Err: ErrWorkNotPositive}
		}
		rest := 0
		if strings.TrimSpace(interval.Rest) != "" {
			rest, err = duration.Parse(interval.Rest)
			if err != nil {
				return Plan{}, &ValidationError{Field: "rest", Line: line, Err: err}
			}
		}

		phases = append(phases, Phase{Label: fmt.Sprintf("Interval %d", index+1), Kind: KindWork, Seconds: work})
		if rest > 0 {
			phases = append(phases, Phase{Label: fmt.Sprintf("Rest %d", index+1), Kind: KindRest, Seconds: rest})
		}
	}

	return Plan{
		Mode:   model.ModeCustom,
		Rounds: len(intervals),
		Phases: phases,
	}, nil
}

// ParseCustomText splits editor text into intervals. Each non-blank line is
// "work, rest", "work rest" or just "work". Line numbers in errors count
// blank lines so they match what the user sees.
func ParseCustomText(text string) ([]model.CustomInterval, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "intervals", Err: ErrNoIntervals}
	}

	var intervals []model.CustomInterval
	for index, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		var interval model.CustomInterval
		if work, rest, found := strings.Cut(line, ","); found {
			interval = model.CustomInterval{Work: strings.TrimSpace(work), Rest: strings.TrimSpace(rest), Line: index + 1}
		} else {
			fields := strings.Fields(line)
			switch len(fields) {
			case 1:
				interval = model.CustomInterval{Work: fields[0], Rest: "0", Line: index + 1}
			case 2:
				interval = model.CustomInterval{Work: fields[0], Rest: fields[1], Line: index + 1}
			default:
				return nil, &ValidationError{Field: "intervals", Line: index + 1, Err: ErrLineFormat}
			}
		}
		intervals = append(intervals, interval)
	}
	return intervals, nil
}

// FromCustomText parses editor text and builds the plan in one step.
func FromCustomText(text string) (Plan, error) {
	intervals, err := ParseCustomText(text)
	if err != nil {
		return Plan{}, err
	}
	return BuildCustom(intervals)
}

func parseField(field, value string) (int, error) {
	seconds, err := duration.Parse(value)
	if err != nil {
		return 0, &ValidationError{Field: field, Err: err}
	}
	return seconds, nil
}
