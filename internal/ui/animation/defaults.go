package animation

import "time"

// DefaultConfig returns the phase-change flash timing.
func DefaultConfig() Config {
	return Config{
		Blinks:        2,
		BlinkOn:       140 * time.Millisecond,
		BlinkOff:      110 * time.Millisecond,
		FadeSteps:     6,
		FadeStep:      40 * time.Millisecond,
		CelebrateStep: 450 * time.Millisecond,

		CelebrateRounds: 3,
	}
}
