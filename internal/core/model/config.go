package model

// Mode identifies a workout protocol.
type Mode string

const (
	ModeTabata Mode = "tabata"
	ModeBoxing Mode = "boxing"
	ModeCustom Mode = "custom"
)

// Modes lists the runnable workout modes in display order.
var Modes = []Mode{ModeTabata, ModeBoxing, ModeCustom}

// TabataConfig holds the Tabata form values. Durations are kept as entered
// and parsed when the plan is built.
type TabataConfig struct {
	Prep     string
	Work     string
	Rest     string
	Rounds   int
	Cycles   int
	Cooldown string

	// KeepFinalRest keeps the rest after the very last round.
	KeepFinalRest bool
}

// BoxingConfig holds the Boxing form values.
type BoxingConfig struct {
	Work   string
	Rest   string
	Rounds int

	KeepFinalRest bool
}

// CustomInterval is one work/rest line of a custom workout.
type CustomInterval struct {
	Work string
	Rest string

	// Line is the 1-based source line when parsed from text; zero means
	// the interval's position is used in error messages.
	Line int
}

// DefaultTabata returns the classic 20/10 x8 protocol with a short preparation.
func DefaultTabata() TabataConfig {
	return TabataConfig{
		Prep:     "10",
		Work:     "20",
		Rest:     "10",
		Rounds:   8,
		Cycles:   1,
		Cooldown: "0",
	}
}

// DefaultBoxing returns three 3-minute rounds with 1-minute rests.
func DefaultBoxing() BoxingConfig {
	return BoxingConfig{
		Work:   "3:00",
		Rest:   "1:00",
		Rounds: 3,
	}
}

// DefaultCustomText is the initial content of the custom editor.
const DefaultCustomText = "1:00, 0:30\n45, 15\n60, 0"
