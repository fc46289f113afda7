package plan

import (
	"errors"
	"math"
	"testing"

	"workouttimer/internal/core/duration"
	"workouttimer/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindsAndSeconds(p Plan) []Phase {
	out := make([]Phase, 0, len(p.Phases))
	for _, phase := range p.Phases {
		out = append(out, Phase{Kind: phase.Kind, Seconds: phase.Seconds})
	}
	return out
}

func countKind(p Plan, kind Kind) int {
	count := 0
	for _, phase := range p.Phases {
		if phase.Kind == kind {
			count++
		}
	}
	return count
}

func TestBuildBoxing_ThreeRounds(t *testing.T) {
	p, err := BuildBoxing(model.BoxingConfig{Work: "180s", Rest: "60s", Rounds: 3})
	require.NoError(t, err)

	assert.Equal(t, []Phase{
		{Kind: KindWork, Seconds: 180},
		{Kind: KindRest, Seconds: 60},
		{Kind: KindWork, Seconds: 180},
		{Kind: KindRest, Seconds: 60},
		{Kind: KindWork, Seconds: 180},
	}, kindsAndSeconds(p))

	totals := p.Totals()
	assert.Equal(t, 540, totals.Work)
	assert.Equal(t, 120, totals.Rest)
	assert.Equal(t, 660, totals.Session())
	assert.Equal(t, model.ModeBoxing, p.Mode)
	assert.Equal(t, 3, p.Rounds)
	assert.Equal(t, "Round 1", p.Phases[0].Label)
	assert.Equal(t, "Rest 2", p.Phases[3].Label)
}

func TestBuildBoxing_KeepFinalRest(t *testing.T) {
	p, err := BuildBoxing(model.BoxingConfig{Work: "3:00", Rest: "1:00", Rounds: 2, KeepFinalRest: true})
	require.NoError(t, err)
	require.Len(t, p.Phases, 4)
	assert.Equal(t, KindRest, p.Phases[3].Kind)
}

func TestBuildTabata_WorkPhaseCount(t *testing.T) {
	for _, tc := range []struct{ rounds, cycles int }{{1, 1}, {8, 1}, {4, 3}, {2, 5}} {
		config := model.DefaultTabata()
		config.Rounds = tc.rounds
		config.Cycles = tc.cycles

		p, err := BuildTabata(config)
		require.NoError(t, err)
		assert.Equal(t, tc.rounds*tc.cycles, countKind(p, KindWork), "rounds=%d cycles=%d", tc.rounds, tc.cycles)
		assert.Equal(t, tc.rounds*tc.cycles-1, countKind(p, KindRest), "trailing rest is omitted")
		assert.Equal(t, tc.rounds*tc.cycles, p.Rounds)
	}
}

func TestBuildTabata_Structure(t *testing.T) {
	p, err := BuildTabata(model.TabataConfig{
		Prep: "10", Work: "20", Rest: "10", Rounds: 2, Cycles: 1, Cooldown: "1m",
	})
	require.NoError(t, err)

	assert.Equal(t, []Phase{
		{Kind: KindPrep, Seconds: 10},
		{Kind: KindWork, Seconds: 20},
		{Kind: KindRest, Seconds: 10},
		{Kind: KindWork, Seconds: 20},
		{Kind: KindCooldown, Seconds: 60},
	}, kindsAndSeconds(p))

	totals := p.Totals()
	assert.Equal(t, Totals{Prep: 10, Work: 40, Rest: 10, Cooldown: 60}, totals)
	assert.Equal(t, 80, totals.Recovery())
}

func TestBuildTabata_OmitsZeroPrepAndCooldown(t *testing.T) {
	p, err := BuildTabata(model.TabataConfig{Prep: "0", Work: "20", Rest: "10", Rounds: 1, Cycles: 1, Cooldown: "0"})
	require.NoError(t, err)
	assert.Equal(t, []Phase{{Kind: KindWork, Seconds: 20}}, kindsAndSeconds(p))
}

func TestBuildTabata_CycleLabels(t *testing.T) {
	p, err := BuildTabata(model.TabataConfig{Prep: "0", Work: "20", Rest: "10", Rounds: 2, Cycles: 2, Cooldown: "0"})
	require.NoError(t, err)
	assert.Equal(t, "Cycle 1/2 · Round 1/2", p.Phases[0].Label)
	assert.Equal(t, "Cycle 2/2 · Round 2/2", p.Phases[len(p.Phases)-1].Label)
}

func TestBuildTabata_ValidationNamesField(t *testing.T) {
	config := model.DefaultTabata()
	config.Rest = "ten"
	_, err := BuildTabata(config)
	require.Error(t, err)

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "rest", validation.Field)
	assert.ErrorIs(t, err, duration.ErrNotNumeric)

	config = model.DefaultTabata()
	config.Cycles = 0
	_, err = BuildTabata(config)
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "cycles", validation.Field)
	assert.ErrorIs(t, err, ErrRoundsTooLow)
}

func TestFromCustomText_Example(t *testing.T) {
	p, err := FromCustomText("1:00, 0:30\n45, 15")
	require.NoError(t, err)

	assert.Equal(t, []Phase{
		{Kind: KindWork, Seconds: 60},
		{Kind: KindRest, Seconds: 30},
		{Kind: KindWork, Seconds: 45},
		{Kind: KindRest, Seconds: 15},
	}, kindsAndSeconds(p))
	assert.Equal(t, 2, p.Rounds)
	assert.Equal(t, model.ModeCustom, p.Mode)
}

func TestFromCustomText_FormsAndZeroRest(t *testing.T) {
	p, err := FromCustomText("60 0\n\n  30s 10s \n2m")
	require.NoError(t, err)

	assert.Equal(t, []Phase{
		{Kind: KindWork, Seconds: 60},
		{Kind: KindWork, Seconds: 30},
		{Kind: KindRest, Seconds: 10},
		{Kind: KindWork, Seconds: 120},
	}, kindsAndSeconds(p))
	assert.Equal(t, "Interval 2", p.Phases[1].Label)
}

func TestFromCustomText_Errors(t *testing.T) {
	cases := []struct {
		text string
		line int
		err  error
	}{
		{"   \n ", 0, ErrNoIntervals},
		{"60, 10\n\nabc, 10", 3, duration.ErrNotNumeric},
		{"60, 10\n0, 10", 2, ErrWorkNotPositive},
		{"60 10 20", 1, ErrLineFormat},
		{"60, -5", 1, duration.ErrNegative},
	}
	for _, tc := range cases {
		_, err := FromCustomText(tc.text)
		require.Error(t, err, "text %q", tc.text)
		assert.ErrorIs(t, err, tc.err, "text %q", tc.text)

		var validation *ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, tc.line, validation.Line, "text %q", tc.text)
	}
}

func TestValidationError_Message(t *testing.T) {
	_, err := FromCustomText("60\nfoo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = BuildBoxing(model.BoxingConfig{Work: "", Rest: "1:00", Rounds: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "work:")
}

func TestTotals_Idempotent(t *testing.T) {
	p, err := BuildTabata(model.DefaultTabata())
	require.NoError(t, err)
	before := append([]Phase(nil), p.Phases...)

	first := p.Totals()
	second := p.Totals()
	assert.Equal(t, first, second)
	assert.Equal(t, before, p.Phases)
	assert.Equal(t, 160, first.Work)
	assert.Equal(t, 70, first.Rest)
	assert.Equal(t, 10, first.Prep)
}

func TestBuild_RejectsRoundCountsAboveCeiling(t *testing.T) {
	var validation *ValidationError

	_, err := BuildBoxing(model.BoxingConfig{Work: "1", Rest: "1", Rounds: math.MaxInt})
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "rounds", validation.Field)
	assert.ErrorIs(t, err, ErrRoundsTooHigh)

	_, err = BuildTabata(model.TabataConfig{Prep: "0", Work: "1", Rest: "1", Rounds: math.MaxInt32, Cycles: math.MaxInt32, Cooldown: "0"})
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "rounds", validation.Field)
	assert.ErrorIs(t, err, ErrRoundsTooHigh)

	_, err = BuildTabata(model.TabataConfig{Prep: "0", Work: "1", Rest: "1", Rounds: 8, Cycles: math.MaxInt, Cooldown: "0"})
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "cycles", validation.Field)

	_, err = BuildTabata(model.TabataConfig{Prep: "0", Work: "1", Rest: "1", Rounds: 100, Cycles: 11, Cooldown: "0"})
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "cycles", validation.Field)
	assert.ErrorIs(t, err, ErrRoundsTooHigh)

	p, err := BuildBoxing(model.BoxingConfig{Work: "1", Rest: "1", Rounds: MaxRounds})
	require.NoError(t, err)
	assert.Len(t, p.Phases, 2*MaxRounds-1)
}
