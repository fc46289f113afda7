package sound

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workouttimer/internal/core/plan"
)

type capture struct {
	streamers []beep.Streamer
}

func (c *capture) play(streamer beep.Streamer) {
	c.streamers = append(c.streamers, streamer)
}

func newTestPlayer(t *testing.T, options Options) (*BeepPlayer, *capture) {
	t.Helper()
	out := &capture{}
	player := newBeepPlayer(nil, options, func() error { return nil }, out.play)
	return player, out
}

func writeWav(t *testing.T, rate beep.SampleRate) string {
	t.Helper()
	tone, err := generators.SineTone(rate, 440)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cue.wav")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(file, beep.Take(rate.N(100*time.Millisecond), tone), format))
	return path
}

func TestCueFor(t *testing.T) {
	assert.Equal(t, CuePrep, CueFor(plan.KindPrep))
	assert.Equal(t, CueWork, CueFor(plan.KindWork))
	assert.Equal(t, CueRest, CueFor(plan.KindRest))
	assert.Equal(t, CueCooldown, CueFor(plan.KindCooldown))
	assert.True(t, CueFinish.Valid())
	assert.False(t, Cue("gong").Valid())
}

func TestDefaultTones_CoverEveryCue(t *testing.T) {
	tones := defaultTones()
	for _, cue := range Cues {
		require.Contains(t, tones, cue)
		assert.Positive(t, tones[cue].Len(), cue)
	}
}

func TestPlay_UsesToneAtFullVolume(t *testing.T) {
	player, out := newTestPlayer(t, Options{Volume: 1})
	require.NoError(t, player.Play(CueWork))
	require.Len(t, out.streamers, 1)
	_, scaled := out.streamers[0].(*effects.Volume)
	assert.False(t, scaled)
}

func TestPlay_ScalesVolume(t *testing.T) {
	player, out := newTestPlayer(t, Options{Volume: 0.5})
	require.NoError(t, player.Play(CueRest))
	require.Len(t, out.streamers, 1)
	volume, ok := out.streamers[0].(*effects.Volume)
	require.True(t, ok)
	assert.InDelta(t, -1.0, volume.Volume, 1e-9)
}

func TestPlay_MutedPlaysNothing(t *testing.T) {
	player, out := newTestPlayer(t, Options{Volume: 0})
	require.NoError(t, player.Play(CueFinish))
	assert.Empty(t, out.streamers)
}

func TestPlay_Errors(t *testing.T) {
	player, _ := newTestPlayer(t, Options{Volume: 1})
	assert.ErrorIs(t, player.Play(Cue("gong")), ErrUnknownCue)

	offline := newBeepPlayer(nil, Options{Volume: 1}, func() error {
		return errors.New("no device")
	}, func(beep.Streamer) { t.Fatal("unexpected playback") })
	assert.ErrorIs(t, offline.Play(CueWork), ErrAudioUnavailable)
}

func TestConfigure_LoadsAndResamplesWav(t *testing.T) {
	path := writeWav(t, 22050)
	player, out := newTestPlayer(t, Options{Volume: 1, Files: map[Cue]string{CueWork: path}})

	assert.True(t, player.HasCustomSound(CueWork))
	assert.False(t, player.HasCustomSound(CueRest))
	require.NoError(t, player.Play(CueWork))
	require.Len(t, out.streamers, 1)
}

func TestConfigure_FallsBackOnBadFiles(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.wav")
	require.NoError(t, os.WriteFile(garbage, []byte("not audio"), 0o644))

	player, _ := newTestPlayer(t, Options{Volume: 1, Files: map[Cue]string{
		CueWork:     garbage,
		CueRest:     filepath.Join(dir, "missing.ogg"),
		CueCooldown: filepath.Join(dir, "cue.mp3"),
	}})
	for _, cue := range []Cue{CueWork, CueRest, CueCooldown} {
		assert.False(t, player.HasCustomSound(cue), cue)
		assert.NoError(t, player.Play(cue))
	}
}

func TestPreview_DoesNotReconfigure(t *testing.T) {
	path := writeWav(t, 44100)
	player, out := newTestPlayer(t, Options{Volume: 0})

	require.NoError(t, player.Preview(CueRest, path, 0.5))
	require.NoError(t, player.Preview(CueRest, "", 1))
	require.Len(t, out.streamers, 2)
	assert.False(t, player.HasCustomSound(CueRest))
	require.NoError(t, player.Play(CueRest))
	assert.Len(t, out.streamers, 2)

	assert.Error(t, player.Preview(CueRest, filepath.Join(t.TempDir(), "missing.wav"), 1))
	assert.ErrorIs(t, player.Preview(Cue("gong"), "", 1), ErrUnknownCue)
}

func TestClampVolume(t *testing.T) {
	assert.Equal(t, 0.0, clampVolume(-2))
	assert.Equal(t, 1.0, clampVolume(3))
	assert.Equal(t, 0.25, clampVolume(0.25))
}
