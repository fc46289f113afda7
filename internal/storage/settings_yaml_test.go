package storage

import (
	"os"
	"path/filepath"
	"testing"

	"workouttimer/internal/core/model"
	"workouttimer/internal/sound"
	"workouttimer/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFile_MissingReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "nope", "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "WorkoutTimer", "settings.yaml")
	settings := preferences.DefaultSettings()
	settings.Theme = preferences.ThemeLight
	settings.FontScale = 1.2
	settings.Volume = 0
	settings.Sounds[sound.CueFinish] = "/tmp/gong.wav"
	settings.LastMode = model.ModeBoxing
	settings.Boxing.Rounds = 12
	settings.Boxing.KeepFinalRest = true
	settings.Tabata.Cooldown = "2:00"
	settings.Tabata.KeepFinalRest = true
	settings.CustomText = "30, 10"

	require.NoError(t, SaveSettingsFile(path, settings))
	loaded, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestLoadSettingsFile_IgnoresOutOfRangeFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `theme: neon
font_scale: 3
volume: 1.5
sounds:
  work: /sounds/work.ogg
  gong: /sounds/gong.wav
last_mode: yoga
tabata:
  cycles: 5000
boxing:
  work: "2:00"
  rounds: -1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)
	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults.Theme, settings.Theme)
	assert.Equal(t, defaults.FontScale, settings.FontScale)
	assert.Equal(t, defaults.Volume, settings.Volume)
	assert.Equal(t, map[sound.Cue]string{sound.CueWork: "/sounds/work.ogg"}, settings.Sounds)
	assert.Equal(t, defaults.LastMode, settings.LastMode)
	assert.Equal(t, "2:00", settings.Boxing.Work)
	assert.Equal(t, defaults.Boxing.Rest, settings.Boxing.Rest)
	assert.Equal(t, defaults.Boxing.Rounds, settings.Boxing.Rounds)
	assert.Equal(t, defaults.Tabata.Cycles, settings.Tabata.Cycles)
}

func TestLoadSettingsFile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed"), 0o644))

	settings, err := LoadSettingsFile(path)
	require.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}
