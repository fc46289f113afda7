package preferences

import (
	"path/filepath"
	"testing"

	"workouttimer/internal/sound"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_SaveCollectsValues(t *testing.T) {
	app := test.NewTempApp(t)
	var saved []Settings
	prefs := New(app, DefaultSettings(), Callbacks{
		OnSave: func(settings Settings) { saved = append(saved, settings) },
	})

	prefs.theme.SetSelected("Light")
	prefs.fontScale.SetValue(1.2)
	prefs.volume.SetValue(0)
	prefs.sounds[sound.CueWork].SetText(" /tmp/sounds/../bell.wav ")
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.Equal(t, ThemeLight, saved[0].Theme)
	assert.InDelta(t, 1.2, saved[0].FontScale, 1e-9)
	assert.Equal(t, 0.0, saved[0].Volume)
	assert.Equal(t, map[sound.Cue]string{sound.CueWork: filepath.Clean("/tmp/bell.wav")}, saved[0].Sounds)
	assert.Equal(t, DefaultSettings().Tabata, saved[0].Tabata)
}

func TestWindow_UpdateSettingsAndTest(t *testing.T) {
	app := test.NewTempApp(t)
	type played struct {
		cue    sound.Cue
		path   string
		volume float64
	}
	var calls []played
	prefs := New(app, DefaultSettings(), Callbacks{
		OnTest: func(cue sound.Cue, path string, volume float64) {
			calls = append(calls, played{cue, path, volume})
		},
	})

	settings := DefaultSettings()
	settings.Theme = ThemeSystem
	settings.Sounds[sound.CueRest] = "/tmp/rest.ogg"
	prefs.UpdateSettings(settings)
	assert.Equal(t, "System", prefs.theme.Selected)
	assert.Equal(t, "/tmp/rest.ogg", prefs.sounds[sound.CueRest].Text)

	test.Tap(prefs.testers[sound.CueRest])
	require.Len(t, calls, 1)
	assert.Equal(t, sound.CueRest, calls[0].cue)
	assert.Equal(t, "/tmp/rest.ogg", calls[0].path)
	assert.InDelta(t, 0.8, calls[0].volume, 1e-9)

	settings.Sounds[sound.CueRest] = "changed"
	assert.Equal(t, "/tmp/rest.ogg", prefs.settings.Sounds[sound.CueRest])
}

func TestNewTheme(t *testing.T) {
	settings := DefaultSettings()
	settings.FontScale = 1.2
	dark := NewTheme(settings)
	assert.InDelta(t, theme.DefaultTheme().Size(theme.SizeNameText)*1.2, dark.Size(theme.SizeNameText), 1e-4)
	assert.Equal(t,
		theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantDark),
		dark.Color(theme.ColorNameBackground, theme.VariantLight))

	settings.Theme = ThemeSystem
	settings.FontScale = 9
	system := NewTheme(settings)
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNameText), system.Size(theme.SizeNameText))
	assert.Equal(t,
		theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantLight),
		system.Color(theme.ColorNameBackground, theme.VariantLight))

	var _ fyne.Theme = system
}

func TestThemeLabels(t *testing.T) {
	for _, value := range Themes {
		assert.Equal(t, value, themeFromLabel(themeLabel(value), ThemeDark))
	}
	assert.Equal(t, ThemeLight, themeFromLabel("unknown", ThemeLight))
}
