package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"workouttimer/internal/core/model"
	"workouttimer/internal/core/plan"
	"workouttimer/internal/platform"
	"workouttimer/internal/sound"
	"workouttimer/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Theme      string            `yaml:"theme,omitempty"`
	FontScale  float64           `yaml:"font_scale,omitempty"`
	Volume     *float64          `yaml:"volume,omitempty"`
	Sounds     map[string]string `yaml:"sounds,omitempty"`
	LastMode   string            `yaml:"last_mode,omitempty"`
	Tabata     *yamlTabata       `yaml:"tabata,omitempty"`
	Boxing     *yamlBoxing       `yaml:"boxing,omitempty"`
	CustomText string            `yaml:"custom_text,omitempty"`
}

type yamlTabata struct {
	Prep     string `yaml:"prep"`
	Work     string `yaml:"work"`
	Rest     string `yaml:"rest"`
	Rounds   int    `yaml:"rounds"`
	Cycles   int    `yaml:"cycles"`
	Cooldown string `yaml:"cooldown"`

	KeepFinalRest bool `yaml:"keep_final_rest,omitempty"`
}

type yamlBoxing struct {
	Work   string `yaml:"work"`
	Rest   string `yaml:"rest"`
	Rounds int    `yaml:"rounds"`

	KeepFinalRest bool `yaml:"keep_final_rest,omitempty"`
}

// LoadSettings reads user preferences from <config dir>/appName/settings.yaml.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads user preferences from path. Values that are out of
// range are ignored field by field.
func LoadSettingsFile(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to path, creating its directory.
func SaveSettingsFile(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	volume := settings.Volume
	fileData := yamlSettings{
		Theme:     string(settings.Theme),
		FontScale: settings.FontScale,
		Volume:    &volume,
		LastMode:  string(settings.LastMode),
		Tabata: &yamlTabata{
			Prep:     settings.Tabata.Prep,
			Work:     settings.Tabata.Work,
			Rest:     settings.Tabata.Rest,
			Rounds:   settings.Tabata.Rounds,
			Cycles:   settings.Tabata.Cycles,
			Cooldown: settings.Tabata.Cooldown,

			KeepFinalRest: settings.Tabata.KeepFinalRest,
		},
		Boxing: &yamlBoxing{
			Work:   settings.Boxing.Work,
			Rest:   settings.Boxing.Rest,
			Rounds: settings.Boxing.Rounds,

			KeepFinalRest: settings.Boxing.KeepFinalRest,
		},
		CustomText: settings.CustomText,
	}
	if len(settings.Sounds) > 0 {
		fileData.Sounds = make(map[string]string, len(settings.Sounds))
		for cue, soundPath := range settings.Sounds {
			if soundPath != "" {
				fileData.Sounds[string(cue)] = soundPath
			}
		}
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if theme := preferences.Theme(fileData.Theme); preferences.ValidTheme(theme) {
		settings.Theme = theme
	}
	if fileData.FontScale >= preferences.MinFontScale && fileData.FontScale <= preferences.MaxFontScale {
		settings.FontScale = fileData.FontScale
	}
	if fileData.Volume != nil && *fileData.Volume >= 0 && *fileData.Volume <= 1 {
		settings.Volume = *fileData.Volume
	}
	for name, path := range fileData.Sounds {
		if cue := sound.Cue(name); cue.Valid() && path != "" {
			settings.Sounds[cue] = path
		}
	}

	for _, mode := range model.Modes {
		if string(mode) == fileData.LastMode {
			settings.LastMode = mode
		}
	}
	if tabata := fileData.Tabata; tabata != nil {
		settings.Tabata.Prep = nonEmpty(tabata.Prep, settings.Tabata.Prep)
		settings.Tabata.Work = nonEmpty(tabata.Work, settings.Tabata.Work)
		settings.Tabata.Rest = nonEmpty(tabata.Rest, settings.Tabata.Rest)
		settings.Tabata.Cooldown = nonEmpty(tabata.Cooldown, settings.Tabata.Cooldown)
		if validRounds(tabata.Rounds) {
			settings.Tabata.Rounds = tabata.Rounds
		}
		if validRounds(tabata.Cycles) {
			settings.Tabata.Cycles = tabata.Cycles
		}
		settings.Tabata.KeepFinalRest = tabata.KeepFinalRest
	}
	if boxing := fileData.Boxing; boxing != nil {
		settings.Boxing.Work = nonEmpty(boxing.Work, settings.Boxing.Work)
		settings.Boxing.Rest = nonEmpty(boxing.Rest, settings.Boxing.Rest)
		if validRounds(boxing.Rounds) {
			settings.Boxing.Rounds = boxing.Rounds
		}
		settings.Boxing.KeepFinalRest = boxing.KeepFinalRest
	}
	if fileData.CustomText != "" {
		settings.CustomText = fileData.CustomText
	}
}

func validRounds(count int) bool {
	return count > 0 && count <= plan.MaxRounds
}

func nonEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
