// Package i18n translates UI strings. Keys are the English text.
package i18n

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
)

// LangEnv forces the UI language.
const LangEnv = "WORKOUT_LANG"

var (
	mu   sync.RWMutex
	lang = "en"
)

// Supported lists the available languages.
var Supported = []string{"en", "it"}

var translations = map[string]map[string]string{
	"it": pairs(
		"Start", "Avvia",
		"Pause", "Pausa",
		"Resume", "Riprendi",
		"Stop", "Ferma",
		"Tabata", "Tabata",
		"Boxing", "Boxe",
		"Custom", "Personalizzato",
		"Topics", "Argomenti",
		"Preferences", "Preferenze",
		"History", "Storico",
		"Show", "Mostra",
		"Quit", "Esci",
		"Prep", "Preparazione",
		"Work", "Lavoro",
		"Rest", "Recupero",
		"Cooldown", "Defaticamento",
		"Rounds", "Round",
		"Cycles", "Cicli",
		"Keep final rest", "Mantieni recupero finale",
		"One interval per line: work, rest", "Un intervallo per riga: lavoro, recupero",
		"mm:ss or seconds", "mm:ss o secondi",
		"Ready", "Pronto",
		"Paused", "In pausa",
		"Workout complete!", "Allenamento completato!",
		"Timer complete!", "Timer completato!",
		"Nothing to run", "Niente da eseguire",
		"Session summary", "Riepilogo sessione",
		"Total work", "Lavoro totale",
		"Total recovery", "Recupero totale",
		"Session length", "Durata sessione",
		"Save Session", "Salva sessione",
		"Close", "Chiudi",
		"Session saved", "Sessione salvata",
		"Could not save session", "Impossibile salvare la sessione",
		"Theme", "Tema",
		"Dark", "Scuro",
		"Light", "Chiaro",
		"System", "Sistema",
		"Font scale", "Scala carattere",
		"Volume", "Volume",
		"Sounds", "Suoni",
		"Finish", "Fine",
		"Choose", "Scegli",
		"Test", "Prova",
		"Clear", "Rimuovi",
		"Built-in tone", "Tono predefinito",
		"Save", "Salva",
		"Export PDF", "Esporta PDF",
		"No sessions recorded yet.", "Nessuna sessione registrata.",
		"Idle", "Inattivo",
		"Running", "In corso",
		"Summary", "Riepilogo",
		"Pop out", "Finestra esterna",
		"Refresh", "Aggiorna",
		"Rounds completed", "Round completati",
		"History is not available", "Lo storico non è disponibile",
		"Report exported", "Report esportato",
	),
}

// Detect picks the UI language from WORKOUT_LANG, then the system locale,
// then English.
func Detect(logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}
	if forced := strings.TrimSpace(os.Getenv(LangEnv)); forced != "" {
		logger.Debug("language forced", "env", LangEnv, "lang", forced)
		return normalize(forced)
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		logger.Debug("could not get user locale, defaulting to english", "error", err)
		return "en"
	}
	for _, userLocale := range userLocales {
		if code := normalize(userLocale); code != "en" || strings.HasPrefix(strings.ToLower(userLocale), "en") {
			return code
		}
	}
	return "en"
}

// SetLang switches the language used by T.
func SetLang(code string) {
	mu.Lock()
	lang = normalize(code)
	mu.Unlock()
}

// Lang returns the active language code.
func Lang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// T translates key into the active language, falling back to key.
func T(key string) string {
	current := Lang()
	if translated, ok := translations[current][key]; ok {
		return translated
	}
	return key
}

func pairs(keyValues ...string) map[string]string {
	table := make(map[string]string, len(keyValues)/2)
	for index := 0; index+1 < len(keyValues); index += 2 {
		table[keyValues[index]] = keyValues[index+1]
	}
	return table
}

func normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, supported := range Supported {
		if strings.HasPrefix(code, supported) {
			return supported
		}
	}
	return "en"
}
