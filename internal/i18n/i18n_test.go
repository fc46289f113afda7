package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT_FallsBackToKey(t *testing.T) {
	SetLang("en")
	assert.Equal(t, "Start", T("Start"))
	assert.Equal(t, "Not a key", T("Not a key"))

	SetLang("it_IT")
	t.Cleanup(func() { SetLang("en") })
	assert.Equal(t, "it", Lang())
	assert.Equal(t, "Avvia", T("Start"))
	assert.Equal(t, "Not a key", T("Not a key"))
}

func TestSetLang_UnsupportedIsEnglish(t *testing.T) {
	SetLang("de-DE")
	assert.Equal(t, "en", Lang())
}

func TestDetect_EnvOverride(t *testing.T) {
	t.Setenv(LangEnv, "it")
	assert.Equal(t, "it", Detect(nil))

	t.Setenv(LangEnv, "fr")
	assert.Equal(t, "en", Detect(nil))
}

func TestItalianTable(t *testing.T) {
	italian := translations["it"]
	assert.NotEmpty(t, italian)
	for key, text := range italian {
		assert.NotEmpty(t, text, key)
	}
}
