package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKnowledge_ShippedFile(t *testing.T) {
	k, err := LoadKnowledge("../../prompts/knowledge.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Scribewell", k.Company)
	assert.NotEmpty(t, k.Services)
	for _, lang := range []string{"en", "es", "fr", "de"} {
		assert.NotEmpty(t, k.Welcome(lang), "welcome for %s", lang)
		assert.NotEmpty(t, k.Fallback(lang), "fallback for %s", lang)
	}
}

func TestKnowledge_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	k := testKnowledge()
	assert.Equal(t, k.Welcome("en"), k.Welcome("pt"))
	assert.Equal(t, k.Fallback("en"), k.Fallback("zz"))
}

func TestKnowledge_SystemPromptCarriesLanguageDirective(t *testing.T) {
	k := testKnowledge()
	p := k.SystemPrompt("es")
	assert.Contains(t, p, "Scribewell")
	assert.Contains(t, p, `"es"`)
}
