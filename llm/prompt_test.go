package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageInstructionPerLanguage(t *testing.T) {
	assert.Contains(t, LanguageInstruction(LangDarija), "Moroccan Darija using Latin script")
	assert.Contains(t, LanguageInstruction(LangArabic), "respond in Arabic")
	assert.Contains(t, LanguageInstruction(LangFrench), "répondre en français")
	assert.Contains(t, LanguageInstruction(LangEnglish), "respond in English")
}

func TestLanguageInstructionUnknownTagFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, LanguageInstruction(LangEnglish), LanguageInstruction("es"))
}

func TestAssistantSystemPromptCarriesRoleAndLanguage(t *testing.T) {
	prompt := AssistantSystemPrompt(LangDarija)

	assert.True(t, strings.HasPrefix(prompt, "You are DarijaCode Hub's assistant"))
	assert.Contains(t, prompt, "Latin script")
}
