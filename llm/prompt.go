package llm

// Language tags selectable by the user. Darija responses use Latin script.
const (
	LangEnglish = "en"
	LangFrench  = "fr"
	LangArabic  = "ar"
	LangDarija  = "darija"
)

// Languages lists the selectable response languages with display names.
var Languages = []struct {
	ID   string
	Name string
}{
	{LangEnglish, "English"},
	{LangFrench, "Français"},
	{LangArabic, "العربية"},
	{LangDarija, "Darija"},
}

// LanguageInstruction returns the fixed instruction appended to a system
// prompt so the assistant answers in the selected natural language.
// Unrecognized tags fall back to English.
func LanguageInstruction(lang string) string {
	switch lang {
	case LangDarija:
		return "Please respond in Moroccan Darija using Latin script. Use Moroccan cultural references when explaining coding concepts."
	case LangArabic:
		return "Please respond in Arabic. Use Moroccan or Arab cultural references when explaining coding concepts."
	case LangFrench:
		return "Veuillez répondre en français. Utilisez des références culturelles marocaines pour expliquer les concepts de programmation."
	default:
		return "Please respond in English. Feel free to use Moroccan cultural references when explaining coding concepts."
	}
}

// AssistantSystemPrompt builds the chat assistant's system prompt for the
// selected language.
func AssistantSystemPrompt(lang string) string {
	return "You are DarijaCode Hub's assistant, helping Moroccan developers learn to code. " + LanguageInstruction(lang)
}

// LearningSystemPrompt builds the lesson generator's system prompt for the
// topic's language.
func LearningSystemPrompt(lang string) string {
	return "You are DarijaCode Hub's learning assistant, helping Moroccan developers learn to code. " + LanguageInstruction(lang)
}
