package assistant

import "strings"

// Supported reply languages; anything else falls back to English.
var supportedLanguages = map[string]bool{
	"en": true, "es": true, "fr": true, "de": true, "pt": true,
}

// greetingWords are cheap lexical markers checked before diacritics, in a
// fixed order so detection stays deterministic.
var greetingWords = []struct {
	lang  string
	words []string
}{
	{"es", []string{"hola", "gracias", "quiero", "busco", "dónde", "por favor", "necesito"}},
	{"fr", []string{"bonjour", "merci", "je veux", "je cherche", "où", "s'il vous"}},
	{"de", []string{"hallo", "danke", "ich suche", "ich möchte", "bitte", "wo ist"}},
	{"pt", []string{"olá", "obrigado", "obrigada", "quero", "procuro", "onde"}},
}

// diacriticChecks disambiguate languages sharing an alphabet.
var diacriticChecks = []struct {
	lang  string
	runes string
}{
	{"es", "¿¡ñ"},
	{"pt", "ãõ"},
	{"de", "äöüß"},
	{"fr", "àâçêëîïôùûœ"},
}

// DetectLanguage picks the reply language: lexical evidence in the latest
// message always beats the (possibly stale) plan-carried code, which beats
// the configured default.
func DetectLanguage(message, planLanguage, fallback string) string {
	lower := strings.ToLower(message)

	for _, entry := range greetingWords {
		for _, w := range entry.words {
			if strings.Contains(lower, w) {
				return entry.lang
			}
		}
	}
	for _, check := range diacriticChecks {
		if strings.ContainsAny(lower, check.runes) {
			return check.lang
		}
	}

	if supportedLanguages[planLanguage] {
		return planLanguage
	}
	if supportedLanguages[fallback] {
		return fallback
	}
	return "en"
}
