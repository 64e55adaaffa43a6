package translation

import (
	"sort"
	"strings"
)

var translationLanguageLabels = map[string]string{
	"ar": "Arabic",
	"bn": "Bengali",
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"hi": "Hindi",
	"id": "Indonesian",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"mr": "Marathi",
	"pl": "Polish",
	"pt": "Portuguese",
	"ru": "Russian",
	"ta": "Tamil",
	"te": "Telugu",
	"th": "Thai",
	"tr": "Turkish",
	"ur": "Urdu",
	"vi": "Vietnamese",
	"zh": "Chinese",
}

func SupportedTranslationLanguageCodes() []string {
	codes := make([]string, 0, len(translationLanguageLabels))
	for code := range translationLanguageLabels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func languageLabel(code string) string {
	normalized := normalizeLangCode(code)
	if label, ok := translationLanguageLabels[normalized]; ok {
		return label
	}
	fallback := strings.TrimSpace(code)
	if fallback == "" {
		return "English"
	}
	return fallback
}

// normalizeLangCode reduces a language tag to its lowercase primary subtag:
// "EN-us" and "pt_BR" become "en" and "pt". Detection hands us bare ISO 639-1
// codes; request fields may carry full tags. Blank or malformed input returns
// an empty string so callers can apply their own fallback.
func normalizeLangCode(raw string) string {
	tag := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	primary, _, _ := strings.Cut(tag, "-")
	if len(primary) < 2 || len(primary) > 3 {
		return ""
	}
	for _, r := range primary {
		if r < 'a' || r > 'z' {
			return ""
		}
	}
	return primary
}
