package types

import "strings"

// Language selects the report language
type Language string

// Supported report languages
const (
	LanguageEnglish    Language = "english"
	LanguageIndonesian Language = "indonesia"
)

// ParseLanguage maps a free-form selector onto a supported language.
// Anything starting with "indo" or equal to "id" is Indonesian; everything else is English.
func ParseLanguage(s string) Language {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "id" || strings.HasPrefix(lower, "indo") {
		return LanguageIndonesian
	}
	return LanguageEnglish
}

// IsIndonesian reports whether the language is Indonesian
func (l Language) IsIndonesian() bool {
	return l == LanguageIndonesian
}
