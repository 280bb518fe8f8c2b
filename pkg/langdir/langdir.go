// Package langdir maps ISO language codes and aliases to RimWorld language
// folder names (Languages/<DirName>).
package langdir

import (
	"strings"
	"unicode"
)

// knownNames are canonical folder names accepted as-is (case-insensitively).
var knownNames = []string{
	"English",
	"Russian",
	"Japanese",
	"Korean",
	"French",
	"German",
	"Spanish",
	"SpanishLatin",
	"Portuguese",
	"PortugueseBrazilian",
	"Polish",
	"Italian",
	"Turkish",
	"Ukrainian",
	"Czech",
	"Hungarian",
	"Dutch",
	"Romanian",
	"Thai",
	"Greek",
	"ChineseSimplified",
	"ChineseTraditional",
}

var codeToName = map[string]string{
	"en": "English", "en-us": "English", "en-gb": "English",
	"ru": "Russian", "ru-ru": "Russian",
	"ja": "Japanese", "ja-jp": "Japanese",
	"ko": "Korean", "ko-kr": "Korean",
	"fr": "French", "fr-fr": "French", "fr-ca": "French",
	"de": "German", "de-de": "German",
	"es": "Spanish", "es-es": "Spanish",
	"es-419": "SpanishLatin", "es-mx": "SpanishLatin", "es-ar": "SpanishLatin",
	"es-cl": "SpanishLatin", "es-co": "SpanishLatin", "es-pe": "SpanishLatin",
	"pt": "Portuguese", "pt-pt": "Portuguese",
	"pt-br": "PortugueseBrazilian",
	"pl":    "Polish", "pl-pl": "Polish",
	"it": "Italian", "it-it": "Italian",
	"tr": "Turkish", "tr-tr": "Turkish",
	"uk": "Ukrainian", "uk-ua": "Ukrainian",
	"cs": "Czech", "cs-cz": "Czech",
	"hu": "Hungarian", "hu-hu": "Hungarian",
	"nl": "Dutch", "nl-nl": "Dutch",
	"ro": "Romanian", "ro-ro": "Romanian",
	"th": "Thai", "th-th": "Thai",
	"el": "Greek", "el-gr": "Greek",
	"zh": "ChineseSimplified", "zh-cn": "ChineseSimplified",
	"zh-sg": "ChineseSimplified", "zh-hans": "ChineseSimplified",
	"zh-tw": "ChineseTraditional", "zh-hk": "ChineseTraditional",
	"zh-mo": "ChineseTraditional", "zh-hant": "ChineseTraditional",
}

// ForLang resolves an ISO code, alias, or canonical folder name to the
// RimWorld language folder name. Unknown codes fall back to a capitalized
// form of the code itself ("pt-ao" -> "PtAo").
func ForLang(lang string) string {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(lang)), "_", "-")

	for _, name := range knownNames {
		if strings.EqualFold(name, lang) {
			return name
		}
	}
	if name, ok := codeToName[normalized]; ok {
		return name
	}

	// fallback: "pt-ao" -> "PtAo"
	var b strings.Builder
	upperNext := true
	for _, ch := range normalized {
		if ch == '-' {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(ch))
			upperNext = false
		} else {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
