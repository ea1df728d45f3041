package refs

import (
	"fmt"

	"github.com/FocuswithJustin/Scriptura/core/canon"
)

// translationDisplay maps, per UI language, a translation code to the code
// shown in formatted references. The mapping is deliberately not bijective:
// the English-language editions all collapse to the product's default code in
// the Indonesian UI. Codes absent from the table pass through unchanged.
var translationDisplay = map[string]map[string]string{
	canon.LangIndonesian: {
		"KJV":  "TB",
		"NKJV": "TB",
		"NIV":  "TB",
		"ESV":  "TB",
	},
	canon.LangEnglish: {},
}

// DisplayCode returns the translation code to show for the given UI language.
func DisplayCode(code, language string) string {
	if m, ok := translationDisplay[language]; ok {
		if display, ok := m[code]; ok {
			return display
		}
	}
	return code
}

// Format renders a reference as a localized display string:
// "Kejadian 1:1", "Kejadian 1:1-2", or with showTranslation
// "Kejadian 1:1-2 (TB)".
func Format(reg *canon.Registry, ref Reference, language string, showTranslation bool) string {
	book := reg.LocalizedName(ref.Book, language)

	s := fmt.Sprintf("%s %d:%d", book, ref.Chapter, ref.VerseStart)
	if ref.IsRange() {
		s = fmt.Sprintf("%s-%d", s, ref.VerseEnd)
	}
	if showTranslation && ref.Translation != "" {
		s = fmt.Sprintf("%s (%s)", s, DisplayCode(ref.Translation, language))
	}
	return s
}
