package refs

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/Scriptura/core/canon"
	"github.com/FocuswithJustin/Scriptura/core/errors"
)

// refGrammar is the participle grammar for free-form references.
// Examples: "Kejadian 1:1", "Mzm 23:1-6", "1 Samuel 17:4", "Kejadian 1:1-2 (TB)"
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	BookNum     string   `@Int?`
	BookWords   []string `@Word+`
	Chapter     int      `@Int ":"`
	Verse       int      `@Int`
	VerseEnd    *int     `( "-" @Int )?`
	Translation *string  `( "(" @Word ")" )?`
}

// refLexer tokenizes localized references. Word covers book names including
// internal hyphens ("Raja-raja") and translation codes; a dash between
// numbers lexes as punctuation, so verse ranges stay unambiguous.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Word", Pattern: `[\p{L}][\p{L}\p{N}'-]*`},
	{Name: "Punct", Pattern: `[:()\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// ParseFreeText resolves a free-form reference string in the given language
// to a validated Reference. Book resolution is delegated to the registry;
// both "Book Chapter:Verse" and "Book Chapter:VerseStart-VerseEnd" forms are
// accepted, with an optional trailing "(CODE)" translation suffix as produced
// by Format.
func ParseFreeText(reg *canon.Registry, text, language string) (Reference, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Reference{}, errors.NewParse(text, "empty reference")
	}

	parsed, err := refParser.ParseString("", trimmed)
	if err != nil {
		return Reference{}, &errors.ParseError{Input: text, Message: "unrecognized reference form", Err: err}
	}

	bookName := strings.Join(parsed.BookWords, " ")
	if parsed.BookNum != "" {
		bookName = parsed.BookNum + " " + bookName
	}

	book, err := reg.Resolve(bookName, language)
	if err != nil {
		return Reference{}, &errors.ParseError{Input: text, Message: "unknown book " + bookName, Err: err}
	}

	verseEnd := 0
	if parsed.VerseEnd != nil {
		verseEnd = *parsed.VerseEnd
	}
	translation := ""
	if parsed.Translation != nil {
		translation = *parsed.Translation
	}

	ref, err := New(reg, book, parsed.Chapter, parsed.Verse, verseEnd, translation, nil)
	if err != nil {
		return Reference{}, &errors.ParseError{Input: text, Message: "out-of-bounds reference", Err: err}
	}
	return ref, nil
}
