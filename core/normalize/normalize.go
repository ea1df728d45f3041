// Package normalize converts raw, heterogeneously-formatted translation
// payloads into the canonical NormalizedBible form.
//
// Each source format supplies an Adapter that knows how that source spells
// its book names; canonical re-keying and uniqueness validation are shared.
// A normalization failure rejects the whole translation: a half-built
// translation would corrupt downstream indexing silently.
package normalize

import (
	"sort"
	"strings"

	"github.com/FocuswithJustin/Scriptura/core/bible"
	"github.com/FocuswithJustin/Scriptura/core/canon"
	"github.com/FocuswithJustin/Scriptura/core/errors"
)

// RawVerse is one verse as it appears in source data, book identified by
// whatever string the source uses.
type RawVerse struct {
	Book    string
	Chapter int
	Verse   int
	Text    string
}

// RawBible is a parsed but not yet normalized translation payload.
type RawBible struct {
	Meta   bible.Metadata
	Verses []RawVerse
}

// Adapter normalizes one source's book naming into names the registry can
// resolve.
type Adapter interface {
	// NormalizeBookName cleans a source-specific book identifier.
	NormalizeBookName(raw string) string

	// Language is the language the source names its books in.
	Language() string
}

// adapter is the standard Adapter: whitespace cleanup plus an optional
// source-specific alias table for spellings the registry does not know.
type adapter struct {
	language string
	aliases  map[string]string // lowercased source spelling -> registry name
}

// NewAdapter returns an Adapter for sources naming books in the given
// language. aliases maps source-specific spellings (case-insensitive) to
// names the registry resolves; it may be nil.
func NewAdapter(language string, aliases map[string]string) Adapter {
	a := &adapter{language: language}
	if len(aliases) > 0 {
		a.aliases = make(map[string]string, len(aliases))
		for k, v := range aliases {
			a.aliases[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
	return a
}

func (a *adapter) NormalizeBookName(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	if alias, ok := a.aliases[strings.ToLower(name)]; ok {
		return alias
	}
	return name
}

func (a *adapter) Language() string {
	return a.language
}

// Normalize maps a raw translation payload to canonical form: every verse
// re-keyed under its canonical book number, triple uniqueness enforced.
//
// The first duplicate (book, chapter, verse) triple fails the whole load with
// a DuplicateVerse cause identifying the triple; an unresolvable book name
// fails it with an UnknownBook cause. The registry is read-only input; no
// shared state is mutated.
func Normalize(raw *RawBible, ad Adapter, reg *canon.Registry) (*bible.NormalizedBible, error) {
	code := raw.Meta.Code
	if code == "" {
		return nil, errors.NewNormalization(code, errors.Wrap(errors.ErrInternal, "payload has no translation code"))
	}

	bookNums := make(map[string]int) // raw book name -> canonical number
	seen := make(map[[3]int]bool, len(raw.Verses))
	extents := make(map[int]int) // canonical number -> max chapter
	verses := make([]bible.Verse, 0, len(raw.Verses))

	for _, rv := range raw.Verses {
		num, ok := bookNums[rv.Book]
		if !ok {
			resolved, err := reg.Resolve(ad.NormalizeBookName(rv.Book), ad.Language())
			if err != nil {
				return nil, errors.NewNormalization(code, err)
			}
			num = resolved
			bookNums[rv.Book] = num
		}

		if rv.Chapter < 1 || rv.Chapter > reg.ChapterCount(num) {
			return nil, errors.NewNormalization(code,
				errors.NewInvalidReference(num, rv.Chapter, rv.Verse, "chapter outside canonical bounds"))
		}
		if rv.Verse < 1 {
			return nil, errors.NewNormalization(code,
				errors.NewInvalidReference(num, rv.Chapter, rv.Verse, "verse must be >= 1"))
		}

		triple := [3]int{num, rv.Chapter, rv.Verse}
		if seen[triple] {
			return nil, errors.NewNormalization(code, errors.NewDuplicateVerse(num, rv.Chapter, rv.Verse))
		}
		seen[triple] = true

		if rv.Chapter > extents[num] {
			extents[num] = rv.Chapter
		}
		verses = append(verses, bible.Verse{
			Book:    num,
			Chapter: rv.Chapter,
			Verse:   rv.Verse,
			Text:    rv.Text,
		})
	}

	books := make([]bible.BookExtent, 0, len(extents))
	for num, chapters := range extents {
		books = append(books, bible.BookExtent{Number: num, ChapterCount: chapters})
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Number < books[j].Number })

	return &bible.NormalizedBible{
		Metadata: raw.Meta,
		Books:    books,
		Verses:   verses,
	}, nil
}
