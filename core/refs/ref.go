// Package refs provides validated scripture references, localized reference
// formatting, and free-form reference resolution.
package refs

import (
	"fmt"

	"github.com/FocuswithJustin/Scriptura/core/canon"
	"github.com/FocuswithJustin/Scriptura/core/errors"
)

// Reference identifies a passage: a book, chapter, verse range, and the
// translation it was read in.
type Reference struct {
	// Book is the canonical book number (1..66).
	Book int `json:"book"`

	// Chapter is the chapter number (1-indexed).
	Chapter int `json:"chapter"`

	// VerseStart is the first verse of the range (1-indexed).
	VerseStart int `json:"verse_start"`

	// VerseEnd is the last verse for ranges; 0 for single-verse references.
	VerseEnd int `json:"verse_end,omitempty"`

	// Translation is the translation code (e.g., "TB").
	Translation string `json:"translation,omitempty"`
}

// IsRange reports whether the reference spans more than one verse.
func (r Reference) IsRange() bool {
	return r.VerseEnd > r.VerseStart
}

// Key returns a stable address string used as a storage key
// (translation/book/chapter/verse, range end excluded).
func (r Reference) Key() string {
	return fmt.Sprintf("%s/%d/%d/%d", r.Translation, r.Book, r.Chapter, r.VerseStart)
}

// PositionKey returns the chapter-level address (translation/book/chapter)
// used for reading-history deduplication.
func (r Reference) PositionKey() string {
	return fmt.Sprintf("%s/%d/%d", r.Translation, r.Book, r.Chapter)
}

// VerseBounds supplies per-translation verse counts for reference
// validation. *verseindex.Index implements it.
type VerseBounds interface {
	VerseCount(book, chapter int) int
}

// New constructs a validated Reference. Violated invariants are rejected
// here, never clamped: a silently "corrected" reference would corrupt
// bookmarks and highlights with the wrong verse.
//
// bounds supplies the referenced translation's verse counts; it may be nil
// when no index is resident (registry-level bounds still apply).
func New(reg *canon.Registry, book, chapter, verseStart, verseEnd int, translation string, bounds VerseBounds) (Reference, error) {
	chapters := reg.ChapterCount(book)
	if chapters == 0 {
		return Reference{}, errors.NewInvalidReference(book, chapter, verseStart, "book number out of range")
	}
	if chapter < 1 || chapter > chapters {
		return Reference{}, errors.NewInvalidReference(book, chapter, verseStart,
			fmt.Sprintf("chapter out of range (book has %d)", chapters))
	}
	if verseStart < 1 {
		return Reference{}, errors.NewInvalidReference(book, chapter, verseStart, "verse must be >= 1")
	}
	if verseEnd != 0 && verseEnd < verseStart {
		return Reference{}, errors.NewInvalidReference(book, chapter, verseStart,
			fmt.Sprintf("verse range end %d before start", verseEnd))
	}
	if bounds != nil {
		if count := bounds.VerseCount(book, chapter); verseStart > count {
			return Reference{}, errors.NewInvalidReference(book, chapter, verseStart,
				fmt.Sprintf("verse out of range (chapter has %d in %s)", count, translation))
		}
	}
	if verseEnd == verseStart {
		verseEnd = 0
	}
	return Reference{
		Book:        book,
		Chapter:     chapter,
		VerseStart:  verseStart,
		VerseEnd:    verseEnd,
		Translation: translation,
	}, nil
}
