// Package bible defines the normalized translation model shared across the
// engine. A NormalizedBible is produced once per translation load and is
// read-only afterward; every verse is keyed by canonical book number.
package bible

import "fmt"

// Metadata describes one translation. One instance per loaded translation;
// immutable.
type Metadata struct {
	// Code is the unique translation code (e.g., "TB", "KJV").
	Code string `json:"code"`

	// DisplayName is the human-readable title.
	DisplayName string `json:"display_name"`

	// ShortCode is the abbreviated code shown in references.
	ShortCode string `json:"short_code,omitempty"`

	// Language is the BCP-47 language tag of the translation text.
	Language string `json:"language,omitempty"`

	// Year is the publication year (optional).
	Year int `json:"year,omitempty"`

	// Publisher is the publisher information (optional).
	Publisher string `json:"publisher,omitempty"`
}

// Verse is one verse of a translation, keyed by canonical book number.
// Verses are immutable once part of an index. Within a translation the
// (Book, Chapter, Verse) triple is unique.
type Verse struct {
	Book    int    `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// Address returns the triple in "book:chapter:verse" form for diagnostics.
func (v Verse) Address() string {
	return fmt.Sprintf("%d:%d:%d", v.Book, v.Chapter, v.Verse)
}

// BookExtent records, per book of a translation, the highest chapter observed
// in that translation's source data.
type BookExtent struct {
	// Number is the canonical book number.
	Number int `json:"number"`

	// ChapterCount is the chapter count as observed in this translation.
	ChapterCount int `json:"chapter_count"`
}

// NormalizedBible is the canonical form of one translation: metadata, the
// ordered list of books present, and the flat verse list. Produced by the
// normalizer, consumed by the index builder; never mutated after creation.
type NormalizedBible struct {
	Metadata Metadata     `json:"metadata"`
	Books    []BookExtent `json:"books"`
	Verses   []Verse      `json:"verses"`
}
