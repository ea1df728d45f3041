// Package verseindex builds the read-optimized lookup structure for one
// normalized translation.
//
// An Index is a pure function of its source NormalizedBible: building twice
// from the same input yields identical lookup results. Once built it is
// immutable and may be shared across concurrent readers without locking.
package verseindex

import (
	"fmt"
	"sort"

	"github.com/FocuswithJustin/Scriptura/core/bible"
	"github.com/FocuswithJustin/Scriptura/core/canon"
)

// chapterIndex holds one chapter's verses ordered by verse number, plus a
// dense position table for O(1) single-verse lookup.
type chapterIndex struct {
	verses []bible.Verse
	// pos maps verse number -> index into verses, -1 for gaps.
	pos []int32
}

// Index is the derived per-translation lookup structure. Book and chapter
// dimensions are small dense integers, so storage is array-backed rather than
// hashed.
type Index struct {
	meta bible.Metadata
	// chapters[book][chapter]; index 0 unused on both axes.
	chapters [canon.BookCount + 1][]chapterIndex
	flat     []bible.Verse // all verses in canonical order
}

// Build constructs the index in a single pass over the verse list. Verses
// within a chapter are kept in verse-number order; input order is not
// assumed. The input has already passed normalizer validation, so a verse
// outside the registry's declared bounds is a programming-contract violation
// and panics.
func Build(nb *bible.NormalizedBible) *Index {
	reg := canon.Default()
	idx := &Index{meta: nb.Metadata}

	for _, v := range nb.Verses {
		chapters := reg.ChapterCount(v.Book)
		if chapters == 0 {
			panic(fmt.Sprintf("verseindex: verse %s references book outside canon", v.Address()))
		}
		if v.Chapter < 1 || v.Chapter > chapters {
			panic(fmt.Sprintf("verseindex: verse %s references chapter outside registry bounds", v.Address()))
		}
		if idx.chapters[v.Book] == nil {
			idx.chapters[v.Book] = make([]chapterIndex, chapters+1)
		}
		ci := &idx.chapters[v.Book][v.Chapter]
		ci.verses = append(ci.verses, v)
	}

	total := 0
	for book := 1; book <= canon.BookCount; book++ {
		for ch := range idx.chapters[book] {
			ci := &idx.chapters[book][ch]
			if len(ci.verses) == 0 {
				continue
			}
			sort.SliceStable(ci.verses, func(i, j int) bool {
				return ci.verses[i].Verse < ci.verses[j].Verse
			})
			maxVerse := ci.verses[len(ci.verses)-1].Verse
			ci.pos = make([]int32, maxVerse+1)
			for i := range ci.pos {
				ci.pos[i] = -1
			}
			for i, v := range ci.verses {
				ci.pos[v.Verse] = int32(i)
			}
			total += len(ci.verses)
		}
	}

	idx.flat = make([]bible.Verse, 0, total)
	for book := 1; book <= canon.BookCount; book++ {
		for ch := range idx.chapters[book] {
			idx.flat = append(idx.flat, idx.chapters[book][ch].verses...)
		}
	}

	return idx
}

// Metadata returns the translation metadata the index was built from.
func (idx *Index) Metadata() bible.Metadata {
	return idx.meta
}

// Chapter returns the verses of a chapter ordered by verse number, or nil if
// the chapter holds no verses in this translation. The returned slice is
// shared; callers must not modify it.
func (idx *Index) Chapter(book, chapter int) []bible.Verse {
	ci := idx.chapter(book, chapter)
	if ci == nil {
		return nil
	}
	return ci.verses
}

// Verse returns a single verse.
func (idx *Index) Verse(book, chapter, verse int) (bible.Verse, bool) {
	ci := idx.chapter(book, chapter)
	if ci == nil || verse < 1 || verse >= len(ci.pos) {
		return bible.Verse{}, false
	}
	p := ci.pos[verse]
	if p < 0 {
		return bible.Verse{}, false
	}
	return ci.verses[p], true
}

// Text returns the text of a single verse.
func (idx *Index) Text(book, chapter, verse int) (string, bool) {
	v, ok := idx.Verse(book, chapter, verse)
	if !ok {
		return "", false
	}
	return v.Text, true
}

// VerseCount returns the number of verses present in a chapter.
func (idx *Index) VerseCount(book, chapter int) int {
	ci := idx.chapter(book, chapter)
	if ci == nil {
		return 0
	}
	return len(ci.verses)
}

// Len returns the total number of verses in the index.
func (idx *Index) Len() int {
	return len(idx.flat)
}

// Verses returns every verse in canonical book/chapter/verse order. The
// returned slice is shared; callers must not modify it.
func (idx *Index) Verses() []bible.Verse {
	return idx.flat
}

func (idx *Index) chapter(book, chapter int) *chapterIndex {
	if book < 1 || book > canon.BookCount {
		return nil
	}
	chs := idx.chapters[book]
	if chs == nil || chapter < 1 || chapter >= len(chs) {
		return nil
	}
	ci := &chs[chapter]
	if len(ci.verses) == 0 {
		return nil
	}
	return ci
}
