package normalize

import (
	"testing"

	"github.com/FocuswithJustin/Scriptura/core/bible"
	"github.com/FocuswithJustin/Scriptura/core/canon"
	"github.com/FocuswithJustin/Scriptura/core/errors"
)

func rawTB() *RawBible {
	return &RawBible{
		Meta: bible.Metadata{Code: "TB", DisplayName: "Terjemahan Baru", Language: "id"},
		Verses: []RawVerse{
			{Book: "Kejadian", Chapter: 1, Verse: 1, Text: "Pada mulanya Allah menciptakan langit dan bumi."},
			{Book: "Kejadian", Chapter: 1, Verse: 2, Text: "Bumi itu belum berbentuk dan kosong."},
			{Book: "Mazmur", Chapter: 23, Verse: 1, Text: "TUHAN adalah gembalaku."},
		},
	}
}

func TestNormalize(t *testing.T) {
	nb, err := Normalize(rawTB(), NewAdapter("id", nil), canon.Default())
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	if len(nb.Verses) != 3 {
		t.Fatalf("got %d verses, want 3", len(nb.Verses))
	}
	if nb.Verses[0].Book != 1 || nb.Verses[2].Book != 19 {
		t.Errorf("verses not re-keyed canonically: %+v", nb.Verses)
	}
	if len(nb.Books) != 2 || nb.Books[0].Number != 1 || nb.Books[1].Number != 19 {
		t.Errorf("book extents = %+v", nb.Books)
	}
	if nb.Books[1].ChapterCount != 23 {
		t.Errorf("Mazmur extent = %d, want 23", nb.Books[1].ChapterCount)
	}
}

func TestNormalizeDuplicateVerse(t *testing.T) {
	raw := rawTB()
	raw.Verses = append(raw.Verses, RawVerse{Book: "Kej", Chapter: 1, Verse: 2, Text: "dup"})

	_, err := Normalize(raw, NewAdapter("id", nil), canon.Default())
	if err == nil {
		t.Fatal("Normalize() succeeded with duplicate triple")
	}
	if !errors.Is(err, errors.ErrDuplicateVerse) {
		t.Errorf("error = %v, want ErrDuplicateVerse", err)
	}

	var dup *errors.DuplicateVerseError
	if !errors.As(err, &dup) {
		t.Fatalf("error %v does not carry the offending triple", err)
	}
	if dup.Book != 1 || dup.Chapter != 1 || dup.Verse != 2 {
		t.Errorf("offending triple = %d:%d:%d, want 1:1:2", dup.Book, dup.Chapter, dup.Verse)
	}
}

func TestNormalizeUnknownBook(t *testing.T) {
	raw := rawTB()
	raw.Verses[1].Book = "Kitab Hilang"

	_, err := Normalize(raw, NewAdapter("id", nil), canon.Default())
	if err == nil {
		t.Fatal("Normalize() succeeded with unknown book")
	}
	if !errors.Is(err, errors.ErrUnknownBook) {
		t.Errorf("error = %v, want ErrUnknownBook", err)
	}
	var ne *errors.NormalizationError
	if !errors.As(err, &ne) || ne.Code != "TB" {
		t.Errorf("error %v does not identify translation TB", err)
	}
}

func TestNormalizeOutOfBounds(t *testing.T) {
	raw := rawTB()
	raw.Verses[0].Chapter = 51 // Genesis has 50

	if _, err := Normalize(raw, NewAdapter("id", nil), canon.Default()); err == nil {
		t.Fatal("Normalize() accepted out-of-bounds chapter")
	}
}

func TestAdapterAliases(t *testing.T) {
	raw := rawTB()
	raw.Verses[0].Book = "KEJ." // source-specific spelling

	ad := NewAdapter("id", map[string]string{"kej.": "Kejadian"})
	nb, err := Normalize(raw, ad, canon.Default())
	if err != nil {
		t.Fatalf("Normalize() with alias adapter: %v", err)
	}
	if nb.Verses[0].Book != 1 {
		t.Errorf("aliased book resolved to %d, want 1", nb.Verses[0].Book)
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"meta": {"code": "TB", "display_name": "Terjemahan Baru", "language": "id", "year": 1974},
		"verses": [
			{"book": "Kejadian", "chapter": 1, "verse": 1, "text": "Pada mulanya..."},
			{"book": "Kejadian", "chapter": 1, "verse": 2, "text": "Bumi itu belum berbentuk..."}
		]
	}`)

	raw, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON() error: %v", err)
	}
	if raw.Meta.Code != "TB" || raw.Meta.Year != 1974 {
		t.Errorf("meta = %+v", raw.Meta)
	}
	if len(raw.Verses) != 2 || raw.Verses[1].Verse != 2 {
		t.Errorf("verses = %+v", raw.Verses)
	}

	if _, err := ParseJSON([]byte(`{"meta":{"code":"X"},"verses":[]}`)); err == nil {
		t.Error("ParseJSON accepted empty verse list")
	}
	if _, err := ParseJSON([]byte(`not json`)); err == nil {
		t.Error("ParseJSON accepted malformed input")
	}
}

func TestParseXML(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<bible code="TB" name="Terjemahan Baru" lang="id" year="1974">
  <book name="Kejadian">
    <chapter number="1">
      <verse number="1">Pada mulanya Allah menciptakan langit dan bumi.</verse>
      <verse number="2">Bumi itu belum berbentuk dan kosong.</verse>
    </chapter>
  </book>
  <book name="Mazmur">
    <chapter number="23">
      <verse number="1">TUHAN adalah gembalaku.</verse>
    </chapter>
  </book>
</bible>`)

	raw, err := ParseXML(data)
	if err != nil {
		t.Fatalf("ParseXML() error: %v", err)
	}
	if raw.Meta.Code != "TB" || raw.Meta.Language != "id" || raw.Meta.Year != 1974 {
		t.Errorf("meta = %+v", raw.Meta)
	}
	if len(raw.Verses) != 3 {
		t.Fatalf("got %d verses, want 3", len(raw.Verses))
	}
	if raw.Verses[2].Book != "Mazmur" || raw.Verses[2].Chapter != 23 {
		t.Errorf("verses[2] = %+v", raw.Verses[2])
	}

	// End to end: XML payload through the normalizer.
	nb, err := Normalize(raw, NewAdapter("id", nil), canon.Default())
	if err != nil {
		t.Fatalf("Normalize(ParseXML(...)) error: %v", err)
	}
	if len(nb.Verses) != 3 {
		t.Errorf("normalized %d verses, want 3", len(nb.Verses))
	}

	if _, err := ParseXML([]byte(`<notbible/>`)); err == nil {
		t.Error("ParseXML accepted payload without <bible>")
	}
}
