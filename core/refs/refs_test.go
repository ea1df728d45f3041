package refs

import (
	"testing"

	"github.com/FocuswithJustin/Scriptura/core/canon"
	"github.com/FocuswithJustin/Scriptura/core/errors"
)

// fixedBounds is a VerseBounds stub with a constant verse count.
type fixedBounds int

func (b fixedBounds) VerseCount(book, chapter int) int { return int(b) }

func TestNewValidation(t *testing.T) {
	reg := canon.Default()

	tests := []struct {
		name    string
		book    int
		chapter int
		vs, ve  int
		bounds  VerseBounds
		wantErr bool
	}{
		{"valid single", 1, 1, 1, 0, nil, false},
		{"valid range", 1, 1, 1, 2, nil, false},
		{"range end equals start", 1, 1, 3, 3, nil, false},
		{"book zero", 0, 1, 1, 0, nil, true},
		{"book beyond canon", 67, 1, 1, 0, nil, true},
		{"chapter beyond book", 1, 51, 1, 0, nil, true},
		{"chapter zero", 1, 0, 1, 0, nil, true},
		{"verse zero", 1, 1, 0, 0, nil, true},
		{"range end before start", 1, 1, 5, 2, nil, true},
		{"verse within bounds", 1, 1, 31, 0, fixedBounds(31), false},
		{"verse beyond bounds", 1, 1, 32, 0, fixedBounds(31), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(reg, tt.book, tt.chapter, tt.vs, tt.ve, "TB", tt.bounds)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidReference) {
				t.Errorf("error %v does not wrap ErrInvalidReference", err)
			}
		})
	}
}

func TestNewNormalizesDegenerateRange(t *testing.T) {
	reg := canon.Default()
	ref, err := New(reg, 1, 1, 3, 3, "TB", nil)
	if err != nil {
		t.Fatal(err)
	}
	if ref.VerseEnd != 0 || ref.IsRange() {
		t.Errorf("degenerate range kept VerseEnd=%d", ref.VerseEnd)
	}
}

func TestFormat(t *testing.T) {
	reg := canon.Default()

	tests := []struct {
		ref    Reference
		lang   string
		showTr bool
		want   string
	}{
		{Reference{Book: 1, Chapter: 1, VerseStart: 1, VerseEnd: 2, Translation: "TB"}, "id", true, "Kejadian 1:1-2 (TB)"},
		{Reference{Book: 1, Chapter: 1, VerseStart: 1, Translation: "TB"}, "id", true, "Kejadian 1:1 (TB)"},
		{Reference{Book: 1, Chapter: 1, VerseStart: 1, Translation: "TB"}, "id", false, "Kejadian 1:1"},
		{Reference{Book: 1, Chapter: 1, VerseStart: 1, VerseEnd: 2, Translation: "TB"}, "en", true, "Genesis 1:1-2 (TB)"},
		{Reference{Book: 19, Chapter: 23, VerseStart: 1, VerseEnd: 6, Translation: "TB"}, "id", true, "Mazmur 23:1-6 (TB)"},
		// English edition codes collapse to the default code in the Indonesian UI.
		{Reference{Book: 43, Chapter: 3, VerseStart: 16, Translation: "KJV"}, "id", true, "Yohanes 3:16 (TB)"},
		// Unmapped codes pass through unchanged.
		{Reference{Book: 43, Chapter: 3, VerseStart: 16, Translation: "LXX"}, "id", true, "Yohanes 3:16 (LXX)"},
		// No translation set: suffix omitted even when requested.
		{Reference{Book: 66, Chapter: 22, VerseStart: 21}, "en", true, "Revelation 22:21"},
	}
	for _, tt := range tests {
		if got := Format(reg, tt.ref, tt.lang, tt.showTr); got != tt.want {
			t.Errorf("Format(%+v, %q, %v) = %q, want %q", tt.ref, tt.lang, tt.showTr, got, tt.want)
		}
	}
}

func TestParseFreeText(t *testing.T) {
	reg := canon.Default()

	tests := []struct {
		text string
		lang string
		want Reference
	}{
		{"Kejadian 1:1", "id", Reference{Book: 1, Chapter: 1, VerseStart: 1}},
		{"Kejadian 1:1-2", "id", Reference{Book: 1, Chapter: 1, VerseStart: 1, VerseEnd: 2}},
		{"Kejadian 1:1-2 (TB)", "id", Reference{Book: 1, Chapter: 1, VerseStart: 1, VerseEnd: 2, Translation: "TB"}},
		{"Mzm 23:1", "id", Reference{Book: 19, Chapter: 23, VerseStart: 1}},
		{"1 Samuel 17:4", "en", Reference{Book: 9, Chapter: 17, VerseStart: 4}},
		{"1 Raja-raja 2:1", "id", Reference{Book: 11, Chapter: 2, VerseStart: 1}},
		{"Kisah Para Rasul 2:41", "id", Reference{Book: 44, Chapter: 2, VerseStart: 41}},
		{"john 3:16", "en", Reference{Book: 43, Chapter: 3, VerseStart: 16}},
		{"  Wahyu 22:21  ", "id", Reference{Book: 66, Chapter: 22, VerseStart: 21}},
	}
	for _, tt := range tests {
		got, err := ParseFreeText(reg, tt.text, tt.lang)
		if err != nil {
			t.Errorf("ParseFreeText(%q) error: %v", tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFreeText(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}
}

func TestParseFreeTextErrors(t *testing.T) {
	reg := canon.Default()

	for _, text := range []string{
		"",
		"Kejadian",
		"Kejadian 1",
		"Nabi Palsu 1:1",
		"Kejadian 99:1",
		"Kejadian 1:5-2",
	} {
		_, err := ParseFreeText(reg, text, "id")
		if err == nil {
			t.Errorf("ParseFreeText(%q) succeeded, want error", text)
			continue
		}
		if !errors.Is(err, errors.ErrParse) && !errors.Is(err, errors.ErrUnknownBook) && !errors.Is(err, errors.ErrInvalidReference) {
			t.Errorf("ParseFreeText(%q) error = %v, outside taxonomy", text, err)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	reg := canon.Default()

	for _, ref := range []Reference{
		{Book: 1, Chapter: 1, VerseStart: 1, Translation: "TB"},
		{Book: 1, Chapter: 1, VerseStart: 1, VerseEnd: 2, Translation: "TB"},
		{Book: 19, Chapter: 119, VerseStart: 105, Translation: "TB"},
		{Book: 44, Chapter: 2, VerseStart: 41, Translation: "TB"},
		{Book: 11, Chapter: 2, VerseStart: 1, VerseEnd: 4, Translation: "TB"},
		{Book: 66, Chapter: 22, VerseStart: 20, VerseEnd: 21, Translation: "TB"},
	} {
		for _, lang := range []string{"id", "en"} {
			text := Format(reg, ref, lang, true)
			got, err := ParseFreeText(reg, text, lang)
			if err != nil {
				t.Errorf("round trip %q (%s): %v", text, lang, err)
				continue
			}
			if got != ref {
				t.Errorf("round trip %q (%s) = %+v, want %+v", text, lang, got, ref)
			}
		}
	}
}
