package canon

import (
	"testing"

	"github.com/FocuswithJustin/Scriptura/core/errors"
)

func TestLoadCount(t *testing.T) {
	r, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := len(r.Books()); got != BookCount {
		t.Errorf("got %d books, want %d", got, BookCount)
	}
	// Canonical numbering is positional and stable.
	for i, b := range r.Books() {
		if b.Number != i+1 {
			t.Errorf("book %q has number %d, want %d", b.OSIS, b.Number, i+1)
		}
	}
}

func TestResolve(t *testing.T) {
	r := Default()

	tests := []struct {
		name string
		lang string
		want int
	}{
		{"Genesis", "en", 1},
		{"genesis", "en", 1},
		{"Gen", "en", 1},
		{"Kejadian", "id", 1},
		{"kej", "id", 1},
		{"Ps", "en", 19},
		{"Psalms", "en", 19},
		{"Mzm", "id", 19},
		{"Mazmur", "id", 19},
		{"1 Samuel", "en", 9},
		{"1Sam", "en", 9},
		{"1 Raja-raja", "id", 11},
		{"Kisah Para Rasul", "id", 44},
		{"Matthew", "en", 40},
		{"Matius", "id", 40},
		{"Wahyu", "id", 66},
		{"Revelation", "en", 66},
		// English names resolve under any language.
		{"Genesis", "id", 1},
		{"Gen", "id", 1},
	}
	for _, tt := range tests {
		got, err := r.Resolve(tt.name, tt.lang)
		if err != nil {
			t.Errorf("Resolve(%q, %q) error: %v", tt.name, tt.lang, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q, %q) = %d, want %d", tt.name, tt.lang, got, tt.want)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	r := Default()
	for _, name := range []string{"", "Hezekiah", "Kitab"} {
		_, err := r.Resolve(name, "en")
		if err == nil {
			t.Errorf("Resolve(%q) succeeded, want UnknownBook", name)
			continue
		}
		if !errors.Is(err, errors.ErrUnknownBook) {
			t.Errorf("Resolve(%q) error = %v, want ErrUnknownBook", name, err)
		}
	}
}

func TestBookDescriptor(t *testing.T) {
	r := Default()

	gen, err := r.Book(1)
	if err != nil {
		t.Fatalf("Book(1) error: %v", err)
	}
	if gen.EnglishName != "Genesis" || gen.Testament != OldTestament || gen.ChapterCount != 50 {
		t.Errorf("Book(1) = %+v", gen)
	}

	matt, err := r.Book(40)
	if err != nil {
		t.Fatalf("Book(40) error: %v", err)
	}
	if matt.Testament != NewTestament || matt.ChapterCount != 28 {
		t.Errorf("Book(40) = %+v", matt)
	}

	if _, err := r.Book(0); err == nil {
		t.Error("Book(0) succeeded, want error")
	}
	if _, err := r.Book(67); err == nil {
		t.Error("Book(67) succeeded, want error")
	}
}

func TestLocalizedName(t *testing.T) {
	r := Default()
	if got := r.LocalizedName(1, "id"); got != "Kejadian" {
		t.Errorf("LocalizedName(1, id) = %q", got)
	}
	if got := r.LocalizedName(19, "id"); got != "Mazmur" {
		t.Errorf("LocalizedName(19, id) = %q", got)
	}
	// Unsupported language falls back to English.
	if got := r.LocalizedName(1, "fr"); got != "Genesis" {
		t.Errorf("LocalizedName(1, fr) = %q", got)
	}
	if got := r.LocalizedName(99, "en"); got != "" {
		t.Errorf("LocalizedName(99, en) = %q, want empty", got)
	}
}

func TestChapterCounts(t *testing.T) {
	r := Default()
	tests := map[int]int{
		1:  50,  // Genesis
		19: 150, // Psalms
		31: 1,   // Obadiah
		66: 22,  // Revelation
	}
	for num, want := range tests {
		if got := r.ChapterCount(num); got != want {
			t.Errorf("ChapterCount(%d) = %d, want %d", num, got, want)
		}
	}
}
