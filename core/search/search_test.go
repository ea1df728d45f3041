package search

import (
	"reflect"
	"testing"

	"github.com/FocuswithJustin/Scriptura/core/bible"
	"github.com/FocuswithJustin/Scriptura/core/errors"
	"github.com/FocuswithJustin/Scriptura/core/verseindex"
)

func testIndex() *verseindex.Index {
	return verseindex.Build(&bible.NormalizedBible{
		Metadata: bible.Metadata{Code: "TB", Language: "id"},
		Verses: []bible.Verse{
			{Book: 1, Chapter: 1, Verse: 1, Text: "Pada mulanya Allah menciptakan langit dan bumi."},
			{Book: 1, Chapter: 1, Verse: 2, Text: "Bumi itu belum berbentuk dan kosong."},
			{Book: 19, Chapter: 23, Verse: 1, Text: "TUHAN adalah gembalaku, takkan kekurangan aku."},
			{Book: 43, Chapter: 1, Verse: 16, Text: "Karena dari kepenuhan-Nya kita semua telah menerima kasih karunia demi kasih karunia."},
			{Book: 43, Chapter: 1, Verse: 17, Text: "Sebab hukum Taurat diberikan oleh Musa, tetapi kasih karunia dan kebenaran datang oleh Yesus Kristus."},
		},
	})
}

func TestSearchExactWord(t *testing.T) {
	idx := testIndex()

	results, err := Search(idx, "kasih", 5)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no results for exact word in corpus")
	}
	for _, r := range results {
		if r.Score <= 0 {
			t.Errorf("result %+v has non-positive score", r.Ref)
		}
		if r.Ref.Translation != "TB" {
			t.Errorf("result translation = %q, want TB", r.Ref.Translation)
		}
	}
	if results[0].Ref.Book != 43 || results[0].Ref.Chapter != 1 || results[0].Ref.VerseStart != 16 {
		t.Errorf("first result = %+v, want John 1:16", results[0].Ref)
	}
}

func TestSearchMisspelled(t *testing.T) {
	idx := testIndex()

	// One edit away from "gembalaku".
	results, err := Search(idx, "gembalaka", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("no results for near-miss query")
	}
	if results[0].Ref.Book != 19 {
		t.Errorf("first result book = %d, want 19", results[0].Ref.Book)
	}
}

func TestSearchNoMatch(t *testing.T) {
	idx := testIndex()

	results, err := Search(idx, "zzzzqqqq", 5)
	if err != nil {
		t.Fatalf("no-match query returned error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results below any plausible relevance, want 0", len(results))
	}
}

func TestSearchInvalidLimit(t *testing.T) {
	idx := testIndex()

	for _, limit := range []int{0, -1} {
		if _, err := Search(idx, "kasih", limit); !errors.Is(err, errors.ErrInvalidLimit) {
			t.Errorf("Search(limit=%d) error = %v, want ErrInvalidLimit", limit, err)
		}
	}
}

func TestSearchLimit(t *testing.T) {
	idx := testIndex()

	results, err := Search(idx, "dan", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) > 1 {
		t.Errorf("got %d results, limit was 1", len(results))
	}
}

func TestSearchDeterministic(t *testing.T) {
	idx := testIndex()

	a, err := Search(idx, "kasih karunia", 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Search(idx, "kasih karunia", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical queries returned different results:\n%+v\n%+v", a, b)
	}
}

func TestSearchTieBreakCanonical(t *testing.T) {
	// Two verses with identical text tie on score; canonical order decides.
	idx := verseindex.Build(&bible.NormalizedBible{
		Metadata: bible.Metadata{Code: "X"},
		Verses: []bible.Verse{
			{Book: 43, Chapter: 1, Verse: 1, Text: "terang dunia"},
			{Book: 1, Chapter: 1, Verse: 3, Text: "terang dunia"},
		},
	})

	results, err := Search(idx, "terang", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Ref.Book != 1 || results[1].Ref.Book != 43 {
		t.Errorf("tie not broken canonically: %+v then %+v", results[0].Ref, results[1].Ref)
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"kasih", "kasih", 0},
		{"kasih", "kasih3", 1},
		{"gembalaku", "gembalaka", 1},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := editDistance([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
