// Package canon provides the canonical book registry: the fixed, ordered
// catalog of the 66 canonical books keyed by stable numbers 1..66, with
// display names and abbreviations per supported language.
//
// The registry is immutable once loaded and shared process-wide. Lookup never
// falls back to a default book: a name that resolves to nothing is an
// UnknownBook error.
package canon

import (
	"strings"
	"sync"

	"github.com/FocuswithJustin/Scriptura/core/errors"
)

// Testament identifies which testament a book belongs to.
type Testament string

// Testament values.
const (
	OldTestament Testament = "OT"
	NewTestament Testament = "NT"
)

// BookCount is the number of canonical books. The registry refuses to load
// with any other count.
const BookCount = 66

// Supported language codes for localized names.
const (
	LangEnglish    = "en"
	LangIndonesian = "id"
)

// BookDescriptor describes one canonical book.
type BookDescriptor struct {
	// Number is the stable canonical book number (1..66).
	Number int `json:"number"`

	// OSIS is the OSIS book ID (e.g., "Gen", "Matt", "1John").
	OSIS string `json:"osis"`

	// EnglishName is the English display name.
	EnglishName string `json:"english_name"`

	// LocalizedNames maps language codes to display names.
	LocalizedNames map[string]string `json:"localized_names"`

	// Testament is OT or NT.
	Testament Testament `json:"testament"`

	// ChapterCount is the number of chapters in the KJV-derived canon.
	ChapterCount int `json:"chapter_count"`
}

// bookData is one row of the canon table.
type bookData struct {
	osis     string
	english  string
	indo     string
	chapters int
	// Extra lookup keys beyond the lowercased full names and OSIS ID.
	abbrevEN []string
	abbrevID []string
}

// canonTable lists all 66 books in canonical order. Chapter counts follow the
// KJV versification. Indonesian names and abbreviations follow the
// Terjemahan Baru naming.
var canonTable = []bookData{
	// Old Testament
	{"Gen", "Genesis", "Kejadian", 50, []string{"gn"}, []string{"kej"}},
	{"Exod", "Exodus", "Keluaran", 40, []string{"ex"}, []string{"kel"}},
	{"Lev", "Leviticus", "Imamat", 27, []string{"lv"}, []string{"im"}},
	{"Num", "Numbers", "Bilangan", 36, []string{"nm"}, []string{"bil"}},
	{"Deut", "Deuteronomy", "Ulangan", 34, []string{"dt"}, []string{"ul"}},
	{"Josh", "Joshua", "Yosua", 24, []string{"jos"}, []string{"yos"}},
	{"Judg", "Judges", "Hakim-hakim", 21, []string{"jdg"}, []string{"hak"}},
	{"Ruth", "Ruth", "Rut", 4, []string{"ru"}, []string{"rut"}},
	{"1Sam", "1 Samuel", "1 Samuel", 31, []string{"1 sam"}, []string{"1sam"}},
	{"2Sam", "2 Samuel", "2 Samuel", 24, []string{"2 sam"}, []string{"2sam"}},
	{"1Kgs", "1 Kings", "1 Raja-raja", 22, []string{"1 kgs", "1 kings"}, []string{"1raj", "1 raj"}},
	{"2Kgs", "2 Kings", "2 Raja-raja", 25, []string{"2 kgs", "2 kings"}, []string{"2raj", "2 raj"}},
	{"1Chr", "1 Chronicles", "1 Tawarikh", 29, []string{"1 chr"}, []string{"1taw", "1 taw"}},
	{"2Chr", "2 Chronicles", "2 Tawarikh", 36, []string{"2 chr"}, []string{"2taw", "2 taw"}},
	{"Ezra", "Ezra", "Ezra", 10, []string{"ezr"}, []string{"ezr"}},
	{"Neh", "Nehemiah", "Nehemia", 13, nil, nil},
	{"Esth", "Esther", "Ester", 10, []string{"est"}, []string{"est"}},
	{"Job", "Job", "Ayub", 42, nil, []string{"ayb"}},
	{"Ps", "Psalms", "Mazmur", 150, []string{"psa", "psalm", "pss"}, []string{"mzm"}},
	{"Prov", "Proverbs", "Amsal", 31, []string{"prv"}, []string{"ams"}},
	{"Eccl", "Ecclesiastes", "Pengkhotbah", 12, []string{"ecc", "qoh"}, []string{"pkh"}},
	{"Song", "Song of Solomon", "Kidung Agung", 8, []string{"sos", "canticles"}, []string{"kid"}},
	{"Isa", "Isaiah", "Yesaya", 66, nil, []string{"yes"}},
	{"Jer", "Jeremiah", "Yeremia", 52, nil, []string{"yer"}},
	{"Lam", "Lamentations", "Ratapan", 5, nil, []string{"rat"}},
	{"Ezek", "Ezekiel", "Yehezkiel", 48, []string{"eze"}, []string{"yeh"}},
	{"Dan", "Daniel", "Daniel", 12, nil, nil},
	{"Hos", "Hosea", "Hosea", 14, nil, nil},
	{"Joel", "Joel", "Yoel", 3, []string{"jl"}, []string{"yl"}},
	{"Amos", "Amos", "Amos", 9, []string{"am"}, []string{"am"}},
	{"Obad", "Obadiah", "Obaja", 1, []string{"oba"}, []string{"ob"}},
	{"Jonah", "Jonah", "Yunus", 4, []string{"jon"}, []string{"yun"}},
	{"Mic", "Micah", "Mikha", 7, nil, []string{"mi"}},
	{"Nah", "Nahum", "Nahum", 3, nil, nil},
	{"Hab", "Habakkuk", "Habakuk", 3, nil, nil},
	{"Zeph", "Zephaniah", "Zefanya", 3, []string{"zep"}, []string{"zef"}},
	{"Hag", "Haggai", "Hagai", 2, nil, nil},
	{"Zech", "Zechariah", "Zakharia", 14, []string{"zec"}, []string{"za"}},
	{"Mal", "Malachi", "Maleakhi", 4, nil, nil},
	// New Testament
	{"Matt", "Matthew", "Matius", 28, []string{"mt"}, []string{"mat"}},
	{"Mark", "Mark", "Markus", 16, []string{"mk"}, []string{"mrk"}},
	{"Luke", "Luke", "Lukas", 24, []string{"lk"}, []string{"luk"}},
	{"John", "John", "Yohanes", 21, []string{"jn", "jhn"}, []string{"yoh"}},
	{"Acts", "Acts", "Kisah Para Rasul", 28, []string{"act"}, []string{"kis", "kisah"}},
	{"Rom", "Romans", "Roma", 16, []string{"rm"}, []string{"rm"}},
	{"1Cor", "1 Corinthians", "1 Korintus", 16, []string{"1 cor"}, []string{"1kor", "1 kor"}},
	{"2Cor", "2 Corinthians", "2 Korintus", 13, []string{"2 cor"}, []string{"2kor", "2 kor"}},
	{"Gal", "Galatians", "Galatia", 6, nil, nil},
	{"Eph", "Ephesians", "Efesus", 6, nil, []string{"ef"}},
	{"Phil", "Philippians", "Filipi", 4, []string{"php"}, []string{"flp"}},
	{"Col", "Colossians", "Kolose", 4, nil, []string{"kol"}},
	{"1Thess", "1 Thessalonians", "1 Tesalonika", 5, []string{"1 thess", "1 thes"}, []string{"1tes", "1 tes"}},
	{"2Thess", "2 Thessalonians", "2 Tesalonika", 3, []string{"2 thess", "2 thes"}, []string{"2tes", "2 tes"}},
	{"1Tim", "1 Timothy", "1 Timotius", 6, []string{"1 tim"}, []string{"1tim"}},
	{"2Tim", "2 Timothy", "2 Timotius", 4, []string{"2 tim"}, []string{"2tim"}},
	{"Titus", "Titus", "Titus", 3, []string{"tit"}, []string{"tit"}},
	{"Phlm", "Philemon", "Filemon", 1, []string{"phm"}, []string{"flm"}},
	{"Heb", "Hebrews", "Ibrani", 13, nil, []string{"ibr"}},
	{"Jas", "James", "Yakobus", 5, []string{"jam"}, []string{"yak"}},
	{"1Pet", "1 Peter", "1 Petrus", 5, []string{"1 pet"}, []string{"1ptr", "1 ptr"}},
	{"2Pet", "2 Peter", "2 Petrus", 3, []string{"2 pet"}, []string{"2ptr", "2 ptr"}},
	{"1John", "1 John", "1 Yohanes", 5, []string{"1 john", "1jn"}, []string{"1yoh", "1 yoh"}},
	{"2John", "2 John", "2 Yohanes", 1, []string{"2 john", "2jn"}, []string{"2yoh", "2 yoh"}},
	{"3John", "3 John", "3 Yohanes", 1, []string{"3 john", "3jn"}, []string{"3yoh", "3 yoh"}},
	{"Jude", "Jude", "Yudas", 1, []string{"jud"}, []string{"yud"}},
	{"Rev", "Revelation", "Wahyu", 22, []string{"apocalypse"}, []string{"why", "wah"}},
}

// ntStart is the canonical number of the first New Testament book (Matthew).
const ntStart = 40

// Registry is the loaded, immutable book catalog.
type Registry struct {
	books  []BookDescriptor
	byName map[string]map[string]int // language -> lowercased name -> number
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the shared process-wide registry, loading it on first use.
// The canon table is compiled in, so this cannot fail unless the table itself
// is corrupt, which MustLoad treats as fatal.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = MustLoad()
	})
	return defaultReg
}

// Load builds the registry from the compiled-in canon table. It validates the
// standing invariant that the table holds exactly BookCount entries; any
// mismatch means a corrupt build and the surrounding system must refuse to
// start.
func Load() (*Registry, error) {
	if len(canonTable) != BookCount {
		return nil, errors.Wrapf(errors.ErrInternal,
			"canon table has %d books, want %d", len(canonTable), BookCount)
	}

	r := &Registry{
		books: make([]BookDescriptor, BookCount),
		byName: map[string]map[string]int{
			LangEnglish:    make(map[string]int),
			LangIndonesian: make(map[string]int),
		},
	}

	for i, b := range canonTable {
		num := i + 1
		testament := OldTestament
		if num >= ntStart {
			testament = NewTestament
		}
		r.books[i] = BookDescriptor{
			Number:      num,
			OSIS:        b.osis,
			EnglishName: b.english,
			LocalizedNames: map[string]string{
				LangEnglish:    b.english,
				LangIndonesian: b.indo,
			},
			Testament:    testament,
			ChapterCount: b.chapters,
		}

		r.addName(LangEnglish, b.osis, num)
		r.addName(LangEnglish, b.english, num)
		for _, a := range b.abbrevEN {
			r.addName(LangEnglish, a, num)
		}
		r.addName(LangIndonesian, b.indo, num)
		for _, a := range b.abbrevID {
			r.addName(LangIndonesian, a, num)
		}
	}

	return r, nil
}

// MustLoad loads the registry and panics on error. Registry corruption is not
// a recoverable condition.
func MustLoad() *Registry {
	r, err := Load()
	if err != nil {
		panic("canon: " + err.Error())
	}
	return r
}

func (r *Registry) addName(lang, name string, num int) {
	r.byName[lang][strings.ToLower(name)] = num
}

// Resolve maps a book name or abbreviation in the given language to its
// canonical number. Lookup is case-insensitive. Names from the English table
// (including OSIS IDs) resolve regardless of the requested language, since
// source data and user input mix them freely.
func (r *Registry) Resolve(name, language string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return 0, errors.NewUnknownBook(name, language)
	}

	if names, ok := r.byName[language]; ok {
		if num, ok := names[key]; ok {
			return num, nil
		}
	}
	if language != LangEnglish {
		if num, ok := r.byName[LangEnglish][key]; ok {
			return num, nil
		}
	}
	return 0, errors.NewUnknownBook(name, language)
}

// Book returns the descriptor for a canonical book number.
func (r *Registry) Book(number int) (BookDescriptor, error) {
	if number < 1 || number > BookCount {
		return BookDescriptor{}, errors.NewInvalidReference(number, 0, 0, "book number out of range")
	}
	return r.books[number-1], nil
}

// LocalizedName returns the display name of a book in the given language,
// falling back to English for unsupported languages. Out-of-range numbers
// return the empty string.
func (r *Registry) LocalizedName(number int, language string) string {
	if number < 1 || number > BookCount {
		return ""
	}
	b := r.books[number-1]
	if name, ok := b.LocalizedNames[language]; ok {
		return name
	}
	return b.EnglishName
}

// Books returns all descriptors in canonical order. The returned slice is
// shared; callers must not modify it.
func (r *Registry) Books() []BookDescriptor {
	return r.books
}

// ChapterCount returns the chapter count for a book, or 0 if the number is
// out of range.
func (r *Registry) ChapterCount(number int) int {
	if number < 1 || number > BookCount {
		return 0
	}
	return r.books[number-1].ChapterCount
}
