// Package search implements fuzzy full-text search over a built verse index.
//
// Search is a pure read against an immutable index: no state is mutated and
// any number of readers may query concurrently. Results are deterministic for
// identical input: descending relevance, ties broken by canonical book,
// chapter, verse ascending.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/Scriptura/core/errors"
	"github.com/FocuswithJustin/Scriptura/core/refs"
	"github.com/FocuswithJustin/Scriptura/core/verseindex"
)

// MinRelevance is the floor below which matches are discarded. An empty
// result list is a valid outcome, not an error.
const MinRelevance = 0.5

// Result is one ranked search hit. Ephemeral: produced per query, never
// persisted.
type Result struct {
	// Ref addresses the matched verse (always single-verse).
	Ref refs.Reference `json:"ref"`

	// MatchedText is the verse text the match was scored against.
	MatchedText string `json:"matched_text"`

	// Score is the relevance in (0, 1].
	Score float64 `json:"score"`
}

// Search ranks the verses of idx against a free-text query. limit must be a
// positive cap on the number of results; zero or negative is an input error,
// never "unbounded". Scoring is language-independent; localized display
// formatting of result references is the library facade's job.
func Search(idx *verseindex.Index, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidLimit, "limit %d", limit)
	}

	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil, nil
	}

	translation := idx.Metadata().Code
	var results []Result
	for _, v := range idx.Verses() {
		score := scoreVerse(queryTokens, tokenize(v.Text))
		if score < MinRelevance {
			continue
		}
		results = append(results, Result{
			Ref: refs.Reference{
				Book:        v.Book,
				Chapter:     v.Chapter,
				VerseStart:  v.Verse,
				Translation: translation,
			},
			MatchedText: v.Text,
			Score:       score,
		})
	}

	// Verses were visited in canonical order, so a stable sort on score alone
	// yields the documented tie-break.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// scoreVerse scores a verse as the mean, over query tokens, of each token's
// best match among the verse tokens. Exact matches score 1.0, prefix matches
// scale with the covered fraction, and near-misses fall back to edit-distance
// similarity.
func scoreVerse(queryTokens, verseTokens []string) float64 {
	if len(verseTokens) == 0 {
		return 0
	}
	total := 0.0
	for _, qt := range queryTokens {
		total += bestTokenScore(qt, verseTokens)
	}
	return total / float64(len(queryTokens))
}

func bestTokenScore(qt string, verseTokens []string) float64 {
	best := 0.0
	for _, vt := range verseTokens {
		s := tokenScore(qt, vt)
		if s > best {
			best = s
			if best == 1.0 {
				break
			}
		}
	}
	return best
}

func tokenScore(qt, vt string) float64 {
	if qt == vt {
		return 1.0
	}
	if strings.HasPrefix(vt, qt) {
		return 0.9 * float64(len(qt)) / float64(len(vt))
	}
	qr, vr := []rune(qt), []rune(vt)
	longest := len(qr)
	if len(vr) > longest {
		longest = len(vr)
	}
	if longest == 0 {
		return 0
	}
	sim := 1.0 - float64(editDistance(qr, vr))/float64(longest)
	if sim < 0.6 {
		return 0
	}
	return 0.9 * sim
}

// editDistance is the Levenshtein distance over runes, two-row variant.
func editDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
