// Package library manages installed translations and their verse
// indexes. Installs go through the normalizer, indexes are built
// lazily on first access, deduplicated across concurrent callers, and
// cached by payload fingerprint until the translation is reinstalled.
package library

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/Scriptura/core/bible"
	"github.com/FocuswithJustin/Scriptura/core/canon"
	"github.com/FocuswithJustin/Scriptura/core/errors"
	"github.com/FocuswithJustin/Scriptura/core/normalize"
	"github.com/FocuswithJustin/Scriptura/core/refs"
	"github.com/FocuswithJustin/Scriptura/core/search"
	"github.com/FocuswithJustin/Scriptura/core/verseindex"
)

// Format identifies a source payload format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// DefaultCacheSize bounds the number of built indexes kept in memory.
const DefaultCacheSize = 8

// source is an installed translation: its normalized form plus the
// fingerprint of the raw payload it was built from.
type source struct {
	fingerprint string
	normalized  *bible.NormalizedBible
}

// buildFlight tracks an in-progress index build so concurrent callers
// share one result instead of building in parallel.
type buildFlight struct {
	done chan struct{}
	idx  *verseindex.Index
}

// SearchHit is a search result enriched with a display string
// localized for the caller's language.
type SearchHit struct {
	search.Result
	Display string
}

// Library is the keyed store of installed translations.
type Library struct {
	reg *canon.Registry
	log *slog.Logger

	mu       sync.Mutex
	sources  map[string]*source
	inflight map[string]*buildFlight
	cache    *indexCache
}

// New creates an empty library backed by the given registry.
// cacheSize bounds the number of built indexes kept in memory; zero or
// negative selects DefaultCacheSize. A nil logger falls back to
// slog.Default.
func New(reg *canon.Registry, cacheSize int, log *slog.Logger) *Library {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if log == nil {
		log = slog.Default()
	}
	return &Library{
		reg:      reg,
		log:      log,
		sources:  make(map[string]*source),
		inflight: make(map[string]*buildFlight),
		cache:    newIndexCache(cacheSize),
	}
}

// Fingerprint returns the hex BLAKE3 digest of a raw payload.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Install parses and normalizes a raw payload and publishes it under
// its translation code. Reinstalling the same code replaces the prior
// source; a failed install leaves the prior source serving. Installing
// a byte-identical payload is a no-op.
func (l *Library) Install(data []byte, format Format, ad normalize.Adapter) (bible.Metadata, error) {
	var (
		raw *normalize.RawBible
		err error
	)
	switch format {
	case FormatJSON:
		raw, err = normalize.ParseJSON(data)
	case FormatXML:
		raw, err = normalize.ParseXML(data)
	default:
		return bible.Metadata{}, errors.Wrapf(errors.ErrInternal, "unsupported payload format %q", format)
	}
	if err != nil {
		return bible.Metadata{}, err
	}

	nb, err := normalize.Normalize(raw, ad, l.reg)
	if err != nil {
		return bible.Metadata{}, err
	}

	fp := Fingerprint(data)
	code := nb.Metadata.Code

	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.sources[code]; ok {
		if prev.fingerprint == fp {
			return nb.Metadata, nil
		}
		l.cache.Remove(prev.fingerprint)
	}
	l.sources[code] = &source{fingerprint: fp, normalized: nb}
	// Any in-flight build for the old payload completes under its old
	// fingerprint and is simply not reused.
	delete(l.inflight, code)

	l.log.Info("translation installed",
		"code", code,
		"language", nb.Metadata.Language,
		"verses", len(nb.Verses),
		"fingerprint", fp[:12])
	return nb.Metadata, nil
}

// Remove unpublishes a translation and drops its cached index.
func (l *Library) Remove(code string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	src, ok := l.sources[code]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "translation %q", code)
	}
	l.cache.Remove(src.fingerprint)
	delete(l.sources, code)
	delete(l.inflight, code)
	l.log.Info("translation removed", "code", code)
	return nil
}

// Index returns the verse index for a translation, building it on
// first access. Concurrent callers for the same translation share a
// single build.
func (l *Library) Index(code string) (*verseindex.Index, error) {
	l.mu.Lock()
	src, ok := l.sources[code]
	if !ok {
		l.mu.Unlock()
		return nil, errors.Wrapf(errors.ErrNotFound, "translation %q", code)
	}
	if idx, ok := l.cache.Get(src.fingerprint); ok {
		l.mu.Unlock()
		return idx, nil
	}
	if fl, ok := l.inflight[code]; ok {
		l.mu.Unlock()
		<-fl.done
		return fl.idx, nil
	}
	fl := &buildFlight{done: make(chan struct{})}
	l.inflight[code] = fl
	l.mu.Unlock()

	idx := verseindex.Build(src.normalized)

	l.mu.Lock()
	l.cache.Put(src.fingerprint, idx)
	if cur, ok := l.inflight[code]; ok && cur == fl {
		delete(l.inflight, code)
	}
	l.mu.Unlock()

	fl.idx = idx
	close(fl.done)

	l.log.Debug("index built", "code", code, "verses", idx.Len())
	return idx, nil
}

// Metadata returns the metadata of an installed translation.
func (l *Library) Metadata(code string) (bible.Metadata, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	src, ok := l.sources[code]
	if !ok {
		return bible.Metadata{}, errors.Wrapf(errors.ErrNotFound, "translation %q", code)
	}
	return src.normalized.Metadata, nil
}

// Translations lists installed translation metadata sorted by code.
func (l *Library) Translations() []bible.Metadata {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]bible.Metadata, 0, len(l.sources))
	for _, src := range l.sources {
		out = append(out, src.normalized.Metadata)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Verse returns a single verse from an installed translation.
func (l *Library) Verse(code string, book, chapter, verse int) (bible.Verse, error) {
	idx, err := l.Index(code)
	if err != nil {
		return bible.Verse{}, err
	}
	v, ok := idx.Verse(book, chapter, verse)
	if !ok {
		return bible.Verse{}, errors.Wrapf(errors.ErrNotFound, "%s %d:%d:%d", code, book, chapter, verse)
	}
	return v, nil
}

// Chapter returns all verses of a chapter in canonical order.
func (l *Library) Chapter(code string, book, chapter int) ([]bible.Verse, error) {
	idx, err := l.Index(code)
	if err != nil {
		return nil, err
	}
	vs := idx.Chapter(book, chapter)
	if len(vs) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "%s %d:%d", code, book, chapter)
	}
	return vs, nil
}

// Resolve validates a reference against an installed translation's
// actual verse extents.
func (l *Library) Resolve(code string, book, chapter, verseStart, verseEnd int) (refs.Reference, error) {
	idx, err := l.Index(code)
	if err != nil {
		return refs.Reference{}, err
	}
	return refs.New(l.reg, book, chapter, verseStart, verseEnd, code, idx)
}

// Search runs a fuzzy query against a translation and formats each
// hit's reference for the given display language.
func (l *Library) Search(code, query string, limit int, language string) ([]SearchHit, error) {
	idx, err := l.Index(code)
	if err != nil {
		return nil, err
	}
	results, err := search.Search(idx, query, limit)
	if err != nil {
		return nil, err
	}
	hits := make([]SearchHit, len(results))
	for i, r := range results {
		hits[i] = SearchHit{
			Result:  r,
			Display: refs.Format(l.reg, r.Ref, language, true),
		}
	}
	return hits, nil
}

// CacheStats reports index cache statistics.
func (l *Library) CacheStats() Stats {
	return l.cache.Stats()
}

// String implements fmt.Stringer for diagnostics.
func (l *Library) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fmt.Sprintf("library(%d translations)", len(l.sources))
}
