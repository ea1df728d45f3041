// Package readingstate tracks per-owner reading state: bookmarks,
// highlights, and visit history. State lives in memory and is keyed by
// owner; every mutation for one owner is serialized, owners never
// block each other. An optional persister mirrors mutations to
// durable storage.
package readingstate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/Scriptura/internal/store"
)

// HistoryLimit bounds the number of retained history entries per owner.
const HistoryLimit = store.HistoryLimit

// Position addresses a single verse within a translation.
type Position struct {
	Translation string
	Book        int
	Chapter     int
	Verse       int
}

func (p Position) String() string {
	return fmt.Sprintf("%s/%d/%d/%d", p.Translation, p.Book, p.Chapter, p.Verse)
}

// chapterKey identifies the containing chapter, the dedup key for
// history entries.
type chapterKey struct {
	Translation string
	Book        int
	Chapter     int
}

// Bookmark is a saved verse position.
type Bookmark struct {
	ID        string
	Pos       Position
	Label     string
	CreatedAt time.Time
}

// Highlight is a colored marker on a verse. One per position;
// re-highlighting replaces the color.
type Highlight struct {
	ID        string
	Pos       Position
	Color     string
	UpdatedAt time.Time
}

// Visit records a visited chapter.
type Visit struct {
	Translation string
	Book        int
	Chapter     int
	VisitedAt   time.Time
}

// Persister mirrors tracker mutations to durable storage.
// *store.SQLiteStore satisfies it.
type Persister interface {
	PutBookmark(ctx context.Context, b *store.Bookmark) error
	DeleteBookmark(ctx context.Context, owner, id string) error
	ListBookmarks(ctx context.Context, owner string) ([]store.Bookmark, error)
	PutHighlight(ctx context.Context, h *store.Highlight) error
	DeleteHighlight(ctx context.Context, owner, translation string, book, chapter, verse int) error
	ListHighlights(ctx context.Context, owner string) ([]store.Highlight, error)
	TouchHistory(ctx context.Context, e *store.HistoryEntry) error
	History(ctx context.Context, owner string) ([]store.HistoryEntry, error)
}

// ownerState holds one owner's state. Its mutex serializes all
// mutations for that owner, including the persister write.
type ownerState struct {
	mu         sync.Mutex
	bookmarks  map[Position]Bookmark
	highlights map[Position]Highlight
	history    []Visit // front = most recent
}

func newOwnerState() *ownerState {
	return &ownerState{
		bookmarks:  make(map[Position]Bookmark),
		highlights: make(map[Position]Highlight),
	}
}

// Tracker is the in-memory reading-state tracker.
type Tracker struct {
	mu      sync.Mutex
	owners  map[string]*ownerState
	persist Persister
	log     *slog.Logger
}

// New creates a tracker. persist may be nil for memory-only operation;
// a nil logger falls back to slog.Default.
func New(persist Persister, log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{
		owners:  make(map[string]*ownerState),
		persist: persist,
		log:     log,
	}
}

// owner returns the state for an owner, creating it on first use.
func (t *Tracker) owner(name string) *ownerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.owners[name]
	if !ok {
		st = newOwnerState()
		t.owners[name] = st
	}
	return st
}

// AddBookmark saves a verse position. Bookmarking an already-saved
// position updates its label and keeps the original entry.
func (t *Tracker) AddBookmark(ctx context.Context, owner string, pos Position, label string) (Bookmark, error) {
	st := t.owner(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	b, ok := st.bookmarks[pos]
	if ok {
		b.Label = label
	} else {
		b = Bookmark{ID: uuid.NewString(), Pos: pos, Label: label, CreatedAt: time.Now()}
	}
	st.bookmarks[pos] = b

	if t.persist != nil {
		rec := &store.Bookmark{
			ID: b.ID, Owner: owner,
			Translation: pos.Translation, Book: pos.Book, Chapter: pos.Chapter, Verse: pos.Verse,
			Label: label, CreatedAt: b.CreatedAt,
		}
		if err := t.persist.PutBookmark(ctx, rec); err != nil {
			return Bookmark{}, fmt.Errorf("persist bookmark: %w", err)
		}
	}
	t.log.Debug("bookmark saved", "owner", owner, "pos", pos.String())
	return b, nil
}

// RemoveBookmark deletes the bookmark at a position. Removing an
// absent bookmark is a no-op.
func (t *Tracker) RemoveBookmark(ctx context.Context, owner string, pos Position) error {
	st := t.owner(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	b, ok := st.bookmarks[pos]
	if !ok {
		return nil
	}
	delete(st.bookmarks, pos)

	if t.persist != nil {
		if err := t.persist.DeleteBookmark(ctx, owner, b.ID); err != nil {
			return fmt.Errorf("persist bookmark removal: %w", err)
		}
	}
	return nil
}

// Bookmark returns the bookmark at a position, if any.
func (t *Tracker) Bookmark(owner string, pos Position) (Bookmark, bool) {
	st := t.owner(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	b, ok := st.bookmarks[pos]
	return b, ok
}

// Bookmarks returns an owner's bookmarks in canonical verse order.
func (t *Tracker) Bookmarks(owner string) []Bookmark {
	st := t.owner(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]Bookmark, 0, len(st.bookmarks))
	for _, b := range st.bookmarks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return posLess(out[i].Pos, out[j].Pos) })
	return out
}

// SetHighlight marks a verse with a color. Highlighting an already
// highlighted verse replaces the color in place.
func (t *Tracker) SetHighlight(ctx context.Context, owner string, pos Position, color string) (Highlight, error) {
	st := t.owner(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	h, ok := st.highlights[pos]
	if !ok {
		h = Highlight{ID: uuid.NewString(), Pos: pos}
	}
	h.Color = color
	h.UpdatedAt = time.Now()
	st.highlights[pos] = h

	if t.persist != nil {
		rec := &store.Highlight{
			ID: h.ID, Owner: owner,
			Translation: pos.Translation, Book: pos.Book, Chapter: pos.Chapter, Verse: pos.Verse,
			Color: color,
		}
		if err := t.persist.PutHighlight(ctx, rec); err != nil {
			return Highlight{}, fmt.Errorf("persist highlight: %w", err)
		}
	}
	return h, nil
}

// Highlight returns the highlight at a position, if any.
func (t *Tracker) Highlight(owner string, pos Position) (Highlight, bool) {
	st := t.owner(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	h, ok := st.highlights[pos]
	return h, ok
}

// RemoveHighlight clears the highlight at a position. Removing an
// absent highlight is a no-op.
func (t *Tracker) RemoveHighlight(ctx context.Context, owner string, pos Position) error {
	st := t.owner(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.highlights[pos]; !ok {
		return nil
	}
	delete(st.highlights, pos)

	if t.persist != nil {
		err := t.persist.DeleteHighlight(ctx, owner, pos.Translation, pos.Book, pos.Chapter, pos.Verse)
		if err != nil {
			return fmt.Errorf("persist highlight removal: %w", err)
		}
	}
	return nil
}

// Highlights returns an owner's highlights in canonical verse order.
func (t *Tracker) Highlights(owner string) []Highlight {
	st := t.owner(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]Highlight, 0, len(st.highlights))
	for _, h := range st.highlights {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return posLess(out[i].Pos, out[j].Pos) })
	return out
}

// RecordVisit pushes a chapter visit onto the owner's history.
// Revisiting a recorded chapter moves it to the front instead of
// duplicating it; history is bounded at HistoryLimit entries with the
// oldest evicted first.
func (t *Tracker) RecordVisit(ctx context.Context, owner, translation string, book, chapter int) error {
	st := t.owner(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	key := chapterKey{Translation: translation, Book: book, Chapter: chapter}
	visit := Visit{Translation: translation, Book: book, Chapter: chapter, VisitedAt: time.Now()}

	kept := st.history[:0]
	for _, v := range st.history {
		if (chapterKey{v.Translation, v.Book, v.Chapter}) != key {
			kept = append(kept, v)
		}
	}
	st.history = append([]Visit{visit}, kept...)
	if len(st.history) > HistoryLimit {
		st.history = st.history[:HistoryLimit]
	}

	if t.persist != nil {
		rec := &store.HistoryEntry{
			Owner: owner, Translation: translation, Book: book, Chapter: chapter,
			VisitedAt: visit.VisitedAt,
		}
		if err := t.persist.TouchHistory(ctx, rec); err != nil {
			return fmt.Errorf("persist visit: %w", err)
		}
	}
	return nil
}

// MostRecentVisit returns the owner's latest visit, if any history
// exists.
func (t *Tracker) MostRecentVisit(owner string) (Visit, bool) {
	st := t.owner(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.history) == 0 {
		return Visit{}, false
	}
	return st.history[0], true
}

// History returns an owner's visit history, most recent first.
func (t *Tracker) History(owner string) []Visit {
	st := t.owner(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]Visit, len(st.history))
	copy(out, st.history)
	return out
}

// Hydrate loads an owner's persisted state into memory, replacing any
// in-memory state for that owner. It is a no-op without a persister.
func (t *Tracker) Hydrate(ctx context.Context, owner string) error {
	if t.persist == nil {
		return nil
	}

	bookmarks, err := t.persist.ListBookmarks(ctx, owner)
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}
	highlights, err := t.persist.ListHighlights(ctx, owner)
	if err != nil {
		return fmt.Errorf("load highlights: %w", err)
	}
	history, err := t.persist.History(ctx, owner)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	st := t.owner(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.bookmarks = make(map[Position]Bookmark, len(bookmarks))
	for _, b := range bookmarks {
		pos := Position{Translation: b.Translation, Book: b.Book, Chapter: b.Chapter, Verse: b.Verse}
		st.bookmarks[pos] = Bookmark{ID: b.ID, Pos: pos, Label: b.Label, CreatedAt: b.CreatedAt}
	}

	st.highlights = make(map[Position]Highlight, len(highlights))
	for _, h := range highlights {
		pos := Position{Translation: h.Translation, Book: h.Book, Chapter: h.Chapter, Verse: h.Verse}
		st.highlights[pos] = Highlight{ID: h.ID, Pos: pos, Color: h.Color, UpdatedAt: h.UpdatedAt}
	}

	st.history = make([]Visit, len(history))
	for i, e := range history {
		st.history[i] = Visit{Translation: e.Translation, Book: e.Book, Chapter: e.Chapter, VisitedAt: e.VisitedAt}
	}

	t.log.Debug("reading state hydrated",
		"owner", owner,
		"bookmarks", len(bookmarks),
		"highlights", len(highlights),
		"history", len(history))
	return nil
}

func posLess(a, b Position) bool {
	if a.Translation != b.Translation {
		return a.Translation < b.Translation
	}
	if a.Book != b.Book {
		return a.Book < b.Book
	}
	if a.Chapter != b.Chapter {
		return a.Chapter < b.Chapter
	}
	return a.Verse < b.Verse
}
