// Package store persists reading state (bookmarks, highlights, visit
// history) in SQLite, keyed by owner and verse position.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/Scriptura/core/sqlite"
)

// HistoryLimit bounds the number of retained history entries per owner.
const HistoryLimit = 50

// Store defines the interface for reading-state persistence.
type Store interface {
	PutBookmark(ctx context.Context, b *Bookmark) error
	GetBookmark(ctx context.Context, owner, translation string, book, chapter, verse int) (*Bookmark, error)
	DeleteBookmark(ctx context.Context, owner, id string) error
	ListBookmarks(ctx context.Context, owner string) ([]Bookmark, error)

	PutHighlight(ctx context.Context, h *Highlight) error
	GetHighlight(ctx context.Context, owner, translation string, book, chapter, verse int) (*Highlight, error)
	DeleteHighlight(ctx context.Context, owner, translation string, book, chapter, verse int) error
	ListHighlights(ctx context.Context, owner string) ([]Highlight, error)

	TouchHistory(ctx context.Context, e *HistoryEntry) error
	History(ctx context.Context, owner string) ([]HistoryEntry, error)

	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	ownsDB bool

	// Prepared statements
	insertBookmark  *sql.Stmt
	getBookmark     *sql.Stmt
	deleteBookmark  *sql.Stmt
	upsertHighlight *sql.Stmt
	getHighlight    *sql.Stmt
	deleteHighlight *sql.Stmt
	upsertHistory   *sql.Stmt
	trimHistory     *sql.Stmt
}

// Open opens (or creates) a reading-state database at path, runs
// migrations, and returns a ready store. Closing the store closes the
// underlying database.
func Open(path string) (*SQLiteStore, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := NewMigrationRunner(db).Run(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s, err := NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.ownsDB = true
	return s, nil
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and
// migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertBookmark, err = s.db.Prepare(`
		INSERT INTO bookmarks (id, owner, translation, book, chapter, verse, label, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner, translation, book, chapter, verse)
		DO UPDATE SET label = excluded.label
	`)
	if err != nil {
		return err
	}

	s.getBookmark, err = s.db.Prepare(`
		SELECT id, owner, translation, book, chapter, verse, label, created_at
		FROM bookmarks
		WHERE owner = ? AND translation = ? AND book = ? AND chapter = ? AND verse = ?
	`)
	if err != nil {
		return err
	}

	s.deleteBookmark, err = s.db.Prepare(`DELETE FROM bookmarks WHERE owner = ? AND id = ?`)
	if err != nil {
		return err
	}

	s.upsertHighlight, err = s.db.Prepare(`
		INSERT INTO highlights (id, owner, translation, book, chapter, verse, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner, translation, book, chapter, verse)
		DO UPDATE SET color = excluded.color, updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}

	s.getHighlight, err = s.db.Prepare(`
		SELECT id, owner, translation, book, chapter, verse, color, created_at, updated_at
		FROM highlights
		WHERE owner = ? AND translation = ? AND book = ? AND chapter = ? AND verse = ?
	`)
	if err != nil {
		return err
	}

	s.deleteHighlight, err = s.db.Prepare(`
		DELETE FROM highlights
		WHERE owner = ? AND translation = ? AND book = ? AND chapter = ? AND verse = ?
	`)
	if err != nil {
		return err
	}

	s.upsertHistory, err = s.db.Prepare(`
		INSERT INTO history (id, owner, translation, book, chapter, visited_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner, translation, book, chapter)
		DO UPDATE SET visited_at = excluded.visited_at
	`)
	if err != nil {
		return err
	}

	s.trimHistory, err = s.db.Prepare(`
		DELETE FROM history
		WHERE owner = ? AND id NOT IN (
			SELECT id FROM history WHERE owner = ? ORDER BY visited_at DESC LIMIT ?
		)
	`)
	if err != nil {
		return err
	}

	return nil
}

// PutBookmark inserts a bookmark, assigning its ID and creation time.
// Bookmarking an already-bookmarked position updates its label.
func (s *SQLiteStore) PutBookmark(ctx context.Context, b *Bookmark) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	tsFormatted := b.CreatedAt.UTC().Format(time.RFC3339)
	_, err := s.insertBookmark.ExecContext(ctx,
		b.ID, b.Owner, b.Translation, b.Book, b.Chapter, b.Verse, b.Label, tsFormatted,
	)
	if err != nil {
		return fmt.Errorf("insert bookmark: %w", err)
	}
	return nil
}

// GetBookmark returns the bookmark at a verse position, or nil when
// none exists.
func (s *SQLiteStore) GetBookmark(ctx context.Context, owner, translation string, book, chapter, verse int) (*Bookmark, error) {
	var b Bookmark
	var tsStr string
	err := s.getBookmark.QueryRowContext(ctx, owner, translation, book, chapter, verse).Scan(
		&b.ID, &b.Owner, &b.Translation, &b.Book, &b.Chapter, &b.Verse, &b.Label, &tsStr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark: %w", err)
	}
	b.CreatedAt, _ = parseTimestamp(tsStr)
	return &b, nil
}

// DeleteBookmark removes a bookmark by ID. Removing an absent bookmark
// is a no-op.
func (s *SQLiteStore) DeleteBookmark(ctx context.Context, owner, id string) error {
	if _, err := s.deleteBookmark.ExecContext(ctx, owner, id); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

// ListBookmarks returns an owner's bookmarks in canonical verse order.
func (s *SQLiteStore) ListBookmarks(ctx context.Context, owner string) ([]Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, translation, book, chapter, verse, label, created_at
		FROM bookmarks
		WHERE owner = ?
		ORDER BY translation, book, chapter, verse
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	var out []Bookmark
	for rows.Next() {
		var b Bookmark
		var tsStr string
		if err := rows.Scan(&b.ID, &b.Owner, &b.Translation, &b.Book, &b.Chapter, &b.Verse, &b.Label, &tsStr); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		b.CreatedAt, _ = parseTimestamp(tsStr)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Bookmark{}
	}
	return out, nil
}

// PutHighlight inserts a highlight or, when the position is already
// highlighted, replaces its color in place.
func (s *SQLiteStore) PutHighlight(ctx context.Context, h *Highlight) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	now := time.Now()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	h.UpdatedAt = now

	_, err := s.upsertHighlight.ExecContext(ctx,
		h.ID, h.Owner, h.Translation, h.Book, h.Chapter, h.Verse, h.Color,
		h.CreatedAt.UTC().Format(time.RFC3339), h.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert highlight: %w", err)
	}
	return nil
}

// GetHighlight returns the highlight at a verse position, or nil when
// none exists.
func (s *SQLiteStore) GetHighlight(ctx context.Context, owner, translation string, book, chapter, verse int) (*Highlight, error) {
	var h Highlight
	var createdStr, updatedStr string
	err := s.getHighlight.QueryRowContext(ctx, owner, translation, book, chapter, verse).Scan(
		&h.ID, &h.Owner, &h.Translation, &h.Book, &h.Chapter, &h.Verse, &h.Color, &createdStr, &updatedStr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get highlight: %w", err)
	}
	h.CreatedAt, _ = parseTimestamp(createdStr)
	h.UpdatedAt, _ = parseTimestamp(updatedStr)
	return &h, nil
}

// DeleteHighlight removes the highlight at a verse position. Removing
// an absent highlight is a no-op.
func (s *SQLiteStore) DeleteHighlight(ctx context.Context, owner, translation string, book, chapter, verse int) error {
	if _, err := s.deleteHighlight.ExecContext(ctx, owner, translation, book, chapter, verse); err != nil {
		return fmt.Errorf("delete highlight: %w", err)
	}
	return nil
}

// ListHighlights returns an owner's highlights in canonical verse order.
func (s *SQLiteStore) ListHighlights(ctx context.Context, owner string) ([]Highlight, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, translation, book, chapter, verse, color, created_at, updated_at
		FROM highlights
		WHERE owner = ?
		ORDER BY translation, book, chapter, verse
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("query highlights: %w", err)
	}
	defer rows.Close()

	var out []Highlight
	for rows.Next() {
		var h Highlight
		var createdStr, updatedStr string
		if err := rows.Scan(&h.ID, &h.Owner, &h.Translation, &h.Book, &h.Chapter, &h.Verse, &h.Color, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scan highlight: %w", err)
		}
		h.CreatedAt, _ = parseTimestamp(createdStr)
		h.UpdatedAt, _ = parseTimestamp(updatedStr)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Highlight{}
	}
	return out, nil
}

// TouchHistory records a chapter visit. Revisiting a recorded position
// moves it to the front instead of duplicating it, and the owner's
// history is trimmed to HistoryLimit entries.
func (s *SQLiteStore) TouchHistory(ctx context.Context, e *HistoryEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.VisitedAt.IsZero() {
		e.VisitedAt = time.Now()
	}
	_, err := s.upsertHistory.ExecContext(ctx,
		e.ID, e.Owner, e.Translation, e.Book, e.Chapter, e.VisitedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("upsert history: %w", err)
	}
	if _, err := s.trimHistory.ExecContext(ctx, e.Owner, e.Owner, HistoryLimit); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// History returns an owner's visit history, most recent first, at most
// HistoryLimit entries.
func (s *SQLiteStore) History(ctx context.Context, owner string) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, translation, book, chapter, visited_at
		FROM history
		WHERE owner = ?
		ORDER BY visited_at DESC
		LIMIT ?
	`, owner, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var visitedNanos int64
		if err := rows.Scan(&e.ID, &e.Owner, &e.Translation, &e.Book, &e.Chapter, &visitedNanos); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.VisitedAt = time.Unix(0, visitedNanos)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []HistoryEntry{}
	}
	return out, nil
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM (
			SELECT owner FROM bookmarks
			UNION SELECT owner FROM highlights
			UNION SELECT owner FROM history
		)
	`).Scan(&stats.Owners)
	if err != nil {
		return nil, fmt.Errorf("count owners: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookmarks").Scan(&stats.Bookmarks); err != nil {
		return nil, fmt.Errorf("count bookmarks: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM highlights").Scan(&stats.Highlights); err != nil {
		return nil, fmt.Errorf("count highlights: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history").Scan(&stats.History); err != nil {
		return nil, fmt.Errorf("count history: %w", err)
	}

	return stats, nil
}

// Close releases prepared statements and, for stores created by Open,
// the underlying database.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.insertBookmark, s.getBookmark, s.deleteBookmark,
		s.upsertHighlight, s.getHighlight, s.deleteHighlight,
		s.upsertHistory, s.trimHistory,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

// parseTimestamp tries the SQLite timestamp formats used by this schema.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}
