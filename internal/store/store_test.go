package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBookmarkRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := &Bookmark{Owner: "alice", Translation: "TB", Book: 19, Chapter: 23, Verse: 1, Label: "favorit"}
	require.NoError(t, s.PutBookmark(ctx, b))
	assert.NotEmpty(t, b.ID)

	got, err := s.ListBookmarks(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, "favorit", got[0].Label)
	assert.Equal(t, 19, got[0].Book)

	other, err := s.ListBookmarks(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGetBookmark(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.GetBookmark(ctx, "alice", "TB", 19, 23, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	b := &Bookmark{Owner: "alice", Translation: "TB", Book: 19, Chapter: 23, Verse: 1, Label: "favorit"}
	require.NoError(t, s.PutBookmark(ctx, b))

	got, err = s.GetBookmark(ctx, "alice", "TB", 19, 23, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, "favorit", got.Label)

	got, err = s.GetBookmark(ctx, "bob", "TB", 19, 23, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBookmarkRewriteUpdatesLabel(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &Bookmark{Owner: "alice", Translation: "TB", Book: 1, Chapter: 1, Verse: 1, Label: "a"}
	require.NoError(t, s.PutBookmark(ctx, first))
	second := &Bookmark{Owner: "alice", Translation: "TB", Book: 1, Chapter: 1, Verse: 1, Label: "b"}
	require.NoError(t, s.PutBookmark(ctx, second))

	got, err := s.ListBookmarks(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Label)
}

func TestDeleteBookmarkAbsentIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	assert.NoError(t, s.DeleteBookmark(ctx, "alice", "no-such-id"))
}

func TestHighlightReplaceColor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	h := &Highlight{Owner: "alice", Translation: "TB", Book: 43, Chapter: 3, Verse: 16, Color: "yellow"}
	require.NoError(t, s.PutHighlight(ctx, h))

	h2 := &Highlight{Owner: "alice", Translation: "TB", Book: 43, Chapter: 3, Verse: 16, Color: "green"}
	require.NoError(t, s.PutHighlight(ctx, h2))

	got, err := s.GetHighlight(ctx, "alice", "TB", 43, 3, 16)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "green", got.Color)

	all, err := s.ListHighlights(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestHighlightMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.GetHighlight(ctx, "alice", "TB", 1, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, s.DeleteHighlight(ctx, "alice", "TB", 1, 1, 1))
}

func TestHistoryDedupAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now()

	visits := []struct {
		book, chapter int
		at            time.Time
	}{
		{1, 1, base},
		{19, 23, base.Add(1 * time.Second)},
		{43, 3, base.Add(2 * time.Second)},
		{1, 1, base.Add(3 * time.Second)}, // revisit moves to front
	}
	for _, v := range visits {
		e := &HistoryEntry{Owner: "alice", Translation: "TB", Book: v.book, Chapter: v.chapter, VisitedAt: v.at}
		require.NoError(t, s.TouchHistory(ctx, e))
	}

	got, err := s.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Book)
	assert.Equal(t, 43, got[1].Book)
	assert.Equal(t, 19, got[2].Book)
}

func TestHistoryBounded(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < HistoryLimit+10; i++ {
		e := &HistoryEntry{
			Owner:       "alice",
			Translation: "TB",
			Book:        19,
			Chapter:     i + 1,
			VisitedAt:   base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, s.TouchHistory(ctx, e))
	}

	got, err := s.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, HistoryLimit)
	// Newest survives, oldest ten are gone.
	assert.Equal(t, HistoryLimit+10, got[0].Chapter)
	assert.Equal(t, 11, got[len(got)-1].Chapter)
}

func TestHistoryPerOwnerIsolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.TouchHistory(ctx, &HistoryEntry{Owner: "alice", Translation: "TB", Book: 1, Chapter: 1}))
	require.NoError(t, s.TouchHistory(ctx, &HistoryEntry{Owner: "bob", Translation: "TB", Book: 2, Chapter: 3}))

	alice, err := s.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, alice, 1)
	assert.Equal(t, 1, alice[0].Book)

	bob, err := s.History(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bob, 1)
	assert.Equal(t, 2, bob[0].Book)
}

func TestGetStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutBookmark(ctx, &Bookmark{Owner: "alice", Translation: "TB", Book: 1, Chapter: 1, Verse: 1}))
	require.NoError(t, s.PutHighlight(ctx, &Highlight{Owner: "bob", Translation: "TB", Book: 1, Chapter: 1, Verse: 1, Color: "blue"}))
	require.NoError(t, s.TouchHistory(ctx, &HistoryEntry{Owner: "alice", Translation: "TB", Book: 1, Chapter: 1}))

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Owners)
	assert.Equal(t, 1, stats.Bookmarks)
	assert.Equal(t, 1, stats.Highlights)
	assert.Equal(t, 1, stats.History)
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening re-runs the migration runner against the same file.
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	stats, err := s2.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Bookmarks)
}
