package store

import "time"

// Bookmark is a saved verse position belonging to an owner.
type Bookmark struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Translation string    `json:"translation"`
	Book        int       `json:"book"`
	Chapter     int       `json:"chapter"`
	Verse       int       `json:"verse"`
	Label       string    `json:"label,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Highlight is a colored marker on a single verse. At most one
// highlight exists per owner and verse position; rewriting replaces
// the color.
type Highlight struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Translation string    `json:"translation"`
	Book        int       `json:"book"`
	Chapter     int       `json:"chapter"`
	Verse       int       `json:"verse"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HistoryEntry records a visited chapter position. History is
// deduplicated per owner by (translation, book, chapter) and bounded.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Translation string    `json:"translation"`
	Book        int       `json:"book"`
	Chapter     int       `json:"chapter"`
	VisitedAt   time.Time `json:"visited_at"`
}

// Stats contains aggregate statistics about the reading-state database.
type Stats struct {
	Owners     int `json:"owners"`
	Bookmarks  int `json:"bookmarks"`
	Highlights int `json:"highlights"`
	History    int `json:"history"`
}
