package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Bookmark marks a page of a document.
type Bookmark struct {
	ID        int64
	Filepath  string
	Page      int // zero-based
	Note      string
	CreatedAt time.Time
}

// BookmarkStore manages page bookmarks persisted in SQLite.
type BookmarkStore struct {
	db *sql.DB
}

// NewBookmarkStore creates a bookmark store using the given database.
func NewBookmarkStore(db *DB) *BookmarkStore {
	return &BookmarkStore{db: db.conn}
}

// Add bookmarks a page. Returns false if the page was already bookmarked.
func (bs *BookmarkStore) Add(path string, page int, note string) (bool, error) {
	res, err := bs.db.Exec(
		`INSERT OR IGNORE INTO bookmarks (filepath, page, note) VALUES (?, ?, ?)`,
		path, page, note,
	)
	if err != nil {
		return false, fmt.Errorf("adding bookmark: %w", err)
	}
	// INSERT OR IGNORE affects no rows for a duplicate.
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Remove deletes the bookmark on a page. Returns false if none existed.
func (bs *BookmarkStore) Remove(path string, page int) (bool, error) {
	res, err := bs.db.Exec(`DELETE FROM bookmarks WHERE filepath = ? AND page = ?`, path, page)
	if err != nil {
		return false, fmt.Errorf("removing bookmark: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Has reports whether a page is bookmarked.
func (bs *BookmarkStore) Has(path string, page int) bool {
	var count int
	err := bs.db.QueryRow(
		`SELECT COUNT(*) FROM bookmarks WHERE filepath = ? AND page = ?`, path, page,
	).Scan(&count)
	return err == nil && count > 0
}

// ForDocument returns the bookmarks of one document in page order.
func (bs *BookmarkStore) ForDocument(path string) ([]Bookmark, error) {
	rows, err := bs.db.Query(
		`SELECT id, filepath, page, note, strftime('%Y-%m-%d %H:%M:%S', created_at)
		 FROM bookmarks WHERE filepath = ? ORDER BY page`,
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()
	return scanBookmarks(rows)
}

// Count returns the number of bookmarks across all documents.
func (bs *BookmarkStore) Count() int {
	var count int
	bs.db.QueryRow(`SELECT COUNT(*) FROM bookmarks`).Scan(&count)
	return count
}

func scanBookmarks(rows *sql.Rows) ([]Bookmark, error) {
	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		var createdAt string
		if err := rows.Scan(&b.ID, &b.Filepath, &b.Page, &b.Note, &createdAt); err != nil {
			continue
		}
		b.CreatedAt, _ = time.ParseInLocation(TimeLayout, createdAt, time.Local)
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// RenderBookmarks formats a document's bookmarks for the viewport.
func RenderBookmarks(path string, bookmarks []Bookmark) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  🔖 Bookmarks in %s\n", filepath.Base(path)))
	sb.WriteString("  ━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	if len(bookmarks) == 0 {
		sb.WriteString("  No bookmarks yet. Press 'b' to bookmark a page.\n")
		return sb.String()
	}

	for i, b := range bookmarks {
		sb.WriteString(fmt.Sprintf("  [%d] page %d\n", i+1, b.Page+1))
		if b.Note != "" {
			sb.WriteString(fmt.Sprintf("       %s\n", b.Note))
		}
		sb.WriteString(fmt.Sprintf("       saved %s\n\n", b.CreatedAt.Format(TimeLayout)))
	}
	sb.WriteString("  :bm <n> jumps to a bookmark\n")

	return sb.String()
}
