// Package document opens PDF files and renders their pages as terminal text.
package document

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ledongthuc/pdf"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

var (
	// ErrNotOpen is returned when no document has been opened.
	ErrNotOpen = errors.New("no document open")
	// ErrPageRange is returned for a page index outside the document.
	ErrPageRange = errors.New("page out of range")
	// ErrNoPages is returned by Open for a file that parses but has no pages.
	ErrNoPages = errors.New("document has no pages")
)

// EmptyPage is shown for pages without extractable text (scans, images).
const EmptyPage = "(no text on this page)"

// Source is a document the viewer can page through. Page indexes are
// zero-based; width is the column count pages are laid out for. Open reports
// the page count of the document it opened.
type Source interface {
	Open(path string) (int, error)
	Path() string
	PageCount() int
	RenderPage(index, width int) (string, error)
	Close() error
}

type pageKey struct {
	index int
	width int
}

// PDF is a Source backed by github.com/ledongthuc/pdf.
type PDF struct {
	mu     sync.Mutex
	file   *os.File
	reader *pdf.Reader
	path   string
	pages  int
	cache  *lru.Cache[pageKey, string]
}

// NewPDF creates an unopened PDF source that caches up to cacheSize
// rendered pages.
func NewPDF(cacheSize int) *PDF {
	if cacheSize <= 0 {
		cacheSize = 32
	}
	cache, _ := lru.New[pageKey, string](cacheSize)
	return &PDF{cache: cache}
}

// Open replaces the current document with the file at path and returns its
// page count. On failure, including a document without pages, the previous
// document stays open.
func (d *PDF) Open(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	pages := r.NumPage()
	if pages <= 0 {
		f.Close()
		return 0, fmt.Errorf("opening %s: %w", path, ErrNoPages)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file != nil {
		d.file.Close()
	}
	d.file = f
	d.reader = r
	d.path = path
	d.pages = pages
	d.cache.Purge()
	return pages, nil
}

// Path returns the path of the open document.
func (d *PDF) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.path
}

// PageCount returns the number of pages, zero when nothing is open.
func (d *PDF) PageCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pages
}

// RenderPage extracts the text of page index and wraps it to width columns.
func (d *PDF) RenderPage(index, width int) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.reader == nil {
		return "", ErrNotOpen
	}
	if index < 0 || index >= d.pages {
		return "", fmt.Errorf("page %d of %d: %w", index+1, d.pages, ErrPageRange)
	}

	key := pageKey{index: index, width: width}
	if text, ok := d.cache.Get(key); ok {
		return text, nil
	}

	page := d.reader.Page(index + 1)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d: missing page object", index+1)
	}
	raw, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extracting page %d: %w", index+1, err)
	}

	text := Reflow(raw, width)
	d.cache.Add(key, text)
	return text, nil
}

// Close releases the open file.
func (d *PDF) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	d.reader = nil
	d.path = ""
	d.pages = 0
	d.cache.Purge()
	return err
}

// Cached reports whether a rendering of the page at width is cached.
func (d *PDF) Cached(index, width int) bool {
	return d.cache.Contains(pageKey{index: index, width: width})
}

// Reflow normalises extracted page text and wraps it to width columns.
// Words longer than a line are broken.
func Reflow(raw string, width int) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	text = strings.Trim(strings.Join(lines, "\n"), "\n")

	if text == "" {
		return EmptyPage
	}
	if width <= 0 {
		return text
	}
	return wrap.String(wordwrap.String(text, width), width)
}
