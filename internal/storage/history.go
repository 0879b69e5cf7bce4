package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MaxHistory is the number of documents the history keeps.
const MaxHistory = 20

// TimeLayout is the on-disk format of HistoryRecord.LastRead.
const TimeLayout = "2006-01-02 15:04:05"

// HistoryRecord represents a previously opened document.
type HistoryRecord struct {
	Filepath string `json:"filepath"`
	Filename string `json:"filename"`
	LastPage int    `json:"last_page"` // zero-based
	LastRead string `json:"last_read"`
}

// LastReadTime parses LastRead in local time. The zero time is returned
// when the stored value is malformed.
func (r HistoryRecord) LastReadTime() time.Time {
	t, err := time.ParseInLocation(TimeLayout, r.LastRead, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// LoadResult is the outcome of reading the history file. Records is always
// usable; Err is set when the file existed but could not be read or parsed,
// in which case Records is empty.
type LoadResult struct {
	Records []HistoryRecord
	Err     error
}

// OK reports whether the file was read cleanly (or did not exist).
func (r LoadResult) OK() bool {
	return r.Err == nil
}

// LoadHistory reads the history file at path. A missing or empty file yields
// an empty list without error.
func LoadHistory(path string) LoadResult {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LoadResult{}
		}
		return LoadResult{Err: fmt.Errorf("reading history: %w", err)}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return LoadResult{}
	}

	var records []HistoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return LoadResult{Err: fmt.Errorf("parsing history: %w", err)}
	}
	return LoadResult{Records: normalize(records)}
}

// normalize enforces the list invariants on data read from disk: no empty
// keys, one record per path (first wins), at most MaxHistory entries.
func normalize(records []HistoryRecord) []HistoryRecord {
	seen := make(map[string]bool, len(records))
	out := make([]HistoryRecord, 0, len(records))
	for _, r := range records {
		if r.Filepath == "" || seen[r.Filepath] {
			continue
		}
		seen[r.Filepath] = true
		out = append(out, r)
		if len(out) == MaxHistory {
			break
		}
	}
	return out
}

// HistoryStore manages the most-recently-opened document list. Every
// mutation is written through to disk before it returns. It is not safe
// for concurrent use; the app only touches it from the update loop.
type HistoryStore struct {
	records []HistoryRecord
	path    string
	now     func() time.Time
}

// HistoryOption configures a HistoryStore.
type HistoryOption func(*HistoryStore)

// WithClock overrides the time source used for LastRead.
func WithClock(now func() time.Time) HistoryOption {
	return func(hs *HistoryStore) {
		hs.now = now
	}
}

// NewHistoryStore loads the history file at path. The store is always
// returned; the LoadResult tells the caller whether anything was discarded.
func NewHistoryStore(path string, opts ...HistoryOption) (*HistoryStore, LoadResult) {
	hs := &HistoryStore{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(hs)
	}

	res := LoadHistory(path)
	hs.records = res.Records
	return hs, res
}

// Path returns the location of the history file.
func (hs *HistoryStore) Path() string {
	return hs.path
}

// RecordOpened moves filepath to the front of the list with the given page,
// evicting the oldest entry past MaxHistory. The in-memory list is updated
// even when the write fails.
func (hs *HistoryStore) RecordOpened(path string, page int) error {
	filtered := make([]HistoryRecord, 0, len(hs.records)+1)
	filtered = append(filtered, HistoryRecord{
		Filepath: path,
		Filename: filepath.Base(path),
		LastPage: page,
		LastRead: hs.timestamp(),
	})
	for _, r := range hs.records {
		if r.Filepath != path {
			filtered = append(filtered, r)
		}
	}

	if len(filtered) > MaxHistory {
		filtered = filtered[:MaxHistory]
	}
	hs.records = filtered

	return hs.save()
}

// UpdatePage sets the last page of an existing record without moving it.
// Unknown paths leave the list untouched; the file is rewritten either way.
func (hs *HistoryStore) UpdatePage(path string, page int) error {
	for i := range hs.records {
		if hs.records[i].Filepath == path {
			hs.records[i].LastPage = page
			hs.records[i].LastRead = hs.timestamp()
			break
		}
	}
	return hs.save()
}

// Get returns the record for path.
func (hs *HistoryStore) Get(path string) (HistoryRecord, bool) {
	for _, r := range hs.records {
		if r.Filepath == path {
			return r, true
		}
	}
	return HistoryRecord{}, false
}

// List returns all records, most recent first.
func (hs *HistoryStore) List() []HistoryRecord {
	result := make([]HistoryRecord, len(hs.records))
	copy(result, hs.records)
	return result
}

// Remove deletes the record for path. Returns false if it was not tracked.
func (hs *HistoryStore) Remove(path string) (bool, error) {
	for i, r := range hs.records {
		if r.Filepath == path {
			hs.records = append(hs.records[:i], hs.records[i+1:]...)
			return true, hs.save()
		}
	}
	return false, nil
}

// Clear removes all records.
func (hs *HistoryStore) Clear() error {
	hs.records = nil
	return hs.save()
}

// Len returns the number of records.
func (hs *HistoryStore) Len() int {
	return len(hs.records)
}

func (hs *HistoryStore) timestamp() string {
	return hs.now().Local().Format(TimeLayout)
}

func (hs *HistoryStore) save() error {
	records := hs.records
	if records == nil {
		records = []HistoryRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(hs.path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	if err := os.WriteFile(hs.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}
