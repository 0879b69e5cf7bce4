package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns a clock that advances one second per call.
func fakeClock() func() time.Time {
	t := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore(t *testing.T) (*HistoryStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	hs, res := NewHistoryStore(path, WithClock(fakeClock()))
	require.True(t, res.OK())
	return hs, path
}

func readFile(t *testing.T, path string) []HistoryRecord {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []HistoryRecord
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestRecordOpenedPutsRecordFirst(t *testing.T) {
	hs, path := newTestStore(t)

	require.NoError(t, hs.RecordOpened("/docs/a.pdf", 0))
	require.NoError(t, hs.RecordOpened("/docs/b.pdf", 7))

	list := hs.List()
	require.Len(t, list, 2)
	assert.Equal(t, "/docs/b.pdf", list[0].Filepath)
	assert.Equal(t, "b.pdf", list[0].Filename)
	assert.Equal(t, 7, list[0].LastPage)
	assert.Equal(t, "2024-03-01 09:30:02", list[0].LastRead)

	assert.Equal(t, list, readFile(t, path))
}

func TestRecordOpenedDeduplicates(t *testing.T) {
	hs, _ := newTestStore(t)

	require.NoError(t, hs.RecordOpened("a.pdf", 1))
	require.NoError(t, hs.RecordOpened("a.pdf", 9))

	list := hs.List()
	require.Len(t, list, 1)
	assert.Equal(t, 9, list[0].LastPage)
}

func TestRecordOpenedScenario(t *testing.T) {
	hs, path := newTestStore(t)

	require.NoError(t, hs.RecordOpened("a.pdf", 0))
	require.NoError(t, hs.RecordOpened("b.pdf", 5))
	require.NoError(t, hs.RecordOpened("a.pdf", 2))

	list := hs.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a.pdf", list[0].Filepath)
	assert.Equal(t, 2, list[0].LastPage)
	assert.Equal(t, "b.pdf", list[1].Filepath)
	assert.Equal(t, 5, list[1].LastPage)
	assert.Equal(t, list, readFile(t, path))
}

func TestRecordOpenedEvictsOldest(t *testing.T) {
	hs, path := newTestStore(t)

	for i := 1; i <= 21; i++ {
		require.NoError(t, hs.RecordOpened(fmt.Sprintf("doc%d.pdf", i), 0))
	}

	list := hs.List()
	require.Len(t, list, MaxHistory)
	for i, r := range list {
		assert.Equal(t, fmt.Sprintf("doc%d.pdf", 21-i), r.Filepath)
	}
	_, ok := hs.Get("doc1.pdf")
	assert.False(t, ok)
	assert.Len(t, readFile(t, path), MaxHistory)
}

func TestRecordOpenedInvariantsHoldForMixedSequences(t *testing.T) {
	hs, _ := newTestStore(t)

	for i := 0; i < 200; i++ {
		p := fmt.Sprintf("doc%d.pdf", (i*7)%31)
		require.NoError(t, hs.RecordOpened(p, i))

		list := hs.List()
		assert.LessOrEqual(t, len(list), MaxHistory)
		assert.Equal(t, p, list[0].Filepath)
		assert.Equal(t, i, list[0].LastPage)

		seen := map[string]bool{}
		for _, r := range list {
			assert.False(t, seen[r.Filepath], "duplicate %s", r.Filepath)
			seen[r.Filepath] = true
		}
	}
}

func TestRecordOpenedAcceptsAnyPath(t *testing.T) {
	hs, _ := newTestStore(t)

	require.NoError(t, hs.RecordOpened("does/not/exist.pdf", 0))
	rec, ok := hs.Get("does/not/exist.pdf")
	require.True(t, ok)
	assert.Equal(t, "exist.pdf", rec.Filename)
}

func TestUpdatePageKeepsPosition(t *testing.T) {
	hs, path := newTestStore(t)

	require.NoError(t, hs.RecordOpened("a.pdf", 0))
	require.NoError(t, hs.RecordOpened("b.pdf", 0))
	require.NoError(t, hs.RecordOpened("c.pdf", 0))
	before := hs.List()

	require.NoError(t, hs.UpdatePage("b.pdf", 42))

	after := hs.List()
	require.Len(t, after, 3)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])
	assert.Equal(t, "b.pdf", after[1].Filepath)
	assert.Equal(t, 42, after[1].LastPage)
	assert.NotEqual(t, before[1].LastRead, after[1].LastRead)
	assert.Equal(t, after, readFile(t, path))
}

func TestUpdatePageUnknownPathIsNoop(t *testing.T) {
	hs, path := newTestStore(t)

	require.NoError(t, hs.RecordOpened("a.pdf", 3))
	before := hs.List()

	require.NoError(t, hs.UpdatePage("missing.pdf", 8))

	assert.Equal(t, before, hs.List())
	assert.Equal(t, before, readFile(t, path))
}

func TestUpdatePageOnEmptyStorePersistsEmptyList(t *testing.T) {
	hs, path := newTestStore(t)

	require.NoError(t, hs.UpdatePage("a.pdf", 1))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestLoadHistoryMissingFile(t *testing.T) {
	res := LoadHistory(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, res.OK())
	assert.Empty(t, res.Records)
}

func TestLoadHistoryEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	res := LoadHistory(path)
	assert.True(t, res.OK())
	assert.Empty(t, res.Records)
}

func TestLoadHistoryMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `[{"filepath": "a.pdf", "filen`},
		{"not json", `hello`},
		{"wrong shape", `{"filepath": "a.pdf"}`},
		{"wrong field type", `[{"filepath": "a.pdf", "last_page": "three"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "history.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			hs, res := NewHistoryStore(path)
			assert.False(t, res.OK())
			assert.Empty(t, res.Records)
			assert.Equal(t, 0, hs.Len())
		})
	}
}

func TestLoadHistoryUnreadable(t *testing.T) {
	// A directory in place of the file cannot be read.
	path := t.TempDir()
	res := LoadHistory(path)
	assert.False(t, res.OK())
	assert.Empty(t, res.Records)
}

func TestLoadHistoryNormalizes(t *testing.T) {
	var records []HistoryRecord
	for i := 0; i < 25; i++ {
		records = append(records, HistoryRecord{Filepath: fmt.Sprintf("d%d.pdf", i%23), LastPage: i})
	}
	records = append([]HistoryRecord{{Filepath: ""}}, records...)
	data, err := json.Marshal(records)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	res := LoadHistory(path)
	require.True(t, res.OK())
	require.Len(t, res.Records, MaxHistory)
	assert.Equal(t, "d0.pdf", res.Records[0].Filepath)
	assert.Equal(t, 0, res.Records[0].LastPage)
}

func TestHistoryRoundTrip(t *testing.T) {
	hs, path := newTestStore(t)
	for i := 0; i < 12; i++ {
		require.NoError(t, hs.RecordOpened(fmt.Sprintf("/home/u/Bücher/<%d>&.pdf", i), i*3))
	}

	reloaded, res := NewHistoryStore(path)
	require.True(t, res.OK())
	assert.Equal(t, hs.List(), reloaded.List())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Bücher/<0>&.pdf")
	assert.Contains(t, string(data), "\n  {\n")
}

func TestSaveFailureStillMutates(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	// Parent of the history file is a regular file, so writes must fail.
	hs, _ := NewHistoryStore(filepath.Join(blocker, "history.json"))

	err := hs.RecordOpened("a.pdf", 4)
	require.Error(t, err)

	rec, ok := hs.Get("a.pdf")
	require.True(t, ok)
	assert.Equal(t, 4, rec.LastPage)
}

func TestRemoveAndClear(t *testing.T) {
	hs, path := newTestStore(t)
	require.NoError(t, hs.RecordOpened("a.pdf", 0))
	require.NoError(t, hs.RecordOpened("b.pdf", 0))

	removed, err := hs.Remove("a.pdf")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 1, hs.Len())

	removed, err = hs.Remove("a.pdf")
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, hs.Clear())
	assert.Equal(t, 0, hs.Len())
	assert.Empty(t, readFile(t, path))
}

func TestLastReadTime(t *testing.T) {
	r := HistoryRecord{LastRead: "2024-03-01 09:30:05"}
	assert.Equal(t, time.Date(2024, 3, 1, 9, 30, 5, 0, time.Local), r.LastReadTime())

	assert.True(t, HistoryRecord{LastRead: "yesterday"}.LastReadTime().IsZero())
}
