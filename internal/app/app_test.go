package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/tpdf/internal/document"
	"github.com/vidyasagar/tpdf/internal/storage"
)

// fakeSource is an in-memory document.Source.
type fakeSource struct {
	pages  map[string]int
	fail   map[string]error
	path   string
	count  int
	closed int
}

func newFakeSource() *fakeSource {
	return &fakeSource{pages: map[string]int{}, fail: map[string]error{}}
}

func (f *fakeSource) Open(path string) (int, error) {
	if err := f.fail[path]; err != nil {
		return 0, err
	}
	n, ok := f.pages[path]
	if !ok {
		n = 5
	}
	f.path = path
	f.count = n
	return n, nil
}

func (f *fakeSource) Path() string   { return f.path }
func (f *fakeSource) PageCount() int { return f.count }

func (f *fakeSource) RenderPage(index, width int) (string, error) {
	if f.path == "" {
		return "", document.ErrNotOpen
	}
	if index < 0 || index >= f.count {
		return "", document.ErrPageRange
	}
	return fmt.Sprintf("page %d of %s", index+1, filepath.Base(f.path)), nil
}

func (f *fakeSource) Close() error {
	f.closed++
	f.path = ""
	f.count = 0
	return nil
}

type harness struct {
	t    *testing.T
	m    Model
	src  *fakeSource
	hist *storage.HistoryStore
	dir  string
}

func newHarness(t *testing.T, historyPath string, setup ...func(*storage.HistoryStore)) *harness {
	t.Helper()
	dir := t.TempDir()
	if historyPath == "" {
		historyPath = filepath.Join(dir, "history.json")
	}
	hist, _ := storage.NewHistoryStore(historyPath)
	for _, fn := range setup {
		fn(hist)
	}

	h := &harness{t: t, src: newFakeSource(), hist: hist, dir: dir}
	h.m = New(Options{Source: h.src, History: hist})
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return h
}

// touch creates an empty file so the history panel treats it as present.
func (h *harness) touch(name string) string {
	h.t.Helper()
	p := filepath.Join(h.dir, name)
	require.NoError(h.t, os.WriteFile(p, nil, 0o644))
	return p
}

// send delivers msg and discards the resulting command.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	res, cmd := h.m.Update(msg)
	h.m = res.(Model)
	return cmd
}

// run delivers msg and follows document open and render commands to completion.
func (h *harness) run(msg tea.Msg) {
	cmd := h.send(msg)
	for cmd != nil {
		next := cmd()
		switch next.(type) {
		case documentOpenedMsg, pageRenderedMsg:
			cmd = h.send(next)
		default:
			return
		}
	}
}

func (h *harness) command(line string) {
	h.send(runeKey(':'))
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	h.run(tea.KeyMsg{Type: tea.KeyEnter})
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestStartsInHistoryMode(t *testing.T) {
	h := newHarness(t, "")
	assert.Equal(t, ModeHistory, h.m.mode)
	assert.Contains(t, h.m.View(), "HISTORY")
}

func TestOpenCommandRecordsHistory(t *testing.T) {
	h := newHarness(t, "")
	path := h.touch("a.pdf")

	h.command("open " + path + " 3")

	assert.Equal(t, ModeRead, h.m.mode)
	assert.Equal(t, path, h.m.docPath)
	assert.Equal(t, 2, h.m.page)
	assert.Equal(t, "page 3 of a.pdf", h.m.pageContent)

	rec, ok := h.hist.Get(path)
	require.True(t, ok)
	assert.Equal(t, 2, rec.LastPage)
	assert.Equal(t, "a.pdf", rec.Filename)
}

func TestOpenOutOfRangePageStartsAtFirst(t *testing.T) {
	h := newHarness(t, "")
	path := h.touch("a.pdf")
	h.src.pages[path] = 2

	h.command("open " + path + " 9")

	assert.Equal(t, 0, h.m.page)
	rec, _ := h.hist.Get(path)
	assert.Equal(t, 0, rec.LastPage)
}

func TestPagingUpdatesHistoryWithoutReordering(t *testing.T) {
	h := newHarness(t, "")
	a := h.touch("a.pdf")
	b := h.touch("b.pdf")

	h.command("open " + a)
	h.command("open " + b)
	require.Equal(t, b, h.hist.List()[0].Filepath)

	h.run(tea.KeyMsg{Type: tea.KeyRight})
	h.run(runeKey('l'))
	assert.Equal(t, 2, h.m.page)
	assert.Equal(t, "page 3 of b.pdf", h.m.pageContent)

	h.run(runeKey('h'))
	assert.Equal(t, 1, h.m.page)

	list := h.hist.List()
	assert.Equal(t, b, list[0].Filepath)
	assert.Equal(t, 1, list[0].LastPage)
	assert.Equal(t, a, list[1].Filepath)
	assert.Equal(t, 0, list[1].LastPage)
}

func TestPagingStopsAtBounds(t *testing.T) {
	h := newHarness(t, "")
	path := h.touch("a.pdf")
	h.src.pages[path] = 3

	h.command("open " + path)
	h.run(runeKey('h'))
	assert.Equal(t, 0, h.m.page)

	h.run(runeKey('G'))
	assert.Equal(t, 2, h.m.page)
	h.run(runeKey('l'))
	assert.Equal(t, 2, h.m.page)

	h.send(runeKey('g'))
	h.run(runeKey('g'))
	assert.Equal(t, 0, h.m.page)
}

func TestGotoCommand(t *testing.T) {
	h := newHarness(t, "")
	path := h.touch("a.pdf")
	h.command("open " + path)

	h.command("goto 4")
	assert.Equal(t, 3, h.m.page)

	h.command("goto 40")
	assert.Equal(t, 3, h.m.page)

	h.command("goto x")
	assert.Contains(t, h.m.statusBar.Message(), "Invalid page")
}

func TestHistoryEnterResumesLastPage(t *testing.T) {
	var path string
	h := newHarness(t, "", func(hs *storage.HistoryStore) {
		path = filepath.Join(filepath.Dir(hs.Path()), "resume.pdf")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		require.NoError(t, hs.RecordOpened(path, 3))
	})

	h.run(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeRead, h.m.mode)
	assert.Equal(t, path, h.m.docPath)
	assert.Equal(t, 3, h.m.page)
	assert.Equal(t, "page 4 of resume.pdf", h.m.pageContent)
}

func TestHistoryEnterMissingFileWarns(t *testing.T) {
	h := newHarness(t, "", func(hs *storage.HistoryStore) {
		require.NoError(t, hs.RecordOpened("/nonexistent/gone.pdf", 1))
	})

	cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, ModeHistory, h.m.mode)
	assert.Contains(t, h.m.statusBar.Message(), "File not found")
	assert.Equal(t, "", h.m.docPath)
}

func TestHistoryDeleteForgetsEntry(t *testing.T) {
	h := newHarness(t, "", func(hs *storage.HistoryStore) {
		require.NoError(t, hs.RecordOpened("/tmp/one.pdf", 0))
		require.NoError(t, hs.RecordOpened("/tmp/two.pdf", 0))
	})

	h.send(runeKey('d'))

	require.Equal(t, 1, h.hist.Len())
	assert.Equal(t, "/tmp/one.pdf", h.hist.List()[0].Filepath)
}

func TestHistorySaveFailureWarns(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	h := newHarness(t, filepath.Join(blocker, "history.json"))
	path := h.touch("a.pdf")

	h.command("open " + path)

	assert.Equal(t, ModeRead, h.m.mode)
	assert.Contains(t, h.m.statusBar.Message(), "History not saved")
	_, ok := h.hist.Get(path)
	assert.True(t, ok)
}

func TestOpenFailureShowsError(t *testing.T) {
	h := newHarness(t, "")
	path := h.touch("broken.pdf")
	h.src.fail[path] = errors.New("malformed PDF")

	h.command("open " + path)

	assert.Equal(t, ModeHistory, h.m.mode)
	assert.Contains(t, h.m.statusBar.Message(), "Cannot open broken.pdf")
	assert.Equal(t, 0, h.hist.Len())
}

func TestStaleRenderIgnored(t *testing.T) {
	h := newHarness(t, "")
	path := h.touch("a.pdf")
	h.command("open " + path)

	h.send(pageRenderedMsg{path: path, page: 4, content: "stale"})
	assert.Equal(t, "page 1 of a.pdf", h.m.pageContent)
}

func TestCloseReturnsToHistory(t *testing.T) {
	h := newHarness(t, "")
	path := h.touch("a.pdf")
	h.command("open " + path)

	h.command("close")

	assert.Equal(t, ModeHistory, h.m.mode)
	assert.Equal(t, "", h.m.docPath)
	assert.Equal(t, 1, h.src.closed)
	assert.True(t, h.m.historyPanel.IsVisible())
}

func TestClearHistoryCommand(t *testing.T) {
	h := newHarness(t, "")
	path := h.touch("a.pdf")
	h.command("open " + path)

	h.command("clearhistory")

	assert.Equal(t, 0, h.hist.Len())
	assert.Equal(t, "History cleared", h.m.statusBar.Message())
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t, "")
	h.command("frobnicate")
	assert.Contains(t, h.m.statusBar.Message(), "Unknown command: frobnicate")
}

func TestHelpAndEscRestoresPage(t *testing.T) {
	h := newHarness(t, "")
	path := h.touch("a.pdf")
	h.command("open " + path)

	h.send(runeKey('?'))
	assert.True(t, h.m.aux)

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, h.m.aux)
	assert.Contains(t, h.m.View(), "page 1 of a.pdf")
}

func TestBookmarks(t *testing.T) {
	h := newHarness(t, "")
	db, err := storage.OpenDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	h.m.bookmarks = storage.NewBookmarkStore(db)

	path := h.touch("a.pdf")
	h.command("open " + path)
	h.run(runeKey('l'))

	h.send(runeKey('b'))
	assert.True(t, h.m.bookmarks.Has(path, 1))
	assert.Equal(t, "Bookmarked page 2", h.m.statusBar.Message())

	h.run(runeKey('G'))
	h.command("bm 1")
	assert.Equal(t, 1, h.m.page)

	h.command("bookmarks")
	assert.True(t, h.m.aux)

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	h.send(runeKey('b'))
	assert.False(t, h.m.bookmarks.Has(path, 1))
}

func TestMenuBarShowsOnTopRow(t *testing.T) {
	h := newHarness(t, "")
	assert.False(t, h.m.menuBar.IsVisible())

	h.send(tea.MouseMsg{X: 10, Y: 0, Action: tea.MouseActionMotion})
	assert.True(t, h.m.menuBar.IsVisible())
	assert.Contains(t, h.m.View(), "Open")

	cmd := h.send(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionMotion})
	assert.NotNil(t, cmd, "leaving the bar schedules the hide timer")
	assert.True(t, h.m.menuBar.IsVisible())
}

func TestParseOpenArgs(t *testing.T) {
	tests := []struct {
		args []string
		path string
		page int
	}{
		{[]string{"a.pdf"}, "a.pdf", 0},
		{[]string{"a.pdf", "7"}, "a.pdf", 6},
		{[]string{"my", "file.pdf"}, "my file.pdf", 0},
		{[]string{"my", "file.pdf", "2"}, "my file.pdf", 1},
		{[]string{"12"}, "12", 0},
		{[]string{"a.pdf", "0"}, "a.pdf 0", 0},
	}

	for _, tt := range tests {
		path, page := parseOpenArgs(tt.args)
		assert.Equal(t, tt.path, path, "args %v", tt.args)
		assert.Equal(t, tt.page, page, "args %v", tt.args)
	}
}

func TestJumpBackAndForward(t *testing.T) {
	h := newHarness(t, "")
	path := h.touch("a.pdf")
	h.src.pages[path] = 20
	h.command("open " + path)

	h.command("goto 10")
	h.run(runeKey('l'))
	h.run(runeKey('G'))
	require.Equal(t, 19, h.m.page)

	h.run(tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, 10, h.m.page)
	h.run(tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, 0, h.m.page)

	h.run(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 10, h.m.page)

	rec, _ := h.hist.Get(path)
	assert.Equal(t, 10, rec.LastPage)
}

func TestRejectedOpenKeepsCurrentDocument(t *testing.T) {
	h := newHarness(t, "")
	a := h.touch("a.pdf")
	b := h.touch("b.pdf")
	h.src.pages[a] = 3
	h.src.fail[b] = fmt.Errorf("opening %s: %w", b, document.ErrNoPages)

	h.command("open " + a)
	h.command("open " + b)

	assert.Contains(t, h.m.statusBar.Message(), "Cannot open b.pdf")
	assert.Equal(t, a, h.m.docPath)

	h.run(runeKey('l'))
	assert.Equal(t, 1, h.m.page)
	assert.Equal(t, "page 2 of a.pdf", h.m.pageContent)

	_, ok := h.hist.Get(b)
	assert.False(t, ok)
}

func TestOpenedWithoutPagesIsRejected(t *testing.T) {
	h := newHarness(t, "")
	a := h.touch("a.pdf")
	h.command("open " + a)

	h.send(documentOpenedMsg{path: "/tmp/empty.pdf", gen: h.m.opens.gen.Load()})

	assert.Contains(t, h.m.statusBar.Message(), "empty.pdf has no pages")
	assert.Equal(t, a, h.m.docPath)
	assert.Equal(t, 5, h.m.pageCount)
}

func TestSupersededOpenIsDropped(t *testing.T) {
	h := newHarness(t, "")
	a := h.touch("a.pdf")
	b := h.touch("b.pdf")
	h.src.pages[a] = 2
	h.src.pages[b] = 7

	h.send(runeKey(':'))
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("open " + a)})
	first := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)

	h.send(runeKey(':'))
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("open " + b)})
	second := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, second)

	opened := second()
	h.run(opened)
	assert.Equal(t, b, h.m.docPath)
	assert.Equal(t, 7, h.m.pageCount)

	assert.Nil(t, first(), "an older request does not open its file")
	assert.Equal(t, b, h.src.Path())

	h.send(documentOpenedMsg{path: a, pages: 2, gen: opened.(documentOpenedMsg).gen - 1})
	assert.Equal(t, b, h.m.docPath)
	assert.Equal(t, 7, h.m.pageCount)
	_, ok := h.hist.Get(a)
	assert.False(t, ok)
}

func TestScrollingPastPageEdgeTurnsPage(t *testing.T) {
	h := newHarness(t, "")
	path := h.touch("a.pdf")
	h.command("open " + path)

	h.run(runeKey('j'))
	assert.Equal(t, 1, h.m.page)
	assert.Equal(t, "page 2 of a.pdf", h.m.pageContent)

	h.run(runeKey('k'))
	assert.Equal(t, 0, h.m.page)
	assert.False(t, h.m.landAtEnd)

	rec, _ := h.hist.Get(path)
	assert.Equal(t, 0, rec.LastPage)
}
