package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tpdf/internal/document"
	"github.com/vidyasagar/tpdf/internal/logging"
	"github.com/vidyasagar/tpdf/internal/storage"
	"github.com/vidyasagar/tpdf/internal/theme"
	"github.com/vidyasagar/tpdf/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeHistory Mode = iota // history panel has focus
	ModeRead                // paging through a document
	ModeCommand             // : command bar
	ModeOpen                // open-file prompt
)

var modeNames = map[Mode]string{
	ModeHistory: "HISTORY",
	ModeRead:    "READ",
	ModeCommand: "COMMAND",
	ModeOpen:    "OPEN",
}

// Options are the collaborators the model is built from.
type Options struct {
	Source    document.Source
	History   *storage.HistoryStore
	Bookmarks *storage.BookmarkStore // nil disables bookmarks
	MenuDelay time.Duration
	StartPath string
	StartPage int // zero-based
}

// Model is the top-level bubbletea model for tpdf.
type Model struct {
	menuBar      ui.MenuBar
	statusBar    ui.StatusBar
	commandBar   ui.CommandBar
	historyPanel ui.HistoryPanel
	viewport     ui.PageViewport
	split        ui.SplitPane

	doc         document.Source
	docPath     string // empty when no document is shown
	page        int
	pageCount   int
	pageContent string
	aux         bool // viewport shows help or bookmarks instead of the page
	landAtEnd   bool // show the end of the next rendered page
	jumps       *JumpList
	opens       *openTracker

	history   *storage.HistoryStore
	bookmarks *storage.BookmarkStore

	keys      KeyMap
	mode      Mode
	prevMode  Mode
	width     int
	height    int
	lastGKey  bool
	ready     bool
	startPath string
	startPage int
	log       *slog.Logger
}

// documentOpenedMsg is sent when the document source finished opening a file.
// Gen identifies the open request; only the latest one is applied.
type documentOpenedMsg struct {
	path  string
	page  int
	pages int
	gen   int64
	err   error
}

// openTracker serialises opens against the source and numbers them so a
// superseded request neither opens its file nor updates the model.
type openTracker struct {
	mu  sync.Mutex
	gen atomic.Int64
}

// pageRenderedMsg carries a rendered page back to the update loop.
type pageRenderedMsg struct {
	path    string
	page    int
	content string
	err     error
}

// New creates a new tpdf Model.
func New(opts Options) Model {
	delay := opts.MenuDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	m := Model{
		menuBar:      ui.NewMenuBar(delay),
		statusBar:    ui.NewStatusBar(),
		commandBar:   ui.NewCommandBar(),
		historyPanel: ui.NewHistoryPanel(),
		viewport:     ui.NewPageViewport(),
		split:        ui.NewSplitPane(),
		jumps:        NewJumpList(),
		opens:        &openTracker{},
		doc:          opts.Source,
		history:      opts.History,
		bookmarks:    opts.Bookmarks,
		keys:         DefaultKeyMap(),
		mode:         ModeHistory,
		startPath:    opts.StartPath,
		startPage:    opts.StartPage,
		log:          logging.Logger().With("component", "app"),
	}

	m.historyPanel.SetEntries(m.history.List())
	m.historyPanel.Show()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.startPath != "" {
		return m.openDocument(m.startPath, m.startPage)
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		if m.docPath != "" && !m.aux {
			return m, m.renderPage()
		}
		return m, nil

	case documentOpenedMsg:
		return m.handleDocumentOpened(msg)

	case pageRenderedMsg:
		return m.handlePageRendered(msg)

	case ui.MenuHideMsg:
		if m.menuBar.HandleHide(msg) {
			m.layout()
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading tpdf..."
	}

	var sections []string

	if m.menuBar.IsVisible() {
		sections = append(sections, m.menuBar.View())
	}

	switch {
	case m.historyPanel.IsVisible() && m.docPath == "":
		sections = append(sections, m.historyPanel.View())
	default:
		sections = append(sections, m.split.Render(m.historyPanel.View(), m.viewport.View()))
	}

	sections = append(sections, m.statusBar.View())

	if m.commandBar.IsActive() {
		sections = append(sections, m.commandBar.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// mainHeight is the number of rows between the menu bar and the status bar.
func (m *Model) mainHeight() int {
	commandBarHeight := 0
	if m.commandBar.IsActive() {
		commandBarHeight = 1
	}
	h := m.height - m.menuBar.Height() - 1 - commandBarHeight
	if h < 1 {
		h = 1
	}
	return h
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.menuBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.commandBar.SetWidth(m.width)

	height := m.mainHeight()
	m.split.SetSize(m.width, height)

	switch {
	case m.historyPanel.IsVisible() && m.docPath == "":
		m.split.Close()
		m.historyPanel.SetSize(m.width, height)
	case m.historyPanel.IsVisible():
		m.split.Open()
		m.historyPanel.SetSize(m.split.FirstWidth(), height)
	default:
		m.split.Close()
	}

	m.viewport.SetSize(m.split.SecondWidth(), height)
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	m.statusBar.SetMode(modeNames[mode])
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeCommand, ModeOpen:
		return m.handleCommandMode(msg)
	case ModeHistory:
		return m.handleHistoryMode(msg)
	default:
		return m.handleReadMode(msg)
	}
}

// handleReadMode processes keys while reading a document.
func (m Model) handleReadMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// gg goes to the first page.
	if msg.String() == "g" {
		if m.lastGKey {
			m.lastGKey = false
			return m, m.jumpTo(0)
		}
		m.lastGKey = true
		return m, nil
	}
	m.lastGKey = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.aux {
			m.restorePage()
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextPage):
		return m, m.goToPage(m.page + 1)

	case key.Matches(msg, m.keys.PrevPage):
		return m, m.goToPage(m.page - 1)

	case key.Matches(msg, m.keys.LastPage):
		return m, m.jumpTo(m.pageCount - 1)

	case key.Matches(msg, m.keys.JumpBack):
		if page, ok := m.jumps.Back(); ok {
			return m, m.goToPage(page)
		}
		return m, nil

	case key.Matches(msg, m.keys.JumpForward):
		if page, ok := m.jumps.Forward(); ok {
			return m, m.goToPage(page)
		}
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		return m, m.scrollDown(func() { m.viewport.LineDown(1) })

	case key.Matches(msg, m.keys.ScrollUp):
		return m, m.scrollUp(func() { m.viewport.LineUp(1) })

	case key.Matches(msg, m.keys.HalfPageDown):
		return m, m.scrollDown(m.viewport.HalfPageDown)

	case key.Matches(msg, m.keys.HalfPageUp):
		return m, m.scrollUp(m.viewport.HalfPageUp)

	case key.Matches(msg, m.keys.Bookmark):
		m.toggleBookmark()
		return m, nil
	}

	return m.handleCommonKeys(msg)
}

// handleCommonKeys covers bindings shared by the reading and history modes.
func (m Model) handleCommonKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Open):
		return m, m.openCommandBar(ui.CommandOpen)

	case key.Matches(msg, m.keys.CommandMode):
		return m, m.openCommandBar(ui.CommandEx)

	case key.Matches(msg, m.keys.HistoryToggle):
		m.toggleHistory()
		return m, nil

	case key.Matches(msg, m.keys.Menu):
		cmd := m.menuBar.Reveal()
		m.layout()
		return m, cmd

	case key.Matches(msg, m.keys.ThemeCycle):
		next := theme.Next()
		theme.Set(next)
		m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", next))
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showAux("Help", renderHelp(m.keys, m.viewport.Width()))
		return m, nil
	}

	return m, nil
}

// handleHistoryMode processes keys when the history panel has focus.
func (m Model) handleHistoryMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.historyPanel.CursorDown()
		return m, nil

	case "k", "up":
		m.historyPanel.CursorUp()
		return m, nil

	case "g":
		m.historyPanel.HandleGKey()
		return m, nil

	case "G":
		m.historyPanel.GotoBottom()
		return m, nil

	case "d":
		m.historyPanel.ResetGKey()
		if entry := m.historyPanel.SelectedEntry(); entry != nil {
			path := entry.Filepath
			m.historyPanel.RemoveSelected()
			_, err := m.history.Remove(path)
			m.noteHistoryErr(err)
		}
		return m, nil

	case "enter":
		m.historyPanel.ResetGKey()
		entry := m.historyPanel.SelectedEntry()
		if entry == nil {
			return m, nil
		}
		if m.historyPanel.IsMissing(entry.Filepath) {
			m.statusBar.SetWarning(fmt.Sprintf("File not found: %s", entry.Filepath))
			return m, nil
		}
		return m, m.openDocument(entry.Filepath, entry.LastPage)

	case "esc":
		m.historyPanel.ResetGKey()
		if m.docPath == "" {
			return m, tea.Quit
		}
		m.toggleHistory()
		return m, nil
	}

	m.historyPanel.ResetGKey()
	return m.handleCommonKeys(msg)
}

// handleCommandMode processes keys in the command bar.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandBar.Close()
		m.setMode(m.prevMode)
		m.layout()
		return m, nil

	case tea.KeyEnter:
		result := m.commandBar.Submit()
		m.setMode(m.prevMode)
		m.layout()
		return m.handleCommandResult(result)
	}

	cb, cmd := m.commandBar.Update(msg)
	m.commandBar = *cb
	return m, cmd
}

func (m *Model) openCommandBar(ct ui.CommandType) tea.Cmd {
	m.prevMode = m.mode
	if ct == ui.CommandOpen {
		m.setMode(ModeOpen)
	} else {
		m.setMode(ModeCommand)
	}
	cmd := m.commandBar.Open(ct)
	m.layout()
	return cmd
}

// handleCommandResult processes a submitted command.
func (m Model) handleCommandResult(result ui.CommandResult) (tea.Model, tea.Cmd) {
	switch result.Type {
	case ui.CommandOpen:
		if result.Value == "" {
			return m, nil
		}
		return m, m.openDocument(expandPath(result.Value), 0)
	case ui.CommandEx:
		return m.executeCommand(result.Value)
	}
	return m, nil
}

// executeCommand handles :commands.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return m, nil
	}
	args := parts[1:]

	switch parts[0] {
	case "q", "quit":
		return m, tea.Quit

	case "o", "open", "e", "edit":
		if len(args) == 0 {
			m.statusBar.SetMessage("Usage: :open <path> [page]")
			return m, nil
		}
		path, page := parseOpenArgs(args)
		return m, m.openDocument(expandPath(path), page)

	case "goto", "page":
		if len(args) != 1 {
			m.statusBar.SetMessage("Usage: :goto <page>")
			return m, nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			m.statusBar.SetError(fmt.Sprintf("Invalid page: %s", args[0]))
			return m, nil
		}
		return m, m.jumpTo(n - 1)

	case "bookmark":
		m.addBookmark(strings.Join(args, " "))

	case "bookmarks", "bm":
		if len(args) == 0 {
			m.showBookmarks()
			return m, nil
		}
		return m, m.jumpToBookmark(args[0])

	case "history":
		if !m.historyPanel.IsVisible() {
			m.toggleHistory()
		}

	case "clearhistory":
		err := m.history.Clear()
		m.historyPanel.SetEntries(m.history.List())
		if err != nil {
			m.noteHistoryErr(err)
		} else {
			m.statusBar.SetMessage("History cleared")
		}

	case "close":
		m.closeDocument()

	case "theme":
		if len(args) > 0 {
			if theme.Set(args[0]) {
				m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", args[0]))
			} else {
				m.statusBar.SetError(fmt.Sprintf("Unknown theme: %s (available: %s)", args[0], strings.Join(theme.List(), ", ")))
			}
		} else {
			m.statusBar.SetMessage(fmt.Sprintf("Current: %s | Available: %s", theme.Current.Name, strings.Join(theme.List(), ", ")))
		}

	case "help", "h":
		m.showAux("Help", renderHelp(m.keys, m.viewport.Width()))

	default:
		m.statusBar.SetError(fmt.Sprintf("Unknown command: %s", parts[0]))
	}

	return m, nil
}

// openDocument opens path and shows page, recording it in the history once
// the source reports success.
func (m *Model) openDocument(path string, page int) tea.Cmd {
	src, opens := m.doc, m.opens
	gen := opens.gen.Add(1)
	m.statusBar.SetLoading(true)
	return func() tea.Msg {
		opens.mu.Lock()
		defer opens.mu.Unlock()

		if opens.gen.Load() != gen {
			return nil
		}
		pages, err := src.Open(path)
		return documentOpenedMsg{path: path, page: page, pages: pages, gen: gen, err: err}
	}
}

func (m Model) handleDocumentOpened(msg documentOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.opens.gen.Load() {
		return m, nil
	}
	m.statusBar.SetLoading(false)

	if msg.err != nil {
		m.log.Error("open failed", "path", msg.path, "err", msg.err)
		m.statusBar.SetError(fmt.Sprintf("Cannot open %s: %s", filepath.Base(msg.path), msg.err))
		return m, nil
	}
	if msg.pages == 0 {
		m.statusBar.SetError(fmt.Sprintf("%s has no pages", filepath.Base(msg.path)))
		return m, nil
	}

	page := msg.page
	if page < 0 || page >= msg.pages {
		page = 0
	}

	m.docPath = msg.path
	m.pageCount = msg.pages
	m.page = page
	m.aux = false
	m.jumps.Reset(page)
	m.log.Info("opened document", "path", msg.path, "page", page, "pages", msg.pages)

	m.statusBar.SetMessage("")
	m.noteHistoryErr(m.history.RecordOpened(msg.path, page))
	m.historyPanel.SetEntries(m.history.List())
	m.historyPanel.Hide()

	m.setMode(ModeRead)
	m.statusBar.SetTitle(filepath.Base(msg.path))
	m.commandBar.SetDir(filepath.Dir(msg.path))
	m.layout()
	m.syncStatusBar()

	return m, m.renderPage()
}

// goToPage shows page if it exists and records it as the last page read.
// Out-of-range pages are ignored.
func (m *Model) goToPage(page int) tea.Cmd {
	if m.docPath == "" || page < 0 || page >= m.pageCount {
		return nil
	}
	if page == m.page && !m.aux {
		return nil
	}

	m.page = page
	m.aux = false
	m.landAtEnd = false
	m.jumps.SetCurrent(page)
	m.noteHistoryErr(m.history.UpdatePage(m.docPath, page))
	m.syncStatusBar()
	return m.renderPage()
}

// jumpTo is goToPage for moves that should be remembered in the jump list.
func (m *Model) jumpTo(page int) tea.Cmd {
	if m.docPath != "" && page >= 0 && page < m.pageCount && page != m.page {
		m.jumps.Push(page)
	}
	return m.goToPage(page)
}

// renderPage asks the source for the current page at the viewport width.
func (m *Model) renderPage() tea.Cmd {
	if m.docPath == "" || !m.ready {
		return nil
	}
	src := m.doc
	path, page, width := m.docPath, m.page, m.viewport.Width()
	return func() tea.Msg {
		content, err := src.RenderPage(page, width)
		return pageRenderedMsg{path: path, page: page, content: content, err: err}
	}
}

func (m Model) handlePageRendered(msg pageRenderedMsg) (tea.Model, tea.Cmd) {
	// Drop renders for a page the user has already left.
	if msg.path != m.docPath || msg.page != m.page || m.aux {
		return m, nil
	}

	if msg.err != nil {
		m.log.Warn("render failed", "path", msg.path, "page", msg.page, "err", msg.err)
		errStyle := lipgloss.NewStyle().
			Foreground(theme.Current.Error).
			Bold(true).
			Padding(2, 4)
		detailStyle := lipgloss.NewStyle().
			Foreground(theme.Current.TextDim).
			Padding(0, 4)
		m.pageContent = errStyle.Render(fmt.Sprintf("Cannot render page %d", msg.page+1)) + "\n\n" +
			detailStyle.Render(msg.err.Error())
	} else {
		m.pageContent = msg.content
	}

	m.viewport.SetContent(m.pageContent)
	if m.landAtEnd {
		m.viewport.ShowEnd()
		m.landAtEnd = false
	}
	m.syncStatusBar()
	return m, nil
}

// scrollDown scrolls within the page, turning to the next page once the end
// of this one is already in view.
func (m *Model) scrollDown(scroll func()) tea.Cmd {
	if !m.aux && m.viewport.AtBottom() {
		return m.goToPage(m.page + 1)
	}
	scroll()
	m.syncStatusBar()
	return nil
}

// scrollUp is scrollDown in reverse; the previous page opens at its end.
func (m *Model) scrollUp(scroll func()) tea.Cmd {
	if !m.aux && m.viewport.AtTop() {
		cmd := m.goToPage(m.page - 1)
		if cmd != nil {
			m.landAtEnd = true
		}
		return cmd
	}
	scroll()
	m.syncStatusBar()
	return nil
}

// closeDocument returns to the history screen.
func (m *Model) closeDocument() {
	if m.docPath == "" {
		return
	}
	if err := m.doc.Close(); err != nil {
		m.log.Warn("close failed", "path", m.docPath, "err", err)
	}
	m.docPath = ""
	m.pageCount = 0
	m.page = 0
	m.pageContent = ""
	m.aux = false
	m.jumps.Clear()
	m.viewport.Clear()
	m.statusBar.SetTitle("")
	m.historyPanel.SetEntries(m.history.List())
	m.historyPanel.Show()
	m.setMode(ModeHistory)
	m.layout()
	m.syncStatusBar()
}

func (m *Model) toggleHistory() {
	if m.historyPanel.IsVisible() {
		if m.docPath == "" {
			return
		}
		m.historyPanel.Hide()
		m.setMode(ModeRead)
	} else {
		m.historyPanel.SetEntries(m.history.List())
		m.historyPanel.Show()
		m.setMode(ModeHistory)
	}
	m.layout()
}

// showAux replaces the page with generated content until Esc or a page move.
func (m *Model) showAux(title, content string) {
	m.aux = true
	if m.historyPanel.IsVisible() && m.docPath == "" {
		m.historyPanel.Hide()
		m.layout()
	}
	if m.mode == ModeHistory {
		m.setMode(ModeRead)
	}
	m.viewport.SetContent(content)
	m.statusBar.SetTitle(title)
	m.syncStatusBar()
}

func (m *Model) restorePage() {
	m.aux = false
	if m.docPath == "" {
		m.viewport.Clear()
		m.statusBar.SetTitle("")
		m.historyPanel.Show()
		m.setMode(ModeHistory)
		m.layout()
		return
	}
	m.viewport.SetContent(m.pageContent)
	m.statusBar.SetTitle(filepath.Base(m.docPath))
	m.syncStatusBar()
}

func (m *Model) toggleBookmark() {
	if m.bookmarks == nil || m.docPath == "" {
		m.statusBar.SetMessage("Bookmarks not available")
		return
	}
	if m.bookmarks.Has(m.docPath, m.page) {
		if _, err := m.bookmarks.Remove(m.docPath, m.page); err != nil {
			m.statusBar.SetError(err.Error())
			return
		}
		m.statusBar.SetMessage(fmt.Sprintf("Removed bookmark on page %d", m.page+1))
	} else {
		m.addBookmark("")
		return
	}
	m.syncStatusBar()
}

func (m *Model) addBookmark(note string) {
	if m.bookmarks == nil || m.docPath == "" {
		m.statusBar.SetMessage("Bookmarks not available")
		return
	}
	added, err := m.bookmarks.Add(m.docPath, m.page, note)
	switch {
	case err != nil:
		m.log.Warn("bookmark failed", "path", m.docPath, "err", err)
		m.statusBar.SetError(err.Error())
	case added:
		m.statusBar.SetMessage(fmt.Sprintf("Bookmarked page %d", m.page+1))
	default:
		m.statusBar.SetMessage("Already bookmarked")
	}
	m.syncStatusBar()
}

func (m *Model) showBookmarks() {
	if m.bookmarks == nil || m.docPath == "" {
		m.statusBar.SetMessage("Bookmarks not available")
		return
	}
	marks, err := m.bookmarks.ForDocument(m.docPath)
	if err != nil {
		m.statusBar.SetError(err.Error())
		return
	}
	m.showAux("Bookmarks", storage.RenderBookmarks(m.docPath, marks))
}

func (m *Model) jumpToBookmark(arg string) tea.Cmd {
	if m.bookmarks == nil || m.docPath == "" {
		m.statusBar.SetMessage("Bookmarks not available")
		return nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		m.statusBar.SetError(fmt.Sprintf("Invalid bookmark number: %s", arg))
		return nil
	}
	marks, err := m.bookmarks.ForDocument(m.docPath)
	if err != nil {
		m.statusBar.SetError(err.Error())
		return nil
	}
	if n < 1 || n > len(marks) {
		m.statusBar.SetError(fmt.Sprintf("Bookmark [%d] not found", n))
		return nil
	}
	if marks[n-1].Page == m.page && m.aux {
		m.restorePage()
		return nil
	}
	return m.jumpTo(marks[n-1].Page)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	wasVisible := m.menuBar.IsVisible()
	cmds = append(cmds, m.menuBar.PointerAt(msg.Y))
	if m.menuBar.IsVisible() != wasVisible {
		m.layout()
	}

	if msg.Action != tea.MouseActionMotion && m.docPath != "" {
		vp, cmd := m.viewport.Update(msg)
		m.viewport = *vp
		m.syncStatusBar()
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// noteHistoryErr reports a failed history write without interrupting the user.
func (m *Model) noteHistoryErr(err error) {
	if err == nil {
		return
	}
	m.log.Warn("history not saved", "path", m.history.Path(), "err", err)
	m.statusBar.SetWarning(fmt.Sprintf("History not saved: %s", err))
}

func (m *Model) syncStatusBar() {
	if m.docPath == "" {
		m.statusBar.SetPage(-1, 0, false)
		m.statusBar.SetScrollInfo("")
		return
	}
	marked := m.bookmarks != nil && m.bookmarks.Has(m.docPath, m.page)
	m.statusBar.SetPage(m.page, m.pageCount, marked)
	m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())
}

// parseOpenArgs splits ":open" arguments into a path and a zero-based page.
// A trailing integer is a 1-based page number when more than one field is given.
func parseOpenArgs(args []string) (string, int) {
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[len(args)-1]); err == nil && n >= 1 {
			return strings.Join(args[:len(args)-1], " "), n - 1
		}
	}
	return strings.Join(args, " "), 0
}

// expandPath resolves a leading ~ and makes the path absolute so history
// keys stay stable across working directories.
func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
