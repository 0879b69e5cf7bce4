package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tpdf/internal/theme"
)

// MessageKind selects the colour of a status message.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageWarn
	MessageError
)

// StatusBar shows the document, page position and mode at the bottom of the screen.
type StatusBar struct {
	title      string
	page       int // zero-based; -1 when no document is open
	pageCount  int
	bookmarked bool
	loading    bool
	scrollInfo string
	mode       string
	width      int
	message    string
	kind       MessageKind
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		mode: "HISTORY",
		page: -1,
	}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetTitle updates the document name.
func (s *StatusBar) SetTitle(title string) {
	s.title = title
}

// SetPage updates the page position. Pass page -1 to hide it.
func (s *StatusBar) SetPage(page, count int, bookmarked bool) {
	s.page = page
	s.pageCount = count
	s.bookmarked = bookmarked
}

// SetLoading sets the loading indicator state.
func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

// SetScrollInfo sets the scroll position string (e.g. "42%", "TOP", "BOT").
func (s *StatusBar) SetScrollInfo(info string) {
	s.scrollInfo = info
}

// SetMode sets the current mode indicator.
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// Mode returns the mode indicator.
func (s *StatusBar) Mode() string {
	return s.mode
}

// SetMessage sets a temporary informational message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.kind = MessageInfo
}

// SetWarning sets a temporary message in the warning colour.
func (s *StatusBar) SetWarning(msg string) {
	s.message = msg
	s.kind = MessageWarn
}

// SetError sets a temporary message in the error colour.
func (s *StatusBar) SetError(msg string) {
	s.message = msg
	s.kind = MessageError
}

// Message returns the current message.
func (s *StatusBar) Message() string {
	return s.message
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background)

	var modeIcon string
	switch s.mode {
	case "READ":
		modeStyle = modeStyle.Background(t.Primary)
		modeIcon = "📖 "
	case "COMMAND":
		modeStyle = modeStyle.Background(t.Accent)
		modeIcon = "⌘ "
	case "OPEN":
		modeStyle = modeStyle.Background(t.Success)
		modeIcon = "📂 "
	case "HISTORY":
		modeStyle = modeStyle.Background(t.Secondary)
		modeIcon = "📚 "
	default:
		modeStyle = modeStyle.Background(t.Secondary)
	}
	mode := modeStyle.Render(modeIcon + s.mode)

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	var left string
	switch {
	case s.loading:
		left = lipgloss.NewStyle().
			Foreground(t.Warning).
			Background(t.Surface).
			Bold(true).
			Padding(0, 1).
			Render("⏳ Rendering...")
	case s.message != "":
		color := t.Info
		switch s.kind {
		case MessageWarn:
			color = t.Warning
		case MessageError:
			color = t.Error
		}
		left = lipgloss.NewStyle().
			Foreground(color).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.message)
	case s.title != "":
		left = lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.title)
	}

	var right string
	if s.bookmarked {
		right += lipgloss.NewStyle().
			Foreground(t.Bookmark).
			Background(t.Surface).
			Padding(0, 1).
			Render("🔖")
	}
	if s.page >= 0 && s.pageCount > 0 {
		right += lipgloss.NewStyle().
			Bold(true).
			Foreground(t.PageNumber).
			Background(t.Surface).
			Padding(0, 1).
			Render(fmt.Sprintf("%d/%d", s.page+1, s.pageCount))
	}
	if s.scrollInfo != "" {
		right += lipgloss.NewStyle().
			Foreground(t.TextDim).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.scrollInfo)
	}

	spacerWidth := s.width - lipgloss.Width(mode) - lipgloss.Width(left) - lipgloss.Width(right)
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().
		Background(t.Surface).
		Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return barStyle.Render(mode + left + spacer + right)
}
