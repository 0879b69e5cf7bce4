package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tpdf/internal/theme"
)

// MenuItem is one entry of the menu bar.
type MenuItem struct {
	Key  string
	Desc string
}

// MenuHideMsg fires when a hide timer expires. Gen identifies the timer;
// stale timers are ignored.
type MenuHideMsg struct {
	Gen int
}

// MenuBar is a one-line menu across the top of the screen that shows while
// the pointer is on it and hides itself a fixed delay after the pointer
// leaves.
type MenuBar struct {
	items   []MenuItem
	visible bool
	hover   bool
	pending bool // a hide timer is running
	gen     int
	delay   time.Duration
	width   int
}

// NewMenuBar creates a hidden menu bar with the default items.
func NewMenuBar(delay time.Duration) MenuBar {
	return MenuBar{
		items: []MenuItem{
			{Key: "o", Desc: "Open"},
			{Key: "^h", Desc: "Recent"},
			{Key: "h/l", Desc: "Prev/Next"},
			{Key: "b", Desc: "Bookmark"},
			{Key: ":", Desc: "Command"},
			{Key: "?", Desc: "Help"},
			{Key: "q", Desc: "Quit"},
		},
		delay: delay,
	}
}

// SetWidth sets the bar width.
func (mb *MenuBar) SetWidth(w int) {
	mb.width = w
}

// IsVisible reports whether the bar is shown.
func (mb *MenuBar) IsVisible() bool {
	return mb.visible
}

// Height is the number of rows the bar occupies.
func (mb *MenuBar) Height() int {
	if mb.visible {
		return 1
	}
	return 0
}

// PointerAt reports the pointer row. Row 0 shows the bar and cancels any
// pending hide; other rows start the hide timer unless one is running.
func (mb *MenuBar) PointerAt(row int) tea.Cmd {
	if row <= 0 {
		mb.hover = true
		mb.visible = true
		mb.pending = false
		mb.gen++
		return nil
	}

	mb.hover = false
	if !mb.visible || mb.pending {
		return nil
	}
	return mb.schedule()
}

// Reveal shows the bar from the keyboard and schedules its hiding.
func (mb *MenuBar) Reveal() tea.Cmd {
	mb.visible = true
	mb.hover = false
	mb.gen++
	return mb.schedule()
}

// Hide closes the bar immediately.
func (mb *MenuBar) Hide() {
	mb.visible = false
	mb.pending = false
	mb.gen++
}

// HandleHide processes an expired timer. It reports whether visibility changed.
func (mb *MenuBar) HandleHide(msg MenuHideMsg) bool {
	if msg.Gen != mb.gen || !mb.pending {
		return false
	}
	mb.pending = false
	if mb.hover || !mb.visible {
		return false
	}
	mb.visible = false
	return true
}

func (mb *MenuBar) schedule() tea.Cmd {
	mb.pending = true
	gen := mb.gen
	return tea.Tick(mb.delay, func(time.Time) tea.Msg {
		return MenuHideMsg{Gen: gen}
	})
}

// View renders the bar.
func (mb *MenuBar) View() string {
	if !mb.visible {
		return ""
	}

	t := theme.Current

	keyStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Background).
		Background(t.Secondary).
		Padding(0, 1)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	sepStyle := lipgloss.NewStyle().
		Foreground(t.Border).
		Background(t.Surface)

	var parts []string
	for _, it := range mb.items {
		parts = append(parts, keyStyle.Render(it.Key)+descStyle.Render(" "+it.Desc))
	}

	barStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(mb.width).
		MaxWidth(mb.width)

	return barStyle.Render(strings.Join(parts, sepStyle.Render(" │ ")))
}
