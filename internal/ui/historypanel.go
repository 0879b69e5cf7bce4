package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tpdf/internal/storage"
	"github.com/vidyasagar/tpdf/internal/theme"
)

// HistoryPanel displays the recently opened documents with vim navigation.
type HistoryPanel struct {
	entries  []storage.HistoryRecord
	missing  map[string]bool
	cursor   int
	offset   int // scroll offset for visible window
	width    int
	height   int
	visible  bool
	lastGKey bool // for gg detection within the panel
	stat     func(string) error
}

// NewHistoryPanel creates a new history panel.
func NewHistoryPanel() HistoryPanel {
	return HistoryPanel{
		stat: func(path string) error {
			_, err := os.Stat(path)
			return err
		},
	}
}

// SetEntries updates the records displayed and rechecks which files exist.
func (hp *HistoryPanel) SetEntries(entries []storage.HistoryRecord) {
	hp.entries = entries
	hp.missing = make(map[string]bool, len(entries))
	for _, e := range entries {
		if hp.stat != nil && os.IsNotExist(hp.stat(e.Filepath)) {
			hp.missing[e.Filepath] = true
		}
	}
	if hp.cursor >= len(entries) {
		hp.cursor = 0
		hp.offset = 0
	}
}

// SetSize updates the panel dimensions.
func (hp *HistoryPanel) SetSize(w, h int) {
	hp.width = w
	hp.height = h
}

// Show makes the panel visible with the cursor on the newest entry.
func (hp *HistoryPanel) Show() {
	hp.visible = true
	hp.cursor = 0
	hp.offset = 0
	hp.lastGKey = false
}

// Hide closes the panel.
func (hp *HistoryPanel) Hide() {
	hp.visible = false
	hp.lastGKey = false
}

// IsVisible reports whether the panel is shown.
func (hp *HistoryPanel) IsVisible() bool {
	return hp.visible
}

// CursorUp moves the cursor up one entry.
func (hp *HistoryPanel) CursorUp() {
	hp.lastGKey = false
	if hp.cursor > 0 {
		hp.cursor--
		hp.ensureVisible()
	}
}

// CursorDown moves the cursor down one entry.
func (hp *HistoryPanel) CursorDown() {
	hp.lastGKey = false
	if hp.cursor < len(hp.entries)-1 {
		hp.cursor++
		hp.ensureVisible()
	}
}

// GotoTop moves to the first entry.
func (hp *HistoryPanel) GotoTop() {
	hp.lastGKey = false
	hp.cursor = 0
	hp.offset = 0
}

// GotoBottom moves to the last entry.
func (hp *HistoryPanel) GotoBottom() {
	hp.lastGKey = false
	if len(hp.entries) > 0 {
		hp.cursor = len(hp.entries) - 1
		hp.ensureVisible()
	}
}

// HandleGKey handles the "g" key for gg detection.
// Returns true if "gg" was completed (go to top).
func (hp *HistoryPanel) HandleGKey() bool {
	if hp.lastGKey {
		hp.GotoTop()
		return true
	}
	hp.lastGKey = true
	return false
}

// ResetGKey resets the g key state (called on any non-g key press).
func (hp *HistoryPanel) ResetGKey() {
	hp.lastGKey = false
}

// SelectedEntry returns the record at the cursor, or nil if empty.
func (hp *HistoryPanel) SelectedEntry() *storage.HistoryRecord {
	if len(hp.entries) == 0 || hp.cursor < 0 || hp.cursor >= len(hp.entries) {
		return nil
	}
	e := hp.entries[hp.cursor]
	return &e
}

// SelectedIndex returns the cursor index.
func (hp *HistoryPanel) SelectedIndex() int {
	return hp.cursor
}

// IsMissing reports whether the file behind a record was gone at the last
// SetEntries.
func (hp *HistoryPanel) IsMissing(path string) bool {
	return hp.missing[path]
}

// RemoveSelected removes the entry at the cursor and adjusts position.
func (hp *HistoryPanel) RemoveSelected() {
	if len(hp.entries) == 0 || hp.cursor < 0 || hp.cursor >= len(hp.entries) {
		return
	}
	hp.entries = append(hp.entries[:hp.cursor], hp.entries[hp.cursor+1:]...)
	if hp.cursor >= len(hp.entries) && hp.cursor > 0 {
		hp.cursor--
	}
	hp.ensureVisible()
}

// visibleCount returns how many entries fit: two header lines, a hint line
// and two lines per entry.
func (hp *HistoryPanel) visibleCount() int {
	available := hp.height - 3
	count := available / 2
	if count < 1 {
		count = 1
	}
	return count
}

// ensureVisible adjusts offset so the cursor is within the visible window.
func (hp *HistoryPanel) ensureVisible() {
	visible := hp.visibleCount()
	if hp.cursor < hp.offset {
		hp.offset = hp.cursor
	}
	if hp.cursor >= hp.offset+visible {
		hp.offset = hp.cursor - visible + 1
	}
	if hp.offset < 0 {
		hp.offset = 0
	}
}

// View renders the history panel.
func (hp *HistoryPanel) View() string {
	if !hp.visible {
		return ""
	}

	t := theme.Current

	panelStyle := lipgloss.NewStyle().
		Width(hp.width).
		Height(hp.height).
		Background(t.Background)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Width(hp.width).
		Padding(0, 1)

	separatorStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	selectedStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.Selection).
		Bold(true).
		Width(hp.width).
		Padding(0, 1)

	selectedInfoStyle := lipgloss.NewStyle().
		Foreground(t.PageNumber).
		Background(t.Selection).
		Width(hp.width).
		Padding(0, 1)

	normalStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Width(hp.width).
		Padding(0, 1)

	missingStyle := normalStyle.
		Foreground(t.Missing).
		Strikethrough(true)

	infoStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Width(hp.width).
		Padding(0, 1)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 1)

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("📚 Recent documents"))
	sb.WriteString("\n")

	sepWidth := hp.width - 2
	if sepWidth < 1 {
		sepWidth = 1
	}
	sb.WriteString(separatorStyle.Render(strings.Repeat("─", sepWidth)))
	sb.WriteString("\n")

	if len(hp.entries) == 0 {
		sb.WriteString(dimStyle.Render("No documents yet. Press o to open a PDF."))
		sb.WriteString("\n")
		return panelStyle.Render(sb.String())
	}

	visible := hp.visibleCount()
	end := hp.offset + visible
	if end > len(hp.entries) {
		end = len(hp.entries)
	}

	maxLen := hp.width - 4
	if maxLen < 10 {
		maxLen = 10
	}

	for i := hp.offset; i < end; i++ {
		entry := hp.entries[i]

		name := truncate(entry.Filename, maxLen)
		info := truncate(fmt.Sprintf("p.%d  %s  %s", entry.LastPage+1, readAgo(entry), entry.Filepath), maxLen)

		switch {
		case i == hp.cursor:
			sb.WriteString(selectedStyle.Render("▸ " + name))
			sb.WriteString("\n")
			sb.WriteString(selectedInfoStyle.Render("  " + info))
		case hp.missing[entry.Filepath]:
			sb.WriteString(missingStyle.Render("  " + name))
			sb.WriteString("\n")
			sb.WriteString(infoStyle.Render("  " + info))
		default:
			sb.WriteString(normalStyle.Render("  " + name))
			sb.WriteString("\n")
			sb.WriteString(infoStyle.Render("  " + info))
		}
		sb.WriteString("\n")
	}

	linesUsed := 2 + (end-hp.offset)*2
	remaining := hp.height - linesUsed
	if remaining > 1 {
		for i := 0; i < remaining-1; i++ {
			sb.WriteString("\n")
		}
		hintStyle := lipgloss.NewStyle().
			Foreground(t.TextDim).
			Italic(true).
			Padding(0, 1)
		sb.WriteString(hintStyle.Render("j/k:move  Enter:open  d:forget  o:open file"))
	}

	return panelStyle.Render(sb.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func readAgo(r storage.HistoryRecord) string {
	t := r.LastReadTime()
	if t.IsZero() {
		return r.LastRead
	}
	return timeAgo(t)
}

// timeAgo returns a human-readable relative time string.
func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
