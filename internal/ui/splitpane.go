package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tpdf/internal/theme"
)

// SplitPane lays out a side panel next to the page with a one-column divider.
// When closed the second pane gets the full width.
type SplitPane struct {
	Ratio    float64 // proportion of the width given to the side panel
	MinFirst int     // side panel never gets fewer columns than this
	open     bool
	width    int
	height   int
}

// NewSplitPane creates a closed split giving the side panel 30% of the width.
func NewSplitPane() SplitPane {
	return SplitPane{
		Ratio:    0.3,
		MinFirst: 24,
	}
}

// SetSize updates the split pane dimensions.
func (sp *SplitPane) SetSize(w, h int) {
	sp.width = w
	sp.height = h
}

// IsOpen reports whether the side panel is shown.
func (sp *SplitPane) IsOpen() bool {
	return sp.open
}

// Open shows the side panel.
func (sp *SplitPane) Open() {
	sp.open = true
}

// Close hides the side panel.
func (sp *SplitPane) Close() {
	sp.open = false
}

// FirstWidth returns the side panel width, zero when closed.
func (sp *SplitPane) FirstWidth() int {
	if !sp.open {
		return 0
	}
	w := int(float64(sp.width) * sp.Ratio)
	if w < sp.MinFirst {
		w = sp.MinFirst
	}
	if w > sp.width-2 {
		w = sp.width - 2
	}
	if w < 0 {
		w = 0
	}
	return w
}

// SecondWidth returns the width left for the page.
func (sp *SplitPane) SecondWidth() int {
	if !sp.open {
		return sp.width
	}
	w := sp.width - sp.FirstWidth() - 1 // divider
	if w < 1 {
		w = 1
	}
	return w
}

// Render joins the two panes. A closed split renders only second.
func (sp *SplitPane) Render(first, second string) string {
	if !sp.open {
		return second
	}

	t := theme.Current

	dividerStyle := lipgloss.NewStyle().
		Foreground(t.Border).
		Background(t.Background)
	divider := dividerStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", max(sp.height, 1)), "\n"))

	leftStyle := lipgloss.NewStyle().
		Width(sp.FirstWidth()).
		Height(sp.height)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(first),
		divider,
		second,
	)
}
