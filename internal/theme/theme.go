package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette shared by every view.
type Theme struct {
	Name string

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Text       lipgloss.Color
	TextDim    lipgloss.Color
	TextBright lipgloss.Color

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color
	Selection  lipgloss.Color

	// Page chrome
	PageNumber lipgloss.Color
	Bookmark   lipgloss.Color
	Missing    lipgloss.Color // history entries whose file is gone

	Error   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color
}

var themes = map[string]Theme{
	"default":    Default,
	"gruvbox":    Gruvbox,
	"catppuccin": Catppuccin,
	"nord":       Nord,
	"paper":      Paper,
}

var Default = Theme{
	Name:       "default",
	Primary:    lipgloss.Color("#7C3AED"),
	Secondary:  lipgloss.Color("#06B6D4"),
	Accent:     lipgloss.Color("#F59E0B"),
	Text:       lipgloss.Color("#E2E8F0"),
	TextDim:    lipgloss.Color("#64748B"),
	TextBright: lipgloss.Color("#F8FAFC"),
	Background: lipgloss.Color("#0F172A"),
	Surface:    lipgloss.Color("#1E293B"),
	Border:     lipgloss.Color("#334155"),
	Selection:  lipgloss.Color("#7C3AED"),
	PageNumber: lipgloss.Color("#38BDF8"),
	Bookmark:   lipgloss.Color("#F59E0B"),
	Missing:    lipgloss.Color("#EF4444"),
	Error:      lipgloss.Color("#EF4444"),
	Success:    lipgloss.Color("#22C55E"),
	Warning:    lipgloss.Color("#F59E0B"),
	Info:       lipgloss.Color("#3B82F6"),
}

var Gruvbox = Theme{
	Name:       "gruvbox",
	Primary:    lipgloss.Color("#D65D0E"),
	Secondary:  lipgloss.Color("#458588"),
	Accent:     lipgloss.Color("#D79921"),
	Text:       lipgloss.Color("#EBDBB2"),
	TextDim:    lipgloss.Color("#928374"),
	TextBright: lipgloss.Color("#FBF1C7"),
	Background: lipgloss.Color("#282828"),
	Surface:    lipgloss.Color("#3C3836"),
	Border:     lipgloss.Color("#504945"),
	Selection:  lipgloss.Color("#D65D0E"),
	PageNumber: lipgloss.Color("#83A598"),
	Bookmark:   lipgloss.Color("#FABD2F"),
	Missing:    lipgloss.Color("#FB4934"),
	Error:      lipgloss.Color("#FB4934"),
	Success:    lipgloss.Color("#B8BB26"),
	Warning:    lipgloss.Color("#FABD2F"),
	Info:       lipgloss.Color("#83A598"),
}

var Catppuccin = Theme{
	Name:       "catppuccin",
	Primary:    lipgloss.Color("#CBA6F7"),
	Secondary:  lipgloss.Color("#89DCEB"),
	Accent:     lipgloss.Color("#F9E2AF"),
	Text:       lipgloss.Color("#CDD6F4"),
	TextDim:    lipgloss.Color("#6C7086"),
	TextBright: lipgloss.Color("#F5E0DC"),
	Background: lipgloss.Color("#1E1E2E"),
	Surface:    lipgloss.Color("#313244"),
	Border:     lipgloss.Color("#45475A"),
	Selection:  lipgloss.Color("#CBA6F7"),
	PageNumber: lipgloss.Color("#89B4FA"),
	Bookmark:   lipgloss.Color("#F9E2AF"),
	Missing:    lipgloss.Color("#F38BA8"),
	Error:      lipgloss.Color("#F38BA8"),
	Success:    lipgloss.Color("#A6E3A1"),
	Warning:    lipgloss.Color("#F9E2AF"),
	Info:       lipgloss.Color("#89B4FA"),
}

var Nord = Theme{
	Name:       "nord",
	Primary:    lipgloss.Color("#88C0D0"),
	Secondary:  lipgloss.Color("#81A1C1"),
	Accent:     lipgloss.Color("#EBCB8B"),
	Text:       lipgloss.Color("#D8DEE9"),
	TextDim:    lipgloss.Color("#4C566A"),
	TextBright: lipgloss.Color("#ECEFF4"),
	Background: lipgloss.Color("#2E3440"),
	Surface:    lipgloss.Color("#3B4252"),
	Border:     lipgloss.Color("#434C5E"),
	Selection:  lipgloss.Color("#5E81AC"),
	PageNumber: lipgloss.Color("#8FBCBB"),
	Bookmark:   lipgloss.Color("#EBCB8B"),
	Missing:    lipgloss.Color("#BF616A"),
	Error:      lipgloss.Color("#BF616A"),
	Success:    lipgloss.Color("#A3BE8C"),
	Warning:    lipgloss.Color("#EBCB8B"),
	Info:       lipgloss.Color("#81A1C1"),
}

// Paper is a light palette for reading in bright terminals.
var Paper = Theme{
	Name:       "paper",
	Primary:    lipgloss.Color("#1D4ED8"),
	Secondary:  lipgloss.Color("#0F766E"),
	Accent:     lipgloss.Color("#B45309"),
	Text:       lipgloss.Color("#1F2937"),
	TextDim:    lipgloss.Color("#6B7280"),
	TextBright: lipgloss.Color("#111827"),
	Background: lipgloss.Color("#FAFAF7"),
	Surface:    lipgloss.Color("#E7E5E4"),
	Border:     lipgloss.Color("#D6D3D1"),
	Selection:  lipgloss.Color("#BFDBFE"),
	PageNumber: lipgloss.Color("#1D4ED8"),
	Bookmark:   lipgloss.Color("#B45309"),
	Missing:    lipgloss.Color("#B91C1C"),
	Error:      lipgloss.Color("#B91C1C"),
	Success:    lipgloss.Color("#15803D"),
	Warning:    lipgloss.Color("#B45309"),
	Info:       lipgloss.Color("#1D4ED8"),
}

// Current is the active theme.
var Current = Default

// Set changes the active theme by name.
func Set(name string) bool {
	if t, ok := themes[name]; ok {
		Current = t
		return true
	}
	return false
}

// List returns all available theme names, sorted.
func List() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Next returns the theme after the current one in List order.
func Next() string {
	names := List()
	for i, n := range names {
		if n == Current.Name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
