package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/vidyasagar/tpdf/internal/theme"
)

var helpCommands = []struct{ cmd, desc string }{
	{":open <path> [page]", "Open a PDF, optionally at a 1-based page"},
	{":goto <n>", "Jump to page n"},
	{":bookmark [note]", "Bookmark the current page"},
	{":bookmarks", "List bookmarks of this document"},
	{":bm <n>", "Jump to the nth bookmark"},
	{":history", "Show recent documents"},
	{":clearhistory", "Forget all recent documents"},
	{":close", "Close the document"},
	{":theme [name]", "Show or change the theme"},
	{":quit", "Quit tpdf"},
}

// helpMarkdown builds the keybinding reference as markdown.
func helpMarkdown(keys KeyMap) string {
	var sb strings.Builder

	sb.WriteString("# tpdf keybindings\n\n")
	sb.WriteString("| Key | Action |\n|---|---|\n")
	for _, b := range keys.Bindings() {
		h := b.Help()
		fmt.Fprintf(&sb, "| `%s` | %s |\n", h.Key, h.Desc)
	}

	sb.WriteString("\n## Commands\n\n")
	for _, c := range helpCommands {
		fmt.Fprintf(&sb, "- `%s` %s\n", c.cmd, c.desc)
	}

	sb.WriteString("\n## History\n\n")
	sb.WriteString("The last 20 documents are remembered with the page you were on. ")
	sb.WriteString("Select one with `Enter` to resume, `d` forgets it.\n")

	return sb.String()
}

// renderHelp renders the help markdown for the given width, falling back to
// the raw markdown if glamour fails.
func renderHelp(keys KeyMap, width int) string {
	md := helpMarkdown(keys)

	style := "dark"
	if theme.Current.Name == "paper" {
		style = "light"
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
