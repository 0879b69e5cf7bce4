package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tpdf/internal/theme"
)

// CommandType identifies the kind of command bar interaction.
type CommandType int

const (
	CommandNone CommandType = iota
	CommandEx               // : commands
	CommandOpen             // o file path prompt
)

// CommandResult is emitted when a command is submitted.
type CommandResult struct {
	Type  CommandType
	Value string
}

// CommandBar handles vim-style : commands and the open-file prompt.
type CommandBar struct {
	input      textinput.Model
	active     bool
	cmdType    CommandType
	width      int
	history    []string
	historyPos int
	dir        string // directory of the last opened document
	hint       string // completion feedback shown after the input
}

// NewCommandBar creates a new command bar.
func NewCommandBar() CommandBar {
	ti := textinput.New()
	ti.CharLimit = 4096

	return CommandBar{
		input:      ti,
		historyPos: -1,
	}
}

// SetWidth sets the command bar width.
func (c *CommandBar) SetWidth(w int) {
	c.width = w
	c.input.Width = w - 4
}

// SetDir sets the directory the open prompt starts in.
func (c *CommandBar) SetDir(dir string) {
	c.dir = dir
}

// Open activates the command bar in the given mode. The open prompt is
// pre-filled with the directory of the last document.
func (c *CommandBar) Open(ct CommandType) tea.Cmd {
	c.active = true
	c.cmdType = ct
	c.input.Reset()
	c.historyPos = -1
	c.hint = ""

	switch ct {
	case CommandEx:
		c.input.Placeholder = "command..."
		c.input.Prompt = ":"
	case CommandOpen:
		c.input.Placeholder = "path/to/file.pdf"
		c.input.Prompt = "open: "
		if c.dir != "" {
			c.SetValue(strings.TrimSuffix(c.dir, string(filepath.Separator)) + string(filepath.Separator))
		}
	}

	return c.input.Focus()
}

// Close deactivates the command bar.
func (c *CommandBar) Close() {
	c.active = false
	c.cmdType = CommandNone
	c.hint = ""
	c.input.Blur()
	c.input.Reset()
}

// IsActive reports whether the command bar is open.
func (c *CommandBar) IsActive() bool {
	return c.active
}

// SetValue sets the text input value (useful for pre-filling commands).
func (c *CommandBar) SetValue(val string) {
	c.input.SetValue(val)
	c.input.SetCursor(len(val))
}

// Value returns the text typed so far.
func (c *CommandBar) Value() string {
	return c.input.Value()
}

// Type returns the current command type.
func (c *CommandBar) Type() CommandType {
	return c.cmdType
}

// Submit returns the command result and adds ex commands to the recall list.
func (c *CommandBar) Submit() CommandResult {
	val := strings.TrimSpace(c.input.Value())
	result := CommandResult{
		Type:  c.cmdType,
		Value: val,
	}

	if val != "" && c.cmdType == CommandEx {
		c.history = append(c.history, val)
	}

	c.Close()
	return result
}

// Update processes messages for the command bar.
func (c *CommandBar) Update(msg tea.Msg) (*CommandBar, tea.Cmd) {
	if !c.active {
		return c, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			c.Close()
			return c, nil
		case tea.KeyEnter:
			// Handled by the parent (app.go) to process the result.
			return c, nil
		case tea.KeyTab:
			c.complete()
			return c, nil
		case tea.KeyUp:
			if c.cmdType == CommandEx && len(c.history) > 0 {
				if c.historyPos < len(c.history)-1 {
					c.historyPos++
				}
				c.SetValue(c.history[len(c.history)-1-c.historyPos])
			}
			return c, nil
		case tea.KeyDown:
			if c.cmdType == CommandEx && c.historyPos > 0 {
				c.historyPos--
				c.SetValue(c.history[len(c.history)-1-c.historyPos])
			} else if c.historyPos == 0 {
				c.historyPos = -1
				c.input.Reset()
			}
			return c, nil
		}
	}

	c.hint = ""
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// complete extends the path being typed in the open prompt or in an
// ":open" command.
func (c *CommandBar) complete() {
	val := c.input.Value()
	var head, path string
	switch c.cmdType {
	case CommandOpen:
		path = val
	case CommandEx:
		verb, rest, ok := strings.Cut(val, " ")
		if !ok || (verb != "open" && verb != "o" && verb != "e" && verb != "edit") {
			return
		}
		head, path = verb+" ", rest
	default:
		return
	}

	completed, matches := CompletePath(path)
	switch len(matches) {
	case 0:
		c.hint = "no match"
	case 1:
		c.hint = ""
	default:
		c.hint = fmt.Sprintf("%d matches", len(matches))
	}
	c.SetValue(head + completed)
}

// Hint returns the completion feedback, if any.
func (c *CommandBar) Hint() string {
	return c.hint
}

// CompletePath completes input against the directories and PDF files on
// disk. It returns input extended by the longest prefix shared by all
// matches, and the matches themselves (directories end in a separator).
func CompletePath(input string) (string, []string) {
	dir, base := filepath.Split(input)

	readDir := dir
	if readDir == "" {
		readDir = "."
	}
	if readDir == "~"+string(filepath.Separator) || strings.HasPrefix(readDir, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			readDir = filepath.Join(home, readDir[2:])
		}
	}

	entries, err := os.ReadDir(readDir)
	if err != nil {
		return input, nil
	}

	var matches []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if e.IsDir() {
			matches = append(matches, name+string(filepath.Separator))
		} else if strings.EqualFold(filepath.Ext(name), ".pdf") {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return input, nil
	}

	common := matches[0]
	for _, m := range matches[1:] {
		for !strings.HasPrefix(m, common) {
			common = common[:len(common)-1]
		}
	}
	for !utf8.ValidString(common) {
		common = common[:len(common)-1]
	}
	return dir + common, matches
}

// View renders the command bar.
func (c *CommandBar) View() string {
	if !c.active {
		return ""
	}

	t := theme.Current

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Width(c.width)

	view := c.input.View()
	if c.hint != "" {
		view += lipgloss.NewStyle().
			Foreground(t.TextDim).
			Render("  (" + c.hint + ")")
	}
	return barStyle.Render(view)
}
