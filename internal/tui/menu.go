package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Menu is a numbered single-choice menu model. The selection is always a
// valid 1-based index; cancellation is reported separately.
type Menu struct {
	title     string
	options   []string
	selected  int
	chosen    bool
	cancelled bool
	width     int
}

// NewMenu creates a menu over the given ordered option labels.
func NewMenu(title string, options []string) Menu {
	return Menu{
		title:   title,
		options: options,
		width:   80,
	}
}

// Selected returns the currently highlighted index (0-based).
func (m Menu) Selected() int {
	return m.selected
}

// Choice returns the confirmed 1-based choice, or 0 if none yet.
func (m Menu) Choice() int {
	if !m.chosen {
		return 0
	}
	return m.selected + 1
}

// Cancelled reports whether the user backed out of the menu.
func (m Menu) Cancelled() bool {
	return m.cancelled
}

// Init implements tea.Model.
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m Menu) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit

	case "up", "k":
		m.selected--
		if m.selected < 0 {
			m.selected = len(m.options) - 1
		}
		return m, nil

	case "down", "j":
		m.selected++
		if m.selected >= len(m.options) {
			m.selected = 0
		}
		return m, nil

	case "enter", " ":
		m.chosen = true
		return m, tea.Quit
	}

	// Numeric shortcut: out-of-range digits are ignored, so an invalid
	// number can never become a selection.
	if n, err := strconv.Atoi(key); err == nil {
		if n >= 1 && n <= len(m.options) {
			m.selected = n - 1
			m.chosen = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Menu) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("69")).
		MarginBottom(1)

	itemStyle := lipgloss.NewStyle().
		PaddingLeft(2)

	selectedStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color("205")).
		Bold(true)

	output := titleStyle.Render(m.title) + "\n\n"

	for i, option := range m.options {
		cursor := "  "
		style := itemStyle

		if i == m.selected {
			cursor = "▸ "
			style = selectedStyle
		}

		output += style.Render(fmt.Sprintf("%s%d. %s", cursor, i+1, option)) + "\n"
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)
	output += helpStyle.Render("↑/↓: navigate  enter: select  1-9: pick  q: cancel")

	return output
}
