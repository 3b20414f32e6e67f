package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Prompt is a free-text input model used for directory paths and yes/no
// confirmations.
type Prompt struct {
	label     string
	input     textinput.Model
	submitted bool
	cancelled bool
}

// NewPrompt creates a text prompt with the given label.
func NewPrompt(label, placeholder string) Prompt {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60

	return Prompt{
		label: label,
		input: ti,
	}
}

// Value returns the entered text.
func (p Prompt) Value() string {
	return p.input.Value()
}

// Submitted reports whether the user confirmed the input.
func (p Prompt) Submitted() bool {
	return p.submitted
}

// Cancelled reports whether the user backed out of the prompt.
func (p Prompt) Cancelled() bool {
	return p.cancelled
}

// Init implements tea.Model.
func (p Prompt) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (p Prompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			p.cancelled = true
			return p, tea.Quit

		case "enter":
			p.submitted = true
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View implements tea.Model.
func (p Prompt) View() string {
	labelStyle := lipgloss.NewStyle().Bold(true)
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)

	return labelStyle.Render(p.label) + "\n" +
		p.input.View() + "\n" +
		helpStyle.Render("enter: confirm  esc: cancel")
}
