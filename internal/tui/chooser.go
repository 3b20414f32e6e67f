// Package tui implements the installer's interactive prompts as bubbletea
// models, plus a Chooser that runs them synchronously.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
)

// Chooser runs the interactive models one at a time. Each call blocks until
// the user decides or cancels; cancellation surfaces as domain.ErrCancelled.
type Chooser struct{}

// Choose presents a numbered menu and returns the 1-based selection. It
// never returns an out-of-range index.
func (Chooser) Choose(title string, options []string) (int, error) {
	p := tea.NewProgram(NewMenu(title, options))
	final, err := p.Run()
	if err != nil {
		return 0, fmt.Errorf("running menu: %w", err)
	}

	menu := final.(Menu)
	if menu.Cancelled() {
		return 0, domain.ErrCancelled
	}
	return menu.Choice(), nil
}

// Input presents a free-text prompt and returns the trimmed value.
func (Chooser) Input(label string) (string, error) {
	p := tea.NewProgram(NewPrompt(label, ""))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}

	prompt := final.(Prompt)
	if prompt.Cancelled() {
		return "", domain.ErrCancelled
	}
	return strings.TrimSpace(prompt.Value()), nil
}

// Confirm asks a yes/no question, re-prompting until the answer is
// recognizable.
func (c Chooser) Confirm(label string) (bool, error) {
	for {
		answer, err := c.Input(label + " (y/n)")
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}
