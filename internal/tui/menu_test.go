package tui_test

import (
	"testing"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

var backendOptions = []string{"CPU", "AMD (ROCm)", "Nvidia (CUDA)"}

func TestMenu_InitialState(t *testing.T) {
	model := tui.NewMenu("Backends", backendOptions)

	assert.Equal(t, 0, model.Selected())
	assert.Equal(t, 0, model.Choice())
	assert.False(t, model.Cancelled())
	assert.NotEmpty(t, model.View())
}

func TestMenu_NavigateDown(t *testing.T) {
	model := tui.NewMenu("Backends", backendOptions)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated := newModel.(tui.Menu)

	assert.Equal(t, 1, updated.Selected())
}

func TestMenu_WrapAround(t *testing.T) {
	model := tui.NewMenu("Backends", backendOptions)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyUp})
	updated := newModel.(tui.Menu)
	assert.Equal(t, 2, updated.Selected())

	newModel, _ = updated.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated = newModel.(tui.Menu)
	assert.Equal(t, 0, updated.Selected())
}

func TestMenu_EnterConfirmsSelection(t *testing.T) {
	model := tui.NewMenu("Backends", backendOptions)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	newModel, cmd := newModel.(tui.Menu).Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated := newModel.(tui.Menu)

	assert.Equal(t, 2, updated.Choice())
	assert.NotNil(t, cmd)
}

func TestMenu_NumericShortcut(t *testing.T) {
	model := tui.NewMenu("Backends", backendOptions)

	newModel, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	updated := newModel.(tui.Menu)

	assert.Equal(t, 3, updated.Choice())
	assert.NotNil(t, cmd)
}

// A digit outside the option range must never become a selection.
func TestMenu_OutOfRangeDigitIgnored(t *testing.T) {
	model := tui.NewMenu("Backends", backendOptions)

	newModel, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	updated := newModel.(tui.Menu)

	assert.Equal(t, 0, updated.Choice())
	assert.Nil(t, cmd)
}

func TestMenu_Cancel(t *testing.T) {
	model := tui.NewMenu("Backends", backendOptions)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	updated := newModel.(tui.Menu)

	assert.True(t, updated.Cancelled())
	assert.Equal(t, 0, updated.Choice())
}

func TestMenu_ViewListsOptions(t *testing.T) {
	model := tui.NewMenu("Backends", backendOptions)
	view := model.View()

	assert.Contains(t, view, "Backends")
	assert.Contains(t, view, "1. CPU")
	assert.Contains(t, view, "3. Nvidia (CUDA)")
}
