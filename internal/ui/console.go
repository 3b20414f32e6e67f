// Package ui renders the installer's sequential console output: step
// headers, success/warning/error markers, and remediation hints.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("69"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

const ruleWidth = 70

// Console writes styled installer output to a single writer.
type Console struct {
	w io.Writer
}

// New creates a Console writing to w.
func New(w io.Writer) *Console {
	return &Console{w: w}
}

// Header prints a step banner between horizontal rules.
func (c *Console) Header(text string) {
	rule := ruleStyle.Render(strings.Repeat("=", ruleWidth))
	fmt.Fprintf(c.w, "\n%s\n%s\n%s\n\n", rule, headerStyle.Render("  "+text), rule)
}

// Printf writes plain output.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.w, format, a...)
}

// Println writes a plain line.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.w, a...)
}

// Success prints a line with the success marker.
func (c *Console) Success(format string, a ...any) {
	fmt.Fprintf(c.w, "%s %s\n", successStyle.Render("✓"), fmt.Sprintf(format, a...))
}

// Warn prints a line with the warning marker.
func (c *Console) Warn(format string, a ...any) {
	fmt.Fprintf(c.w, "%s %s\n", warnStyle.Render("⚠"), fmt.Sprintf(format, a...))
}

// Error prints a line with the error marker.
func (c *Console) Error(format string, a ...any) {
	fmt.Fprintf(c.w, "%s %s\n", errorStyle.Render("✗"), fmt.Sprintf(format, a...))
}

// Hint prints remediation guidance under an error.
func (c *Console) Hint(text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(c.w, hintStyle.Render(text))
}
