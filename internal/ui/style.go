// Package ui renders console output: progress lines, tables and the run
// summary. Styling is applied only when the writer is a terminal.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Styler applies lipgloss styles, or nothing when plain is set.
type Styler struct {
	plain bool
}

// NewStyler returns a Styler that styles only terminal writers.
func NewStyler(w io.Writer) Styler {
	return Styler{plain: !IsTerminal(w)}
}

func (s Styler) render(st lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return st.Render(text)
}

// Heading renders a bold section title.
func (s Styler) Heading(text string) string { return s.render(headingStyle, text) }

// OK renders a success message.
func (s Styler) OK(text string) string { return s.render(okStyle, text) }

// Warn renders a warning.
func (s Styler) Warn(text string) string { return s.render(warnStyle, text) }

// Error renders an error.
func (s Styler) Error(text string) string { return s.render(errStyle, text) }

// Dim renders secondary information.
func (s Styler) Dim(text string) string { return s.render(dimStyle, text) }
