package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// DefaultWidth is the word-wrap width used when the output is not a terminal.
const DefaultWidth = 100

// NewRenderer returns a function that renders markdown using glamour.
// Style and width follow the terminal when out is one; otherwise the plain "notty" style is used.
func NewRenderer(out *os.File) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(Width(out))}
	if IsTerminal(out) {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of f, or DefaultWidth.
func Width(f *os.File) int {
	if !IsTerminal(f) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}
