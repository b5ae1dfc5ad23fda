package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the flatexp banner, coloured when the terminal supports it.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _       _                   ", "#818cf8"},
		{"  / _| | __ _| |_ _____  ___ __   ", "#a78bfa"},
		{" | |_| |/ _` | __/ _ \\ \\/ / '_ \\  ", "#c084fc"},
		{" |  _| | (_| | ||  __/>  <| |_) | ", "#e879f9"},
		{" |_| |_|\\__,_|\\__\\___/_/\\_\\ .__/  ", "#f472b6"},
		{"                          |_|     ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Success styles msg as a success status line.
func Success(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("✓ " + msg).Foreground(p.Color("#22c55e")).String()
}

// Failure styles msg as a failure status line.
func Failure(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("✗ " + msg).Foreground(p.Color("#ef4444")).Bold().String()
}
