package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the automata banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	lines := []struct {
		text  string
		color string
	}{
		{"              _                        _        ", "#818cf8"},
		{"   __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _ ", "#a78bfa"},
		{"  / _` | | | | __/ _ \\| '_ ` _ \\ / _` | __/ _` |", "#c084fc"},
		{" | (_| | |_| | || (_) | | | | | | (_| | || (_| |", "#e879f9"},
		{"  \\__,_|\\__,_|\\__\\___/|_| |_| |_|\\__,_|\\__\\__,_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
