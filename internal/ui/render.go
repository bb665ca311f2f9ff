package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

// DefaultWidth bounds rendered output when the terminal width is unknown.
const DefaultWidth = 100

// Markdown renders a Markdown document for the terminal, picking a light or
// dark style from the detected background.
func Markdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	style := glamour.WithStandardStyle("light")
	if termenv.HasDarkBackground() {
		style = glamour.WithStandardStyle("dark")
	}

	r, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

// Wrap word-wraps plain text to the given width.
func Wrap(text string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	return wordwrap.String(text, width)
}

// Truncate shortens s to the given display width, ending with an ellipsis.
// Width is measured in terminal cells, so wide runes count double.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
