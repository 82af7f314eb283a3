package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultWrapWidth is the word wrap used for rendered markdown.
const DefaultWrapWidth = 80

// RenderMarkdown renders md for the terminal. When color is disabled, or the
// renderer fails, the markdown source is returned unchanged.
func RenderMarkdown(md string, width int) string {
	if !HasColorSupport() {
		return md
	}
	if width <= 0 {
		width = DefaultWrapWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n") + "\n"
}
