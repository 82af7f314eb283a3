package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
)

// DefaultProgressWidth is the bar width used by batch mode.
const DefaultProgressWidth = 30

// ProgressBar renders a static, non-animated progress bar.
type ProgressBar struct {
	bar progress.Model
}

// NewProgressBar creates a bar of the given width. Without color support it
// falls back to a solid grey fill.
func NewProgressBar(width int) *ProgressBar {
	opts := []progress.Option{progress.WithWidth(width), progress.WithoutPercentage()}
	if HasColorSupport() {
		opts = append(opts, progress.WithScaledGradient(ColorPrimary.Light, ColorPrimary.Dark))
	} else {
		opts = append(opts, progress.WithSolidFill("#808080"))
	}
	return &ProgressBar{bar: progress.New(opts...)}
}

// Render returns the bar filled to percent, clamped to [0, 1].
func (pb *ProgressBar) Render(percent float64) string {
	return pb.bar.ViewAs(min(max(percent, 0), 1))
}

// Counter redraws "bar done/total" in place on w each time Inc is called.
// It is safe for concurrent use.
type Counter struct {
	w     io.Writer
	bar   *ProgressBar
	total int

	mu   sync.Mutex
	done int
}

// NewCounter creates a counter for total items.
func NewCounter(w io.Writer, total int) *Counter {
	return &Counter{w: w, bar: NewProgressBar(DefaultProgressWidth), total: total}
}

// Inc marks one more item done and redraws the line.
func (c *Counter) Inc() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done++
	percent := 1.0
	if c.total > 0 {
		percent = float64(c.done) / float64(c.total)
	}
	_, _ = fmt.Fprintf(c.w, "\r%s %d/%d", c.bar.Render(percent), c.done, c.total)
}

// Finish ends the progress line.
func (c *Counter) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.w)
}
