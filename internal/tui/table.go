package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Alignment defines text alignment in a column.
type Alignment int

// Alignment constants.
const (
	AlignLeft Alignment = iota
	AlignRight
)

// TableColumn defines a column in a table. Width is in terminal cells.
type TableColumn struct {
	Name  string
	Width int
	Align Alignment
}

// Table renders rows with aligned, truncated columns. Cyrillic and CJK text is
// measured by display width, not bytes.
type Table struct {
	w       io.Writer
	columns []TableColumn
	header  lipgloss.Style
	cell    lipgloss.Style
}

// NewTable creates a table writing to w.
func NewTable(w io.Writer, columns []TableColumn) *Table {
	return &Table{
		w:       w,
		columns: columns,
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}),
		cell:    lipgloss.NewStyle(),
	}
}

// ColumnsFor sizes columns to fit headers and rows. A positive maxWidth caps
// every column.
func ColumnsFor(headers []string, rows [][]string, maxWidth int) []TableColumn {
	cols := make([]TableColumn, len(headers))
	for i, h := range headers {
		cols[i] = TableColumn{Name: h, Width: runewidth.StringWidth(h)}
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				cols[i].Width = max(cols[i].Width, runewidth.StringWidth(row[i]))
			}
		}
	}
	if maxWidth > 0 {
		for i := range cols {
			cols[i].Width = min(cols[i].Width, maxWidth)
		}
	}
	return cols
}

// WriteHeader writes the header row.
func (t *Table) WriteHeader() {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = t.header.Render(Fit(col.Name, col.Width, col.Align))
	}
	_, _ = fmt.Fprintln(t.w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

// WriteRow writes one data row. Missing values render empty.
func (t *Table) WriteRow(values ...string) {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		parts[i] = t.cell.Render(Fit(v, col.Width, col.Align))
	}
	_, _ = fmt.Fprintln(t.w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

// Render writes the header and all rows. Nothing is written without columns.
func (t *Table) Render(rows [][]string) {
	if len(t.columns) == 0 {
		return
	}
	t.WriteHeader()
	for _, row := range rows {
		t.WriteRow(row...)
	}
}

// Fit truncates s with an ellipsis or pads it to exactly width cells.
func Fit(s string, width int, align Alignment) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	if align == AlignRight {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}
