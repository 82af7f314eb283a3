package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		width int
		align Alignment
		want  string
	}{
		{"pads ascii", "abc", 5, AlignLeft, "abc  "},
		{"right aligns", "42", 4, AlignRight, "  42"},
		{"truncates ascii", "abcdefgh", 5, AlignLeft, "abcd…"},
		{"cyrillic counts cells not bytes", "Привет", 8, AlignLeft, "Привет  "},
		{"truncates cyrillic", "Проверь безопасность", 8, AlignLeft, "Проверь…"},
		{"zero width", "abc", 0, AlignLeft, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Fit(tc.in, tc.width, tc.align)
			assert.Equal(t, tc.want, got)
			if tc.width > 0 {
				assert.Equal(t, tc.width, runewidth.StringWidth(got))
			}
		})
	}
}

func TestColumnsFor(t *testing.T) {
	t.Parallel()

	cols := ColumnsFor([]string{"task", "n"}, [][]string{{"Обнови README", "12345"}}, 0)
	require.Len(t, cols, 2)
	assert.Equal(t, 13, cols[0].Width)
	assert.Equal(t, 5, cols[1].Width)

	capped := ColumnsFor([]string{"task"}, [][]string{{strings.Repeat("x", 100)}}, 20)
	assert.Equal(t, 20, capped[0].Width)
}

func TestTable_Render(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	CheckNoColor()

	var buf bytes.Buffer
	rows := [][]string{{"simple", "3"}, {"very_complex", "1"}}
	NewTable(&buf, ColumnsFor([]string{"level", "count"}, rows, 0)).Render(rows)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "level         count", lines[0])
	assert.Equal(t, "simple        3", lines[1])
	assert.Equal(t, "very_complex  1", lines[2])
}

func TestTable_NoColumns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewTable(&buf, nil).Render([][]string{{"x"}})
	assert.Empty(t, buf.String())
}
