package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Output is how commands talk to the user. Text and JSON modes implement it.
type Output interface {
	Success(msg string)
	Error(err error)
	Warning(msg string)
	Info(msg string)
	// Table prints rows under headers.
	Table(headers []string, rows [][]string)
	// JSON prints v as indented JSON.
	JSON(v any) error
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewOutput returns JSON output for "json" and styled text output otherwise.
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}

// TTYOutput writes styled text.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
}

// NewTTYOutput creates a TTYOutput. It respects NO_COLOR.
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()
	return &TTYOutput{w: w, styles: NewOutputStyles()}
}

// Success prints a green ✓ line.
func (o *TTYOutput) Success(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Success.Render("✓ "+msg))
}

// Error prints a red ✗ line, followed by the suggestion of an ActionableError.
func (o *TTYOutput) Error(err error) {
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+err.Error()))
	var ae *ActionableError
	if errors.As(err, &ae) && ae.Suggestion != "" {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  ▸ Try: "+ae.Suggestion))
	}
}

// Warning prints a yellow ⚠ line.
func (o *TTYOutput) Warning(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Warning.Render("⚠ "+msg))
}

// Info prints a plain informational line.
func (o *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Info.Render(msg))
}

// Table prints an aligned table. Widths are measured in terminal cells.
func (o *TTYOutput) Table(headers []string, rows [][]string) {
	NewTable(o.w, ColumnsFor(headers, rows, 0)).Render(rows)
}

// JSON prints v as indented JSON.
func (o *TTYOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

// JSONOutput writes one JSON document per call and no decoration.
type JSONOutput struct {
	w io.Writer
}

// NewJSONOutput creates a JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{w: w}
}

type jsonMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type jsonError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Success is silent in JSON mode so stdout stays a single document.
func (o *JSONOutput) Success(string) {}

// Warning is silent in JSON mode.
func (o *JSONOutput) Warning(string) {}

// Info is silent in JSON mode.
func (o *JSONOutput) Info(string) {}

// Error prints {"type":"error","message":...}.
func (o *JSONOutput) Error(err error) {
	out := jsonError{Type: "error", Message: err.Error()}
	var ae *ActionableError
	if errors.As(err, &ae) {
		out.Suggestion = ae.Suggestion
	}
	//nolint:errchkjson // No error return per interface contract
	_ = json.NewEncoder(o.w).Encode(out)
}

// Table prints the rows as an array of objects keyed by header.
func (o *JSONOutput) Table(headers []string, rows [][]string) {
	result := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				obj[h] = row[i]
			} else {
				obj[h] = ""
			}
		}
		result = append(result, obj)
	}
	_ = encodeJSON(o.w, result)
}

// JSON prints v as indented JSON.
func (o *JSONOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

var (
	_ Output = (*TTYOutput)(nil)
	_ Output = (*JSONOutput)(nil)
)
