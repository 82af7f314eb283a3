// Package tui provides terminal output components for taskrouter.
//
// All colors use lipgloss.AdaptiveColor for light/dark terminal support.
// Call CheckNoColor() before rendering styled text so that NO_COLOR and
// TERM=dumb are respected.
package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrz1836/taskrouter/internal/domain"
)

//nolint:gochecknoglobals // Package-level styling API
var (
	// ColorPrimary is blue, used for headings and the chosen pipeline.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// LevelColors maps complexity levels to colors, cheapest green through most
// expensive red.
func LevelColors() map[domain.ComplexityLevel]lipgloss.AdaptiveColor {
	return map[domain.ComplexityLevel]lipgloss.AdaptiveColor{
		domain.LevelProgram:     {Light: "#585858", Dark: "#A8A8A8"},
		domain.LevelTrivial:     {Light: "#008700", Dark: "#00FF87"},
		domain.LevelSimple:      {Light: "#008700", Dark: "#87FF87"},
		domain.LevelMedium:      {Light: "#0087AF", Dark: "#00D7FF"},
		domain.LevelComplex:     {Light: "#AF8700", Dark: "#FFD700"},
		domain.LevelVeryComplex: {Light: "#AF0000", Dark: "#FF5F5F"},
	}
}

// CriticalityIcon returns the marker shown next to a criticality.
func CriticalityIcon(c domain.Criticality) string {
	switch c {
	case domain.CriticalityCritical:
		return "‼"
	case domain.CriticalityHigh:
		return "!"
	case domain.CriticalityMedium:
		return "•"
	case domain.CriticalityLow:
		return "·"
	default:
		return "?"
	}
}

// Label turns an identifier such as "very_complex" into "Very Complex".
func Label(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// LevelStyle returns the style for a complexity level.
func LevelStyle(level domain.ComplexityLevel) lipgloss.Style {
	color, ok := LevelColors()[level]
	if !ok {
		color = ColorMuted
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Header  lipgloss.Style
	Key     lipgloss.Style
}

// NewOutputStyles creates the common output styles.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Info:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:     lipgloss.NewStyle().Foreground(ColorMuted),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Key:     lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// CheckNoColor drops to plain ASCII rendering when color is not wanted.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns false if NO_COLOR is set (to any value, including
// empty) or TERM=dumb. See https://no-color.org/.
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
