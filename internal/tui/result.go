package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrz1836/taskrouter/internal/domain"
)

// RenderResult prints a classification as a short human-readable summary.
func RenderResult(w io.Writer, res domain.ClassificationResult) {
	CheckNoColor()
	s := NewOutputStyles()

	line := func(key, value string) {
		_, _ = fmt.Fprintf(w, "%s %s\n", s.Key.Render(Fit(key, 12, AlignLeft)), value)
	}

	line("Level", LevelStyle(res.Level).Render(Label(res.Level.String()))+
		s.Dim.Render(fmt.Sprintf("  (%.0f%% via %s)", res.Confidence*100, res.Method)))
	line("Criticality", CriticalityIcon(res.Criticality)+" "+res.Criticality.String())
	line("Context", fmt.Sprintf("~%d tokens", res.ContextSize))
	line("Pipeline", s.Header.Render(res.PipelineName))
	for i, st := range res.Pipeline {
		_, _ = fmt.Fprintf(w, "%s %d. %-7s %-9s %s\n",
			strings.Repeat(" ", 12), i+1, st.Model, st.Role, s.Dim.Render(st.Description))
	}
	line("Cost", fmt.Sprintf("$%.4f  vs $%.4f baseline  (%s)",
		res.EstimatedCost, res.BaselineCost, savings(res.SavingsPercent)))
	if res.ProgramSuggestion != "" {
		line("Run", s.Success.Render(res.ProgramSuggestion))
	}
}

func savings(pct float64) string {
	if pct < 0 {
		return fmt.Sprintf("%.2f%% more", -pct)
	}
	return fmt.Sprintf("%.2f%% saved", pct)
}
