package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/taskrouter/internal/abtest"
	"github.com/mrz1836/taskrouter/internal/errors"
	"github.com/mrz1836/taskrouter/internal/tui"
)

// ABReportFlags holds flags for the ab report command.
type ABReportFlags struct {
	Since string
	JSON  bool
	Log   string
}

// reportOutput is the JSON shape of ab report.
type reportOutput struct {
	LogPath      string `json:"logPath"`
	SkippedLines int    `json:"skippedLines"`
	abtest.Report
}

// AddABCommand adds the ab command group to root.
func AddABCommand(root *cobra.Command, globals *GlobalFlags, d *deps) {
	cmd := &cobra.Command{
		Use:   "ab",
		Short: "Inspect the rules vs ML A/B experiment",
	}
	addABReportCommand(cmd, globals, d)
	root.AddCommand(cmd)
}

func addABReportCommand(parent *cobra.Command, globals *GlobalFlags, d *deps) {
	flags := &ABReportFlags{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the A/B log",
		Long: `Summarize the A/B log: group sizes, how often ML answered and agreed with
the rules, confidence statistics, the largest disagreements and tuning
recommendations.

Examples:
  taskrouter ab report
  taskrouter ab report --since 2026-02-01
  taskrouter ab report --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runABReport(cmd.Context(), cmd.OutOrStdout(), globals, flags, d)
		},
	}
	cmd.Flags().StringVar(&flags.Since, "since", "", "only records from this date on (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "print JSON (same as -o json)")
	cmd.Flags().StringVar(&flags.Log, "log", "", "log file to read (default abtest.log_path)")
	parent.AddCommand(cmd)
}

func runABReport(ctx context.Context, w io.Writer, globals *GlobalFlags, flags *ABReportFlags, d *deps) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := flags.Log
	if path == "" {
		cfg, err := d.loadConfig(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}
		if path, err = cfg.ABTest.ResolveLogPath(); err != nil {
			return err
		}
	}

	records, skipped, err := abtest.LoadRecords(path, flags.Since)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidDate) {
			return errors.NewExitCode2Error(err)
		}
		return err
	}
	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("records", len(records)).
		Int("skipped", skipped).
		Msg("ab log loaded")

	report := abtest.Analyze(records)

	if flags.JSON || globals.JSON() {
		return tui.NewJSONOutput(w).JSON(reportOutput{LogPath: path, SkippedLines: skipped, Report: report})
	}

	out := tui.NewTTYOutput(w)
	if report.Empty() {
		out.Warning("No A/B records found in " + path)
		return nil
	}

	_, _ = io.WriteString(w, tui.RenderMarkdown(reportMarkdown(path, skipped, &report), 0))

	if len(report.Disagreements) > 0 {
		out.Info(fmt.Sprintf("Disagreements (first %d)", len(report.Disagreements)))
		rows := make([][]string, 0, len(report.Disagreements))
		for _, dis := range report.Disagreements {
			rows = append(rows, []string{
				dis.Task,
				fmt.Sprintf("%s (%.2f)", dis.RulesLevel, dis.RulesConfidence),
				fmt.Sprintf("%s (%.2f)", dis.MLLevel, dis.MLConfidence),
				dis.FinalLevel,
			})
		}
		out.Table([]string{"task", "rules", "ml", "final"}, rows)
	}
	return nil
}

// reportMarkdown renders everything but the disagreements as markdown.
func reportMarkdown(path string, skipped int, r *abtest.Report) string {
	var b strings.Builder

	b.WriteString("# A/B report\n\n")
	fmt.Fprintf(&b, "- **Log:** `%s`\n", path)
	fmt.Fprintf(&b, "- **Records:** %d (%d unique tasks)\n", r.TotalRecords, r.UniqueTasks)
	if r.From != "" {
		fmt.Fprintf(&b, "- **Period:** %s to %s\n", r.From, r.To)
	}
	if skipped > 0 {
		fmt.Fprintf(&b, "- **Skipped lines:** %d\n", skipped)
	}

	countTable(&b, "Groups", "group", r.Groups, r.TotalRecords)
	countTable(&b, "Classification methods", "method", r.Methods, r.TotalRecords)
	countTable(&b, "Final levels", "level", r.FinalLevels, r.TotalRecords)

	b.WriteString("\n## ML classifier\n\n")
	fmt.Fprintf(&b, "- **Calls:** %d\n", r.MLCalls)
	if r.MLCalls > 0 {
		fmt.Fprintf(&b, "- **Answered directly:** %.1f%%\n", r.MLDirectRate*100)
		fmt.Fprintf(&b, "- **Fell back:** %d\n", r.MLFallbacks)
		fmt.Fprintf(&b, "- **Agreement with rules:** %.1f%%\n", r.Agreement*100)
		countTable(&b, "ML methods", "method", r.MLMethods, r.MLCalls)
	}

	b.WriteString("\n## Confidence\n\n")
	b.WriteString("| source | count | avg | min | max |\n|---|---:|---:|---:|---:|\n")
	for _, row := range []struct {
		name  string
		stats abtest.ConfidenceStats
	}{{"rules", r.RulesConfidence}, {"ml", r.MLConfidence}} {
		fmt.Fprintf(&b, "| %s | %d | %.3f | %.3f | %.3f |\n",
			row.name, row.stats.Count, row.stats.Avg, row.stats.Min, row.stats.Max)
	}

	b.WriteString("\n## Recommendations\n\n")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	return b.String()
}

func countTable(b *strings.Builder, title, key string, counts []abtest.Count, total int) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n| %s | count | share |\n|---|---:|---:|\n", title, key)
	for _, c := range counts {
		share := 0.0
		if total > 0 {
			share = float64(c.Count) / float64(total) * 100
		}
		fmt.Fprintf(b, "| %s | %d | %.1f%% |\n", c.Key, c.Count, share)
	}
}
