package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/taskrouter/internal/abtest"
	"github.com/mrz1836/taskrouter/internal/constants"
	"github.com/mrz1836/taskrouter/internal/domain"
	"github.com/mrz1836/taskrouter/internal/errors"
	"github.com/mrz1836/taskrouter/internal/pipeline"
	"github.com/mrz1836/taskrouter/internal/tui"
)

// BatchFlags holds flags for the batch command.
type BatchFlags struct {
	File        string
	Concurrency int
	NoAB        bool
}

// BatchItem is one classified line of a batch.
type BatchItem struct {
	Line   int                         `json:"line"`
	Task   string                      `json:"task"`
	Result domain.ClassificationResult `json:"result"`
}

// BatchSummary totals a batch.
type BatchSummary struct {
	Tasks          int     `json:"tasks"`
	EstimatedCost  float64 `json:"estimatedCost"`
	BaselineCost   float64 `json:"baselineCost"`
	SavingsPercent float64 `json:"savingsPercent"`
}

type batchOutput struct {
	Items   []BatchItem  `json:"items"`
	Summary BatchSummary `json:"summary"`
}

// AddBatchCommand adds the batch command to root.
func AddBatchCommand(root *cobra.Command, globals *GlobalFlags, d *deps) {
	flags := &BatchFlags{}
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Classify one task per line from a file",
		Long: `Classify every non-empty line of a file (or stdin with --file -). Lines
starting with # are skipped. Tasks are classified concurrently, and results
are printed in input order.

Examples:
  taskrouter batch --file tasks.txt
  cat tasks.txt | taskrouter batch --file - -o json --concurrency 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), globals, flags, d)
		},
	}
	cmd.Flags().StringVarP(&flags.File, "file", "f", "", "file with one task per line, - for stdin")
	cmd.Flags().IntVarP(&flags.Concurrency, "concurrency", "j", 0,
		fmt.Sprintf("tasks classified at once (default from batch.concurrency, max %d)", constants.MaxBatchConcurrency))
	cmd.Flags().BoolVar(&flags.NoAB, "no-ab", false, "use the rules only and never call the ML classifier")
	_ = cmd.MarkFlagRequired("file")
	root.AddCommand(cmd)
}

// batchTask is a task with its 1-based line number in the input.
type batchTask struct {
	line int
	text string
}

func readBatchTasks(r io.Reader) ([]batchTask, error) {
	var tasks []batchTask
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		tasks = append(tasks, batchTask{line: line, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read tasks")
	}
	return tasks, nil
}

func (d *deps) openBatchInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(d.stdin), nil
	}
	f, err := os.Open(path) //nolint:gosec // Path is given by the user on purpose
	if err != nil {
		return nil, errors.NewExitCode2Error(errors.Wrap(err, "--file"))
	}
	return f, nil
}

// batchConcurrency picks the flag value, else the configured one, bounded to
// [1, MaxBatchConcurrency].
func batchConcurrency(flagValue, configured int) int {
	n := flagValue
	if n <= 0 {
		n = configured
	}
	return min(max(n, 1), constants.MaxBatchConcurrency)
}

// classifyAll routes every task with at most limit in flight. Results keep
// the order of tasks. onDone, if set, is called after each task from the
// worker goroutine.
func classifyAll(ctx context.Context, h *abtest.Harness, tasks []batchTask, limit int, onDone func()) ([]BatchItem, error) {
	items := make([]BatchItem, len(tasks))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, task := range tasks {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			d := h.Route(gCtx, task.text)
			items[i] = BatchItem{Line: task.line, Task: task.text, Result: d.Result}
			if onDone != nil {
				onDone()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func summarize(items []BatchItem) BatchSummary {
	s := BatchSummary{Tasks: len(items)}
	for _, it := range items {
		s.EstimatedCost += it.Result.EstimatedCost
		s.BaselineCost += it.Result.BaselineCost
	}
	s.EstimatedCost = pipeline.RoundCost(s.EstimatedCost)
	s.BaselineCost = pipeline.RoundCost(s.BaselineCost)
	s.SavingsPercent = pipeline.SavingsPercent(s.EstimatedCost, s.BaselineCost)
	return s
}

func runBatch(ctx context.Context, w, errW io.Writer, globals *GlobalFlags, flags *BatchFlags, d *deps) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := zerolog.Ctx(ctx)

	in, err := d.openBatchInput(flags.File)
	if err != nil {
		return err
	}
	tasks, err := readBatchTasks(in)
	_ = in.Close()
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return errors.NewExitCode2Error(errors.Wrapf(errors.ErrEmptyTask, "no tasks in %s", flags.File))
	}

	cfg, err := d.loadConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	h, err := d.newHarness(cfg, flags.NoAB, *logger)
	if err != nil {
		return err
	}

	limit := batchConcurrency(flags.Concurrency, cfg.Batch.Concurrency)
	logger.Debug().Int("tasks", len(tasks)).Int("concurrency", limit).Msg("classifying batch")

	var onDone func()
	if !globals.JSON() && !globals.Quiet && d.stderrIsTerminal() {
		counter := tui.NewCounter(errW, len(tasks))
		defer counter.Finish()
		onDone = counter.Inc
	}

	items, err := classifyAll(ctx, h, tasks, limit, onDone)
	if err != nil {
		return err
	}
	summary := summarize(items)

	if globals.JSON() {
		return tui.NewJSONOutput(w).JSON(batchOutput{Items: items, Summary: summary})
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			fmt.Sprint(it.Line),
			it.Task,
			it.Result.Level.String(),
			it.Result.PipelineName,
			fmt.Sprintf("$%.4f", it.Result.EstimatedCost),
			it.Result.Method.String(),
		})
	}
	headers := []string{"line", "task", "level", "pipeline", "cost", "method"}
	cols := tui.ColumnsFor(headers, rows, 0)
	cols[1].Width = min(cols[1].Width, constants.BatchTaskColumnWidth)
	cols[0].Align, cols[4].Align = tui.AlignRight, tui.AlignRight
	tui.NewTable(w, cols).Render(rows)

	tui.NewTTYOutput(w).Info(fmt.Sprintf("%d tasks: $%.4f vs $%.4f baseline (%.2f%% saved)",
		summary.Tasks, summary.EstimatedCost, summary.BaselineCost, summary.SavingsPercent))
	return nil
}
