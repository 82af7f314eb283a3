package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/taskrouter/internal/constants"
	"github.com/mrz1836/taskrouter/internal/domain"
	"github.com/mrz1836/taskrouter/internal/errors"
	"github.com/mrz1836/taskrouter/internal/pipeline"
	"github.com/mrz1836/taskrouter/internal/tui"
)

// PipelineFlags holds flags for the pipeline command.
type PipelineFlags struct {
	Level                 string
	Context               int
	Criticality           string
	LargeContextThreshold int
}

// pipelineOutput is the JSON shape of the pipeline command.
type pipelineOutput struct {
	Level          domain.ComplexityLevel `json:"level"`
	ContextSize    int                    `json:"contextSize"`
	Criticality    domain.Criticality     `json:"criticality"`
	PipelineName   string                 `json:"pipelineName"`
	Pipeline       domain.Pipeline        `json:"pipeline"`
	EstimatedCost  float64                `json:"estimatedCost"`
	BaselineCost   float64                `json:"baselineCost"`
	SavingsPercent float64                `json:"savingsPercent"`
}

// AddPipelineCommand adds the pipeline command to root.
func AddPipelineCommand(root *cobra.Command, globals *GlobalFlags) {
	flags := &PipelineFlags{}
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Show the pipeline and cost for a level and context size",
		Long: `Show the pipeline generated for a complexity level and context size, without
classifying any text.

Examples:
  taskrouter pipeline --level complex --context 150000
  taskrouter pipeline --level medium --context 20000 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd.Context(), cmd.OutOrStdout(), globals, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.Level, "level", "l", "", "complexity level (program|trivial|simple|medium|complex|very_complex)")
	cmd.Flags().IntVarP(&flags.Context, "context", "c", constants.MinContextSize, "context size in tokens")
	cmd.Flags().StringVar(&flags.Criticality, "criticality", string(domain.CriticalityMedium), "criticality (low|medium|high|critical)")
	cmd.Flags().IntVar(&flags.LargeContextThreshold, "large-context-threshold", constants.DefaultLargeContextThreshold,
		"context size above which the _large pipelines are used")
	_ = cmd.MarkFlagRequired("level")
	root.AddCommand(cmd)
}

func runPipeline(ctx context.Context, w io.Writer, globals *GlobalFlags, flags *PipelineFlags) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	level, err := domain.ParseComplexityLevel(flags.Level)
	if err != nil {
		return errors.NewExitCode2Error(errors.Wrap(err, "--level"))
	}
	crit, err := domain.ParseCriticality(flags.Criticality)
	if err != nil {
		return errors.NewExitCode2Error(errors.Wrap(err, "--criticality"))
	}
	if flags.Context <= 0 {
		return errors.NewExitCode2Error(fmt.Errorf("invalid argument: --context must be positive, got %d", flags.Context))
	}

	gen := pipeline.NewGenerator(pipeline.WithLargeContextThreshold(flags.LargeContextThreshold))
	plan := gen.Plan(level, flags.Context, crit)

	out := pipelineOutput{
		Level:          level,
		ContextSize:    flags.Context,
		Criticality:    crit,
		PipelineName:   plan.Name,
		Pipeline:       plan.Pipeline,
		EstimatedCost:  plan.EstimatedCost,
		BaselineCost:   plan.BaselineCost,
		SavingsPercent: plan.SavingsPercent,
	}

	if globals.JSON() {
		return tui.NewJSONOutput(w).JSON(out)
	}

	o := tui.NewTTYOutput(w)
	o.Info(fmt.Sprintf("%s  %s, ~%d tokens, %s criticality",
		out.PipelineName, tui.Label(out.Level.String()), out.ContextSize, out.Criticality))
	rows := make([][]string, 0, len(out.Pipeline))
	for i, st := range out.Pipeline {
		rows = append(rows, []string{
			fmt.Sprint(i + 1), st.Model.String(), st.Role.String(),
			fmt.Sprintf("$%.4f", pipeline.StageCost(st, out.ContextSize)), st.Description,
		})
	}
	o.Table([]string{"#", "model", "role", "cost", "description"}, rows)
	o.Info(fmt.Sprintf("total $%.4f, baseline $%.4f, savings %.2f%%",
		out.EstimatedCost, out.BaselineCost, out.SavingsPercent))
	return nil
}
