package cli

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/taskrouter/internal/ctxutil"
	"github.com/mrz1836/taskrouter/internal/errors"
	"github.com/mrz1836/taskrouter/internal/tui"
)

// ClassifyFlags holds flags for the classify command.
type ClassifyFlags struct {
	// NoAB skips the ML classifier for this call.
	NoAB bool
}

// AddClassifyCommand adds the classify command to root.
func AddClassifyCommand(root *cobra.Command, globals *GlobalFlags, d *deps) {
	flags := &ClassifyFlags{}
	cmd := &cobra.Command{
		Use:   "classify <task description>",
		Short: "Classify a task and print its pipeline and cost",
		Long: `Classify a task description and print the chosen complexity level,
pipeline, context estimate and cost.

All arguments are joined with spaces, so quoting is optional.

Examples:
  taskrouter classify "Fix typo in README"
  taskrouter classify -o json Добавить API endpoint для пользователей
  taskrouter classify --no-ab "Refactor the auth module"`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd.Context(), cmd.OutOrStdout(), args, globals, flags, d)
		},
	}
	cmd.Flags().BoolVar(&flags.NoAB, "no-ab", false, "use the rules only and never call the ML classifier")
	root.AddCommand(cmd)
}

func runClassify(ctx context.Context, w io.Writer, args []string, globals *GlobalFlags, flags *ClassifyFlags, d *deps) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// An empty or blank argument is still classified; only a missing one is an error.
	if len(args) == 0 {
		return errors.NewExitCode2Error(errors.ErrEmptyTask)
	}
	text := strings.TrimSpace(strings.Join(args, " "))

	logger := zerolog.Ctx(ctx)
	cfg, err := d.loadConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	h, err := d.newHarness(cfg, flags.NoAB, *logger)
	if err != nil {
		return err
	}

	decision := h.Route(ctx, text)
	if decision.MLErr != nil {
		logger.Debug().Err(decision.MLErr).Msg("ml answer not used")
	}

	if globals.JSON() {
		return tui.NewJSONOutput(w).JSON(decision.Result)
	}
	tui.RenderResult(w, decision.Result)
	return nil
}
