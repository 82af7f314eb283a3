// Package cli provides the command-line interface for taskrouter.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/taskrouter/internal/errors"
	"github.com/mrz1836/taskrouter/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// newRootCmd creates the root command with the default collaborators.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	return newRootCmdWithDeps(flags, info, defaultDeps())
}

func newRootCmdWithDeps(flags *GlobalFlags, info BuildInfo, d *deps) *cobra.Command {
	v := viper.New()
	classifyFlags := &ClassifyFlags{}

	cmd := &cobra.Command{
		Use:   "taskrouter [task description]",
		Short: "taskrouter - route coding tasks to the cheapest capable model pipeline",
		Long: `taskrouter estimates how complex a coding task is and picks a pipeline of
model stages for it, with a cost estimate against a single top-tier model.

A bare task description is the same as "taskrouter classify":
  taskrouter "Fix typo in README"
  taskrouter classify "Проверь безопасность auth модуля, 3-5 файлов"

Some calls are also sent to an external ML classifier so the two can be
compared later with "taskrouter ab report".`,
		Version: formatVersion(info),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runClassify(cmd.Context(), cmd.OutOrStdout(), args, flags, classifyFlags, d)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd, flags); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			logger := d.initLogger(flags.Verbose, flags.Quiet)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logger.WithContext(ctx))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)
	cmd.Flags().BoolVar(&classifyFlags.NoAB, "no-ab", false, "use the rules only and never call the ML classifier")

	AddClassifyCommand(cmd, flags, d)
	AddPipelineCommand(cmd, flags)
	AddBatchCommand(cmd, flags, d)
	AddABCommand(cmd, flags, d)
	AddConfigCommand(cmd, flags, d)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command. Errors are printed to stderr in the selected
// output format and returned so main can pick the exit code.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		zerolog.Ctx(cmd.Context()).Debug().Err(err).Msg("command failed")
		tui.NewOutput(cmd.ErrOrStderr(), flags.Output).Error(tui.FromError(err))
	}
	return err
}
