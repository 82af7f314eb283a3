package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/taskrouter/internal/config"
	"github.com/mrz1836/taskrouter/internal/errors"
	"github.com/mrz1836/taskrouter/internal/tui"
)

// Config show formats.
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// ConfigShowFlags holds flags for config show.
type ConfigShowFlags struct {
	// Format is yaml or json.
	Format string
}

// ConfigInitFlags holds flags for config init.
type ConfigInitFlags struct {
	// Defaults writes the built-in defaults without asking.
	Defaults bool
	// Force overwrites an existing file.
	Force bool
	// Project writes .taskrouter/config.yaml in the working directory.
	Project bool
}

// configFile describes one config file location.
type configFile struct {
	Path   string `json:"path" yaml:"path"`
	Exists bool   `json:"exists" yaml:"exists"`
}

type configShowOutput struct {
	Config map[string]any        `json:"config"`
	Files  map[string]configFile `json:"files"`
}

// AddConfigCommand adds the config command group to root.
func AddConfigCommand(root *cobra.Command, globals *GlobalFlags, d *deps) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create taskrouter configuration",
	}

	showFlags := &ConfigShowFlags{}
	show := &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long: `Display the effective configuration after merging defaults, the global
config (~/.taskrouter/config.yaml), the project config (.taskrouter/config.yaml)
and TASKROUTER_* environment variables.

Examples:
  taskrouter config show
  taskrouter config show --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), globals, showFlags, d)
		},
	}
	show.Flags().StringVar(&showFlags.Format, "format", formatYAML, "output format (yaml or json)")

	initFlags := &ConfigInitFlags{}
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file",
		Long: `Write a config file. On a terminal you are asked for the main settings;
with --defaults, or when stdin is not a terminal, the defaults are written.

Examples:
  taskrouter config init
  taskrouter config init --defaults --project
  taskrouter config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd.Context(), cmd.OutOrStdout(), globals, initFlags, d)
		},
	}
	initCmd.Flags().BoolVar(&initFlags.Defaults, "defaults", false, "write defaults without prompting")
	initCmd.Flags().BoolVar(&initFlags.Force, "force", false, "overwrite an existing config file")
	initCmd.Flags().BoolVar(&initFlags.Project, "project", false, "write the project config instead of the global one")

	cmd.AddCommand(show, initCmd)
	root.AddCommand(cmd)
}

func runConfigShow(ctx context.Context, w io.Writer, globals *GlobalFlags, flags *ConfigShowFlags, d *deps) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	format := strings.ToLower(flags.Format)
	if globals.JSON() {
		format = formatJSON
	}
	if format != formatYAML && format != formatJSON {
		return errors.NewExitCode2Error(
			fmt.Errorf("%w: %s (use yaml or json)", errors.ErrInvalidOutputFormat, flags.Format))
	}

	cfg, err := d.loadConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	files := configFiles()

	if format == formatJSON {
		// Going through YAML keeps durations human readable ("5s").
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return errors.Wrap(err, "failed to convert config")
		}
		return tui.NewJSONOutput(w).JSON(configShowOutput{Config: tree, Files: files})
	}

	tui.CheckNoColor()
	s := tui.NewOutputStyles()
	_, _ = fmt.Fprintln(w, s.Header.Render("Effective taskrouter configuration"))
	_, _ = fmt.Fprintln(w, s.Dim.Render("Sources: env > project > global > default"))
	_, _ = fmt.Fprintln(w)
	_, _ = w.Write(data)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, s.Dim.Render("Configuration files:"))
	for _, name := range []string{config.LayerGlobal, config.LayerProject} {
		f, ok := files[name]
		if !ok {
			continue
		}
		state := "found"
		if !f.Exists {
			state = "not found"
		}
		_, _ = fmt.Fprintf(w, "  %-8s %s (%s)\n", name+":", f.Path, state)
	}
	return nil
}

func configFiles() map[string]configFile {
	files := map[string]configFile{}
	for _, layer := range config.Layers() {
		p := layer.Path
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		files[layer.Name] = configFile{Path: p, Exists: fileExists(p)}
	}
	return files
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func runConfigInit(ctx context.Context, w io.Writer, globals *GlobalFlags, flags *ConfigInitFlags, d *deps) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := zerolog.Ctx(ctx)

	path := config.ProjectConfigPath()
	if !flags.Project {
		p, err := config.GlobalConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if fileExists(path) && !flags.Force {
		return errors.Wrapf(errors.ErrConfigExists, "%s", path)
	}

	cfg := config.DefaultConfig()
	if !flags.Defaults && d.isTerminal() {
		if err := collectConfigInteractive(cfg, d); err != nil {
			return err
		}
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := writeConfigFile(path, cfg); err != nil {
		return err
	}
	logger.Info().Str("path", path).Msg("config written")

	if globals.JSON() {
		return tui.NewJSONOutput(w).JSON(map[string]string{"path": path})
	}
	tui.NewTTYOutput(w).Success("Configuration saved to " + path)
	return nil
}

// collectConfigInteractive asks for the main settings. Numeric fields go
// through strings because huh inputs are text.
func collectConfigInteractive(cfg *config.Config, d *deps) error {
	ratio := strconv.FormatFloat(cfg.ABTest.Ratio, 'f', -1, 64)
	timeout := cfg.ML.Timeout.String()

	if err := d.newForm(cfg, &ratio, &timeout).Run(); err != nil {
		return fmt.Errorf("configuration form failed: %w", err)
	}

	r, err := parseRatio(ratio)
	if err != nil {
		return err
	}
	t, err := parseTimeout(timeout)
	if err != nil {
		return err
	}
	cfg.ABTest.Ratio = r
	cfg.ML.Timeout = t
	return nil
}

// newConfigForm builds the huh form for config init.
func newConfigForm(cfg *config.Config, ratio, timeout *string) formRunner {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable the A/B experiment?").
				Description("Some calls are also sent to the ML classifier and logged for comparison").
				Value(&cfg.ABTest.Enabled),
			huh.NewInput().
				Title("Sampling ratio").
				Description("Share of calls sent to the ML classifier (0 to 1)").
				Value(ratio).
				Validate(func(s string) error { _, err := parseRatio(s); return err }),
			huh.NewInput().
				Title("ML classifier command").
				Description("Executable that prints the ML answer as JSON").
				Value(&cfg.ML.Command),
			huh.NewInput().
				Title("ML timeout").
				Description("Maximum time for one ML call (e.g. 5s, 1500ms)").
				Value(timeout).
				Validate(func(s string) error { _, err := parseTimeout(s); return err }),
		),
	).WithTheme(tui.Theme())
}

func parseRatio(s string) (float64, error) {
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || r < 0 || r > 1 {
		return 0, errors.Wrapf(errors.ErrConfigInvalidABTest, "ratio must be a number between 0 and 1, got %q", s)
	}
	return r, nil
}

func parseTimeout(s string) (time.Duration, error) {
	t, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || t <= 0 {
		return 0, errors.Wrapf(errors.ErrConfigInvalidML, "timeout must be a positive duration, got %q", s)
	}
	return t, nil
}

func writeConfigFile(path string, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	header := fmt.Sprintf("# taskrouter configuration\n# Generated by taskrouter config init on %s\n\n",
		time.Now().Format(time.DateOnly))
	if err := os.WriteFile(path, []byte(header+string(data)), 0o600); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}
