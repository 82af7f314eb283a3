package config

import (
	"context"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/taskrouter/internal/constants"
	"github.com/mrz1836/taskrouter/internal/errors"
)

// Layer names.
const (
	LayerGlobal  = "global"
	LayerProject = "project"
)

// Layer is one config file in the merge order.
type Layer struct {
	// Name is LayerGlobal or LayerProject.
	Name string
	// Path is where the file is looked for.
	Path string
	// Loaded is set by LoadLayers when the file existed and was merged.
	Loaded bool
}

// Layers returns the config files Load reads, lowest precedence first. The
// global layer is left out when the home directory cannot be resolved.
func Layers() []Layer {
	layers := make([]Layer, 0, 2)
	if p, err := GlobalConfigPath(); err == nil {
		layers = append(layers, Layer{Name: LayerGlobal, Path: p})
	}
	return append(layers, Layer{Name: LayerProject, Path: ProjectConfigPath()})
}

// Load merges defaults, the global and project config files and TASKROUTER_*
// environment variables, later sources winning. Missing files are skipped.
func Load(ctx context.Context) (*Config, error) {
	cfg, _, err := LoadLayers(ctx, Layers())
	return cfg, err
}

// LoadFromPaths is Load with explicit file paths. An empty path skips that layer.
func LoadFromPaths(ctx context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	var layers []Layer
	if globalConfigPath != "" {
		layers = append(layers, Layer{Name: LayerGlobal, Path: globalConfigPath})
	}
	if projectConfigPath != "" {
		layers = append(layers, Layer{Name: LayerProject, Path: projectConfigPath})
	}
	cfg, _, err := LoadLayers(ctx, layers)
	return cfg, err
}

// LoadLayers merges layers in order over the defaults, applies the
// environment, then validates. The returned layers report which files were read.
func LoadLayers(ctx context.Context, layers []Layer) (*Config, []Layer, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(strings.ToUpper(constants.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	out := make([]Layer, len(layers))
	for i, layer := range layers {
		loaded, err := mergeLayer(v, layer)
		if err != nil {
			return nil, nil, err
		}
		layer.Loaded = loaded
		out[i] = layer
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHooks()); err != nil {
		return nil, nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, nil, errors.Wrap(err, "invalid configuration")
	}

	event := zerolog.Ctx(ctx).Debug().Str("component", "config")
	for _, l := range out {
		event = event.Bool(l.Name, l.Loaded)
	}
	event.
		Bool("abtest.enabled", cfg.ABTest.Enabled).
		Float64("abtest.ratio", cfg.ABTest.Ratio).
		Int("router.large_context_threshold", cfg.Router.LargeContextThreshold).
		Dur("ml.timeout", cfg.ML.Timeout).
		Msg("configuration loaded")

	return &cfg, out, nil
}

// mergeLayer merges one YAML file into v. A file that does not exist is not
// an error and reports false.
func mergeLayer(v *viper.Viper, layer Layer) (bool, error) {
	if _, err := os.Stat(layer.Path); err != nil {
		return false, nil //nolint:nilerr // an unreadable or missing layer is skipped
	}
	v.SetConfigFile(layer.Path)
	v.SetConfigType("yaml")
	if err := v.MergeInConfig(); err != nil {
		return false, errors.Wrapf(err, "failed to read %s config: %s", layer.Name, layer.Path)
	}
	return true, nil
}

// setDefaults registers every key; AutomaticEnv only resolves keys viper knows.
// Keys must match the mapstructure tags.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("router.large_context_threshold", d.Router.LargeContextThreshold)

	v.SetDefault("abtest.enabled", d.ABTest.Enabled)
	v.SetDefault("abtest.ratio", d.ABTest.Ratio)
	v.SetDefault("abtest.ml_confidence_threshold", d.ABTest.MLConfidenceThreshold)
	v.SetDefault("abtest.low_confidence_trigger", d.ABTest.LowConfidenceTrigger)
	v.SetDefault("abtest.log_path", d.ABTest.LogPath)

	v.SetDefault("ml.command", d.ML.Command)
	v.SetDefault("ml.args", d.ML.Args)
	v.SetDefault("ml.timeout", d.ML.Timeout.String())

	v.SetDefault("batch.concurrency", d.Batch.Concurrency)
}

// decodeHooks turn "5s" into a time.Duration and a space-separated
// TASKROUTER_ML_ARGS into a string slice.
func decodeHooks() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(" "),
		),
	)
}
