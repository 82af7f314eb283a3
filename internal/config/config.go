// Package config provides configuration management for taskrouter with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (applied by the caller after Load)
//  2. Environment variables (TASKROUTER_* prefix)
//  3. Project config (.taskrouter/config.yaml)
//  4. Global config (~/.taskrouter/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for taskrouter.
type Config struct {
	// Router contains settings for the rule-based classifier and pipeline generator.
	Router RouterConfig `yaml:"router" mapstructure:"router" json:"router"`

	// ABTest contains settings for the A/B harness that compares rules with ML.
	ABTest ABTestConfig `yaml:"abtest" mapstructure:"abtest" json:"abtest"`

	// ML contains settings for the external ML classifier subprocess.
	ML MLConfig `yaml:"ml" mapstructure:"ml" json:"ml"`

	// Batch contains settings for the batch command.
	Batch BatchConfig `yaml:"batch" mapstructure:"batch" json:"batch"`
}

// RouterConfig contains settings for pipeline selection.
type RouterConfig struct {
	// LargeContextThreshold is the context size in tokens above which the
	// _large pipelines are used.
	// Default: 100000
	LargeContextThreshold int `yaml:"large_context_threshold" mapstructure:"large_context_threshold" json:"large_context_threshold"`
}

// ABTestConfig contains settings for the A/B harness.
type ABTestConfig struct {
	// Enabled turns the harness on. When false, ML is never consulted.
	// Default: true
	Enabled bool `yaml:"enabled" mapstructure:"enabled" json:"enabled"`

	// Ratio is the fraction of calls sampled into the treatment group.
	// Default: 0.2
	Ratio float64 `yaml:"ratio" mapstructure:"ratio" json:"ratio"`

	// MLConfidenceThreshold is the minimum ML confidence that overrides rules.
	// Default: 0.7
	MLConfidenceThreshold float64 `yaml:"ml_confidence_threshold" mapstructure:"ml_confidence_threshold" json:"ml_confidence_threshold"`

	// LowConfidenceTrigger consults ML whenever the rules confidence is below it.
	// Default: 0.75
	LowConfidenceTrigger float64 `yaml:"low_confidence_trigger" mapstructure:"low_confidence_trigger" json:"low_confidence_trigger"`

	// LogPath is the JSONL log file. Empty means ~/.taskrouter/tracking/ab_test_log.jsonl.
	LogPath string `yaml:"log_path" mapstructure:"log_path" json:"log_path"`
}

// MLConfig contains settings for the external ML classifier.
type MLConfig struct {
	// Command is the executable to run.
	// Default: "python3"
	Command string `yaml:"command" mapstructure:"command" json:"command"`

	// Args are passed before the task text. Relative script paths are
	// resolved with ResolveScriptArgs.
	// Default: ["scripts/ml_classify.py"]
	Args []string `yaml:"args" mapstructure:"args" json:"args"`

	// Timeout bounds a single classification.
	// Default: 5s
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" json:"timeout"`
}

// BatchConfig contains settings for the batch command.
type BatchConfig struct {
	// Concurrency is how many tasks are classified at once.
	// Default: 4
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency" json:"concurrency"`
}
