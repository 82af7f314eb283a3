package config

import (
	"github.com/mrz1836/taskrouter/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - router.large_context_threshold must be positive
//   - abtest.ratio and abtest.low_confidence_trigger must be within [0, 1]
//   - abtest.ml_confidence_threshold must be within (0, 1]
//   - ml.timeout must be positive
//   - ml.command must be set while the harness is enabled
//   - batch.concurrency must be positive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}
	if err := validateRouterConfig(&cfg.Router); err != nil {
		return err
	}
	if err := validateABTestConfig(&cfg.ABTest); err != nil {
		return err
	}
	if err := validateMLConfig(&cfg.ML, cfg.ABTest.Enabled); err != nil {
		return err
	}
	if cfg.Batch.Concurrency < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidRouter,
			"batch.concurrency must be positive, got %d", cfg.Batch.Concurrency)
	}
	return nil
}

func validateRouterConfig(cfg *RouterConfig) error {
	if cfg.LargeContextThreshold <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidRouter,
			"router.large_context_threshold must be positive, got %d", cfg.LargeContextThreshold)
	}
	return nil
}

func validateABTestConfig(cfg *ABTestConfig) error {
	if cfg.Ratio < 0 || cfg.Ratio > 1 {
		return errors.Wrapf(errors.ErrConfigInvalidABTest,
			"abtest.ratio must be between 0 and 1, got %v", cfg.Ratio)
	}
	if cfg.MLConfidenceThreshold <= 0 || cfg.MLConfidenceThreshold > 1 {
		return errors.Wrapf(errors.ErrConfigInvalidABTest,
			"abtest.ml_confidence_threshold must be in (0, 1], got %v", cfg.MLConfidenceThreshold)
	}
	if cfg.LowConfidenceTrigger < 0 || cfg.LowConfidenceTrigger > 1 {
		return errors.Wrapf(errors.ErrConfigInvalidABTest,
			"abtest.low_confidence_trigger must be between 0 and 1, got %v", cfg.LowConfidenceTrigger)
	}
	return nil
}

func validateMLConfig(cfg *MLConfig, enabled bool) error {
	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidML,
			"ml.timeout must be positive, got %s", cfg.Timeout)
	}
	if enabled && cfg.Command == "" {
		return errors.Wrap(errors.ErrConfigInvalidML,
			"ml.command must not be empty while abtest is enabled")
	}
	return nil
}
