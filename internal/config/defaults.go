package config

import (
	"github.com/mrz1836/taskrouter/internal/constants"
)

// DefaultConfig returns a new Config with default values.
// These match the defaults registered on the viper instance by setDefaults.
func DefaultConfig() *Config {
	return &Config{
		Router: RouterConfig{
			LargeContextThreshold: constants.DefaultLargeContextThreshold,
		},
		ABTest: ABTestConfig{
			Enabled:               true,
			Ratio:                 constants.DefaultABRatio,
			MLConfidenceThreshold: constants.DefaultMLConfidenceThreshold,
			LowConfidenceTrigger:  constants.DefaultLowConfidenceTrigger,
		},
		ML: MLConfig{
			Command: constants.DefaultMLCommand,
			Args:    []string{constants.DefaultMLScript},
			Timeout: constants.DefaultMLTimeout,
		},
		Batch: BatchConfig{
			Concurrency: constants.DefaultBatchConcurrency,
		},
	}
}
