// Package constants provides centralized constant values used throughout taskrouter.
// This package is the single source of truth for shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// AppName is the binary name and the prefix for environment variables.
const AppName = "taskrouter"

// Context size bounds, in estimated tokens.
const (
	// MinContextSize is the lower clamp and the fallback estimate.
	MinContextSize = 5000

	// MaxContextSize is the upper clamp for any context estimate.
	MaxContextSize = 1000000

	// DefaultLargeContextThreshold separates the small and large pipeline
	// variants of simple, medium and complex tasks. Strictly greater is large.
	DefaultLargeContextThreshold = 100000

	// RepetitiveDowngradeContext is the context size above which a
	// repetitive medium-band task is downgraded to simple.
	RepetitiveDowngradeContext = 50000
)

// A/B harness defaults.
const (
	// DefaultABRatio is the fraction of calls sampled into the ML treatment group.
	DefaultABRatio = 0.2

	// DefaultMLConfidenceThreshold is the minimum ML confidence that overrides rules.
	DefaultMLConfidenceThreshold = 0.7

	// DefaultLowConfidenceTrigger consults ML whenever rules are less sure than this.
	DefaultLowConfidenceTrigger = 0.75

	// DefaultMLTimeout bounds a single ML subprocess call.
	DefaultMLTimeout = 5 * time.Second

	// MLWaitDelay is how long a killed ML subprocess may keep its output
	// pipes open before they are closed under it.
	MLWaitDelay = 100 * time.Millisecond

	// DefaultMLCommand is the interpreter used to run the ML classifier.
	DefaultMLCommand = "python3"

	// DefaultMLScript is the ML classifier script. It is looked for in the
	// working directory and then in each parent, so any subdirectory of the
	// project finds it.
	DefaultMLScript = "scripts/ml_classify.py"

	// LogTaskMaxRunes is how much of the task text is kept in an A/B log record.
	LogTaskMaxRunes = 100

	// ABLogLockTimeout bounds how long an append waits for another process
	// holding the A/B log lock.
	ABLogLockTimeout = 2 * time.Second

	// ABLogLockRetryInterval is the pause between lock attempts.
	ABLogLockRetryInterval = 20 * time.Millisecond
)

// Batch defaults.
const (
	// DefaultBatchConcurrency bounds concurrent classifications in batch mode.
	DefaultBatchConcurrency = 4

	// MaxBatchConcurrency caps the --concurrency flag.
	MaxBatchConcurrency = 32

	// BatchTaskColumnWidth is how wide the task column of the batch table may grow.
	BatchTaskColumnWidth = 48
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the size at which the CLI log rotates.
	LogMaxSizeMB = 10

	// LogMaxBackups is how many rotated files are kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is how long rotated files are kept.
	LogMaxAgeDays = 28

	// LogCompress gzips rotated files.
	LogCompress = true
)
