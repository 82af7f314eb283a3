package constants

// Directory names used under the taskrouter home directory.
const (
	// Home is the hidden directory where taskrouter keeps config, logs and tracking data.
	// It is created in the user's home directory, or relative to a project root.
	Home = ".taskrouter"

	// LogsDir holds the rotating CLI log.
	LogsDir = "logs"

	// TrackingDir holds the A/B test log.
	TrackingDir = "tracking"
)

// File names.
const (
	// ConfigFileName is the name of both the global and project config files.
	ConfigFileName = "config.yaml"

	// CLILogFileName is the rotating CLI log, in ~/.taskrouter/logs/.
	CLILogFileName = "taskrouter.log"

	// ABLogFileName is the append-only A/B record log, in ~/.taskrouter/tracking/.
	ABLogFileName = "ab_test_log.jsonl"
)

// HomeEnvVar overrides the taskrouter home directory.
const HomeEnvVar = "TASKROUTER_HOME"
