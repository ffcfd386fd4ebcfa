package util

// Application defaults.
const (
	// ConfigFilename is the optional per-directory configuration file.
	ConfigFilename = ".syncer.toml"
	// DefaultExecutable is the sync tool invoked when none is configured.
	DefaultExecutable = "rsync"
	// DefaultOutputPath is where the result document is written.
	DefaultOutputPath = "output.txt"
	// DebugEnvVar turns on debug logging when set to a non-empty value.
	DebugEnvVar = "SYNCER_DEBUG"
)
