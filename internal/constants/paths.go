package constants

// Log file names and rotation limits.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.postbuild/logs/postbuild.log
	CLILogFileName = "postbuild.log"

	// LogMaxSizeMB is the size at which the CLI log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is how long rotated log files are kept.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// Configuration file names.
const (
	// ConfigFileName is the name of both the global and the project configuration file.
	ConfigFileName = "config.yaml"
)
