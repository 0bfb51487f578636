package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/postbuild/internal/config"
	"github.com/mrz1836/postbuild/internal/constants"
)

// LogOptions selects the level and sinks of the CLI logger.
//
// Console lines go to stderr: human-readable on a color terminal, JSON
// otherwise. A Unity editor hook usually runs without a terminal, so the
// rotating log file under ~/.postbuild/logs is where a failed post-build step
// is diagnosed.
type LogOptions struct {
	Verbose bool
	Quiet   bool
	// File also appends JSON lines to the rotating log file.
	File bool
	// Console replaces stderr when set.
	Console io.Writer
}

// Level maps the verbosity flags to a zerolog level.
func (o LogOptions) Level() zerolog.Level {
	switch {
	case o.Verbose:
		return zerolog.DebugLevel
	case o.Quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

//nolint:gochecknoglobals // process-wide logger and log file handle
var (
	cliLogger atomic.Pointer[zerolog.Logger]

	logFile   io.WriteCloser
	logFileMu sync.Mutex
)

// GetLogger returns the logger installed by the root command. Before the
// root command runs it returns a logger that discards everything.
func GetLogger() zerolog.Logger {
	if l := cliLogger.Load(); l != nil {
		return *l
	}
	return zerolog.Nop()
}

// NewLogger builds the CLI logger from opts and installs it both as the
// command logger and as zerolog's global logger. If the log file cannot be
// opened the logger keeps console output and warns once.
func NewLogger(opts LogOptions) zerolog.Logger {
	console := opts.Console
	if console == nil {
		console = consoleWriter(os.Stderr)
	}

	var (
		w       = console
		fileErr error
	)
	if opts.File {
		var fw io.WriteCloser
		if fw, fileErr = openLogFile(); fileErr == nil {
			replaceLogFile(fw)
			w = zerolog.MultiLevelWriter(console, fw)
		}
	}

	logger := zerolog.New(w).Level(opts.Level()).With().Timestamp().Logger()
	cliLogger.Store(&logger)
	log.Logger = logger

	if fileErr != nil {
		logger.Warn().Err(fileErr).Msg("log file unavailable, logging to console only")
	}
	return logger
}

// CloseLogFile flushes and closes the log file if one is open. main defers
// it; calling it more than once is harmless.
func CloseLogFile() {
	replaceLogFile(nil)
}

func replaceLogFile(w io.WriteCloser) {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = w
}

// consoleWriter pretty-prints on a color terminal and passes JSON through
// everywhere else, including when NO_COLOR is set.
func consoleWriter(f *os.File) io.Writer {
	if term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{Out: f, TimeFormat: time.TimeOnly}
	}
	return f
}

// logFileEnabled reports whether log.file is on in the resolved
// configuration. A config error here falls back to the default; the command
// that loads the config reports it properly.
func logFileEnabled(ctx context.Context, configFile string) bool {
	cfg, err := config.Resolve(ctx, configFile, nil)
	if err != nil {
		return config.DefaultConfig().Log.File
	}
	return cfg.Log.File
}

func openLogFile() (io.WriteCloser, error) {
	path, err := LogFilePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}, nil
}

// LogFilePath returns ~/.postbuild/logs/postbuild.log, honoring POSTBUILD_HOME.
func LogFilePath() (string, error) {
	home, err := config.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.LogsDir, constants.CLILogFileName), nil
}
