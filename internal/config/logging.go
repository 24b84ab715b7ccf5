package config

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global zerolog logger instance.
//
//nolint:gochecknoglobals // Intentionally global for application-wide structured logging
var Logger zerolog.Logger

// logFileHandle tracks the current log file for cleanup.
//
//nolint:gochecknoglobals // Tracks the global logger's file handle
var logFileHandle *os.File

// logMu protects concurrent access to logFileHandle and Logger.
//
//nolint:gochecknoglobals // Guards the global logger state
var logMu sync.RWMutex

// InitLogger initializes the package-level Logger with the given level and
// optional file output. When consoleToo is false and a file is configured,
// log lines go only to the file; a full-screen TUI session uses this so the
// alternate screen stays clean.
//
// level defaults to info on parse error.
func InitLogger(level, logFile string, consoleToo bool) error {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	if consoleToo {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	closeLogFileLocked()

	if logFile != "" {
		if dirErr := os.MkdirAll(filepath.Dir(logFile), 0o750); dirErr != nil {
			return dirErr
		}
		f, fileErr := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if fileErr != nil {
			return fileErr
		}
		logFileHandle = f
		writers = append(writers, f)
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return nil
}

// CloseLogFile closes the current log file handle, if any, and resets the
// Logger to a console-only writer so later writes do not hit a closed file.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

// closeLogFileLocked closes the log file and resets the logger. Must be
// called with logMu held.
func closeLogFileLocked() {
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil

		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).
			Level(Logger.GetLevel()).
			With().
			Timestamp().
			Logger()
	}
}

// GetLogger returns the global logger instance.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

// init sets up a console-only info-level logger so the package is usable
// before configuration is loaded.
//
//nolint:gochecknoinits // logger must exist before config load
func init() {
	_ = InitLogger(DefaultLogLevel, "", true)
}
