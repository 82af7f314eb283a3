package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/taskrouter/internal/config"
	"github.com/mrz1836/taskrouter/internal/constants"
	"github.com/mrz1836/taskrouter/internal/logging"
)

//nolint:gochecknoglobals // process-wide logger state
var (
	fieldNamesOnce sync.Once
	globalLogMu    sync.Mutex

	// openLog is the rotating file behind the current logger, closed by CloseLogFile.
	openLog   io.Closer
	openLogMu sync.Mutex
)

// InitLogger builds the CLI logger and installs it as the zerolog global.
//
// --verbose logs at debug and --quiet at warn, otherwise info. Interactive
// stderr without NO_COLOR gets console formatting, anything else JSON lines.
// Every event is also written, redacted, to ~/.taskrouter/logs/taskrouter.log;
// when that file cannot be opened the logger keeps going on stderr alone.
func InitLogger(verbose, quiet bool) zerolog.Logger {
	isTTY := term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == ""
	var w io.Writer = consoleWriter(os.Stderr, isTTY)

	if file, err := openRedactedLog(); err == nil {
		openLogMu.Lock()
		if openLog != nil {
			_ = openLog.Close()
		}
		openLog = file
		openLogMu.Unlock()
		w = zerolog.MultiLevelWriter(w, file)
	}
	return installLogger(w, levelFor(verbose, quiet))
}

// InitLoggerWithWriter builds a logger that writes only to w.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	return installLogger(w, levelFor(verbose, quiet))
}

// CloseLogFile flushes and closes the rotating log file, if one is open.
func CloseLogFile() {
	openLogMu.Lock()
	defer openLogMu.Unlock()
	if openLog != nil {
		_ = openLog.Close()
		openLog = nil
	}
}

// LogFilePath returns the path of the rotating CLI log.
func LogFilePath() (string, error) {
	dir, err := config.LogsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.CLILogFileName), nil
}

func installLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	fieldNamesOnce.Do(func() {
		zerolog.TimestampFieldName = "ts"
		zerolog.MessageFieldName = "event"
	})

	logger := zerolog.New(w).
		Level(level).
		Hook(logging.NewSensitiveDataHook()).
		With().Timestamp().Logger()
	globalLogMu.Lock()
	log.Logger = logger
	globalLogMu.Unlock()
	return logger
}

func levelFor(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// consoleWriter formats for humans on a terminal and passes JSON through otherwise.
func consoleWriter(out io.Writer, isTTY bool) io.Writer {
	if !isTTY {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
}

// redactedFile scrubs secrets from each write before it reaches the rotating file.
type redactedFile struct {
	*logging.FilteringWriter
	file *lumberjack.Logger
}

func (r *redactedFile) Close() error {
	return r.file.Close()
}

func openRedactedLog() (*redactedFile, error) {
	path, err := LogFilePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}
	return &redactedFile{FilteringWriter: logging.NewFilteringWriter(file), file: file}, nil
}
