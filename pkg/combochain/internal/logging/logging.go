// Package logging owns the two JSON loggers of the process. The application
// logger is for callers of the library, the internal one carries the
// records of the library itself and is tagged with its component name.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const defaultLogFilename = "combochain.log"

// DefaultInternalLevel keeps library warnings visible without debug noise
const DefaultInternalLevel = slog.LevelWarn

// channel is one lazily built logger with its own adjustable level
type channel struct {
	once   sync.Once
	level  slog.LevelVar
	attrs  []any
	logger *slog.Logger
}

func newChannel(level slog.Level, attrs ...any) *channel {
	c := &channel{attrs: attrs}
	c.level.Set(level)
	return c
}

func (c *channel) get() *slog.Logger {
	c.once.Do(func() {
		c.logger = newLogger(output(), &c.level, c.attrs...)
	})
	return c.logger
}

var (
	logDir      = "logs"
	logFilename string

	outputOnce sync.Once
	out        io.Writer
	logFile    *os.File

	app      = newChannel(slog.LevelInfo)
	internal = newChannel(DefaultInternalLevel, "component", "combochain")
)

// SetLogFilename must be called before the first logger is requested
func SetLogFilename(filename string) {
	logFilename = filename
}

// SetLogDir must be called before the first logger is requested. An empty dir logs to stdout only.
func SetLogDir(dir string) {
	logDir = dir
}

func output() io.Writer {
	outputOnce.Do(func() {
		var err error
		out, logFile, err = openOutput(logDir, logFilename)
		if err != nil {
			panic("Failed to set up logging: " + err.Error())
		}
	})
	return out
}

// openOutput returns stdout alone for an empty dir, otherwise stdout teed into dir/filename
func openOutput(dir, filename string) (io.Writer, *os.File, error) {
	if dir == "" {
		return os.Stdout, nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, err
	}
	if filename == "" {
		filename = defaultLogFilename
	}

	f, err := os.OpenFile(filepath.Join(dir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}
	return io.MultiWriter(os.Stdout, f), f, nil
}

func newLogger(w io.Writer, level slog.Leveler, attrs ...any) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}
	return logger
}

func GetLogger() *slog.Logger {
	return app.get()
}

// GetInternalLogger is used by the library itself. It starts at DefaultInternalLevel.
func GetInternalLogger() *slog.Logger {
	return internal.get()
}

func SetLogLevel(level slog.Level) {
	app.level.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	internal.level.Set(level)
}

// InternalLevel is debug when debug output was asked for and DefaultInternalLevel otherwise
func InternalLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return DefaultInternalLevel
}

// ParseLevel maps debug, info, warn/warning and error to slog levels. Anything else is info.
func ParseLevel(rawLevel string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(rawLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetRawLogLevel(rawLevel string) {
	SetLogLevel(ParseLevel(rawLevel))
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
