// ABOUTME: Logrus-backed implementation of the core Logger interface
// ABOUTME: Optionally writes to a rotated file through lumberjack

package logrus

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string

	// Format is "json" or "text". Empty picks text on a terminal and json otherwise.
	Format string

	// File, when set, receives the log output with rotation
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger implements interfaces.Logger
type Logger struct {
	entry *logrus.Logger
}

// New creates a logger writing to stderr or to the configured file
func New(opts Options) *Logger {
	l := logrus.New()
	l.SetLevel(parseLevel(opts.Level))

	var out io.Writer = os.Stderr
	if opts.File != "" {
		out = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 100),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 28),
			Compress:   true,
		}
	}
	l.SetOutput(out)

	format := opts.Format
	if format == "" {
		format = "json"
		if opts.File == "" && isatty.IsTerminal(os.Stderr.Fd()) {
			format = "text"
		}
	}
	if format == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	return &Logger{entry: l}
}

// NewWithWriter creates a JSON logger writing to w
func NewWithWriter(w io.Writer, level string) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(parseLevel(level))
	l.SetFormatter(&logrus.JSONFormatter{})
	return &Logger{entry: l}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Error(msg)
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
