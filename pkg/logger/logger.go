// Package logger implements a levelled logger that fans out to several writers.
package logger

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"sync"
	"time"
)

type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
)

var levelTag = map[LogLevel]string{
	LevelTrace:   "  TRACE     ",
	LevelDebug:   "  DEBUG     ",
	LevelInfo:    "  INFO      ",
	LevelWarning: "  WARNING   ",
	LevelError:   "  ERROR  !  ",
	LevelFatal:   "  FATAL !!! ",
}

var levelNames = map[string]LogLevel{
	"trace":   LevelTrace,
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarning,
	"warning": LevelWarning,
	"error":   LevelError,
	"fatal":   LevelFatal,
}

// ParseLevel reads a level name as written in config files ("info", "warn"...).
func ParseLevel(s string) (LogLevel, error) {
	lvl, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return LevelInfo, fmt.Errorf("logger: Unknown log level %q.", s)
	}
	return lvl, nil
}

func (lvl LogLevel) String() string {
	switch lvl {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return fmt.Sprintf("LogLevel(%d)", int(lvl))
}

// A FormatFunc formats messages into log lines (i.e. by including log levels, timestamps, etc.).
type FormatFunc func(msg string, lvl LogLevel) string

// DefaultFmt formats messages into the form:
// `LEVEL    Mon Jan 2 15:04:05 -0700 2006: message`
// with a new line at the end. It prevents duplication of newlines, if the
// message already has one.
func DefaultFmt(msg string, lvl LogLevel) string {
	logTime := time.Now().Format(time.RubyDate)
	msg = strings.TrimSuffix(msg, "\n")
	return fmt.Sprintf("%v%v: %v\n", levelTag[lvl], logTime, msg)
}

// PlainFmt writes `level: message`, for command line tools.
func PlainFmt(msg string, lvl LogLevel) string {
	return fmt.Sprintf("%v: %v\n", lvl, strings.TrimSuffix(msg, "\n"))
}

// output is a writer shared by a logger and its named children.
type output struct {
	w  io.Writer
	mu sync.Mutex
}

// A Logger logs formatted messages into [io.Writer]s according to their log level.
type Logger struct {
	level   LogLevel
	fmt     FormatFunc
	name    string
	outputs []*output
}

var (
	// DefaultLogger logs to stdout and logs at LevelInfo, with [DefaultFmt].
	DefaultLogger = NewLogger(DefaultFmt, LevelInfo, os.Stdout)
	currentLogger = DefaultLogger
)

// SetLogger sets the logger that will be used on non-method calls.
// Preferably, this is to be set only once, at the top-level.
func SetLogger(logger *Logger) {
	currentLogger = logger
}

// NewLogger creates a logger that logs at the passed level and to
// the passed io.Writer's. It formats messages according to `fmt`.
// If `nil` is passed for `fmt`, [DefaultFmt] is used.
func NewLogger(fmt FormatFunc, lvl LogLevel, writers ...io.Writer) *Logger {
	if fmt == nil {
		fmt = DefaultFmt
	}
	outs := make([]*output, len(writers))
	for i, w := range writers {
		outs[i] = &output{w: w}
	}
	return &Logger{level: lvl, fmt: fmt, outputs: outs}
}

// NewLoggerOutputs creates a logger that logs at the passed level
// and outputs to the passed outputs, if they are valid. Valid outputs
// are paths (if relative, they will be relative to the executable) and
// "stdout" or "stderr". Always returns a logger, but it may not log to
// any outputs if all outputs are invalid.
func NewLoggerOutputs(level LogLevel, fmt FormatFunc, outputs ...string) *Logger {
	outs := []io.Writer{}
	execPath, execErr := os.Executable()
	if execErr != nil {
		Errorf("logger: Couldn't get executable path (%v), unable to log to relative paths.", execErr)
	}
	execDir := path.Dir(execPath)
	for _, out := range outputs {
		switch out {
		case "stdout":
			outs = append(outs, os.Stdout)
			continue
		case "stderr":
			outs = append(outs, os.Stderr)
			continue
		}

		logPath := out
		if !path.IsAbs(out) {
			if execErr != nil {
				Errorf("logger: Cannot locate %v, don't know executable path. Will not log to this file.", out)
				continue
			}
			logPath = path.Join(execDir, out)
		}

		// If this fails, opening the file will fail too.
		os.MkdirAll(path.Dir(logPath), os.ModePerm)

		logFile, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0660)
		if err != nil {
			Errorf("logger: Couldn't open/create log file at %v (%v). Will not log to this file.", out, err)
			continue
		}
		outs = append(outs, logFile)
	}
	return NewLogger(fmt, level, outs...)
}

// Named returns a child logger that prefixes its messages with `[name] `.
// It shares the parent's outputs and level.
func (logger *Logger) Named(name string) *Logger {
	child := *logger
	if logger.name != "" {
		name = logger.name + "." + name
	}
	child.name = name
	return &child
}

// Level returns the lowest level the logger writes.
func (logger *Logger) Level() LogLevel {
	return logger.level
}

// Enabled reports whether messages at lvl would be written.
func (logger *Logger) Enabled(lvl LogLevel) bool {
	return logger.level <= lvl
}

// Log formats a message and writes to the Logger's outputs if the level is appropriate.
func (logger *Logger) Log(level LogLevel, msg string) {
	if !logger.Enabled(level) {
		return
	}
	if logger.name != "" {
		msg = "[" + logger.name + "] " + msg
	}
	s := logger.fmt(msg, level)
	for _, out := range logger.outputs {
		out.mu.Lock()
		io.WriteString(out.w, s)
		out.mu.Unlock()
	}
}

func (logger *Logger) Trace(msg string) { logger.Log(LevelTrace, msg) }
func (logger *Logger) Debug(msg string) { logger.Log(LevelDebug, msg) }
func (logger *Logger) Info(msg string)  { logger.Log(LevelInfo, msg) }
func (logger *Logger) Warn(msg string)  { logger.Log(LevelWarning, msg) }
func (logger *Logger) Error(msg string) { logger.Log(LevelError, msg) }
func (logger *Logger) Fatal(msg string) { logger.Log(LevelFatal, msg) }

// Logf logs with a format string. The message is only built if the level is enabled.
func (logger *Logger) Logf(level LogLevel, format string, a ...any) {
	if logger.Enabled(level) {
		logger.Log(level, fmt.Sprintf(format, a...))
	}
}

func (logger *Logger) Tracef(format string, a ...any) { logger.Logf(LevelTrace, format, a...) }
func (logger *Logger) Debugf(format string, a ...any) { logger.Logf(LevelDebug, format, a...) }
func (logger *Logger) Infof(format string, a ...any)  { logger.Logf(LevelInfo, format, a...) }
func (logger *Logger) Warnf(format string, a ...any)  { logger.Logf(LevelWarning, format, a...) }
func (logger *Logger) Errorf(format string, a ...any) { logger.Logf(LevelError, format, a...) }
func (logger *Logger) Fatalf(format string, a ...any) { logger.Logf(LevelFatal, format, a...) }

// Current returns the logger used by the package-level functions.
func Current() *Logger {
	return currentLogger
}

// Below log through the current logger.

func Trace(msg string) { currentLogger.Trace(msg) }
func Debug(msg string) { currentLogger.Debug(msg) }
func Info(msg string)  { currentLogger.Info(msg) }
func Warn(msg string)  { currentLogger.Warn(msg) }
func Error(msg string) { currentLogger.Error(msg) }
func Fatal(msg string) { currentLogger.Fatal(msg) }

func Tracef(format string, a ...any) { currentLogger.Tracef(format, a...) }
func Debugf(format string, a ...any) { currentLogger.Debugf(format, a...) }
func Infof(format string, a ...any)  { currentLogger.Infof(format, a...) }
func Warnf(format string, a ...any)  { currentLogger.Warnf(format, a...) }
func Errorf(format string, a ...any) { currentLogger.Errorf(format, a...) }
func Fatalf(format string, a ...any) { currentLogger.Fatalf(format, a...) }
