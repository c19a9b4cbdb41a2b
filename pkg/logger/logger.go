// Package logger provides the shared leveled file logger. Logs go to
// ~/.cwa/logs/cwa.log with automatic rotation; the verbose flag mirrors
// them to stderr.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDirName  = ".cwa/logs"
	logFileName = "cwa.log"
	maxSizeMB   = 1
	maxAgeDays  = 14
	maxBackups  = 20
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

var (
	mu      sync.Mutex
	rotator *lumberjack.Logger
	level   = LevelInfo
	verbose bool
	logPath string
)

// Init opens the rotating log file. Safe to call more than once; failures
// leave the logger writing to stderr only.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator != nil {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	logDir := filepath.Join(home, logDirName)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath = filepath.Join(logDir, logFileName)
	rotator = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSizeMB,
		MaxAge:     maxAgeDays,
		MaxBackups: maxBackups,
		Compress:   true,
		LocalTime:  true,
	}
	return nil
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

// SetLevel sets the minimum severity that gets written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetVerbose mirrors log lines to stderr.
func SetVerbose(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = enabled
}

// Path returns the log file path, or "" before Init.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

func write(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	line := fmt.Sprintf("[%s] %s: %s\n",
		time.Now().Format("2006-01-02 15:04:05"), l, fmt.Sprintf(format, args...))
	if rotator != nil {
		rotator.Write([]byte(line))
	}
	if verbose || rotator == nil {
		fmt.Fprint(os.Stderr, line)
	}
}

// Debug logs at DEBUG level.
func Debug(format string, args ...any) { write(LevelDebug, format, args...) }

// Info logs at INFO level.
func Info(format string, args ...any) { write(LevelInfo, format, args...) }

// Warn logs at WARN level.
func Warn(format string, args ...any) { write(LevelWarn, format, args...) }

// Error logs at ERROR level.
func Error(format string, args ...any) { write(LevelError, format, args...) }
