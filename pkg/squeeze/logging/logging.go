// Package logging provides the shared logging system for the squeeze
// parameter tuner, built on charmbracelet/log with per-component named
// loggers.
//
// Basic usage:
//
//	cfg := logging.Config{Level: "info", ConsoleLevel: "info"}
//	if err := logging.Init(cfg); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Close()
//
//	logger := logging.Get("sweeper")
//	logger.Info("measuring", "dict", "4m")
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/jamesainslie/squeeze/pkg/squeeze/config"
)

// Level represents a logging level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// toCharmLevel converts our Level to a charmbracelet/log level.
func (l Level) toCharmLevel() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelInfo:
		return log.InfoLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses a string into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

// Config configures the logging system.
type Config struct {
	// Level is the default log level (debug, info, warn, error).
	Level string

	// Path is the log file path. Empty uses DefaultLogPath().
	// "-" disables the log file entirely.
	Path string

	// Components maps component names to level overrides.
	Components map[string]string

	// ConsoleLevel enables stderr output at the given level and above.
	// Empty disables console output.
	ConsoleLevel string
}

// Logger wraps charmbracelet/log with component identification. It can
// write to both the log file and the console.
type Logger struct {
	file    *log.Logger // always present; io.Discard before Init
	console *log.Logger // nil when console output is disabled
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) { l.log(LevelInfo, msg, args...) }

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) { l.log(LevelWarn, msg, args...) }

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }

func (l *Logger) log(level Level, msg string, args ...any) {
	logTo(l.file, level, msg, args...)
	if l.console != nil {
		logTo(l.console, level, msg, args...)
	}
}

func logTo(logger *log.Logger, level Level, msg string, args ...any) {
	switch level {
	case LevelDebug:
		logger.Debug(msg, args...)
	case LevelInfo:
		logger.Info(msg, args...)
	case LevelWarn:
		logger.Warn(msg, args...)
	case LevelError:
		logger.Error(msg, args...)
	}
}

// With returns a new logger with additional context.
func (l *Logger) With(args ...any) *Logger {
	out := &Logger{file: l.file.With(args...)}
	if l.console != nil {
		out.console = l.console.With(args...)
	}
	return out
}

// fileSink is the writer behind every file logger. Logger pointers
// handed out by Get outlive Init and Close, so the file is swapped
// behind this indirection instead of inside each logger.
type fileSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *fileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *fileSink) set(w io.Writer) {
	s.mu.Lock()
	s.w = w
	s.mu.Unlock()
}

// state holds the global logging state.
type state struct {
	mu          sync.RWMutex
	initialized bool
	file        *os.File
	sink        *fileSink
	level       Level
	components  map[string]Level
	loggers     map[string]*Logger

	consoleEnabled bool
	consoleLevel   Level
}

var globalState = &state{
	loggers:    make(map[string]*Logger),
	components: make(map[string]Level),
	sink:       &fileSink{w: io.Discard},
}

// Init initializes the logging system. Before Init is called, all
// loggers write to io.Discard.
func Init(cfg Config) error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if globalState.initialized {
		if globalState.file != nil {
			globalState.sink.set(io.Discard)
			if err := globalState.file.Close(); err != nil {
				return fmt.Errorf("closing existing log file: %w", err)
			}
			globalState.file = nil
		}
		globalState.loggers = make(map[string]*Logger)
		globalState.components = make(map[string]Level)
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	globalState.level = level

	for comp, lvl := range cfg.Components {
		parsed, err := ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("parsing level for component %s: %w", comp, err)
		}
		globalState.components[comp] = parsed
	}

	globalState.consoleEnabled = false
	if cfg.ConsoleLevel != "" {
		consoleLevel, err := ParseLevel(cfg.ConsoleLevel)
		if err != nil {
			return fmt.Errorf("parsing console level: %w", err)
		}
		globalState.consoleLevel = consoleLevel
		globalState.consoleEnabled = true
	}

	path := cfg.Path
	if path == "" {
		path = DefaultLogPath()
	}
	if path != "-" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		globalState.file = f
		globalState.sink.set(f)
	}

	globalState.initialized = true

	// Recreate existing loggers with the new configuration.
	for component := range globalState.loggers {
		globalState.loggers[component] = createLogger(component)
	}

	return nil
}

// Get returns the logger for the given component, applying any
// per-component level override from the config.
func Get(component string) *Logger {
	globalState.mu.RLock()
	if logger, ok := globalState.loggers[component]; ok {
		globalState.mu.RUnlock()
		return logger
	}
	globalState.mu.RUnlock()

	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if logger, ok := globalState.loggers[component]; ok {
		return logger
	}

	logger := createLogger(component)
	globalState.loggers[component] = logger
	return logger
}

// createLogger builds a Logger for a component. Caller must hold the
// state lock.
func createLogger(component string) *Logger {
	level := globalState.level
	if override, ok := globalState.components[component]; ok {
		level = override
	}

	fileLogger := log.NewWithOptions(globalState.sink, log.Options{
		ReportTimestamp: true,
		Prefix:          component,
		Level:           level.toCharmLevel(),
	})

	logger := &Logger{file: fileLogger}

	if globalState.initialized && globalState.consoleEnabled {
		consoleLevel := globalState.consoleLevel
		if override, ok := globalState.components[component]; ok && override > consoleLevel {
			consoleLevel = override
		}
		logger.console = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: false,
			Prefix:          component,
			Level:           consoleLevel.toCharmLevel(),
		})
	}

	return logger
}

// Close flushes and closes the log file. Loggers obtained before Close
// keep working but write to io.Discard afterwards.
func Close() error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if !globalState.initialized {
		return nil
	}
	globalState.initialized = false

	var err error
	if globalState.file != nil {
		globalState.sink.set(io.Discard)
		err = globalState.file.Close()
		globalState.file = nil
	}

	for component := range globalState.loggers {
		globalState.loggers[component] = createLogger(component)
	}
	return err
}

// DefaultLogPath returns squeeze.log in the XDG state directory.
func DefaultLogPath() string {
	return filepath.Join(config.StateDir(), "squeeze.log")
}
