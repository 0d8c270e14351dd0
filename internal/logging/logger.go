package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	Logger *log.Logger
	mu     sync.Mutex
)

// LogLevel represents available log levels
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Format selects how records are rendered.
type Format string

const (
	TextFormat   Format = "text"
	JSONFormat   Format = "json"
	LogfmtFormat Format = "logfmt"
)

// Configure replaces the global logger and makes it the charmbracelet default,
// so package-level log.Info calls follow the same settings.
func Configure(w io.Writer, level LogLevel, format Format) *log.Logger {
	logger := log.New(w)
	setLogLevel(logger, level)

	switch format {
	case JSONFormat:
		logger.SetFormatter(log.JSONFormatter)
	case LogfmtFormat:
		logger.SetFormatter(log.LogfmtFormatter)
	default:
		logger.SetFormatter(log.TextFormatter)
		logger.SetReportCaller(true)
	}
	logger.SetReportTimestamp(true)
	logger.SetPrefix("worldgen")

	mu.Lock()
	Logger = logger
	mu.Unlock()
	log.SetDefault(logger)

	logger.Debug("Logger initialized successfully", "level", level, "format", format)
	return logger
}

// ParseLevel maps a case-insensitive name to a LogLevel, defaulting to info.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// ParseFormat maps a name to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSONFormat
	case "logfmt":
		return LogfmtFormat
	default:
		return TextFormat
	}
}

// setLogLevel configures the logger with the specified level
func setLogLevel(logger *log.Logger, level LogLevel) {
	switch level {
	case DebugLevel:
		logger.SetLevel(log.DebugLevel)
	case WarnLevel:
		logger.SetLevel(log.WarnLevel)
	case ErrorLevel:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// GetLogger returns the global logger instance
func GetLogger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if Logger == nil {
		Logger = log.New(os.Stderr)
		Logger.SetReportTimestamp(true)
	}
	return Logger
}

// SetLogger swaps the global logger and returns the previous one.
func SetLogger(l *log.Logger) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	prev := Logger
	Logger = l
	return prev
}

// WithFields creates a logger with contextual fields
func WithFields(fields ...interface{}) *log.Logger {
	return GetLogger().With(fields...)
}

// WithComponent creates a logger tagged with a component name
func WithComponent(component string) *log.Logger {
	return WithFields("component", component)
}

// WithDuration creates a logger with duration context (for performance logging)
func WithDuration(operation string, duration interface{}) *log.Logger {
	return WithFields("operation", operation, "duration", duration)
}
