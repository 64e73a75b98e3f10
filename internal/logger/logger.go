// Package logger provides the process-wide structured logger used by the sync service.
package logger

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// EncodingJSON writes one JSON object per log line
	EncodingJSON = "json"

	// EncodingConsole writes human readable lines
	EncodingConsole = "console"
)

// Config holds logger settings
type Config struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string `yaml:"level,omitempty"`

	// Encoding is json or console. Defaults to json.
	Encoding string `yaml:"encoding,omitempty"`

	// Development enables zap development mode (stack traces on warn, DPanic panics)
	Development bool `yaml:"development,omitempty"`

	// DisableCaller drops the caller annotation from log lines
	DisableCaller bool `yaml:"disableCaller,omitempty"`
}

var current atomic.Pointer[zap.SugaredLogger]

func init() {
	current.Store(zap.NewNop().Sugar())
}

// New builds a zap logger from the given configuration.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.Set(strings.ToLower(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = EncodingJSON
	}
	if encoding != EncodingJSON && encoding != EncodingConsole {
		return nil, fmt.Errorf("invalid log encoding %q: must be %s or %s", cfg.Encoding, EncodingJSON, EncodingConsole)
	}

	zc := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          encoding,
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: !cfg.Development,
		EncoderConfig:     zap.NewProductionEncoderConfig(),
		// stdout is left to commands that print data (version --format json)
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if encoding == EncodingConsole {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	return zc.Build(zap.AddCallerSkip(1))
}

// Initialize replaces the process-wide logger with one built from cfg.
func Initialize(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set installs l as the process-wide logger. A nil logger installs a no-op logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	current.Store(l.Sugar())
}

// Get returns the process-wide logger
func Get() *zap.SugaredLogger {
	return current.Load()
}

// Sync flushes any buffered log entries
func Sync() {
	_ = current.Load().Sync()
}

// Debug logs a message at debug level
func Debug(msg string) { current.Load().Debug(msg) }

// Debugf logs a formatted message at debug level
func Debugf(format string, args ...any) { current.Load().Debugf(format, args...) }

// Debugw logs a message with key/value pairs at debug level
func Debugw(msg string, keysAndValues ...any) { current.Load().Debugw(msg, keysAndValues...) }

// Info logs a message at info level
func Info(msg string) { current.Load().Info(msg) }

// Infof logs a formatted message at info level
func Infof(format string, args ...any) { current.Load().Infof(format, args...) }

// Infow logs a message with key/value pairs at info level
func Infow(msg string, keysAndValues ...any) { current.Load().Infow(msg, keysAndValues...) }

// Warn logs a message at warn level
func Warn(msg string) { current.Load().Warn(msg) }

// Warnf logs a formatted message at warn level
func Warnf(format string, args ...any) { current.Load().Warnf(format, args...) }

// Warnw logs a message with key/value pairs at warn level
func Warnw(msg string, keysAndValues ...any) { current.Load().Warnw(msg, keysAndValues...) }

// Error logs a message at error level
func Error(msg string) { current.Load().Error(msg) }

// Errorf logs a formatted message at error level
func Errorf(format string, args ...any) { current.Load().Errorf(format, args...) }

// Errorw logs a message with key/value pairs at error level
func Errorw(msg string, keysAndValues ...any) { current.Load().Errorw(msg, keysAndValues...) }

// Fatalf logs a formatted message and exits the process
func Fatalf(format string, args ...any) { current.Load().Fatalf(format, args...) }
