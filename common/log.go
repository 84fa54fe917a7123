//  Copyright (c) 2017-2018 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a general logger interface used by the compiler packages.
type Logger interface {
	// Log at debug level
	Debug(args ...interface{})

	// Log at debug level with fmt.Printf-like formatting
	Debugf(format string, args ...interface{})

	// Log at info level
	Info(args ...interface{})

	// Log at info level with fmt.Printf-like formatting
	Infof(format string, args ...interface{})

	// Log at warning level
	Warn(args ...interface{})

	// Log at warning level with fmt.Printf-like formatting
	Warnf(format string, args ...interface{})

	// Log at error level
	Error(args ...interface{})

	// Log at error level with fmt.Printf-like formatting
	Errorf(format string, args ...interface{})

	// Log at fatal level, then terminate process (irrecoverable)
	Fatal(args ...interface{})

	// Log at fatal level with fmt.Printf-like formatting, then terminate process (irrecoverable)
	Fatalf(format string, args ...interface{})

	// Return a logger with the specified key-value pair set, to be logged in a subsequent normal logging call
	With(args ...interface{}) Logger
}

// LoggerFactory defines the log factory used by the cli and the compiler packages.
type LoggerFactory interface {
	// GetDefaultLogger returns the default logger.
	GetDefaultLogger() Logger
	// GetLogger returns logger given the logger name.
	GetLogger(name string) Logger
}

// ZapLoggerFactory creates zap backed loggers sharing one root logger.
type ZapLoggerFactory struct {
	root *zap.Logger
}

// NewLoggerFactory creates a logger factory logging at info level.
func NewLoggerFactory() LoggerFactory {
	return NewLoggerFactoryWithLevel("info")
}

// NewLoggerFactoryWithLevel creates a logger factory logging at the given
// level. Unknown levels fall back to info.
func NewLoggerFactoryWithLevel(level string) LoggerFactory {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	root, err := cfg.Build()
	if err != nil {
		root = zap.NewExample()
	}
	return &ZapLoggerFactory{root: root}
}

// GetDefaultLogger returns the unnamed root logger.
func (r *ZapLoggerFactory) GetDefaultLogger() Logger {
	return &ZapLogger{r.root.Sugar()}
}

// GetLogger returns a logger scoped under name.
func (r *ZapLoggerFactory) GetLogger(name string) Logger {
	return &ZapLogger{r.root.Named(name).Sugar()}
}

// ZapLogger is a Logger backed by zap's sugared logger.
type ZapLogger struct {
	sugaredLogger *zap.SugaredLogger
}

// NewZapLogger wraps an existing zap logger.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{l.Sugar()}
}

// Debug logs at debug level.
func (z *ZapLogger) Debug(args ...interface{}) {
	z.sugaredLogger.Debug(args...)
}

// Debugf logs a formatted message at debug level.
func (z *ZapLogger) Debugf(format string, args ...interface{}) {
	z.sugaredLogger.Debugf(format, args...)
}

// Info logs at info level.
func (z *ZapLogger) Info(args ...interface{}) {
	z.sugaredLogger.Info(args...)
}

// Infof logs a formatted message at info level.
func (z *ZapLogger) Infof(format string, args ...interface{}) {
	z.sugaredLogger.Infof(format, args...)
}

// Warn logs at warning level.
func (z *ZapLogger) Warn(args ...interface{}) {
	z.sugaredLogger.Warn(args...)
}

// Warnf logs a formatted message at warning level.
func (z *ZapLogger) Warnf(format string, args ...interface{}) {
	z.sugaredLogger.Warnf(format, args...)
}

// Error logs at error level.
func (z *ZapLogger) Error(args ...interface{}) {
	z.sugaredLogger.Error(args...)
}

// Errorf logs a formatted message at error level.
func (z *ZapLogger) Errorf(format string, args ...interface{}) {
	z.sugaredLogger.Errorf(format, args...)
}

// Fatal logs at fatal level and exits.
func (z *ZapLogger) Fatal(args ...interface{}) {
	z.sugaredLogger.Fatal(args...)
}

// Fatalf logs a formatted message at fatal level and exits.
func (z *ZapLogger) Fatalf(format string, args ...interface{}) {
	z.sugaredLogger.Fatalf(format, args...)
}

// With returns a logger that adds the key value pairs to every entry.
func (z *ZapLogger) With(args ...interface{}) Logger {
	return &ZapLogger{
		z.sugaredLogger.With(args...),
	}
}

// NoopLogger discards everything.
type NoopLogger struct{}

// Debug does nothing.
func (z *NoopLogger) Debug(args ...interface{}) {}

// Debugf does nothing.
func (z *NoopLogger) Debugf(format string, args ...interface{}) {}

// Info does nothing.
func (z *NoopLogger) Info(args ...interface{}) {}

// Infof does nothing.
func (z *NoopLogger) Infof(format string, args ...interface{}) {}

// Warn does nothing.
func (z *NoopLogger) Warn(args ...interface{}) {}

// Warnf does nothing.
func (z *NoopLogger) Warnf(format string, args ...interface{}) {}

// Error does nothing.
func (z *NoopLogger) Error(args ...interface{}) {}

// Errorf does nothing.
func (z *NoopLogger) Errorf(format string, args ...interface{}) {}

// Fatal does nothing.
func (z *NoopLogger) Fatal(args ...interface{}) {}

// Fatalf does nothing.
func (z *NoopLogger) Fatalf(format string, args ...interface{}) {}

// With returns the same logger.
func (z *NoopLogger) With(args ...interface{}) Logger {
	return z
}
