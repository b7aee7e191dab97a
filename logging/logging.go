// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package logging provides the leveled logger every package in this toolkit
// accepts as an optional collaborator (the pass Runner's debug trace, the
// CLI's --debug flag), wrapping sirupsen/logrus the same way the teacher's
// logging package wraps its own logging backend.
package logging

import "github.com/sirupsen/logrus"

// Level is a logging verbosity level.
type Level uint8

// Supported levels, ordered from least to most verbose.
const (
	Error Level = iota
	Warn
	Info
	Debug
)

func (l Level) toLogrus() logrus.Level {
	switch l {
	case Error:
		return logrus.ErrorLevel
	case Warn:
		return logrus.WarnLevel
	case Info:
		return logrus.InfoLevel
	case Debug:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger is the interface passes and CLI commands log through. It matches
// logrus.FieldLogger's method set closely enough that a *StandardLogger
// satisfies both, so a caller that already has a *logrus.Logger can use it
// directly wherever a Logger is accepted.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	WithFields(fields map[string]interface{}) Logger
	SetLevel(Level)
	GetLevel() Level
}

// StandardLogger is the default Logger implementation, a thin wrapper over
// *logrus.Logger.
type StandardLogger struct {
	entry *logrus.Entry
	level Level
}

// New returns a StandardLogger at Info level, logging to stderr in text
// format, matching logrus's own zero-value defaults.
func New() *StandardLogger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return &StandardLogger{entry: logrus.NewEntry(l), level: Info}
}

// Debug logs at Debug level.
func (s *StandardLogger) Debug(args ...interface{}) { s.entry.Debug(args...) }

// Info logs at Info level.
func (s *StandardLogger) Info(args ...interface{}) { s.entry.Info(args...) }

// Warn logs at Warn level.
func (s *StandardLogger) Warn(args ...interface{}) { s.entry.Warn(args...) }

// Error logs at Error level.
func (s *StandardLogger) Error(args ...interface{}) { s.entry.Error(args...) }

// WithFields returns a Logger that attaches fields to every subsequent
// call, the logrus structured-logging idiom.
func (s *StandardLogger) WithFields(fields map[string]interface{}) Logger {
	return &StandardLogger{entry: s.entry.WithFields(logrus.Fields(fields)), level: s.level}
}

// SetLevel sets the minimum level that gets logged.
func (s *StandardLogger) SetLevel(level Level) {
	s.level = level
	s.entry.Logger.SetLevel(level.toLogrus())
}

// GetLevel returns the current minimum level.
func (s *StandardLogger) GetLevel() Level { return s.level }

// NoOpLogger discards everything, for callers that want to pass a Logger
// without actually wanting any output.
type NoOpLogger struct{}

// NewNoOpLogger returns a NoOpLogger.
func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

// Debug implements Logger.
func (NoOpLogger) Debug(args ...interface{}) {}

// Info implements Logger.
func (NoOpLogger) Info(args ...interface{}) {}

// Warn implements Logger.
func (NoOpLogger) Warn(args ...interface{}) {}

// Error implements Logger.
func (NoOpLogger) Error(args ...interface{}) {}

// WithFields implements Logger.
func (n NoOpLogger) WithFields(fields map[string]interface{}) Logger { return n }

// SetLevel implements Logger.
func (n NoOpLogger) SetLevel(Level) {}

// GetLevel implements Logger.
func (n NoOpLogger) GetLevel() Level { return Error }
