// Package logger provides the logging interface used across cookex.
// Backends cover console output, quiet runs and test verification.
//
// Cookie values are sensitive and must never be logged at any level; store
// file paths are logged at Debug only.
package logger

import (
	"fmt"
	"log"
)

// Logger is implemented by every cookex logging backend.
type Logger interface {
	// Debug logs diagnostic detail such as probed store paths.
	Debug(format string, args ...interface{})

	// Info logs progress messages (e.g. "Chrome: 214 cookies").
	Info(format string, args ...interface{})

	// Warning logs recoverable conditions (e.g. "Safari: skipping page 2").
	Warning(format string, args ...interface{})

	// Error logs failures that cost a source or the run.
	Error(format string, args ...interface{})
}

// StandardLogger writes leveled lines through a stdlib *log.Logger.
// Debug output is dropped unless enabled.
type StandardLogger struct {
	logger      *log.Logger
	debugEnable bool
}

// NewStandardLogger wraps l. When debug is false, Debug calls are discarded.
func NewStandardLogger(l *log.Logger, debug bool) *StandardLogger {
	return &StandardLogger{logger: l, debugEnable: debug}
}

func (s *StandardLogger) Debug(format string, args ...interface{}) {
	if s.debugEnable {
		s.logger.Printf("[DEBUG] "+format, args...)
	}
}

func (s *StandardLogger) Info(format string, args ...interface{}) {
	s.logger.Printf("[INFO] "+format, args...)
}

func (s *StandardLogger) Warning(format string, args ...interface{}) {
	s.logger.Printf("[WARNING] "+format, args...)
}

func (s *StandardLogger) Error(format string, args ...interface{}) {
	s.logger.Printf("[ERROR] "+format, args...)
}

// NopLogger discards every message.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (NopLogger) Debug(format string, args ...interface{})   {}
func (NopLogger) Info(format string, args ...interface{})    {}
func (NopLogger) Warning(format string, args ...interface{}) {}
func (NopLogger) Error(format string, args ...interface{})   {}

// MockLogger records formatted messages for test assertions.
type MockLogger struct {
	DebugCalls   []string
	InfoCalls    []string
	WarningCalls []string
	ErrorCalls   []string
}

func NewMockLogger() *MockLogger { return &MockLogger{} }

func (m *MockLogger) Debug(format string, args ...interface{}) {
	m.DebugCalls = append(m.DebugCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Info(format string, args ...interface{}) {
	m.InfoCalls = append(m.InfoCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.WarningCalls = append(m.WarningCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Error(format string, args ...interface{}) {
	m.ErrorCalls = append(m.ErrorCalls, fmt.Sprintf(format, args...))
}

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
	_ Logger = (*MockLogger)(nil)
)
