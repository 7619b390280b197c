// Package logger is the printf-style logging interface shared by the alarm
// engine, catalog loader, and delivery gateways.
package logger

import (
	"fmt"
	"log"
	"sync"
)

// Logger is implemented by every log sink used in the application.
type Logger interface {
	Info(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)
}

// StandardLogger writes tagged lines to a stdlib *log.Logger.
type StandardLogger struct {
	logger *log.Logger
}

// NewStandardLogger wraps l. A nil l uses log.Default().
func NewStandardLogger(l *log.Logger) *StandardLogger {
	if l == nil {
		l = log.Default()
	}
	return &StandardLogger{logger: l}
}

func (s *StandardLogger) Info(format string, args ...any) {
	s.logger.Printf("[INFO] "+format, args...)
}

func (s *StandardLogger) Warning(format string, args ...any) {
	s.logger.Printf("[WARNING] "+format, args...)
}

func (s *StandardLogger) Error(format string, args ...any) {
	s.logger.Printf("[ERROR] "+format, args...)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Info(string, ...any)    {}
func (Nop) Warning(string, ...any) {}
func (Nop) Error(string, ...any)   {}

// Mock records formatted messages per level. Safe for concurrent use since
// timer callbacks log from their own goroutines.
type Mock struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
	errors   []string
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Info(format string, args ...any) {
	m.record(&m.infos, format, args)
}

func (m *Mock) Warning(format string, args ...any) {
	m.record(&m.warnings, format, args)
}

func (m *Mock) Error(format string, args ...any) {
	m.record(&m.errors, format, args)
}

func (m *Mock) record(dst *[]string, format string, args []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*dst = append(*dst, fmt.Sprintf(format, args...))
}

// Infos returns a copy of the recorded info messages.
func (m *Mock) Infos() []string { return m.snapshot(&m.infos) }

// Warnings returns a copy of the recorded warning messages.
func (m *Mock) Warnings() []string { return m.snapshot(&m.warnings) }

// Errors returns a copy of the recorded error messages.
func (m *Mock) Errors() []string { return m.snapshot(&m.errors) }

func (m *Mock) snapshot(src *[]string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), (*src)...)
}

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = Nop{}
	_ Logger = (*Mock)(nil)
)
