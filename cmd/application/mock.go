package application

import (
	"github.com/rs/zerolog"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	AlgorithmFunc    func() string
	StrategyFunc     func() string
	MapModeFunc      func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "yaml".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "yaml"
}

// Algorithm returns the algorithm using the mock function or "hirschberg".
func (m *Mock) Algorithm() string {
	if m.AlgorithmFunc != nil {
		return m.AlgorithmFunc()
	}
	return "hirschberg"
}

// Strategy returns the strategy using the mock function or "ordered-array-like".
func (m *Mock) Strategy() string {
	if m.StrategyFunc != nil {
		return m.StrategyFunc()
	}
	return "ordered-array-like"
}

// MapMode returns the map mode using the mock function or "key-and-value".
func (m *Mock) MapMode() string {
	if m.MapModeFunc != nil {
		return m.MapModeFunc()
	}
	return "key-and-value"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
