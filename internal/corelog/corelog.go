// Package corelog provides the structured logger shared by the core's
// components. It is a thin adapter over logrus so callers depend on a
// small interface rather than the concrete logging library.
package corelog

import "github.com/sirupsen/logrus"

// Logger is the logging surface used throughout the core.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// New returns a Logger backed by logrus, configured the way the core
// wants its diagnostic output formatted: plain text, no timestamps, so
// output stays deterministic across runs.
func New() Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
	}
	return l
}

// nullLogger discards everything. Useful for tests that don't want
// log noise from a core under test.
type nullLogger struct{}

func (nullLogger) Debugf(string, ...interface{}) {}
func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Warnf(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}

// NewNull returns a Logger that discards all output.
func NewNull() Logger {
	return nullLogger{}
}
