// Package obslog provides the simulator's structured logger. Mirrors
// the teacher's pkg/utils/logger.go: JSON formatter, level configurable,
// one global instance plus a constructor for tests that want an isolated
// logger.
package obslog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide structured logger for fault/transition
// events. Per-tick state is never logged here — see pkg/metrics and
// pkg/telemetry for the high-rate paths.
var Logger = New("info")

// New creates a configured logger writing JSON to stdout.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	SetLevel(logger, level)
	return logger
}

// SetLevel changes the log level of logger at runtime.
func SetLevel(logger *logrus.Logger, level string) {
	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
}
