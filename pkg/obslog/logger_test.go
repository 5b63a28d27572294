package obslog

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaultsToInfoOnUnknownLevel(t *testing.T) {
	logger := New("not-a-real-level")
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestNewHonorsDebugLevel(t *testing.T) {
	logger := New("debug")
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestNewUsesJSONFormatter(t *testing.T) {
	logger := New("info")
	_, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestSetLevelChangesLevelAtRuntime(t *testing.T) {
	logger := New("info")
	SetLevel(logger, "error")
	assert.Equal(t, logrus.ErrorLevel, logger.GetLevel())

	SetLevel(logger, "warn")
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
}

func TestGlobalLoggerIsConfigured(t *testing.T) {
	assert.NotNil(t, Logger)
	_, ok := Logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}
