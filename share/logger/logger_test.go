package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	logfile := t.TempDir() + "/test.log"
	l, err := os.OpenFile(logfile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	require.NoError(t, err, "error creating log file")
	defer l.Close()

	logger := NewLogger("test", LogOutput{File: l}, LogLevelDebug)
	logger.Debugf("Debug %s", "Debug")
	logger.Infof("Info %s", "Info")
	logger.Errorf("Error %s", "Error")

	log, err := os.ReadFile(logfile)
	require.NoError(t, err, "error reading log file")
	assert.Contains(t, string(log), "test: Debug Debug")
	assert.Contains(t, string(log), "test: Info Info")
	assert.Contains(t, string(log), "test: Error Error")
	assert.Contains(t, string(log), "level=debug")
	assert.Contains(t, string(log), "level=error")
}

func TestLoggerLevelFilter(t *testing.T) {
	logfile := t.TempDir() + "/test.log"
	l, err := os.OpenFile(logfile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	require.NoError(t, err)
	defer l.Close()

	logger := NewLogger("test", LogOutput{File: l}, LogLevelError)
	logger.Debugf("hidden debug")
	logger.Infof("hidden info")
	logger.Errorf("shown error")

	log, err := os.ReadFile(logfile)
	require.NoError(t, err)
	assert.NotContains(t, string(log), "hidden")
	assert.Contains(t, string(log), "test: shown error")
}

func TestFork(t *testing.T) {
	logfile := t.TempDir() + "/test.log"
	l, err := os.OpenFile(logfile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	require.NoError(t, err)
	defer l.Close()

	parent := NewLogger("sysdash", LogOutput{File: l}, LogLevelInfo)
	child := parent.Fork("collector-%d", 1)

	assert.Equal(t, "sysdash: collector-1", child.Prefix())
	assert.Equal(t, LogLevelInfo, child.Level)

	child.Infof("collected")
	log, err := os.ReadFile(logfile)
	require.NoError(t, err)
	assert.Contains(t, string(log), "sysdash: collector-1: collected")
}

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		Input         string
		ExpectedLevel LogLevel
		ExpectedError string
	}{
		{Input: "error", ExpectedLevel: LogLevelError},
		{Input: "info", ExpectedLevel: LogLevelInfo},
		{Input: "debug", ExpectedLevel: LogLevelDebug},
		{Input: "trace", ExpectedLevel: LogLevelError, ExpectedError: `invalid log level: "trace"`},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.Input, func(t *testing.T) {
			level, err := ParseLogLevel(tc.Input)
			if tc.ExpectedError != "" {
				assert.EqualError(t, err, tc.ExpectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.Input, level.String())
			}
			assert.Equal(t, tc.ExpectedLevel, level)
		})
	}
}
