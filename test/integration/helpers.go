//go:build integration

package integration

import (
	"os"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIEndpoint string
	APIKey      string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint: os.Getenv("SHIPAPI_API"),
		APIKey:      os.Getenv("SHIPAPI_API_KEY"),
		Verbose:     os.Getenv("SHIPAPI_VERBOSE") == "true",
	}
}

// testLogger writes library logs through testing.T.
type testLogger struct {
	logf func(format string, args ...interface{})
}

func (l *testLogger) Debug(msg string, fields map[string]interface{}) {
	l.logf("DEBUG %s %v", msg, fields)
}
func (l *testLogger) Info(msg string, fields map[string]interface{}) {
	l.logf("INFO %s %v", msg, fields)
}
func (l *testLogger) Warn(msg string, fields map[string]interface{}) {
	l.logf("WARN %s %v", msg, fields)
}
func (l *testLogger) Error(msg string, fields map[string]interface{}) {
	l.logf("ERROR %s %v", msg, fields)
}
