// Package testutil provides common testing utilities and setup functions for
// worldgen tests: log capture, temporary databases and small helpers.
package testutil

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/logging"
)

// TestConfig holds configuration for test setup
type TestConfig struct {
	// EnableLogCapture routes log output to t.Log instead of discarding it
	EnableLogCapture bool
	// TempDir is the temporary directory for test files
	TempDir string
}

// DefaultTestConfig returns a default test configuration suitable for most tests
func DefaultTestConfig() *TestConfig {
	return &TestConfig{
		EnableLogCapture: false, // Disable by default for cleaner test output
		TempDir:          filepath.Join(os.TempDir(), "worldgen-tests"),
	}
}

// SetupTest initializes the test environment with the provided configuration.
//
// Usage:
//
//	func TestMyFunction(t *testing.T) {
//	    cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
//	    defer cleanup()
//	    // ... test code
//	}
func SetupTest(t testing.TB, config *TestConfig) func() {
	t.Helper()

	var testLogger *log.Logger
	if config.EnableLogCapture {
		testLogger = log.New(testWriter{t: t})
		testLogger.SetLevel(log.DebugLevel)
	} else {
		// Disable logging output during tests to reduce noise
		testLogger = log.New(io.Discard)
	}

	originalLogger := logging.SetLogger(testLogger)
	originalDefault := log.Default()
	log.SetDefault(testLogger)

	require.NoError(t, os.MkdirAll(config.TempDir, 0o755))

	return func() {
		logging.SetLogger(originalLogger)
		log.SetDefault(originalDefault)
	}
}

// testWriter adapts testing.TB to implement io.Writer for log output
type testWriter struct {
	t testing.TB
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Helper()
	tw.t.Log(string(p))
	return len(p), nil
}

// CreateTestContext creates a context that is cancelled when the test ends.
func CreateTestContext(t testing.TB) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// SkipIfShort skips the test if testing.Short() is true.
// This should be used for tests that are slow or require external resources.
func SkipIfShort(t testing.TB, reason string) {
	t.Helper()

	if testing.Short() {
		if reason == "" {
			reason = "skipping test in short mode"
		}
		t.Skip(reason)
	}
}
