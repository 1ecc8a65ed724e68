//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
	"github.com/fivetwenty-io/tfe-client/pkg/tfeclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Address      string
	Token        string
	Organization string
	Verbose      bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Address:      os.Getenv(tfeclient.EnvAddress),
		Token:        os.Getenv(tfeclient.EnvToken),
		Organization: os.Getenv("TFE_ORGANIZATION"),
		Verbose:      os.Getenv("TFE_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Token == "" {
		t.Skip("TFE_TOKEN not set, skipping integration test")
	}

	if config.Organization == "" {
		t.Skip("TFE_ORGANIZATION not set, skipping integration test")
	}
}

// NewClient builds a client against the configured server.
func (config *TestConfig) NewClient(t *testing.T) tfe.Client {
	t.Helper()

	cfg := &tfe.Config{
		Address:           config.Address,
		Token:             config.Token,
		RetryServerErrors: true,
	}

	if config.Verbose {
		cfg.Debug = true
		cfg.Logger = tfe.NewZapLogger(zaptest.NewLogger(t))
	}

	client, err := tfeclient.New(context.Background(), cfg)
	require.NoError(t, err)

	return client
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// Cleanup registers a best-effort delete that ignores not-found errors.
func Cleanup(t *testing.T, what string, fn func(ctx context.Context) error) {
	t.Helper()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := fn(ctx); err != nil && !tfe.IsNotFound(err) {
			t.Logf("Cleanup warning for %s: %v", what, err)
		}
	})
}

// NewClientOffline builds a client for an unreachable address. Only calls
// that fail validation before any request are meaningful against it.
func (config *TestConfig) NewClientOffline(t *testing.T) tfe.Client {
	t.Helper()

	client, err := tfeclient.NewWithToken(context.Background(), "http://127.0.0.1:1", "offline")
	require.NoError(t, err)

	return client
}
