package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-g", "127.0.0.1:9091", "-d", "db", "-s", "secret",
			"-t", "24", "-m", "production", "-n", "7", "-l", "zap",
			"-u", "user", "-p", "password", "-b", "bucket", "-r", "us-west-1", "-e", "http://endpoint",
		}, expected: &Config{
			EndpointAddrHTTP:    "127.0.0.1:9090",
			EndpointAddrGRPC:    "127.0.0.1:9091",
			DatabaseDSN:         "db",
			SecretKey:           "secret",
			SessionTTL:          24 * time.Hour,
			Environment:         "production",
			MutationMaxAttempts: 7,
			LogBackend:          "zap",
			S3RootUser:          "user",
			S3RootPassword:      "password",
			S3Bucket:            "bucket",
			S3Region:            "us-west-1",
			S3BaseEndpoint:      "http://endpoint",
		}},
		{name: "foreign flags ignored", args: []string{"cmd", "-c", "cfg.json", "-env", ".env", "-s", "k"},
			expected: &Config{SecretKey: "k"}},
		{name: "bad int", args: []string{"cmd", "-t", "three"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_TTLUntouchedWithoutFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd"}

	config := &Config{SessionTTL: 90 * time.Minute}
	parseFlags(config)
	assert.Equal(t, 90*time.Minute, config.SessionTTL)
}
