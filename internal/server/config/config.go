// Package config handles configuration for the storehub server: compiled
// defaults, environment (optionally seeded from a dotenv file), a JSON
// overlay and command-line flags, applied in that order.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/storehub/internal/common"
)

// EnvironmentProduction turns on the Secure attribute of session cookies.
const EnvironmentProduction = "production"

// Config holds runtime settings for the storehub server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the public HTTP API.
//   - EndpointAddrGRPC: bind address of the gRPC health listener.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects in-memory repositories.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Required.
//   - SessionTTL: lifetime of the session token and both session cookies.
//   - Environment: deployment name; "production" enables Secure cookies.
//   - MutationMaxAttempts / MutationRetryDelay: optimistic-concurrency retry budget.
//   - LogBackend: "slog" or "zap".
//   - S3*: object storage for profile images.
type Config struct {
	EndpointAddrHTTP    string
	EndpointAddrGRPC    string
	DatabaseDSN         string
	SecretKey           string
	SessionTTL          time.Duration
	Environment         string
	MutationMaxAttempts int
	MutationRetryDelay  time.Duration
	LogBackend          string
	S3RootUser          string
	S3RootPassword      string
	S3Bucket            string
	S3Region            string
	S3BaseEndpoint      string
}

// LoadDefaults populates Config with development defaults.
// SecretKey deliberately has no default.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.SessionTTL = 3 * 24 * time.Hour
	c.Environment = "development"
	c.MutationMaxAttempts = 5
	c.MutationRetryDelay = 5 * time.Millisecond
	c.LogBackend = "slog"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "storehub-images"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// SecureCookies reports whether cookies must carry the Secure attribute.
func (c *Config) SecureCookies() bool {
	return c.Environment == EnvironmentProduction
}

// Validate checks the settings without which the server must not start.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return common.ErrSecretKeyMissing
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	if c.MutationMaxAttempts < 1 {
		return fmt.Errorf("mutation max attempts must be at least 1, got %d", c.MutationMaxAttempts)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then environment
// variables, then an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
