package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/storehub/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables.
//
// A dotenv file named by -env is loaded first and must exist; without the
// flag a ./.env file is loaded when present. Variables already set in the
// process environment are never overridden by the file.
//
// Recognized variables:
//
//	SECRET              session token signing key
//	DATABASE_DSN        PostgreSQL DSN
//	APP_ENV / NODE_ENV  deployment environment (APP_ENV wins)
//	LOG_BACKEND         slog | zap
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	setFromEnv(&config.SecretKey, "SECRET")
	setFromEnv(&config.DatabaseDSN, "DATABASE_DSN")
	setFromEnv(&config.Environment, "NODE_ENV")
	setFromEnv(&config.Environment, "APP_ENV")
	setFromEnv(&config.LogBackend, "LOG_BACKEND")
	setFromEnv(&config.S3RootUser, "S3_ROOT_USER")
	setFromEnv(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setFromEnv(&config.S3Bucket, "S3_BUCKET")
	setFromEnv(&config.S3Region, "S3_REGION")
	setFromEnv(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
}

func setFromEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
