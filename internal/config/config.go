// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the root configuration of the identity server.
// Environment variables are resolved through the envPrefix tags, e.g.
// APP_TOKEN_SIGN_KEY or STORAGE_DB_DATABASE_URI.
type StructuredConfig struct {
	App App `envPrefix:"APP_"`

	Storage Storage `envPrefix:"STORAGE_"`

	Server Server `envPrefix:"SERVER_"`

	Adapter Adapter `envPrefix:"ADAPTER_"`

	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath points to an optional JSON config file.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the credential and session settings.
type App struct {
	// TokenSignKey is the HMAC key used to sign session tokens.
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of a session token.
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey keys the HMAC used to store reset token digests.
	HashKey string `env:"HASH_KEY"`

	// PlayerIDPrefix is the fixed head of every issued player identifier.
	PlayerIDPrefix string `env:"PLAYER_ID_PREFIX"`

	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL"`

	// ResetURL is the page a reset link points to; the token is appended
	// as a query parameter.
	ResetURL string `env:"RESET_URL"`

	BcryptCost int `env:"BCRYPT_COST"`

	Version string `env:"VERSION"`
}

// Storage groups the persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`

	Files Files `envPrefix:"FILES_"`
}

type DB struct {
	DSN string `env:"DATABASE_URI"`
}

// Files configures the local artifact store.
type Files struct {
	ArtifactDir string `env:"ARTIFACT_DIR"`
}

type Server struct {
	HTTPAddress string `env:"ADDRESS"`

	GRPCAddress string `env:"GRPC_ADDRESS"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter configures the outbound mail relay. An empty MailerAddress
// selects the log-only sender.
type Adapter struct {
	MailerAddress string `env:"MAILER_ADDRESS"`

	MailerFrom string `env:"MAILER_FROM"`

	MailerTimeout time.Duration `env:"MAILER_TIMEOUT"`
}

// Workers configures the background task pool and the reset token sweeper.
type Workers struct {
	PoolSize int `env:"POOL_SIZE"`

	QueueSize int `env:"QUEUE_SIZE"`

	ResetSweepInterval time.Duration `env:"RESET_SWEEP_INTERVAL"`
}

// GetStructuredConfig assembles the configuration from environment
// variables, command-line flags and an optional JSON file, in that order
// of priority, then applies defaults and validates the result.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
