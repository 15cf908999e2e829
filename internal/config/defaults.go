package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultPlayerIDPrefix     = "GGF-GSC"
	DefaultResetTokenTTL      = time.Hour
	DefaultTokenDuration      = 24 * time.Hour
	DefaultTokenIssuer        = "gsc-identity"
	DefaultHTTPAddress        = "localhost:8080"
	DefaultGRPCAddress        = "localhost:9090"
	DefaultRequestTimeout     = 10 * time.Second
	DefaultMailerTimeout      = 5 * time.Second
	DefaultPoolSize           = 4
	DefaultQueueSize          = 128
	DefaultResetSweepInterval = 10 * time.Minute
	DefaultArtifactDir        = "uploads"
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.PlayerIDPrefix == "" {
		cfg.App.PlayerIDPrefix = DefaultPlayerIDPrefix
	}
	if cfg.App.ResetTokenTTL == 0 {
		cfg.App.ResetTokenTTL = DefaultResetTokenTTL
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.BcryptCost == 0 {
		cfg.App.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.GRPCAddress == "" {
		cfg.Server.GRPCAddress = DefaultGRPCAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.MailerTimeout == 0 {
		cfg.Adapter.MailerTimeout = DefaultMailerTimeout
	}
	if cfg.Storage.Files.ArtifactDir == "" {
		cfg.Storage.Files.ArtifactDir = DefaultArtifactDir
	}
	if cfg.Workers.PoolSize == 0 {
		cfg.Workers.PoolSize = DefaultPoolSize
	}
	if cfg.Workers.QueueSize == 0 {
		cfg.Workers.QueueSize = DefaultQueueSize
	}
	if cfg.Workers.ResetSweepInterval == 0 {
		cfg.Workers.ResetSweepInterval = DefaultResetSweepInterval
	}
}
