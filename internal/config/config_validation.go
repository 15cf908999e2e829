package config

import (
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var playerIDPrefixPattern = regexp.MustCompile(`^[A-Z0-9]+(-[A-Z0-9]+)*$`)

func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.HashKey == "" {
		return fmt.Errorf("%w: token sign key and hash key are required", ErrInvalidAppConfigs)
	}

	if !playerIDPrefixPattern.MatchString(cfg.App.PlayerIDPrefix) {
		return fmt.Errorf("%w: player id prefix %q", ErrInvalidAppConfigs, cfg.App.PlayerIDPrefix)
	}

	if cfg.App.ResetTokenTTL <= 0 || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: durations must be positive", ErrInvalidAppConfigs)
	}

	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d outside [%d, %d]", ErrInvalidAppConfigs, cfg.App.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.PoolSize < 1 || cfg.Workers.QueueSize < 1 || cfg.Workers.ResetSweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
