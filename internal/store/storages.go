package store

import (
	"github.com/MKhiriev/gsc-identity/internal/config"
	"github.com/MKhiriev/gsc-identity/internal/logger"
)

// Storages groups every storage dependency of the service layer.
type Storages struct {
	Users       UserRepository
	Sequences   SequenceRepository
	ResetTokens ResetTokenRepository
	Files       FileStorage
}

func NewStorages(db *DB, cfg config.Storage, logger *logger.Logger) *Storages {
	return &Storages{
		Users:       NewUserRepository(db, logger),
		Sequences:   NewSequenceRepository(db, logger),
		ResetTokens: NewResetTokenRepository(db, logger),
		Files:       NewLocalFileStorage(cfg.Files.ArtifactDir, logger),
	}
}
