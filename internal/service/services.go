package service

import (
	"github.com/MKhiriev/gsc-identity/internal/clock"
	"github.com/MKhiriev/gsc-identity/internal/config"
	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/metrics"
	"github.com/MKhiriev/gsc-identity/internal/store"
)

// Services is the produced surface of the identity core.
type Services struct {
	PlayerIDIssuer       PlayerIDIssuer
	AuthService          AuthService
	SessionService       SessionService
	PasswordResetService PasswordResetService
	ArtifactService      ArtifactService
	ProfileService       ProfileService
	AppInfoService       AppInfoService
}

func NewServices(storages *store.Storages, notifier NotificationSender, tasks TaskRunner, cfg config.App, clk clock.Clock, m *metrics.Metrics, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, err
	}

	issuer := NewPlayerIDIssuer(storages.Sequences, cfg.PlayerIDPrefix, m, logger)
	sessions := NewSessionService(cfg, clk, logger)
	artifacts := NewArtifactService(storages.Files, m, logger)

	return &Services{
		PlayerIDIssuer: issuer,
		AuthService: NewAuthService(AuthDependencies{
			Users:    storages.Users,
			Issuer:   issuer,
			Sessions: sessions,
			Notifier: notifier,
			Tasks:    tasks,
		}, cfg, clk, m, logger),
		SessionService: sessions,
		PasswordResetService: NewPasswordResetService(ResetDependencies{
			Users:    storages.Users,
			Tokens:   storages.ResetTokens,
			Notifier: notifier,
			Tasks:    tasks,
		}, cfg, clk, m, logger),
		ArtifactService: artifacts,
		ProfileService:  NewProfileService(storages.Users, sessions, artifacts, tasks, logger),
		AppInfoService:  appInfo,
	}, nil
}
