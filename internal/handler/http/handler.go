package http

import (
	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/metrics"
	"github.com/MKhiriev/gsc-identity/internal/service"
	"github.com/MKhiriev/gsc-identity/internal/utils"
	"github.com/MKhiriev/gsc-identity/internal/validators"
)

type Handler struct {
	services  *service.Services
	metrics   *metrics.Metrics
	traceIDs  *utils.UUIDGenerator
	validator validators.Validator

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		metrics:   m,
		traceIDs:  utils.NewUUIDGenerator(),
		validator: validators.NewIdentityValidator(),
		logger:    logger,
	}
}
