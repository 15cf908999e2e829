package handler

import (
	"github.com/MKhiriev/gsc-identity/internal/config"
	"github.com/MKhiriev/gsc-identity/internal/handler/grpc"
	"github.com/MKhiriev/gsc-identity/internal/handler/http"
	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/metrics"
	"github.com/MKhiriev/gsc-identity/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, m *metrics.Metrics, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, m, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
